package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func domainsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Inspect cached domains",
	}
	cmd.AddCommand(domainsListCmd(st), domainsPruneCmd(st))
	return cmd
}

func domainsListCmd(st *state) *cobra.Command {
	var wallet string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached domains, in the saved order when --wallet is given",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			domains := st.wire.Domains.GetStoredDomains()
			if wallet != "" {
				domains = st.wire.SortOrder.ApplyOrder(wallet, domains)
			}
			for _, d := range domains {
				status := string(d.State)
				if status == "" {
					status = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", d.Name, d.NamingService, d.OwnerWallet, status)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&wallet, "wallet", "", "apply this wallet's saved sort order")
	return cmd
}

// prune: drop cached domains no cached wallet owns. Claiming domains are kept.
func domainsPruneCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove domains not owned by any cached wallet",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			n, err := st.wire.Domains.PruneUnowned(st.wire.Wallets.GetWallets())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d domain(s)\n", n)
			return nil
		}),
	}
}
