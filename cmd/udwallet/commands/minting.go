package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"udwallet/internal/domain"
)

func mintingCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minting",
		Short: "Inspect domains waiting for their mint",
	}
	var wallet string
	list := &cobra.Command{
		Use:   "list",
		Short: "List minting domains",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			var pending []domain.MintingDomain
			if wallet != "" {
				pending = st.wire.Minting.GetMintingDomains(wallet)
			} else {
				pending = st.wire.Minting.All()
			}
			for _, d := range pending {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.Name, d.WalletAddress, d.TransactionHash)
			}
			return nil
		}),
	}
	list.Flags().StringVar(&wallet, "wallet", "", "only domains minted to this wallet")
	cmd.AddCommand(list)
	return cmd
}
