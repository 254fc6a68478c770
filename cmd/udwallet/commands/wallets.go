package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"udwallet/internal/domain"
)

func walletsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallets",
		Short: "Inspect and edit cached wallets",
	}
	cmd.AddCommand(
		walletsListCmd(st),
		walletsAddCmd(st),
		walletsRenameCmd(st),
		walletsRemoveCmd(st),
		walletsNextNameCmd(st),
	)
	return cmd
}

func walletsListCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached wallets",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			for _, w := range st.wire.Wallets.GetWallets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					domain.ChecksumAddress(w.Address), w.Name, w.Type)
			}
			return nil
		}),
	}
}

// add <address>: cache a wallet, naming it after the lowest free index.
func walletsAddCmd(st *state) *cobra.Command {
	var name, kind string
	cmd := &cobra.Command{
		Use:   "add <address>",
		Short: "Add a wallet to the cache",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = st.wire.Wallets.GetLowestIndexedName("Wallet")
			}
			w := domain.Wallet{
				Address:   args[0],
				Name:      name,
				Type:      domain.WalletType(kind),
				CreatedAt: time.Now().UTC(),
			}
			if err := st.wire.Wallets.Add(w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s as %q\n", domain.ChecksumAddress(w.Address), name)
			return nil
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (default: next free \"Wallet N\")")
	cmd.Flags().StringVar(&kind, "type", string(domain.WalletExternal), "wallet type")
	return cmd
}

func walletsRenameCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <address> <name>",
		Short: "Rename a cached wallet",
		Args:  cobra.ExactArgs(2),
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			return st.wire.Wallets.Rename(args[0], args[1])
		}),
	}
}

// remove <address>: drop the wallet and its private key.
func walletsRemoveCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <address>",
		Short: "Remove a wallet and its private key",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			if err := st.wire.PrivateKeys.Clear(args[0]); err != nil {
				return err
			}
			return st.wire.Wallets.Remove(args[0])
		}),
	}
}

func walletsNextNameCmd(st *state) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "next-name",
		Short: "Print the lowest free indexed wallet name",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), st.wire.Wallets.GetLowestIndexedName(prefix))
			return nil
		}),
	}
	cmd.Flags().StringVar(&prefix, "prefix", "Wallet", "name prefix")
	return cmd
}
