package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func transactionsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Inspect cached transactions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list [domain...]",
		Short: "List cached transactions, optionally for the given domains",
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			for _, tx := range st.wire.Transactions.GetTransactions(args) {
				status := "pending"
				switch {
				case !tx.Pending && tx.Success:
					status = "success"
				case !tx.Pending:
					status = "failed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", tx.ID, tx.DomainName, tx.Operation, status)
			}
			return nil
		}),
	})
	return cmd
}
