package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"udwallet/internal/cache"
)

func signaturesCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "Inspect persisted profile signatures",
	}
	cmd.AddCommand(signaturesCheckCmd(st), signaturesPurgeCmd(st))
	return cmd
}

// check <domain>: report whether a usable profile signature exists.
func signaturesCheckCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "check <domain>",
		Short: "Report the usable profile signature of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			sig, err := st.wire.Signatures.GetUserDomainProfileSignature(args[0])
			switch {
			case errors.Is(err, cache.ErrSignatureFoundOnlyExpired):
				fmt.Fprintln(cmd.OutOrStdout(), "expired")
				return nil
			case errors.Is(err, cache.ErrSignatureNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid until %s\n", sig.Expires.UTC().Format(time.RFC3339))
			return nil
		}),
	}
}

func signaturesPurgeCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Revoke every expired signature",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			n, err := st.wire.Signatures.RevokeExpired()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked %d signature(s)\n", n)
			return nil
		}),
	}
}
