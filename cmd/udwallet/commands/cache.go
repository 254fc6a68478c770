package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func cacheCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the local caches",
	}
	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached record, private key and secure value",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			if err := st.wire.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		}),
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	cmd.AddCommand(clearCmd, cacheStatsCmd(st))
	return cmd
}

// stats: print the store metrics gathered while loading every cache.
func cacheStatsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print cache sizes and store counters (requires metrics.enabled)",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			if st.metrics == nil {
				return fmt.Errorf("metrics are disabled; set metrics.enabled in the config")
			}
			st.wire.RecordCacheSizes()
			families, err := st.metrics.Gather()
			if err != nil {
				return fmt.Errorf("gathering metrics: %w", err)
			}
			var lines []string
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					labels := make([]string, 0, len(m.GetLabel()))
					for _, l := range m.GetLabel() {
						labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
					}
					value := m.GetCounter().GetValue()
					if m.GetGauge() != nil {
						value = m.GetGauge().GetValue()
					}
					lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), value))
				}
			}
			sort.Strings(lines)
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		}),
	}
}
