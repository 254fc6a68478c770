package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"udwallet/internal/app"
	"udwallet/internal/logging"
)

// state is shared by the root command and its subcommands.
type state struct {
	home       string
	configPath string
	passphrase string
	logLevel   string

	logger  *zap.Logger
	wire    *app.Wire
	metrics *prometheus.Registry // nil when metrics are disabled
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:          "udwallet",
		Short:        "Inspect and maintain the local wallet and domain caches",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.open()
		},
	}

	root.PersistentFlags().StringVar(&st.home, "home", "", "data dir (default ~/.udwallet)")
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVarP(&st.passphrase, "passphrase", "p", "", "passphrase protecting the vaults")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		walletsCmd(st),
		domainsCmd(st),
		transactionsCmd(st),
		signaturesCmd(st),
		mintingCmd(st),
		cacheCmd(st),
	)
	return root
}

func (st *state) open() error {
	if st.home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		st.home = filepath.Join(dir, ".udwallet")
	}
	if err := os.MkdirAll(st.home, 0o700); err != nil {
		return err
	}

	cfg := app.DefaultConfig(st.home)
	if st.configPath != "" {
		var err error
		if cfg, err = app.LoadConfig(st.configPath, st.home); err != nil {
			return err
		}
	}
	if st.passphrase != "" {
		cfg.Vault.Passphrase = st.passphrase
	}
	if st.logLevel != "" {
		cfg.Logging.Level = st.logLevel
	}
	if cfg.Vault.Passphrase == "" {
		return fmt.Errorf("passphrase required (-p or UDWALLET_PASSPHRASE)")
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	st.logger = logger

	var reg prometheus.Registerer
	if cfg.Metrics.Enabled {
		st.metrics = prometheus.NewRegistry()
		reg = st.metrics
	}
	if st.wire, err = app.NewWire(cfg, logger, reg); err != nil {
		return err
	}
	return nil
}

// run wraps a subcommand body so the graph is closed even when it fails.
func (st *state) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer st.close()
		return fn(cmd, args)
	}
}

func (st *state) close() {
	if st.wire != nil {
		st.wire.Close()
		st.wire = nil
	}
	if st.logger != nil {
		_ = st.logger.Sync()
	}
}
