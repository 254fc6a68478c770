package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"udwallet/internal/cache"
	"udwallet/internal/domain"
	"udwallet/internal/logging"
	"udwallet/internal/metrics"
	"udwallet/internal/store"
)

// Wire bundles every backend and cache for the CLI. Each cache exists once
// per Wire; its Registry rejects a second store over the same file or key.
type Wire struct {
	Files      *store.FileStorage
	Prefs      *store.LevelPreferences
	LocalVault *store.FileVault
	CloudVault *store.FileVault
	Registry   *store.Registry
	Metrics    *metrics.Metrics

	Wallets           *cache.WalletsStorage
	Domains           *cache.DomainsStorage
	Transactions      *cache.TransactionsStorage
	Signatures        *cache.SignaturesStorage
	Backups           *cache.WalletBackupStorage
	NFTs              *cache.KeyedStorage[domain.WalletNFTs]
	PFPs              *cache.KeyedStorage[domain.DomainPFPInfo]
	Balances          *cache.KeyedStorage[domain.WalletBalance]
	SortOrder         *cache.SortOrderStorage
	ReverseResolution *cache.ReverseResolutionStorage
	Minting           *cache.MintingDomainsStorage
	Password          *cache.PasswordStorage
	PrivateKeys       *cache.PrivateKeyStorage
	Passcode          *cache.PasscodeStorage
	InstallationID    *cache.InstallationIDStorage

	logger  *zap.Logger
	closers []func()
}

// NewWire constructs the dependency graph from cfg. reg may be nil, in which
// case no metrics are recorded. On error every backend opened so far is closed.
func NewWire(cfg *Config, logger *zap.Logger, reg prometheus.Registerer) (_ *Wire, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logging.OrNop(logger)
	w := &Wire{Registry: store.NewRegistry(), logger: logger.Named("app")}
	defer func() {
		if err != nil {
			w.Close()
		}
	}()

	if cfg.Metrics.Enabled && reg != nil {
		w.Metrics = metrics.New(reg)
	}
	w.Files = store.NewFileStorage(cfg.Directories(), logger, w.Metrics)

	// Secure backends
	if w.LocalVault, err = store.OpenFileVault(
		cfg.resolve(cfg.Vault.LocalDir), store.LocalVaultName, cfg.Vault.Passphrase, cfg.Vault.Scrypt, logger,
	); err != nil {
		return nil, fmt.Errorf("opening local vault: %w", err)
	}
	w.closers = append(w.closers, w.LocalVault.Close)
	if w.CloudVault, err = store.OpenFileVault(
		cfg.resolve(cfg.Vault.CloudDir), store.CloudVaultName, cfg.Vault.Passphrase, cfg.Vault.Scrypt, logger,
	); err != nil {
		return nil, fmt.Errorf("opening cloud vault: %w", err)
	}
	w.closers = append(w.closers, w.CloudVault.Close)

	// Preferences
	if w.Prefs, err = store.OpenLevelPreferences(cfg.resolve(cfg.Preferences.Path)); err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}
	w.closers = append(w.closers, func() {
		if err := w.Prefs.Close(); err != nil {
			w.logger.Warn("closing preferences failed", zap.Error(err))
		}
	})

	deps := cache.Deps{
		Files:      w.Files,
		Prefs:      w.Prefs,
		LocalVault: w.LocalVault,
		CloudVault: w.CloudVault,
		Registry:   w.Registry,
		Logger:     logger,
		Metrics:    w.Metrics,
	}
	if err := w.buildCaches(deps, cfg); err != nil {
		return nil, err
	}

	if cfg.Signatures.PurgeOnStart {
		if _, err := w.Signatures.RevokeExpired(); err != nil {
			w.logger.Warn("purging expired signatures failed", zap.Error(err))
		}
	}
	return w, nil
}

func (w *Wire) buildCaches(deps cache.Deps, cfg *Config) (err error) {
	// closer registers c.Close to run before the backends close.
	closer := func(c interface{ Close() }) { w.closers = append(w.closers, c.Close) }

	if w.Wallets, err = cache.NewWalletsStorage(deps); err != nil {
		return err
	}
	closer(w.Wallets)
	if w.Domains, err = cache.NewDomainsStorage(deps); err != nil {
		return err
	}
	closer(w.Domains)
	if w.Transactions, err = cache.NewTransactionsStorage(deps); err != nil {
		return err
	}
	closer(w.Transactions)
	if w.Signatures, err = cache.NewSignaturesStorage(deps); err != nil {
		return err
	}
	closer(w.Signatures)
	if w.Backups, err = cache.NewWalletBackupStorage(deps); err != nil {
		return err
	}
	closer(w.Backups)
	if w.NFTs, err = cache.NewNFTStorage(deps); err != nil {
		return err
	}
	closer(w.NFTs)
	if w.PFPs, err = cache.NewPFPStorage(deps); err != nil {
		return err
	}
	closer(w.PFPs)
	if w.Balances, err = cache.NewBalanceStorage(deps); err != nil {
		return err
	}
	closer(w.Balances)
	if w.SortOrder, err = cache.NewSortOrderStorage(deps); err != nil {
		return err
	}
	closer(w.SortOrder)
	if w.ReverseResolution, err = cache.NewReverseResolutionStorage(deps); err != nil {
		return err
	}
	closer(w.ReverseResolution)
	if w.Minting, err = cache.NewMintingDomainsStorage(deps); err != nil {
		return err
	}
	closer(w.Minting)
	if w.Password, err = cache.NewPasswordStorage(deps, cfg.Password.BcryptCost); err != nil {
		return err
	}
	closer(w.Password)
	if w.Passcode, err = cache.NewPasscodeStorage(deps); err != nil {
		return err
	}
	if w.InstallationID, err = cache.NewInstallationIDStorage(deps); err != nil {
		return err
	}
	w.PrivateKeys = cache.NewPrivateKeyStorage(deps)
	return nil
}

// RecordCacheSizes sets the cache entries gauge from the current contents of
// every collection cache. It is a no-op when metrics are disabled.
func (w *Wire) RecordCacheSizes() {
	if w.Metrics == nil {
		return
	}
	sizes := map[string]int{
		"wallets":            len(w.Wallets.GetWallets()),
		"domains":            len(w.Domains.GetStoredDomains()),
		"transactions":       len(w.Transactions.GetTransactions(nil)),
		"signatures":         len(w.Signatures.GetAll()),
		"backups":            len(w.Backups.GetWallets()),
		"nfts":               len(w.NFTs.GetAll()),
		"pfp":                len(w.PFPs.GetAll()),
		"balances":           len(w.Balances.GetAll()),
		"reverse_resolution": len(w.ReverseResolution.All()),
		"minting":            len(w.Minting.All()),
	}
	for name, n := range sizes {
		w.Metrics.SetCacheEntries(name, n)
	}
}

// Close stops every cache worker, then closes the backends. Safe to call once.
func (w *Wire) Close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i]()
	}
	w.closers = nil
}

// ClearAll resets the device: private keys of cached wallets are removed,
// then every cache and secure value is cleared concurrently. Evictable files
// in the caches directory are deleted last.
func (w *Wire) ClearAll(ctx context.Context) error {
	var errs []error
	for _, wallet := range w.Wallets.GetWallets() {
		if err := w.PrivateKeys.Clear(wallet.Address); err != nil {
			errs = append(errs, fmt.Errorf("clearing private key of %s: %w", wallet.Address, err))
		}
	}

	clearers := map[string]domain.Clearer{
		"wallets":            w.Wallets,
		"domains":            w.Domains,
		"transactions":       w.Transactions,
		"signatures":         w.Signatures,
		"backups":            w.Backups,
		"nfts":               w.NFTs,
		"pfps":               w.PFPs,
		"balances":           w.Balances,
		"sort_order":         w.SortOrder,
		"reverse_resolution": w.ReverseResolution,
		"minting":            w.Minting,
		"password":           w.Password,
		"passcode":           w.Passcode,
		"installation_id":    w.InstallationID,
	}
	// Every clear is attempted; Wait reports the first failure.
	var g errgroup.Group
	g.SetLimit(4)
	for name, c := range clearers {
		name, c := name, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("clearing %s: %w", name, err)
			}
			if err := c.Clear(); err != nil {
				w.logger.Error("clearing cache failed", zap.String("cache", name), zap.Error(err))
				return fmt.Errorf("clearing %s: %w", name, err)
			}
			return nil
		})
	}
	errs = append(errs, g.Wait())

	w.Files.Clear(store.Caches)
	return errors.Join(errs...)
}
