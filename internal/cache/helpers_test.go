package cache_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"udwallet/internal/cache"
	"udwallet/internal/metrics"
	"udwallet/internal/store"
)

const (
	addrA = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	addrB = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

func newDeps(t *testing.T) cache.Deps {
	t.Helper()
	logger := zaptest.NewLogger(t)
	m := metrics.New(prometheus.NewRegistry())
	prefs, err := store.OpenMemoryPreferences()
	require.NoError(t, err)
	t.Cleanup(func() { _ = prefs.Close() })

	return cache.Deps{
		Files: store.NewFileStorage(map[store.Directory]string{
			store.Documents: t.TempDir(),
			store.Caches:    t.TempDir(),
		}, logger, m),
		Prefs:      prefs,
		LocalVault: store.NewMemoryVault(store.LocalVaultName, logger),
		CloudVault: store.NewMemoryVault(store.CloudVaultName, logger),
		Registry:   store.NewRegistry(),
		Logger:     logger,
		Metrics:    m,
	}
}
