package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"udwallet/internal/cache"
	"udwallet/internal/domain"
	"udwallet/internal/store"
)

func TestDomainsStorage_StoreDomains_WriteFailure(t *testing.T) {
	deps := newDeps(t)
	docs := filepath.Join(t.TempDir(), "Documents")
	deps.Files = store.NewFileStorage(map[store.Directory]string{store.Documents: docs}, zaptest.NewLogger(t), deps.Metrics)
	s := newDomains(t, deps)

	before := []domain.Domain{{Name: "kept.x", OwnerWallet: addrA}}
	require.NoError(t, s.StoreDomains(before))

	// Swap the documents root for a regular file so the next write cannot land.
	aside := docs + ".aside"
	require.NoError(t, os.Rename(docs, aside))
	require.NoError(t, os.WriteFile(docs, []byte("x"), 0o600))

	err := s.StoreDomains([]domain.Domain{{Name: "lost.x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrWritingFailed)
	assert.ErrorIs(t, err, store.ErrWriteFailed)

	err = s.UpdateDomain(domain.Domain{Name: "lost.x"})
	assert.ErrorIs(t, err, store.ErrWriteFailed)
	assert.NotErrorIs(t, err, cache.ErrWritingFailed)

	require.NoError(t, os.Remove(docs))
	require.NoError(t, os.Rename(aside, docs))
	assert.Equal(t, []string{"kept.x"}, domainNames(s.GetStoredDomains()))
}
