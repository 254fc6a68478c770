package store_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

// blockRoot replaces the directory at root with a regular file so that
// creating or writing inside it fails. The returned func restores it.
func blockRoot(t *testing.T, root string) (restore func()) {
	t.Helper()
	aside := root + ".aside"
	if _, err := os.Stat(root); err == nil {
		require.NoError(t, os.Rename(root, aside))
	}
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), 0o600))
	return func() {
		require.NoError(t, os.Remove(root))
		if _, err := os.Stat(aside); err == nil {
			require.NoError(t, os.Rename(aside, root))
		}
	}
}

func TestFileStorage_Store_WriteFailure(t *testing.T) {
	fs, docs := newFiles(t)
	blockRoot(t, docs)

	err := fs.Store([]domain.Domain{{Name: "a.x"}}, store.Documents, "domains.data")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrWriteFailed)
	assert.False(t, fs.FileExists("domains.data", store.Documents))
}

func TestFileStorage_Store_FailureKeepsPreviousContents(t *testing.T) {
	fs, docs := newFiles(t)
	before := []domain.Domain{{Name: "kept.x"}}
	require.NoError(t, fs.Store(before, store.Documents, "domains.data"))

	restore := blockRoot(t, docs)
	err := fs.Store([]domain.Domain{{Name: "lost.x"}}, store.Documents, "domains.data")
	assert.ErrorIs(t, err, store.ErrWriteFailed)
	restore()

	got, err := store.Retrieve[[]domain.Domain](fs, "domains.data", store.Documents)
	require.NoError(t, err)
	assert.Equal(t, before, got)
}

func TestSpecificStorage_Store_EncodeFailureKeepsPreviousValue(t *testing.T) {
	fs, _ := newFiles(t)
	s, err := store.NewSpecificStorage[[]float64](fs, nil, store.Documents, "numbers.data")
	require.NoError(t, err)

	require.NoError(t, s.Store([]float64{1, 2}))
	err = s.Store([]float64{math.NaN()})
	assert.ErrorIs(t, err, store.ErrEncodeFailed)

	got, ok := s.Retrieve()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, got)
}

func TestSpecificStorage_Store_WriteFailure(t *testing.T) {
	docs := filepath.Join(t.TempDir(), "Documents")
	fs := store.NewFileStorage(map[store.Directory]string{store.Documents: docs}, zaptest.NewLogger(t), nil)
	s, err := store.NewSpecificStorage[[]domain.Wallet](fs, nil, store.Documents, "wallets.data")
	require.NoError(t, err)
	blockRoot(t, docs)

	assert.ErrorIs(t, s.Store([]domain.Wallet{{Address: "0x1"}}), store.ErrWriteFailed)
	_, ok := s.Retrieve()
	assert.False(t, ok)
}
