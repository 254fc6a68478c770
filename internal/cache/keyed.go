package cache

import (
	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const (
	nftsFileName     = "wallet-nfts.data"
	pfpFileName      = "domains-pfp.data"
	balancesFileName = "wallets-balance.data"
)

// KeyedStorage is a file cache holding at most one record per key.
type KeyedStorage[T any] struct {
	*fileCache[T]
	key  func(T) string
	norm func(string) string
}

func newKeyedStorage[T any](
	deps Deps,
	name string,
	dir store.Directory,
	fileName string,
	key func(T) string,
	norm func(string) string,
) (*KeyedStorage[T], error) {
	c, err := newFileCache[T](deps, name, dir, fileName)
	if err != nil {
		return nil, err
	}
	return &KeyedStorage[T]{fileCache: c, key: key, norm: norm}, nil
}

// NewNFTStorage caches NFTs per wallet.
func NewNFTStorage(deps Deps) (*KeyedStorage[domain.WalletNFTs], error) {
	return newKeyedStorage(deps, "nfts", store.Documents, nftsFileName,
		func(v domain.WalletNFTs) string { return domain.NormalizeAddress(v.Wallet) },
		domain.NormalizeAddress)
}

// NewPFPStorage caches domain profile pictures. It lives in the caches
// directory and may be evicted at any time.
func NewPFPStorage(deps Deps) (*KeyedStorage[domain.DomainPFPInfo], error) {
	return newKeyedStorage(deps, "pfp", store.Caches, pfpFileName,
		func(v domain.DomainPFPInfo) string { return domain.NormalizeDomainName(v.Domain) },
		domain.NormalizeDomainName)
}

// NewBalanceStorage caches wallet portfolios.
func NewBalanceStorage(deps Deps) (*KeyedStorage[domain.WalletBalance], error) {
	return newKeyedStorage(deps, "balances", store.Caches, balancesFileName,
		func(v domain.WalletBalance) string { return domain.NormalizeAddress(v.Wallet) },
		domain.NormalizeAddress)
}

// Get returns the record stored under key.
func (s *KeyedStorage[T]) Get(key string) (T, bool) {
	key = s.norm(key)
	for _, v := range s.snapshot() {
		if s.key(v) == key {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// GetAll returns every cached record.
func (s *KeyedStorage[T]) GetAll() []T { return s.snapshot() }

// Upsert replaces the records sharing a key with values and appends the rest.
func (s *KeyedStorage[T]) Upsert(values ...T) error {
	incoming := append([]T{}, values...)
	return s.mutate(func(cur []T) ([]T, error) {
		idx := make(map[string]int, len(cur))
		for i, v := range cur {
			idx[s.key(v)] = i
		}
		for _, v := range incoming {
			k := s.key(v)
			if i, ok := idx[k]; ok {
				cur[i] = v
				continue
			}
			idx[k] = len(cur)
			cur = append(cur, v)
		}
		return cur, nil
	})
}

// ReplaceAll overwrites the cache with values.
func (s *KeyedStorage[T]) ReplaceAll(values []T) error {
	next := append([]T{}, values...)
	return s.mutate(func([]T) ([]T, error) { return next, nil })
}

// Remove drops the records stored under keys.
func (s *KeyedStorage[T]) Remove(keys ...string) error {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[s.norm(k)] = struct{}{}
	}
	return s.mutate(func(cur []T) ([]T, error) {
		out := cur[:0]
		for _, v := range cur {
			if _, ok := drop[s.key(v)]; !ok {
				out = append(out, v)
			}
		}
		return out, nil
	})
}
