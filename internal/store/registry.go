package store

import (
	"fmt"
	"sort"
	"sync"
)

// Registry records which backing names are owned by a store instance. Two
// stores configured with the same file, vault key or preference key would
// silently overwrite each other, so the second Claim fails instead.
//
// A nil *Registry accepts every claim.
type Registry struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{claimed: make(map[string]struct{})}
}

// Claim reserves name within namespace.
func (r *Registry) Claim(namespace, name string) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := namespace + ":" + name
	if _, ok := r.claimed[key]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, key)
	}
	r.claimed[key] = struct{}{}
	return nil
}

// Release frees a previous claim.
func (r *Registry) Release(namespace, name string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.claimed, namespace+":"+name)
}

// Claimed returns the sorted list of claimed keys.
func (r *Registry) Claimed() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.claimed))
	for k := range r.claimed {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func fileNamespace(dir Directory) string { return "file:" + dir.String() }

func vaultNamespace(v Vault) string { return "vault:" + v.Name() }

const prefsNamespace = "prefs"

// ClaimPreference claims a raw preference key for a caller that reads and
// writes it without a PreferencesStorage.
func (r *Registry) ClaimPreference(key string) error { return r.Claim(prefsNamespace, key) }

// ClaimVaultKey claims key in vault for a caller that reads and writes it
// without a SecurePersistedStorage.
func (r *Registry) ClaimVaultKey(v Vault, key string) error { return r.Claim(vaultNamespace(v), key) }
