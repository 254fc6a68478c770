// Package store provides the generic persistence engines behind every cache.
//
// Values are serialised as JSON and always rewritten whole: a mutation reads
// the current container, changes it in memory and replaces the backing value
// in one write (temp file + rename on disk). Mutations of one store instance
// are funnelled through that instance's Worker, so they are totally ordered;
// different instances are not ordered relative to each other. Snapshot reads
// may run on any goroutine.
//
// The package includes:
//   - FileStorage, the file persistence primitive (Documents / Caches dirs)
//   - SpecificStorage, a typed wrapper bound to one file
//   - Vault, the secure keyed-value backend (FileVault, MemoryVault)
//   - SecurePersistedStorage, a schema-versioned collection kept in a Vault
//   - Preferences and PreferencesStorage, the lightweight preference store
//   - Registry, which rejects two stores claiming the same file, key or preference
package store
