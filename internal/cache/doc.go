// Package cache implements the domain-specific caches of the wallet app.
//
// Each cache owns exactly one backing file, vault key or preference key and
// one worker; read-modify-write operations run on that worker so they never
// interleave. Getters return synchronous snapshots. Caches never talk to the
// network: services read a snapshot, fetch, and call back in to merge.
//
// File-backed: WalletsStorage, DomainsStorage, TransactionsStorage and the
// KeyedStorage caches (NFTs, PFPs, balances). Vault-backed: SignaturesStorage,
// WalletBackupStorage, PrivateKeyStorage, PasscodeStorage,
// InstallationIDStorage. Preference-backed: SortOrderStorage,
// ReverseResolutionStorage, MintingDomainsStorage, PasswordStorage.
package cache
