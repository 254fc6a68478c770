package interfaces

import (
	"context"

	domaintypes "udwallet/internal/domain/types"
)

// WalletStore caches the wallets known to this device.
type WalletStore interface {
	GetWallets() []domaintypes.Wallet
	Wallet(address string) (domaintypes.Wallet, bool)
	Add(wallet domaintypes.Wallet) error
	Remove(address string) error
	Rename(address, name string) error
	Replace(address string, wallet domaintypes.Wallet) error
	Set(wallets []domaintypes.Wallet) error
	GetLowestIndexedName(prefix string) string
}

// DomainStore caches domains owned by the user's wallets.
type DomainStore interface {
	GetStoredDomains() []domaintypes.Domain
	Domain(name string) (domaintypes.Domain, bool)
	StoreDomains(domains []domaintypes.Domain) error
	UpdateDomainsToCache(
		fetched []domaintypes.Domain,
		wallets []domaintypes.Wallet,
		service domaintypes.NamingService,
	) error
	UpdateDomain(domain domaintypes.Domain) error
	RemoveDomains(names []string) error
}

// TransactionStore caches domain transactions keyed by id.
type TransactionStore interface {
	GetTransactions(domainNames []string) []domaintypes.Transaction
	InjectTransactions(transactions []domaintypes.Transaction) error
	ReplaceTransactions(transactions []domaintypes.Transaction) error
}

// SignatureStore keeps timed profile signatures.
type SignatureStore interface {
	Save(signature domaintypes.TimedSignature) error
	GetUserDomainProfileSignature(domain string) (domaintypes.TimedSignature, error)
	RevokeExpired() (int, error)
	Revoke(domain string) error
}

// MintingDomainStore tracks domains waiting for their mint to settle.
type MintingDomainStore interface {
	GetMintingDomains(walletAddress string) []domaintypes.MintingDomain
	Add(ctx context.Context, domains []domaintypes.MintingDomain) error
	Remove(ctx context.Context, names []string) error
}

// Clearer is implemented by every cache that can be reset to empty.
type Clearer interface {
	Clear() error
}
