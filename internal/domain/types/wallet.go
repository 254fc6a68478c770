package types

import "time"

// WalletType records how a wallet came to exist on this device.
type WalletType string

const (
	WalletGeneratedLocally     WalletType = "generatedLocally"
	WalletImportedBySeed       WalletType = "importedBySeed"
	WalletImportedByPrivateKey WalletType = "importedByPrivateKey"
	WalletExternal             WalletType = "external"
)

// DuplicatePreference ranks wallet types when two records share an address.
// Lower wins; unknown types rank last and fall back to first-found order.
func (t WalletType) DuplicatePreference() int {
	switch t {
	case WalletGeneratedLocally:
		return 0
	case WalletImportedBySeed:
		return 1
	case WalletImportedByPrivateKey:
		return 2
	default:
		return 3
	}
}

// Wallet is a cached wallet record. Address is the dedupe key once normalized.
type Wallet struct {
	Address   string     `json:"address"`
	Name      string     `json:"name"`
	Type      WalletType `json:"type"`
	CreatedAt time.Time  `json:"createdAt"`
	BackedUp  bool       `json:"backedUp,omitempty"`
}

// NormalizedAddress returns the canonical lookup key of the wallet.
func (w Wallet) NormalizedAddress() string { return NormalizeAddress(w.Address) }
