package types

// DomainState is the lifecycle state of a cached domain.
type DomainState string

const (
	DomainStateDefault  DomainState = "default"
	DomainStateMinting  DomainState = "minting"
	DomainStateClaiming DomainState = "claiming"
	DomainStateTransfer DomainState = "transfer"
)

// NamingService tags which resolution service a domain belongs to.
type NamingService string

const (
	NamingServiceUD  NamingService = "UD"
	NamingServiceENS NamingService = "ENS"
)

// Domain is a cached domain record, unique by normalized name.
type Domain struct {
	Name           string        `json:"name"`
	OwnerWallet    string        `json:"ownerWallet,omitempty"`
	NamingService  NamingService `json:"namingService"`
	BlockchainType string        `json:"blockchainType,omitempty"`
	State          DomainState   `json:"state,omitempty"`
	TransactionID  string        `json:"transactionId,omitempty"`
	ReverseFor     string        `json:"reverseFor,omitempty"`
	PFPSource      string        `json:"pfpSource,omitempty"`
	Order          *int          `json:"order,omitempty"`
}

// Key returns the normalized name used for lookups.
func (d Domain) Key() string { return NormalizeDomainName(d.Name) }

// IsClaiming reports whether the domain is mid-claim and must survive pruning.
func (d Domain) IsClaiming() bool { return d.State == DomainStateClaiming }

// IsOwnedBy reports whether the domain's owner is one of addresses
// (a set of normalized addresses).
func (d Domain) IsOwnedBy(addresses map[string]struct{}) bool {
	_, ok := addresses[NormalizeAddress(d.OwnerWallet)]
	return ok
}

// Merge folds freshly fetched data into the cached record.
//
// Fetched fields win when present. Fields a fetch does not carry (local
// state, display order, pfp source) keep the cached value.
func (d Domain) Merge(fetched Domain) Domain {
	out := d
	if fetched.OwnerWallet != "" {
		out.OwnerWallet = fetched.OwnerWallet
	}
	if fetched.NamingService != "" {
		out.NamingService = fetched.NamingService
	}
	if fetched.BlockchainType != "" {
		out.BlockchainType = fetched.BlockchainType
	}
	if fetched.State != "" {
		out.State = fetched.State
	}
	if fetched.TransactionID != "" {
		out.TransactionID = fetched.TransactionID
	}
	out.ReverseFor = fetched.ReverseFor
	if fetched.PFPSource != "" {
		out.PFPSource = fetched.PFPSource
	}
	if fetched.Order != nil {
		out.Order = fetched.Order
	}
	return out
}
