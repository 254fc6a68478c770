package types

// Transaction is a cached on-chain transaction touching one of the user's domains.
type Transaction struct {
	ID         string `json:"id"`
	Hash       string `json:"hash,omitempty"`
	DomainName string `json:"domainName,omitempty"`
	Operation  string `json:"operation,omitempty"`
	Pending    bool   `json:"pending"`
	Success    bool   `json:"success"`
}

// Merge combines the cached record with an incoming one for the same id.
//
// Locally known fields are kept when the incoming record omits them. A
// transaction that either side reports as settled stays settled, so merging
// the same incoming record twice gives the same result as merging it once.
func (t Transaction) Merge(incoming Transaction) Transaction {
	out := t
	if incoming.Hash != "" {
		out.Hash = incoming.Hash
	}
	if out.DomainName == "" {
		out.DomainName = incoming.DomainName
	}
	if out.Operation == "" {
		out.Operation = incoming.Operation
	}
	out.Pending = t.Pending && incoming.Pending
	out.Success = t.Success || incoming.Success
	return out
}
