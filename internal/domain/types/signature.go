package types

import "time"

// TimedSignature is a persisted message signature used to authorize profile
// requests for a domain until it expires.
type TimedSignature struct {
	Domain    string    `json:"domain"`
	Signature string    `json:"sign"`
	Expires   time.Time `json:"expires"`
	SignedAt  time.Time `json:"timestamp"`
}

// IsExpired reports whether the signature is no longer usable at now.
func (s TimedSignature) IsExpired(now time.Time) bool {
	return !now.Before(s.Expires)
}
