package types

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/text/unicode/norm"
)

// NormalizeAddress returns the canonical lookup form of a wallet address.
//
// Hex (EVM) addresses are parsed and lower-cased so that checksummed and
// plain spellings collapse to one key. Anything else is trimmed and lower-cased.
func NormalizeAddress(address string) string {
	trimmed := strings.TrimSpace(address)
	if common.IsHexAddress(trimmed) {
		return strings.ToLower(common.HexToAddress(trimmed).Hex())
	}
	return strings.ToLower(trimmed)
}

// ChecksumAddress returns the EIP-55 form of a hex address, or the input
// unchanged when it is not a hex address.
func ChecksumAddress(address string) string {
	trimmed := strings.TrimSpace(address)
	if !common.IsHexAddress(trimmed) {
		return trimmed
	}
	return common.HexToAddress(trimmed).Hex()
}

// SameAddress reports whether two addresses normalize to the same key.
func SameAddress(a, b string) bool {
	return NormalizeAddress(a) == NormalizeAddress(b)
}

// NormalizeDomainName returns the NFKC, lower-cased form of a domain name.
func NormalizeDomainName(name string) string {
	return norm.NFKC.String(strings.ToLower(strings.TrimSpace(name)))
}
