package types

import "time"

// NFT is a single collectible owned by a wallet.
type NFT struct {
	TokenID         string `json:"tokenId"`
	Name            string `json:"name,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	Chain           string `json:"chain,omitempty"`
	ContractAddress string `json:"contractAddress,omitempty"`
}

// WalletNFTs is the NFT list cached per wallet.
type WalletNFTs struct {
	Wallet    string    `json:"wallet"`
	NFTs      []NFT     `json:"nfts"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DomainPFPInfo describes the profile picture attached to a domain.
type DomainPFPInfo struct {
	Domain    string `json:"domain"`
	Source    string `json:"source"`
	ImageURL  string `json:"imageUrl,omitempty"`
	IsNFT     bool   `json:"isNft,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// TokenBalance is one token line of a wallet portfolio. Amounts are opaque
// display strings.
type TokenBalance struct {
	Symbol   string `json:"symbol"`
	Chain    string `json:"chain,omitempty"`
	Balance  string `json:"balance"`
	USDValue string `json:"usdValue,omitempty"`
}

// WalletBalance is the cached portfolio of a wallet.
type WalletBalance struct {
	Wallet    string         `json:"wallet"`
	Tokens    []TokenBalance `json:"tokens"`
	TotalUSD  string         `json:"totalUsd,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
