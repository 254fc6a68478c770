package types

import "time"

// MintingDomain is a domain waiting for its mint transaction to settle.
type MintingDomain struct {
	Name            string `json:"name"`
	WalletAddress   string `json:"walletAddress"`
	TransactionHash string `json:"transactionHash,omitempty"`
	IsPrimary       bool   `json:"isPrimary,omitempty"`
}

// SortOrderInfo is the user's preferred domain order for one wallet.
type SortOrderInfo struct {
	WalletAddress string   `json:"walletAddress"`
	DomainNames   []string `json:"domainNames"`
}

// ReverseResolutionInfo records a pending or confirmed reverse-resolution
// assignment of a wallet to a domain.
type ReverseResolutionInfo struct {
	WalletAddress   string    `json:"walletAddress"`
	Domain          string    `json:"domain"`
	TransactionHash string    `json:"transactionHash,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BackedUpWallet is a cloud backup record of an encrypted wallet secret.
type BackedUpWallet struct {
	Address         string     `json:"address"`
	Type            WalletType `json:"type"`
	EncryptedSecret string     `json:"encryptedSecret"`
	PasswordHash    string     `json:"passwordHash"`
	DateTime        time.Time  `json:"dateTime"`
}
