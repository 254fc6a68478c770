package domain

import (
	interfaces "udwallet/internal/domain/interfaces"
	types "udwallet/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Wallet                = types.Wallet
	WalletType            = types.WalletType
	Domain                = types.Domain
	DomainState           = types.DomainState
	NamingService         = types.NamingService
	Transaction           = types.Transaction
	TimedSignature        = types.TimedSignature
	NFT                   = types.NFT
	WalletNFTs            = types.WalletNFTs
	DomainPFPInfo         = types.DomainPFPInfo
	TokenBalance          = types.TokenBalance
	WalletBalance         = types.WalletBalance
	MintingDomain         = types.MintingDomain
	SortOrderInfo         = types.SortOrderInfo
	ReverseResolutionInfo = types.ReverseResolutionInfo
	BackedUpWallet        = types.BackedUpWallet
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	WalletStore        = interfaces.WalletStore
	DomainStore        = interfaces.DomainStore
	TransactionStore   = interfaces.TransactionStore
	SignatureStore     = interfaces.SignatureStore
	MintingDomainStore = interfaces.MintingDomainStore
	Clearer            = interfaces.Clearer
)

const (
	WalletGeneratedLocally     = types.WalletGeneratedLocally
	WalletImportedBySeed       = types.WalletImportedBySeed
	WalletImportedByPrivateKey = types.WalletImportedByPrivateKey
	WalletExternal             = types.WalletExternal

	DomainStateDefault  = types.DomainStateDefault
	DomainStateMinting  = types.DomainStateMinting
	DomainStateClaiming = types.DomainStateClaiming
	DomainStateTransfer = types.DomainStateTransfer

	NamingServiceUD  = types.NamingServiceUD
	NamingServiceENS = types.NamingServiceENS
)

// NormalizeAddress is re-exported for callers that only import domain.
func NormalizeAddress(address string) string { return types.NormalizeAddress(address) }

// NormalizeDomainName is re-exported for callers that only import domain.
func NormalizeDomainName(name string) string { return types.NormalizeDomainName(name) }

// ChecksumAddress is re-exported for callers that only import domain.
func ChecksumAddress(address string) string { return types.ChecksumAddress(address) }
