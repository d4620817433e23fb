// Package chain provides the core on-chain data types, platform constants,
// and the capability interfaces the wallet engine is built against.
package chain

import "strings"

// Platform constants for the devnet object model.
const (
	// NativeCoinType is the platform's base fungible token, used for both
	// payments and transaction fees.
	NativeCoinType = "0x2::sui::SUI"

	// CoinObjectTypePrefix marks fungible coin wrapper objects.
	CoinObjectTypePrefix = "0x2::coin::Coin<"

	// DevnetNFTType is the native asset-wrapper object type.
	DevnetNFTType = "0x2::devnet_nft::DevNetNFT"

	// MintNFTEventType is the native asset-mint event type.
	MintNFTEventType = "0x2::devnet_nft::MintNFTEvent"

	// AirdropSender is the known faucet address. Receives from this
	// address are labeled as airdrops in history.
	AirdropSender = "0xc4173a804406a365e69dfb297d4eaaf002546ebd"

	// BIP44CoinType is the registered coin type for derivation paths.
	BIP44CoinType = 784

	// MaxAccounts bounds sequential account discovery and creation.
	MaxAccounts = 20

	// DefaultGasBudget is the fee allowance for coin transfers.
	DefaultGasBudget uint64 = 1000

	// DefaultNFTGasBudget is the fee allowance for NFT mint and transfer.
	DefaultNFTGasBudget uint64 = 10000
)

// Balance-change types reported by the node.
const (
	ChangeTypeGas     = "Gas"
	ChangeTypePay     = "Pay"
	ChangeTypeReceive = "Receive"
)

// Object existence statuses.
const (
	ObjectStatusExists    = "Exists"
	ObjectStatusNotExists = "NotExists"
	ObjectStatusDeleted   = "Deleted"
)

// ExecutionStatusSuccess marks a successfully executed transaction.
const ExecutionStatusSuccess = "success"

// CoinSymbol extracts the display symbol from a coin type argument,
// e.g. "0x2::sui::SUI" -> "SUI". Returns the input unchanged when it has
// no module path.
func CoinSymbol(coinType string) string {
	parts := strings.Split(coinType, "::")
	if len(parts) < 3 {
		return coinType
	}
	return parts[len(parts)-1]
}

// IsCoinObjectType reports whether an object type string is a fungible
// coin wrapper.
func IsCoinObjectType(objectType string) bool {
	return strings.HasPrefix(objectType, CoinObjectTypePrefix)
}
