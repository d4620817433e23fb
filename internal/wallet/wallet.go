package wallet

import (
	"regexp"
	"time"

	emberr "github.com/emberwallet/ember/pkg/errors"
)

var (
	// ErrWalletNotFound indicates the wallet does not exist.
	ErrWalletNotFound = emberr.ErrWalletNotFound

	// ErrWalletExists indicates a wallet with that name already exists.
	ErrWalletExists = emberr.ErrWalletExists

	// ErrInvalidWalletName indicates the wallet name is invalid.
	ErrInvalidWalletName = emberr.WithSuggestion(emberr.ErrInvalidInput,
		"wallet name must be 1-64 alphanumeric characters, underscores, or hyphens")

	// walletNameRegex validates wallet names: alphanumeric + underscore + hyphen, 1-64 chars.
	walletNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// Account is one derived key-space slot of a wallet: the fixed-template
// derivation path, the canonical address, and the public key. Immutable
// once created.
type Account struct {
	// DerivationPath is the full path used, e.g. m/44'/784'/1'/0'/0'.
	DerivationPath string `json:"derivationPath"`

	// Address is the canonical 0x-prefixed hex address.
	Address string `json:"address"`

	// PublicKey is the 0x-prefixed hex public key.
	PublicKey string `json:"publicKey,omitempty"`
}

// Wallet holds the mnemonic and its discovered accounts. Accounts are
// ordered by derivation index; index 0 is always present. The mnemonic is
// never serialized in the clear.
type Wallet struct {
	// Name is the unique identifier for this wallet in local storage.
	Name string `json:"name"`

	// CreatedAt is the wallet creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Mnemonic is the BIP39 seed phrase. Held in memory only; persisted
	// exclusively through the encrypted wallet file.
	Mnemonic string `json:"-"`

	// Accounts are the derived accounts in derivation-index order.
	Accounts []Account `json:"accounts"`

	// Version is the wallet file format version.
	Version int `json:"version"`
}

// CurrentVersion is the wallet file format version written by this build.
const CurrentVersion = 1

// PrimaryAccount returns the account at derivation index 0.
func (w *Wallet) PrimaryAccount() *Account {
	if len(w.Accounts) == 0 {
		return nil
	}
	return &w.Accounts[0]
}

// Addresses returns the account addresses in derivation order.
func (w *Wallet) Addresses() []string {
	out := make([]string, len(w.Accounts))
	for i, a := range w.Accounts {
		out[i] = a.Address
	}
	return out
}

// ValidateWalletName checks if a wallet name is valid.
func ValidateWalletName(name string) error {
	if !walletNameRegex.MatchString(name) {
		return ErrInvalidWalletName
	}
	return nil
}

// NewWallet creates an in-memory wallet for a mnemonic with no accounts
// derived yet.
func NewWallet(name, mnemonic string) (*Wallet, error) {
	if err := ValidateWalletName(name); err != nil {
		return nil, err
	}
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}

	return &Wallet{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Mnemonic:  NormalizeMnemonicInput(mnemonic),
		Version:   CurrentVersion,
	}, nil
}
