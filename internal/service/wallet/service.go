// Package wallet provides wallet-level operations: bounded account
// discovery from a mnemonic and wallet/account creation.
package wallet

import (
	"context"
	"strconv"
	"time"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Service performs wallet discovery and creation against a provider.
type Service struct {
	provider    chain.Provider
	maxAccounts uint32
}

// NewService creates a wallet service. maxAccounts bounds discovery and
// creation; zero selects the platform default.
func NewService(provider chain.Provider, maxAccounts uint32) *Service {
	if maxAccounts == 0 {
		maxAccounts = chain.MaxAccounts
	}
	return &Service{provider: provider, maxAccounts: maxAccounts}
}

// ImportWallet derives accounts from a mnemonic sequentially, keeping the
// discovered prefix. Index 0 is always included; an index above 0 is
// included only when the provider reports at least one owned object, and
// iteration stops at the first index with none.
//
// Known limitation: accounts at higher indices past the first gap are not
// explored even if active. Callers rely on the bounded cost, so do not
// upgrade this to a gap-resistant scan.
func (s *Service) ImportWallet(ctx context.Context, mnemonic string) (*wallet.Wallet, error) {
	if err := wallet.ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}

	w := &wallet.Wallet{
		CreatedAt: time.Now().UTC(),
		Mnemonic:  wallet.NormalizeMnemonicInput(mnemonic),
		Version:   wallet.CurrentVersion,
	}

	for i := uint32(0); i < s.maxAccounts; i++ {
		account, err := wallet.DeriveAccount(w.Mnemonic, i)
		if err != nil {
			return nil, err
		}

		owned, err := s.provider.GetObjectsOwnedByAddress(ctx, account.Address)
		if err != nil {
			return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err,
				"checking activity for account %d", i)
		}

		if len(owned) == 0 && i > 0 {
			break
		}
		w.Accounts = append(w.Accounts, *account)
	}

	return w, nil
}

// CreateWallet generates a fresh 12-word mnemonic when none is supplied
// and derives exactly the index-0 account, regardless of on-chain state.
func (s *Service) CreateWallet(_ context.Context, mnemonic string) (*wallet.Wallet, error) {
	if mnemonic == "" {
		generated, err := wallet.GenerateMnemonic(12)
		if err != nil {
			return nil, err
		}
		mnemonic = generated
	} else if err := wallet.ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}

	account, err := s.CreateAccount(mnemonic, 0)
	if err != nil {
		return nil, err
	}

	return &wallet.Wallet{
		CreatedAt: time.Now().UTC(),
		Mnemonic:  wallet.NormalizeMnemonicInput(mnemonic),
		Accounts:  []wallet.Account{*account},
		Version:   wallet.CurrentVersion,
	}, nil
}

// CreateAccount derives the account at the given index, enforcing the
// account bound.
func (s *Service) CreateAccount(mnemonic string, index uint32) (*wallet.Account, error) {
	if index >= s.maxAccounts {
		return nil, emberr.WithDetails(emberr.ErrMaxAccountsExceeded, map[string]string{
			"index": strconv.FormatUint(uint64(index), 10),
			"max":   strconv.FormatUint(uint64(s.maxAccounts), 10),
		})
	}
	return wallet.DeriveAccount(mnemonic, index)
}
