package wallet_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/chain/chaintest"
	walletsvc "github.com/emberwallet/ember/internal/service/wallet"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// addressAt derives the address for an account index of the test mnemonic.
func addressAt(t *testing.T, index uint32) string {
	t.Helper()
	acct, err := wallet.DeriveAccount(testMnemonic, index)
	require.NoError(t, err)
	return acct.Address
}

func markActive(provider *chaintest.Provider, address string) {
	if provider.OwnedByAddress == nil {
		provider.OwnedByAddress = make(map[string][]chain.ObjectInfo)
	}
	provider.OwnedByAddress[address] = []chain.ObjectInfo{{ObjectID: "0xobj", Type: "0x2::coin::Coin<0x2::sui::SUI>"}}
}

func TestImportWalletStopsAtFirstGap(t *testing.T) {
	t.Parallel()
	provider := &chaintest.Provider{}
	// Activity at indices 0, 1, 2 and independently at 4: the gap at 3
	// ends discovery, so index 4 stays invisible.
	markActive(provider, addressAt(t, 0))
	markActive(provider, addressAt(t, 1))
	markActive(provider, addressAt(t, 2))
	markActive(provider, addressAt(t, 4))

	svc := walletsvc.NewService(provider, 0)
	w, err := svc.ImportWallet(context.Background(), testMnemonic)
	require.NoError(t, err)

	require.Len(t, w.Accounts, 3)
	for i, acct := range w.Accounts {
		assert.Equal(t, addressAt(t, uint32(i)), acct.Address)
	}
}

func TestImportWalletIndexZeroAlwaysPresent(t *testing.T) {
	t.Parallel()
	provider := &chaintest.Provider{}
	svc := walletsvc.NewService(provider, 0)

	w, err := svc.ImportWallet(context.Background(), testMnemonic)
	require.NoError(t, err)

	// No on-chain activity at all: index 0 is still included.
	require.Len(t, w.Accounts, 1)
	assert.Equal(t, "m/44'/784'/0'/0'/0'", w.Accounts[0].DerivationPath)
	// Probes index 0, then index 1 which is empty and stops.
	assert.Equal(t, 2, provider.Calls("GetObjectsOwnedByAddress"))
}

func TestImportWalletBoundedByMaxAccounts(t *testing.T) {
	t.Parallel()
	provider := &chaintest.Provider{}
	for i := uint32(0); i < 10; i++ {
		markActive(provider, addressAt(t, i))
	}

	svc := walletsvc.NewService(provider, 5)
	w, err := svc.ImportWallet(context.Background(), testMnemonic)
	require.NoError(t, err)
	assert.Len(t, w.Accounts, 5)
}

func TestImportWalletInvalidMnemonic(t *testing.T) {
	t.Parallel()
	svc := walletsvc.NewService(&chaintest.Provider{}, 0)
	_, err := svc.ImportWallet(context.Background(), "not a mnemonic")
	require.ErrorIs(t, err, emberr.ErrInvalidMnemonic)
}

func TestImportWalletProviderFailure(t *testing.T) {
	t.Parallel()
	provider := &chaintest.Provider{}
	provider.SetError("GetObjectsOwnedByAddress", emberr.ErrRemoteQueryFailed)

	svc := walletsvc.NewService(provider, 0)
	_, err := svc.ImportWallet(context.Background(), testMnemonic)
	require.ErrorIs(t, err, emberr.ErrRemoteQueryFailed)
}

func TestCreateWalletGeneratesMnemonic(t *testing.T) {
	t.Parallel()
	svc := walletsvc.NewService(&chaintest.Provider{}, 0)

	w, err := svc.CreateWallet(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(w.Mnemonic), 12)
	require.Len(t, w.Accounts, 1)
	assert.Equal(t, "m/44'/784'/0'/0'/0'", w.Accounts[0].DerivationPath)
}

func TestCreateWalletWithSuppliedMnemonic(t *testing.T) {
	t.Parallel()
	provider := &chaintest.Provider{}
	// On-chain state is irrelevant to creation: even with activity at
	// higher indices only account 0 is derived.
	markActive(provider, addressAt(t, 1))

	svc := walletsvc.NewService(provider, 0)
	w, err := svc.CreateWallet(context.Background(), testMnemonic)
	require.NoError(t, err)
	require.Len(t, w.Accounts, 1)
	assert.Equal(t, addressAt(t, 0), w.Accounts[0].Address)
	assert.Zero(t, provider.Calls("GetObjectsOwnedByAddress"))
}

func TestCreateAccountBound(t *testing.T) {
	t.Parallel()
	svc := walletsvc.NewService(&chaintest.Provider{}, 0)

	acct, err := svc.CreateAccount(testMnemonic, 19)
	require.NoError(t, err)
	assert.Equal(t, "m/44'/784'/19'/0'/0'", acct.DerivationPath)

	_, err = svc.CreateAccount(testMnemonic, 20)
	require.ErrorIs(t, err, emberr.ErrMaxAccountsExceeded)
}
