package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/chain/chaintest"
	"github.com/emberwallet/ember/internal/signer"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testKeypair(t *testing.T) *wallet.Keypair {
	t.Helper()
	kp, err := wallet.DeriveKeypair(testMnemonic, wallet.DerivationPath(0))
	require.NoError(t, err)
	return kp
}

func TestTransferNativeSubmits(t *testing.T) {
	kp := testKeypair(t)
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			kp.Address(): {
				{ObjectID: "0xc1", CoinType: chain.NativeCoinType, Balance: 5000},
			},
		},
	}
	svc := NewService(provider, &stubSerializer{}, 0)

	resp, err := svc.Transfer(context.Background(), 100, kp, "0xrecipient", "")
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.Len(t, provider.ExecuteCalls, 1)
	call := provider.ExecuteCalls[0]
	assert.Equal(t, signer.SignatureScheme, call.SigScheme)
	assert.NotEmpty(t, call.TxBytes)
	assert.NotEmpty(t, call.Signature)
	assert.NotEmpty(t, call.PublicKey)
}

func TestTransferGenericSubmits(t *testing.T) {
	kp := testKeypair(t)
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			kp.Address(): {
				{ObjectID: "0xt1", CoinType: testToken, Balance: 250},
				{ObjectID: "0xg1", CoinType: chain.NativeCoinType, Balance: 5000},
			},
		},
	}
	svc := NewService(provider, &stubSerializer{}, 0)

	_, err := svc.Transfer(context.Background(), 200, kp, "0xrecipient", testToken)
	require.NoError(t, err)
	assert.Len(t, provider.ExecuteCalls, 1)
}

func TestTransferInsufficientFundsNeverSubmits(t *testing.T) {
	kp := testKeypair(t)
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			kp.Address(): {
				{ObjectID: "0xc1", CoinType: chain.NativeCoinType, Balance: 10},
			},
		},
	}
	svc := NewService(provider, &stubSerializer{}, 0)

	_, err := svc.Transfer(context.Background(), 100, kp, "0xrecipient", "")
	require.Error(t, err)
	assert.True(t, emberr.Is(err, emberr.ErrInsufficientFunds))
	assert.Empty(t, provider.ExecuteCalls, "a failed selection reaches no submission")
}

func TestAirdrop(t *testing.T) {
	provider := &chaintest.Provider{}
	svc := NewService(provider, &stubSerializer{}, 0)

	require.NoError(t, svc.Airdrop(context.Background(), "0xsomeone"))
	assert.Equal(t, []string{"0xsomeone"}, provider.FaucetCalls)
}

func TestAirdropFailure(t *testing.T) {
	provider := &chaintest.Provider{}
	provider.SetError("RequestFaucet", assert.AnError)
	svc := NewService(provider, &stubSerializer{}, 0)

	err := svc.Airdrop(context.Background(), "0xsomeone")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
