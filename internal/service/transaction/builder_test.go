package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/chain/chaintest"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

const testToken = "0x2::ember::EMBER"

func TestBuildTransferNative(t *testing.T) {
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			"0xsender": {
				{ObjectID: "0xc1", CoinType: chain.NativeCoinType, Balance: 30},
				{ObjectID: "0xc2", CoinType: chain.NativeCoinType, Balance: 50},
				{ObjectID: "0xc3", CoinType: chain.NativeCoinType, Balance: 20},
			},
		},
	}
	builder := NewBuilder(provider, 10)

	intent, err := builder.BuildTransfer(context.Background(), 55, "0xsender", "0xrecipient", chain.NativeCoinType)
	require.NoError(t, err)

	native, ok := intent.(*chain.NativeTransfer)
	require.True(t, ok, "native asset transfers build a native intent")
	assert.Equal(t, []string{"0xc1", "0xc2"}, native.InputCoins)
	assert.Equal(t, []string{"0xrecipient"}, native.Recipients)
	assert.Equal(t, []uint64{55}, native.Amounts)
	assert.Equal(t, uint64(10), native.GasBudget)
}

func TestBuildTransferNativeEmptyCoinType(t *testing.T) {
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			"0xsender": {
				{ObjectID: "0xc1", CoinType: chain.NativeCoinType, Balance: 5000},
			},
		},
	}
	builder := NewBuilder(provider, 0)
	require.Equal(t, uint64(chain.DefaultGasBudget), builder.GasBudget())

	intent, err := builder.BuildTransfer(context.Background(), 100, "0xsender", "0xrecipient", "")
	require.NoError(t, err)
	assert.IsType(t, &chain.NativeTransfer{}, intent)
}

func TestBuildTransferNativeSelectionCoversGas(t *testing.T) {
	// The single coin covers the amount but not amount plus gas.
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			"0xsender": {
				{ObjectID: "0xc1", CoinType: chain.NativeCoinType, Balance: 60},
			},
		},
	}
	builder := NewBuilder(provider, 10)

	_, err := builder.BuildTransfer(context.Background(), 55, "0xsender", "0xrecipient", chain.NativeCoinType)
	require.Error(t, err)
	assert.True(t, emberr.Is(err, emberr.ErrInsufficientFunds))
}

func TestBuildTransferGeneric(t *testing.T) {
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			"0xsender": {
				{ObjectID: "0xt1", CoinType: testToken, Balance: 40},
				{ObjectID: "0xt2", CoinType: testToken, Balance: 30},
				{ObjectID: "0xg1", CoinType: chain.NativeCoinType, Balance: 5000},
			},
		},
	}
	builder := NewBuilder(provider, 1000)

	intent, err := builder.BuildTransfer(context.Background(), 60, "0xsender", "0xrecipient", testToken)
	require.NoError(t, err)

	generic, ok := intent.(*chain.GenericTransfer)
	require.True(t, ok, "non-native transfers build a generic intent")
	assert.Equal(t, []string{"0xt1", "0xt2"}, generic.InputCoins)
	assert.Equal(t, "0xg1", generic.GasPayment)
	assert.Equal(t, []uint64{60}, generic.Amounts)
	assert.NotContains(t, generic.InputCoins, generic.GasPayment,
		"gas payment stays disjoint from the input coins")
}

func TestBuildTransferGenericGasSelectionFailed(t *testing.T) {
	// Token funds are sufficient, but no single native coin covers the
	// gas budget.
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			"0xsender": {
				{ObjectID: "0xt1", CoinType: testToken, Balance: 100},
				{ObjectID: "0xg1", CoinType: chain.NativeCoinType, Balance: 400},
				{ObjectID: "0xg2", CoinType: chain.NativeCoinType, Balance: 400},
			},
		},
	}
	builder := NewBuilder(provider, 1000)

	_, err := builder.BuildTransfer(context.Background(), 50, "0xsender", "0xrecipient", testToken)
	require.Error(t, err)
	assert.True(t, emberr.Is(err, emberr.ErrGasSelectionFailed))
	assert.False(t, emberr.Is(err, emberr.ErrInsufficientFunds),
		"a missing gas object is reported distinctly from token insufficiency")
}

func TestBuildTransferGenericInsufficientToken(t *testing.T) {
	provider := &chaintest.Provider{
		CoinsByAddress: map[string][]chain.Coin{
			"0xsender": {
				{ObjectID: "0xt1", CoinType: testToken, Balance: 10},
				{ObjectID: "0xg1", CoinType: chain.NativeCoinType, Balance: 5000},
			},
		},
	}
	builder := NewBuilder(provider, 1000)

	_, err := builder.BuildTransfer(context.Background(), 50, "0xsender", "0xrecipient", testToken)
	require.Error(t, err)
	assert.True(t, emberr.Is(err, emberr.ErrInsufficientFunds))
	assert.False(t, emberr.Is(err, emberr.ErrGasSelectionFailed))
}

func TestBuildTransferRemoteFailure(t *testing.T) {
	provider := &chaintest.Provider{}
	provider.SetError("GetCoinsOwnedByAddress", assert.AnError)
	builder := NewBuilder(provider, 0)

	_, err := builder.BuildTransfer(context.Background(), 50, "0xsender", "0xrecipient", chain.NativeCoinType)
	require.Error(t, err)
	assert.True(t, emberr.Is(err, emberr.ErrRemoteQueryFailed))
}
