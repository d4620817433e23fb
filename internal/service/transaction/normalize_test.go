package transaction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/chain/chaintest"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// stubSerializer deterministically serializes structural intents so the
// normalizer's routing can be observed.
type stubSerializer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubSerializer) Serialize(_ context.Context, sender string, tx chain.Transaction) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	body, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "%s:%s", sender, body), nil
}

func (s *stubSerializer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testIntent() *chain.NativeTransfer {
	return &chain.NativeTransfer{
		InputCoins: []string{"0xc1"},
		Recipients: []string{"0xrecipient"},
		Amounts:    []uint64{25},
		GasBudget:  1000,
	}
}

func TestNormalizeEncodedPassthrough(t *testing.T) {
	ser := &stubSerializer{}

	out, err := Normalize(context.Background(), ser, "0xsender", chain.EncodedTransaction("QUJD"))
	require.NoError(t, err)
	assert.Equal(t, "QUJD", out)
	assert.Zero(t, ser.Calls(), "encoded input never touches the serializer")
}

func TestNormalizeRawBytes(t *testing.T) {
	ser := &stubSerializer{}

	out, err := Normalize(context.Background(), ser, "0xsender", chain.RawTransaction([]byte("ABC")))
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("ABC")), out)
	assert.Zero(t, ser.Calls())
}

func TestNormalizeStructural(t *testing.T) {
	ser := &stubSerializer{}

	out, err := Normalize(context.Background(), ser, "0xsender", testIntent())
	require.NoError(t, err)

	raw, err := ser.Serialize(context.Background(), "0xsender", testIntent())
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), out)
}

func TestNormalizeEquivalentForms(t *testing.T) {
	ser := &stubSerializer{}
	ctx := context.Background()

	raw, err := ser.Serialize(ctx, "0xsender", testIntent())
	require.NoError(t, err)

	fromStruct, err := Normalize(ctx, ser, "0xsender", testIntent())
	require.NoError(t, err)
	fromRaw, err := Normalize(ctx, ser, "0xsender", chain.RawTransaction(raw))
	require.NoError(t, err)
	fromEncoded, err := Normalize(ctx, ser, "0xsender", chain.EncodedTransaction(base64.StdEncoding.EncodeToString(raw)))
	require.NoError(t, err)

	assert.Equal(t, fromStruct, fromRaw)
	assert.Equal(t, fromStruct, fromEncoded)
	assert.Equal(t, 2, ser.Calls(), "only the structural form routes through the serializer")
}

func TestNormalizeInvalidInputs(t *testing.T) {
	ser := &stubSerializer{}
	ctx := context.Background()

	_, err := Normalize(ctx, ser, "0xsender", nil)
	assert.True(t, emberr.Is(err, emberr.ErrInvalidTransaction))

	_, err = Normalize(ctx, ser, "0xsender", chain.EncodedTransaction(""))
	assert.True(t, emberr.Is(err, emberr.ErrInvalidTransaction))

	_, err = Normalize(ctx, ser, "0xsender", chain.RawTransaction(nil))
	assert.True(t, emberr.Is(err, emberr.ErrInvalidTransaction))
}

func TestNormalizeSerializerFailure(t *testing.T) {
	ser := &stubSerializer{err: assert.AnError}

	_, err := Normalize(context.Background(), ser, "0xsender", testIntent())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDryRunAndSimulateAreTheSameOperation(t *testing.T) {
	provider := &chaintest.Provider{
		DryRunResult: &chain.TransactionEffects{
			Status:  chain.ExecutionStatus{Status: chain.ExecutionStatusSuccess},
			GasUsed: json.RawMessage(`{"computationCost":7}`),
		},
	}
	ser := &stubSerializer{}
	svc := NewService(provider, ser, 0)
	ctx := context.Background()

	dry, err := svc.DryRun(ctx, "0xsender", testIntent())
	require.NoError(t, err)
	sim, err := svc.Simulate(ctx, "0xsender", testIntent())
	require.NoError(t, err)

	assert.Equal(t, dry, sim)
	require.Len(t, provider.DryRunCalls, 2)
	assert.Equal(t, provider.DryRunCalls[0], provider.DryRunCalls[1],
		"both paths submit the same normalized bytes")
}

func TestDryRunRemoteFailure(t *testing.T) {
	provider := &chaintest.Provider{}
	provider.SetError("DryRunTransaction", assert.AnError)
	svc := NewService(provider, &stubSerializer{}, 0)

	_, err := svc.DryRun(context.Background(), "0xsender", testIntent())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
