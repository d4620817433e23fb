package signer

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/chain/chaintest"
	"github.com/emberwallet/ember/internal/wallet"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type staticSerializer struct{ raw []byte }

func (s *staticSerializer) Serialize(_ context.Context, _ string, _ chain.Transaction) ([]byte, error) {
	return s.raw, nil
}

func newTestSigner(t *testing.T, provider chain.Provider) *RawSigner {
	t.Helper()
	kp, err := wallet.DeriveKeypair(testMnemonic, wallet.DerivationPath(0))
	require.NoError(t, err)
	return New(kp, provider, &staticSerializer{raw: []byte("tx-bytes")})
}

func TestPaySuiSubmitsSignedBytes(t *testing.T) {
	provider := &chaintest.Provider{}
	s := newTestSigner(t, provider)

	_, err := s.PaySui(context.Background(), &chain.NativeTransfer{
		InputCoins: []string{"0xc1"},
		Recipients: []string{"0xyou"},
		Amounts:    []uint64{10},
		GasBudget:  1000,
	})
	require.NoError(t, err)

	require.Len(t, provider.ExecuteCalls, 1)
	call := provider.ExecuteCalls[0]
	assert.Equal(t, SignatureScheme, call.SigScheme)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("tx-bytes")), call.TxBytes)

	sig, err := base64.StdEncoding.DecodeString(call.Signature)
	require.NoError(t, err)
	pub, err := base64.StdEncoding.DecodeString(call.PublicKey)
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(ed25519.PublicKey(pub), []byte("tx-bytes"), sig),
		"submitted signature verifies against the submitted public key")
}

func TestPaySuiRejectsInvalidIntent(t *testing.T) {
	provider := &chaintest.Provider{}
	s := newTestSigner(t, provider)

	_, err := s.PaySui(context.Background(), &chain.NativeTransfer{
		InputCoins: []string{"0xc1"},
		Recipients: []string{"0xyou", "0xother"},
		Amounts:    []uint64{10},
		GasBudget:  1000,
	})
	require.Error(t, err)
	assert.Empty(t, provider.ExecuteCalls)
}

func TestPayRejectsOverlappingGas(t *testing.T) {
	provider := &chaintest.Provider{}
	s := newTestSigner(t, provider)

	_, err := s.Pay(context.Background(), &chain.GenericTransfer{
		InputCoins: []string{"0xc1"},
		Recipients: []string{"0xyou"},
		Amounts:    []uint64{10},
		GasPayment: "0xc1",
		GasBudget:  1000,
	})
	require.Error(t, err, "gas payment must stay disjoint from input coins")
	assert.Empty(t, provider.ExecuteCalls)
}

func TestMoveCallSubmits(t *testing.T) {
	provider := &chaintest.Provider{}
	s := newTestSigner(t, provider)

	_, err := s.MoveCall(context.Background(), chain.MoveCallRequest{
		PackageObjectID: "0x2",
		Module:          "devnet_nft",
		Function:        "mint",
		GasBudget:       10000,
	})
	require.NoError(t, err)
	assert.Len(t, provider.ExecuteCalls, 1)
}

func TestExecuteFailurePropagates(t *testing.T) {
	provider := &chaintest.Provider{}
	provider.SetError("ExecuteTransaction", assert.AnError)
	s := newTestSigner(t, provider)

	_, err := s.TransferObject(context.Background(), chain.TransferObjectRequest{
		ObjectID:  "0xnft",
		Recipient: "0xyou",
		GasBudget: 10000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAddressMatchesKeypair(t *testing.T) {
	kp, err := wallet.DeriveKeypair(testMnemonic, wallet.DerivationPath(0))
	require.NoError(t, err)
	s := New(kp, &chaintest.Provider{}, &staticSerializer{})
	assert.Equal(t, kp.Address(), s.Address())
}
