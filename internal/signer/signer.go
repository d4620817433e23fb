// Package signer implements the signing capability over a derived key
// pair: byte-level ed25519 signing plus the submit helpers that serialize,
// sign, and execute built transaction intents.
package signer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// SignatureScheme is the scheme identifier submitted with signatures.
const SignatureScheme = "ED25519"

// RawSigner signs and submits transactions for a single key pair.
type RawSigner struct {
	keypair    *wallet.Keypair
	provider   chain.Provider
	serializer chain.Serializer
}

// New creates a signer for the given key pair.
func New(keypair *wallet.Keypair, provider chain.Provider, serializer chain.Serializer) *RawSigner {
	return &RawSigner{
		keypair:    keypair,
		provider:   provider,
		serializer: serializer,
	}
}

// Address returns the canonical prefixed-hex address of the key pair.
func (s *RawSigner) Address() string {
	return s.keypair.Address()
}

// SignBytes signs arbitrary bytes.
func (s *RawSigner) SignBytes(data []byte) ([]byte, error) {
	return s.keypair.Sign(data), nil
}

// PaySui submits a native-asset transfer intent.
func (s *RawSigner) PaySui(ctx context.Context, tx *chain.NativeTransfer) (*chain.TransactionResponse, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return s.submit(ctx, tx)
}

// Pay submits a generic-asset transfer intent.
func (s *RawSigner) Pay(ctx context.Context, tx *chain.GenericTransfer) (*chain.TransactionResponse, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return s.submit(ctx, tx)
}

// MoveCall submits a contract call.
func (s *RawSigner) MoveCall(ctx context.Context, req chain.MoveCallRequest) (*chain.TransactionResponse, error) {
	return s.submit(ctx, req)
}

// TransferObject submits a whole-object transfer.
func (s *RawSigner) TransferObject(ctx context.Context, req chain.TransferObjectRequest) (*chain.TransactionResponse, error) {
	return s.submit(ctx, req)
}

// submit serializes a structural intent, signs the bytes, and executes.
func (s *RawSigner) submit(ctx context.Context, tx chain.Transaction) (*chain.TransactionResponse, error) {
	txBytes, err := s.serializer.Serialize(ctx, s.Address(), tx)
	if err != nil {
		return nil, fmt.Errorf("serializing transaction: %w", err)
	}

	signature, err := s.SignBytes(txBytes)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}

	resp, err := s.provider.ExecuteTransaction(ctx,
		base64.StdEncoding.EncodeToString(txBytes),
		SignatureScheme,
		base64.StdEncoding.EncodeToString(signature),
		base64.StdEncoding.EncodeToString(s.keypair.PublicKey()),
	)
	if err != nil {
		return nil, emberr.Wrap(err, "executing transaction")
	}
	return resp, nil
}
