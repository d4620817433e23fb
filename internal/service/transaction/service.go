package transaction

import (
	"context"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/signer"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Service builds, simulates, and submits transfers for wallet accounts.
type Service struct {
	provider   chain.Provider
	serializer chain.Serializer
	builder    *Builder
}

// NewService creates a transaction service. gasBudget zero selects the
// platform default.
func NewService(provider chain.Provider, serializer chain.Serializer, gasBudget uint64) *Service {
	return &Service{
		provider:   provider,
		serializer: serializer,
		builder:    NewBuilder(provider, gasBudget),
	}
}

// Builder exposes the underlying intent builder.
func (s *Service) Builder() *Builder {
	return s.builder
}

// Normalize converts tx into canonical base64 form for sender.
func (s *Service) Normalize(ctx context.Context, sender string, tx chain.Transaction) (string, error) {
	return Normalize(ctx, s.serializer, sender, tx)
}

// DryRun normalizes tx and executes it against the node without
// committing, returning the predicted effects.
func (s *Service) DryRun(ctx context.Context, sender string, tx chain.Transaction) (*chain.TransactionEffects, error) {
	txBytes, err := s.Normalize(ctx, sender, tx)
	if err != nil {
		return nil, err
	}
	effects, err := s.provider.DryRunTransaction(ctx, txBytes)
	if err != nil {
		return nil, emberr.Wrap(err, "dry-running transaction for %s", sender)
	}
	return effects, nil
}

// Simulate is DryRun under the name the node's simulation endpoint uses.
// The two are the same operation.
func (s *Service) Simulate(ctx context.Context, sender string, tx chain.Transaction) (*chain.TransactionEffects, error) {
	return s.DryRun(ctx, sender, tx)
}

// Transfer builds the transfer intent for amount of coinType and submits
// it signed by kp. An empty coinType means the native asset.
func (s *Service) Transfer(ctx context.Context, amount uint64, kp *wallet.Keypair, recipient, coinType string) (*chain.TransactionResponse, error) {
	intent, err := s.builder.BuildTransfer(ctx, amount, kp.Address(), recipient, coinType)
	if err != nil {
		return nil, err
	}

	sgn := signer.New(kp, s.provider, s.serializer)
	switch t := intent.(type) {
	case *chain.NativeTransfer:
		return sgn.PaySui(ctx, t)
	case *chain.GenericTransfer:
		return sgn.Pay(ctx, t)
	default:
		return nil, emberr.Wrap(emberr.ErrInvalidTransaction, "unexpected transfer intent %T", intent)
	}
}

// Airdrop requests devnet funds from the faucet for address.
func (s *Service) Airdrop(ctx context.Context, address string) error {
	if err := s.provider.RequestFaucet(ctx, address); err != nil {
		return emberr.Wrap(err, "requesting faucet funds for %s", address)
	}
	return nil
}
