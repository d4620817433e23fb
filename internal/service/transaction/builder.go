// Package transaction builds transfer intents, normalizes the accepted
// transaction representations into the canonical serialized form, and
// submits or simulates them.
package transaction

import (
	"context"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/service/coin"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Builder composes selected coin sets, recipients, and amounts into
// transfer intents.
type Builder struct {
	selector  *coin.Selector
	gasBudget uint64
}

// NewBuilder creates an intent builder. gasBudget zero selects the
// platform default.
func NewBuilder(provider chain.Provider, gasBudget uint64) *Builder {
	if gasBudget == 0 {
		gasBudget = chain.DefaultGasBudget
	}
	return &Builder{
		selector:  coin.NewSelector(provider),
		gasBudget: gasBudget,
	}
}

// GasBudget returns the fee allowance applied to built transfers.
func (b *Builder) GasBudget() uint64 {
	return b.gasBudget
}

// BuildTransfer builds the transfer intent for an amount of coinType from
// sender to recipient.
//
// For the native asset the selection target is amount plus the gas
// budget, and every selected coin becomes an input; gas is deducted from
// the inputs themselves. For any other asset the inputs cover only the
// amount, and a separate native coin disjoint from the inputs is selected
// as the gas payment.
func (b *Builder) BuildTransfer(ctx context.Context, amount uint64, sender, recipient, coinType string) (chain.Transaction, error) {
	if coinType == "" || coinType == chain.NativeCoinType {
		return b.buildNative(ctx, amount, sender, recipient)
	}
	return b.buildGeneric(ctx, amount, sender, recipient, coinType)
}

func (b *Builder) buildNative(ctx context.Context, amount uint64, sender, recipient string) (chain.Transaction, error) {
	coins, err := b.selector.SelectCombined(ctx, sender, amount+b.gasBudget, chain.NativeCoinType, nil)
	if err != nil {
		return nil, err
	}

	intent := &chain.NativeTransfer{
		InputCoins: chain.ObjectIDs(coins),
		Recipients: []string{recipient},
		Amounts:    []uint64{amount},
		GasBudget:  b.gasBudget,
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	return intent, nil
}

func (b *Builder) buildGeneric(ctx context.Context, amount uint64, sender, recipient, coinType string) (chain.Transaction, error) {
	coins, err := b.selector.SelectCombined(ctx, sender, amount, coinType, nil)
	if err != nil {
		return nil, err
	}
	inputIDs := chain.ObjectIDs(coins)

	gasCoin, err := b.selector.SelectSingleAtLeast(ctx, sender, b.gasBudget, chain.NativeCoinType, inputIDs)
	if err != nil {
		// A missing gas object is a distinct condition from being short
		// on the transferred asset.
		if emberr.Is(err, emberr.ErrInsufficientFunds) {
			return nil, emberr.Wrap(emberr.ErrGasSelectionFailed, "selecting gas for %s transfer", coinType)
		}
		return nil, err
	}

	intent := &chain.GenericTransfer{
		InputCoins: inputIDs,
		Recipients: []string{recipient},
		Amounts:    []uint64{amount},
		GasPayment: gasCoin.ObjectID,
		GasBudget:  b.gasBudget,
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	return intent, nil
}
