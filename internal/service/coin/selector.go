// Package coin implements coin selection over the provider's coin
// listings.
package coin

import (
	"context"
	"strconv"

	"github.com/emberwallet/ember/internal/chain"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Selector selects spendable coin objects to satisfy a payment.
type Selector struct {
	provider chain.Provider
}

// NewSelector creates a coin selector backed by the given provider.
func NewSelector(provider chain.Provider) *Selector {
	return &Selector{provider: provider}
}

// SelectCombined fetches all coins of coinType owned by address, skips any
// id in exclude, and accumulates coins in provider order until the running
// sum reaches target. The returned set is exactly the accumulated prefix:
// selection is first-fit in provider order, not a minimal subset. Keep it
// that way; downstream fee estimation depends on selection-order parity.
func (s *Selector) SelectCombined(ctx context.Context, address string, target uint64, coinType string, exclude []string) ([]chain.Coin, error) {
	coins, err := s.ownedCoins(ctx, address, coinType, exclude)
	if err != nil {
		return nil, err
	}

	var selected []chain.Coin
	var sum uint64
	for _, c := range coins {
		selected = append(selected, c)
		sum += c.Balance
		if sum >= target {
			return selected, nil
		}
	}

	return nil, emberr.WithDetails(emberr.ErrInsufficientFunds, map[string]string{
		"coin_type": coinType,
		"target":    formatUint(target),
		"available": formatUint(sum),
	})
}

// SelectSingleAtLeast returns the first coin whose individual balance
// covers target. Used to source a standalone gas-payment object disjoint
// from a generic transfer's input coins.
func (s *Selector) SelectSingleAtLeast(ctx context.Context, address string, target uint64, coinType string, exclude []string) (*chain.Coin, error) {
	coins, err := s.ownedCoins(ctx, address, coinType, exclude)
	if err != nil {
		return nil, err
	}

	for _, c := range coins {
		if c.Balance >= target {
			coin := c
			return &coin, nil
		}
	}

	return nil, emberr.WithDetails(emberr.ErrInsufficientFunds, map[string]string{
		"coin_type": coinType,
		"target":    formatUint(target),
	})
}

// Balance sums the owned coins of coinType for an address.
func (s *Selector) Balance(ctx context.Context, address, coinType string) (uint64, error) {
	coins, err := s.provider.GetCoinsOwnedByAddress(ctx, address, coinType)
	if err != nil {
		return 0, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "listing coins for %s", address)
	}
	return chain.TotalBalance(coins), nil
}

// CoinView is a display projection of an owned coin object.
type CoinView struct {
	ObjectID string `json:"id"`
	Symbol   string `json:"symbol"`
	Balance  uint64 `json:"balance"`
	Decimals int    `json:"decimals"`
	CoinType string `json:"coinTypeArg"`
}

// coinDecimals is the display precision of coin balances on this platform.
const coinDecimals = 9

// ListCoins returns all coins owned by an address as display views, in
// provider order.
func (s *Selector) ListCoins(ctx context.Context, address string) ([]CoinView, error) {
	coins, err := s.provider.GetCoinsOwnedByAddress(ctx, address, "")
	if err != nil {
		return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "listing coins for %s", address)
	}

	views := make([]CoinView, len(coins))
	for i, c := range coins {
		views[i] = CoinView{
			ObjectID: c.ObjectID,
			Symbol:   chain.CoinSymbol(c.CoinType),
			Balance:  c.Balance,
			Decimals: coinDecimals,
			CoinType: c.CoinType,
		}
	}
	return views, nil
}

// ownedCoins lists coins and applies the exclusion set.
func (s *Selector) ownedCoins(ctx context.Context, address, coinType string, exclude []string) ([]chain.Coin, error) {
	coins, err := s.provider.GetCoinsOwnedByAddress(ctx, address, coinType)
	if err != nil {
		return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "listing coins for %s", address)
	}

	if len(exclude) == 0 {
		return coins, nil
	}

	excluded := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	filtered := coins[:0]
	for _, c := range coins {
		if !excluded[c.ObjectID] {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
