// Package chaintest provides a configurable in-memory Provider fake for
// service tests.
package chaintest

import (
	"context"
	"fmt"
	"sync"

	"github.com/emberwallet/ember/internal/chain"
)

// ExecuteCall records one ExecuteTransaction invocation.
type ExecuteCall struct {
	TxBytes   string
	SigScheme string
	Signature string
	PublicKey string
}

// Provider is an in-memory chain.Provider fake. Zero value is usable;
// populate the maps a test needs and inject failures per method name.
type Provider struct {
	mu sync.Mutex

	Objects          map[string]chain.ObjectRead
	OwnedByAddress   map[string][]chain.ObjectInfo
	OwnedByObject    map[string][]chain.ObjectInfo
	CoinsByAddress   map[string][]chain.Coin
	DigestsByAddress map[string][]string
	TxByDigest       map[string]*chain.TransactionResponse
	DryRunResult     *chain.TransactionEffects
	ExecuteResult    *chain.TransactionResponse

	// Errs maps a method name ("GetObject", "DryRunTransaction", ...) to
	// an error returned by that method.
	Errs map[string]error

	ExecuteCalls []ExecuteCall
	FaucetCalls  []string
	DryRunCalls  []string

	calls map[string]int
}

var _ chain.Provider = (*Provider)(nil)

// Calls returns how many times a method was invoked.
func (p *Provider) Calls(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[method]
}

func (p *Provider) enter(method string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = make(map[string]int)
	}
	p.calls[method]++
	return p.Errs[method]
}

// SetError injects a failure for a method.
func (p *Provider) SetError(method string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Errs == nil {
		p.Errs = make(map[string]error)
	}
	p.Errs[method] = err
}

// GetObject implements chain.Provider.
func (p *Provider) GetObject(_ context.Context, objectID string) (*chain.ObjectRead, error) {
	if err := p.enter("GetObject"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	obj, ok := p.Objects[objectID]
	if !ok {
		return &chain.ObjectRead{Status: chain.ObjectStatusNotExists}, nil
	}
	return &obj, nil
}

// GetObjectBatch implements chain.Provider, preserving input order.
func (p *Provider) GetObjectBatch(_ context.Context, objectIDs []string) ([]chain.ObjectRead, error) {
	if err := p.enter("GetObjectBatch"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]chain.ObjectRead, len(objectIDs))
	for i, id := range objectIDs {
		if obj, ok := p.Objects[id]; ok {
			out[i] = obj
		} else {
			out[i] = chain.ObjectRead{Status: chain.ObjectStatusNotExists}
		}
	}
	return out, nil
}

// GetObjectsOwnedByAddress implements chain.Provider.
func (p *Provider) GetObjectsOwnedByAddress(_ context.Context, address string) ([]chain.ObjectInfo, error) {
	if err := p.enter("GetObjectsOwnedByAddress"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.OwnedByAddress[address], nil
}

// GetObjectsOwnedByObject implements chain.Provider.
func (p *Provider) GetObjectsOwnedByObject(_ context.Context, objectID string) ([]chain.ObjectInfo, error) {
	if err := p.enter("GetObjectsOwnedByObject"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.OwnedByObject[objectID], nil
}

// GetCoinsOwnedByAddress implements chain.Provider. An empty coinType
// returns all coins.
func (p *Provider) GetCoinsOwnedByAddress(_ context.Context, address, coinType string) ([]chain.Coin, error) {
	if err := p.enter("GetCoinsOwnedByAddress"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	coins := p.CoinsByAddress[address]
	if coinType == "" {
		return coins, nil
	}
	var filtered []chain.Coin
	for _, c := range coins {
		if c.CoinType == coinType {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// GetTransactionsForAddress implements chain.Provider.
func (p *Provider) GetTransactionsForAddress(_ context.Context, address string) ([]string, error) {
	if err := p.enter("GetTransactionsForAddress"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.DigestsByAddress[address], nil
}

// GetTransactionWithEffects implements chain.Provider.
func (p *Provider) GetTransactionWithEffects(_ context.Context, digest string) (*chain.TransactionResponse, error) {
	if err := p.enter("GetTransactionWithEffects"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	tx, ok := p.TxByDigest[digest]
	if !ok {
		return nil, fmt.Errorf("unknown digest %s", digest)
	}
	return tx, nil
}

// DryRunTransaction implements chain.Provider.
func (p *Provider) DryRunTransaction(_ context.Context, txBytes string) (*chain.TransactionEffects, error) {
	if err := p.enter("DryRunTransaction"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DryRunCalls = append(p.DryRunCalls, txBytes)
	if p.DryRunResult != nil {
		return p.DryRunResult, nil
	}
	return &chain.TransactionEffects{
		Status: chain.ExecutionStatus{Status: chain.ExecutionStatusSuccess},
	}, nil
}

// ExecuteTransaction implements chain.Provider.
func (p *Provider) ExecuteTransaction(_ context.Context, txBytes, sigScheme, signature, publicKey string) (*chain.TransactionResponse, error) {
	if err := p.enter("ExecuteTransaction"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ExecuteCalls = append(p.ExecuteCalls, ExecuteCall{
		TxBytes:   txBytes,
		SigScheme: sigScheme,
		Signature: signature,
		PublicKey: publicKey,
	})
	if p.ExecuteResult != nil {
		return p.ExecuteResult, nil
	}
	return &chain.TransactionResponse{
		Effects: chain.TransactionEffects{
			Status: chain.ExecutionStatus{Status: chain.ExecutionStatusSuccess},
		},
	}, nil
}

// RequestFaucet implements chain.Provider.
func (p *Provider) RequestFaucet(_ context.Context, address string) error {
	if err := p.enter("RequestFaucet"); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.FaucetCalls = append(p.FaucetCalls, address)
	return nil
}
