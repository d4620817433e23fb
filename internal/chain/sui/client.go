package sui

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/emberwallet/ember/internal/chain"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Devnet endpoints.
const (
	DefaultNodeURL   = "https://fullnode.devnet.sui.io"
	DefaultFaucetURL = "https://faucet.devnet.sui.io/gas"
)

// ClientOptions contains optional configuration for the client.
type ClientOptions struct {
	// FaucetURL overrides the default devnet faucet endpoint.
	FaucetURL string
	// HTTPClient overrides the default HTTP client, shared by node and
	// faucet requests.
	HTTPClient *http.Client
	// RetryConfig overrides the default backoff schedule.
	RetryConfig *chain.RetryConfig
	// RateLimiter overrides the default per-endpoint limiter.
	RateLimiter *chain.RateLimiter
}

// Client talks to a Sui fullnode. It implements both the provider and
// serializer capabilities; serialization of structural intents is done
// remotely by the node.
type Client struct {
	rpc        *rpcClient
	faucetURL  string
	httpClient *http.Client
	retryCfg   chain.RetryConfig
	limiter    *chain.RateLimiter
}

// Compile-time interface checks
var (
	_ chain.Provider   = (*Client)(nil)
	_ chain.Serializer = (*Client)(nil)
)

// NewClient creates a fullnode client. An empty nodeURL selects devnet.
func NewClient(nodeURL string, opts *ClientOptions) *Client {
	if nodeURL == "" {
		nodeURL = DefaultNodeURL
	}
	if opts == nil {
		opts = &ClientOptions{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	faucetURL := opts.FaucetURL
	if faucetURL == "" {
		faucetURL = DefaultFaucetURL
	}
	retryCfg := chain.DefaultRetryConfig()
	if opts.RetryConfig != nil {
		retryCfg = *opts.RetryConfig
	}
	limiter := opts.RateLimiter
	if limiter == nil {
		limiter = chain.DefaultRateLimiter()
	}

	return &Client{
		rpc:        newRPCClient(nodeURL, httpClient),
		faucetURL:  faucetURL,
		httpClient: httpClient,
		retryCfg:   retryCfg,
		limiter:    limiter,
	}
}

// call rate-limits per method, issues the RPC, and retries transient
// failures with backoff.
func (c *Client) call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx, method); err != nil {
		return nil, err
	}
	return chain.RetryWithConfig(ctx, c.retryCfg, func() (json.RawMessage, error) {
		return c.rpc.Call(ctx, method, params...)
	})
}

// GetObject implements chain.Provider.
func (c *Client) GetObject(ctx context.Context, objectID string) (*chain.ObjectRead, error) {
	result, err := c.call(ctx, "sui_getObject", objectID)
	if err != nil {
		return nil, err
	}

	var read chain.ObjectRead
	if err := json.Unmarshal(result, &read); err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "parsing object %s", objectID)
	}
	return &read, nil
}

// GetObjectBatch implements chain.Provider. The node has no batched
// lookup, so ids are fetched concurrently with one result slot each.
func (c *Client) GetObjectBatch(ctx context.Context, objectIDs []string) ([]chain.ObjectRead, error) {
	reads := make([]chain.ObjectRead, len(objectIDs))
	errs := make([]error, len(objectIDs))

	var wg sync.WaitGroup
	for i, id := range objectIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			read, err := c.GetObject(ctx, id)
			if err != nil {
				errs[i] = err
				return
			}
			reads[i] = *read
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reads, nil
}

// GetObjectsOwnedByAddress implements chain.Provider.
func (c *Client) GetObjectsOwnedByAddress(ctx context.Context, address string) ([]chain.ObjectInfo, error) {
	return c.objectList(ctx, "sui_getObjectsOwnedByAddress", address)
}

// GetObjectsOwnedByObject implements chain.Provider.
func (c *Client) GetObjectsOwnedByObject(ctx context.Context, objectID string) ([]chain.ObjectInfo, error) {
	return c.objectList(ctx, "sui_getObjectsOwnedByObject", objectID)
}

func (c *Client) objectList(ctx context.Context, method, owner string) ([]chain.ObjectInfo, error) {
	result, err := c.call(ctx, method, owner)
	if err != nil {
		return nil, err
	}

	var infos []chain.ObjectInfo
	if err := json.Unmarshal(result, &infos); err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "parsing object list for %s", owner)
	}
	return infos, nil
}

// GetCoinsOwnedByAddress implements chain.Provider. The node exposes no
// coin listing, so coins are derived from the owned-object listing: coin
// wrappers are filtered by type, fetched, and reduced to balances. An
// empty coinType returns all coins.
func (c *Client) GetCoinsOwnedByAddress(ctx context.Context, address, coinType string) ([]chain.Coin, error) {
	infos, err := c.GetObjectsOwnedByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	wantType := ""
	if coinType != "" {
		wantType = chain.CoinObjectTypePrefix + coinType + ">"
	}

	var ids []string
	for _, info := range infos {
		if !chain.IsCoinObjectType(info.Type) {
			continue
		}
		if wantType != "" && info.Type != wantType {
			continue
		}
		ids = append(ids, info.ObjectID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	reads, err := c.GetObjectBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	coins := make([]chain.Coin, 0, len(reads))
	for _, read := range reads {
		if !read.Exists() {
			continue
		}
		coins = append(coins, chain.Coin{
			ObjectID: read.Details.Reference.ObjectID,
			CoinType: coinTypeArg(read.Details.Data.Type),
			Balance:  balanceField(read.Details.Data.Fields),
		})
	}
	return coins, nil
}

// GetTransactionsForAddress implements chain.Provider. Inbound and
// outbound digests are queried separately and concatenated; callers own
// deduplication.
func (c *Client) GetTransactionsForAddress(ctx context.Context, address string) ([]string, error) {
	to, err := c.transactionDigests(ctx, "sui_getTransactionsToAddress", address)
	if err != nil {
		return nil, err
	}
	from, err := c.transactionDigests(ctx, "sui_getTransactionsFromAddress", address)
	if err != nil {
		return nil, err
	}
	return append(to, from...), nil
}

func (c *Client) transactionDigests(ctx context.Context, method, address string) ([]string, error) {
	result, err := c.call(ctx, method, address)
	if err != nil {
		return nil, err
	}

	// Digests arrive as [sequence, digest] pairs.
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal(result, &pairs); err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "parsing digests for %s", address)
	}

	digests := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		var digest string
		if err := json.Unmarshal(pair[1], &digest); err != nil {
			return nil, emberr.WrapAs(ErrRPCResponse, err, "parsing digest for %s", address)
		}
		digests = append(digests, digest)
	}
	return digests, nil
}

// GetTransactionWithEffects implements chain.Provider.
func (c *Client) GetTransactionWithEffects(ctx context.Context, digest string) (*chain.TransactionResponse, error) {
	result, err := c.call(ctx, "sui_getTransaction", digest)
	if err != nil {
		return nil, err
	}

	var tx chain.TransactionResponse
	if err := json.Unmarshal(result, &tx); err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "parsing transaction %s", digest)
	}
	return &tx, nil
}

// DryRunTransaction implements chain.Provider.
func (c *Client) DryRunTransaction(ctx context.Context, txBytes string) (*chain.TransactionEffects, error) {
	result, err := c.call(ctx, "sui_dryRunTransaction", txBytes)
	if err != nil {
		return nil, err
	}

	var effects chain.TransactionEffects
	if err := json.Unmarshal(result, &effects); err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "parsing dry-run effects")
	}
	return &effects, nil
}

// ExecuteTransaction implements chain.Provider.
func (c *Client) ExecuteTransaction(ctx context.Context, txBytes, sigScheme, signature, publicKey string) (*chain.TransactionResponse, error) {
	result, err := c.call(ctx, "sui_executeTransaction", txBytes, sigScheme, signature, publicKey)
	if err != nil {
		return nil, err
	}

	var resp executeResponse
	if err := json.Unmarshal(result, &resp); err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "parsing execution response")
	}
	return &chain.TransactionResponse{
		Certificate: resp.EffectsCert.Certificate,
		Effects:     resp.EffectsCert.Effects.Effects,
		TimestampMs: resp.TimestampMs,
	}, nil
}

// executeResponse is the node's certified-effects envelope.
type executeResponse struct {
	EffectsCert struct {
		Certificate json.RawMessage `json:"certificate"`
		Effects     struct {
			Effects chain.TransactionEffects `json:"effects"`
		} `json:"effects"`
	} `json:"EffectsCert"`
	TimestampMs int64 `json:"timestamp_ms"`
}

// RequestFaucet implements chain.Provider.
func (c *Client) RequestFaucet(ctx context.Context, address string) error {
	body, err := json.Marshal(map[string]any{
		"FixedAmountRequest": map[string]string{"recipient": address},
	})
	if err != nil {
		return fmt.Errorf("marshaling faucet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.faucetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating faucet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return emberr.WrapAs(ErrFaucetRequest, err, "requesting funds for %s", address)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return emberr.Wrap(ErrFaucetRequest, "requesting funds for %s: HTTP %d", address, resp.StatusCode)
	}
	return nil
}

// Serialize implements chain.Serializer by delegating intent encoding to
// the node's transaction-builder endpoints.
func (c *Client) Serialize(ctx context.Context, sender string, tx chain.Transaction) ([]byte, error) {
	var (
		method string
		params []any
	)

	switch t := tx.(type) {
	case *chain.NativeTransfer:
		method = "sui_paySui"
		params = []any{sender, t.InputCoins, t.Recipients, t.Amounts, t.GasBudget}
	case *chain.GenericTransfer:
		method = "sui_pay"
		params = []any{sender, t.InputCoins, t.Recipients, t.Amounts, t.GasPayment, t.GasBudget}
	case chain.MoveCallRequest:
		method = "sui_moveCall"
		params = []any{sender, t.PackageObjectID, t.Module, t.Function, t.TypeArguments, t.Arguments, nil, t.GasBudget}
	case chain.TransferObjectRequest:
		method = "sui_transferObject"
		params = []any{sender, t.ObjectID, nil, t.GasBudget, t.Recipient}
	default:
		return nil, emberr.Wrap(emberr.ErrInvalidTransaction, "unsupported intent %T", tx)
	}

	result, err := c.call(ctx, method, params...)
	if err != nil {
		return nil, err
	}

	var encoded struct {
		TxBytes string `json:"txBytes"`
	}
	if err := json.Unmarshal(result, &encoded); err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "parsing %s tx bytes", method)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded.TxBytes)
	if err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "decoding %s tx bytes", method)
	}
	return raw, nil
}

// coinTypeArg extracts T from "0x2::coin::Coin<T>".
func coinTypeArg(objectType string) string {
	inner := objectType
	if len(inner) > len(chain.CoinObjectTypePrefix)+1 && chain.IsCoinObjectType(inner) {
		inner = inner[len(chain.CoinObjectTypePrefix) : len(inner)-1]
	}
	return inner
}

// balanceField reads a coin object's balance, tolerating both numeric and
// string encodings.
func balanceField(fields map[string]any) uint64 {
	switch v := fields["balance"].(type) {
	case float64:
		return uint64(v)
	case string:
		n, _ := strconv.ParseUint(v, 10, 64)
		return n
	case json.Number:
		n, _ := strconv.ParseUint(v.String(), 10, 64)
		return n
	default:
		return 0
	}
}
