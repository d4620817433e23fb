// Package sui implements the provider and serializer capabilities
// against a Sui fullnode's JSON-RPC 2.0 API.
package sui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/emberwallet/ember/internal/chain"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

var (
	// ErrRPCRequest indicates an RPC request failed.
	ErrRPCRequest = &emberr.EmberError{
		Code:     "RPC_REQUEST_FAILED",
		Message:  "RPC request failed",
		ExitCode: emberr.ExitGeneral,
	}

	// ErrRPCResponse indicates an invalid RPC response.
	ErrRPCResponse = &emberr.EmberError{
		Code:     "RPC_INVALID_RESPONSE",
		Message:  "invalid RPC response",
		ExitCode: emberr.ExitGeneral,
	}

	// ErrFaucetRequest indicates a faucet request failed.
	ErrFaucetRequest = &emberr.EmberError{
		Code:     "FAUCET_REQUEST_FAILED",
		Message:  "faucet request failed",
		ExitCode: emberr.ExitGeneral,
	}
)

// rpcClient is a minimal JSON-RPC 2.0 client.
type rpcClient struct {
	url        string
	httpClient *http.Client
	idCounter  atomic.Uint64
}

func newRPCClient(url string, httpClient *http.Client) *rpcClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &rpcClient{url: url, httpClient: httpClient}
}

// request represents a JSON-RPC 2.0 request.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

// response represents a JSON-RPC 2.0 response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError represents a JSON-RPC error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Call performs a JSON-RPC call.
func (c *rpcClient) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.idCounter.Add(1),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, emberr.WrapAs(ErrRPCRequest, err, "calling %s", method)
	}
	// Body.Close error is intentionally ignored as it only fails if the
	// connection is already broken, and there's no recovery action.
	defer func() { _ = httpResp.Body.Close() }()

	if err := statusError(httpResp.StatusCode, method); err != nil {
		return nil, err
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var resp response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, emberr.WrapAs(ErrRPCResponse, err, "unmarshaling %s response", method)
	}

	if resp.Error != nil {
		return nil, resp.Error
	}

	return resp.Result, nil
}

// statusError maps throttling and transient server statuses onto the
// retryable sentinels so the retry layer re-issues the call.
func statusError(status int, method string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return emberr.Wrap(chain.ErrRateLimited, "calling %s", method)
	case status >= http.StatusInternalServerError:
		return emberr.Wrap(chain.ErrRetryable, "calling %s: HTTP %d", method, status)
	case status != http.StatusOK:
		return emberr.Wrap(ErrRPCRequest, "calling %s: HTTP %d", method, status)
	}
	return nil
}
