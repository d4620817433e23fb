package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emberr "github.com/emberwallet/ember/pkg/errors"
)

var errRootCause = errors.New("root cause")

func TestExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"success", nil, emberr.ExitSuccess},
		{"general error", emberr.ErrGeneral, emberr.ExitGeneral},
		{"input error", emberr.ErrInvalidInput, emberr.ExitInput},
		{"decryption error", emberr.ErrDecryptionFailed, emberr.ExitAuth},
		{"wallet not found", emberr.ErrWalletNotFound, emberr.ExitNotFound},
		{"insufficient funds", emberr.ErrInsufficientFunds, emberr.ExitPermission},
		{"gas selection failed", emberr.ErrGasSelectionFailed, emberr.ExitPermission},
		{"max accounts", emberr.ErrMaxAccountsExceeded, emberr.ExitInput},
		{"remote query", emberr.ErrRemoteQueryFailed, emberr.ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code := emberr.ExitCode(tt.err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	t.Parallel()
	// Wrapping preserves error identity
	wrapped := emberr.Wrap(emberr.ErrInsufficientFunds, "selecting coins")
	require.ErrorIs(t, wrapped, emberr.ErrInsufficientFunds)

	wrapped = emberr.Wrap(emberr.ErrGasSelectionFailed, "building transfer")
	require.ErrorIs(t, wrapped, emberr.ErrGasSelectionFailed)

	wrapped = emberr.Wrap(emberr.ErrRemoteQueryFailed, "fetching effects")
	require.ErrorIs(t, wrapped, emberr.ErrRemoteQueryFailed)

	wrapped = emberr.Wrap(emberr.ErrMaxAccountsExceeded, "creating account")
	require.ErrorIs(t, wrapped, emberr.ErrMaxAccountsExceeded)
}

func TestGasSelectionDistinctFromInsufficientFunds(t *testing.T) {
	t.Parallel()
	// Callers rely on the two selection failures being distinguishable.
	require.NotErrorIs(t, emberr.ErrGasSelectionFailed, emberr.ErrInsufficientFunds)
	require.NotErrorIs(t, emberr.ErrInsufficientFunds, emberr.ErrGasSelectionFailed)
	assert.NotEqual(t, emberr.Code(emberr.ErrGasSelectionFailed), emberr.Code(emberr.ErrInsufficientFunds))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err      error
		expected string
	}{
		{emberr.ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
		{emberr.ErrGasSelectionFailed, "GAS_SELECTION_FAILED"},
		{emberr.ErrMaxAccountsExceeded, "MAX_ACCOUNTS_EXCEEDED"},
		{emberr.ErrRemoteQueryFailed, "REMOTE_QUERY_FAILED"},
		{emberr.ErrInvalidMnemonic, "INVALID_MNEMONIC"},
		{errRootCause, "GENERAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, emberr.Code(tt.err))
		})
	}
}

func TestWrapPlainError(t *testing.T) {
	t.Parallel()
	wrapped := emberr.Wrap(errRootCause, "context %s", "here")
	require.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "context here")
	require.ErrorIs(t, wrapped, errRootCause)
	assert.Equal(t, emberr.ExitGeneral, emberr.ExitCode(wrapped))
}

func TestWrapAsKeepsCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("dial tcp 127.0.0.1:9000: connection refused")
	err := emberr.WrapAs(emberr.ErrRemoteQueryFailed, cause, "listing coins for %s", "0xabc")

	// Classified under the sentinel without losing the underlying failure.
	require.ErrorIs(t, err, emberr.ErrRemoteQueryFailed)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "REMOTE_QUERY_FAILED", emberr.Code(err))
	assert.Equal(t, emberr.ExitGeneral, emberr.ExitCode(err))
	assert.Contains(t, err.Error(), "listing coins for 0xabc")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapAsNil(t *testing.T) {
	t.Parallel()
	require.NoError(t, emberr.WrapAs(emberr.ErrRemoteQueryFailed, nil, "ignored"))
}

func TestWrapNil(t *testing.T) {
	t.Parallel()
	require.NoError(t, emberr.Wrap(nil, "ignored"))
	require.NoError(t, emberr.WithDetails(nil, map[string]string{"k": "v"}))
	require.NoError(t, emberr.WithSuggestion(nil, "ignored"))
}

func TestDetailsDeterministicOrder(t *testing.T) {
	t.Parallel()
	err := emberr.WithDetails(emberr.ErrInsufficientFunds, map[string]string{
		"target": "100",
		"have":   "40",
	})
	// Keys are sorted, so "have" renders before "target".
	assert.Equal(t,
		"insufficient funds for transaction (have: 40) (target: 100)",
		err.Error())
}

func TestWithSuggestion(t *testing.T) {
	t.Parallel()
	err := emberr.WithSuggestion(emberr.ErrInvalidMnemonic, "check word 3")
	var ee *emberr.EmberError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "check word 3", ee.Suggestion)
	require.ErrorIs(t, err, emberr.ErrInvalidMnemonic)
}
