package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emberr "github.com/emberwallet/ember/pkg/errors"
)

func TestFormatErrorJSONStructured(t *testing.T) {
	t.Parallel()

	err := emberr.WithSuggestion(emberr.ErrWalletNotFound, "list wallets with: ember wallet list")

	var buf bytes.Buffer
	require.NoError(t, FormatError(&buf, err, FormatJSON))

	var out ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "WALLET_NOT_FOUND", out.Error.Code)
	assert.Equal(t, "list wallets with: ember wallet list", out.Error.Suggestion)
	assert.Equal(t, emberr.ExitNotFound, out.Error.ExitCode)
}

func TestFormatErrorJSONGeneric(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatError(&buf, errors.New("boom"), FormatJSON))

	var out ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "GENERAL_ERROR", out.Error.Code)
	assert.Equal(t, "boom", out.Error.Message)
	assert.Equal(t, emberr.ExitGeneral, out.Error.ExitCode)
}

func TestFormatErrorText(t *testing.T) {
	t.Parallel()

	err := emberr.WithDetails(emberr.ErrInsufficientFunds, map[string]string{
		"required": "1055",
	})
	err = emberr.WithSuggestion(err, "request devnet funds with: ember airdrop")

	var buf bytes.Buffer
	require.NoError(t, FormatError(&buf, err, FormatText))

	got := buf.String()
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "required: 1055")
	assert.Contains(t, got, "Suggestion: request devnet funds")
}

func TestFormatErrorNil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatError(&buf, nil, FormatText))
	assert.Empty(t, buf.String())
}

func TestFormatSuccess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatSuccess(&buf, "done", FormatJSON))
	assert.JSONEq(t, `{"status":"success","message":"done"}`, buf.String())

	buf.Reset()
	require.NoError(t, FormatSuccess(&buf, "done", FormatText))
	assert.Equal(t, "done\n", buf.String())
}
