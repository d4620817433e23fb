// Package errors provides structured error handling for Ember.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes.
const (
	ExitSuccess    = 0 // Successful execution
	ExitGeneral    = 1 // General/unknown error
	ExitInput      = 2 // Invalid input
	ExitAuth       = 3 // Authentication failed
	ExitNotFound   = 4 // Resource not found
	ExitPermission = 5 // Permission denied or insufficient funds
)

// EmberError is the structured error type for Ember.
type EmberError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *EmberError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EmberError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for EmberError.
func (e *EmberError) Is(target error) bool {
	var t *EmberError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &EmberError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &EmberError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// ErrInsufficientFunds indicates coin selection exhausted all owned
	// coins below the requested target.
	ErrInsufficientFunds = &EmberError{
		Code:     "INSUFFICIENT_FUNDS",
		Message:  "insufficient funds for transaction",
		ExitCode: ExitPermission,
	}

	// ErrGasSelectionFailed indicates no eligible coin of the native asset
	// remained to pay gas. Distinct from ErrInsufficientFunds so callers
	// can message "need gas" vs "need funds".
	ErrGasSelectionFailed = &EmberError{
		Code:       "GAS_SELECTION_FAILED",
		Message:    "no coin available to pay gas",
		Suggestion: "fund the account with a separate native coin for gas",
		ExitCode:   ExitPermission,
	}

	// ErrMaxAccountsExceeded indicates an account index at or beyond the
	// derivation bound.
	ErrMaxAccountsExceeded = &EmberError{
		Code:     "MAX_ACCOUNTS_EXCEEDED",
		Message:  "maximum number of accounts reached",
		ExitCode: ExitInput,
	}

	// ErrRemoteQueryFailed indicates a provider or signer capability call
	// failed and the result cannot be produced.
	ErrRemoteQueryFailed = &EmberError{
		Code:     "REMOTE_QUERY_FAILED",
		Message:  "remote query failed",
		ExitCode: ExitGeneral,
	}

	// Wallet-specific errors.
	ErrWalletNotFound = &EmberError{
		Code:     "WALLET_NOT_FOUND",
		Message:  "wallet not found",
		ExitCode: ExitNotFound,
	}

	ErrWalletExists = &EmberError{
		Code:     "WALLET_EXISTS",
		Message:  "wallet already exists",
		ExitCode: ExitInput,
	}

	ErrInvalidMnemonic = &EmberError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrDecryptionFailed = &EmberError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong password or corrupted file",
		ExitCode: ExitAuth,
	}

	// Chain-specific errors.
	ErrInvalidAddress = &EmberError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address format",
		ExitCode: ExitInput,
	}

	ErrInvalidAmount = &EmberError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount format",
		ExitCode: ExitInput,
	}

	ErrTxRejected = &EmberError{
		Code:     "TX_REJECTED",
		Message:  "transaction rejected by network",
		ExitCode: ExitGeneral,
	}

	ErrObjectNotFound = &EmberError{
		Code:     "OBJECT_NOT_FOUND",
		Message:  "object not found",
		ExitCode: ExitNotFound,
	}

	// Config-specific errors.
	ErrConfigNotFound = &EmberError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &EmberError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrInvalidTransaction = &EmberError{
		Code:     "INVALID_TRANSACTION",
		Message:  "invalid transaction",
		ExitCode: ExitInput,
	}
)

// New creates a new EmberError with the given code and message.
func New(code, message string) *EmberError {
	return &EmberError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ee *EmberError
	if errors.As(err, &ee) {
		return &EmberError{
			Code:       ee.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ee.Message),
			Details:    ee.Details,
			Suggestion: ee.Suggestion,
			Cause:      err,
			ExitCode:   ee.ExitCode,
		}
	}

	return &EmberError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WrapAs classifies an error under a sentinel. The result carries the
// sentinel's code, suggestion, and exit code while keeping err as the
// cause, so errors.Is matches both the sentinel and the original error.
func WrapAs(sentinel *EmberError, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)
	return &EmberError{
		Code:       sentinel.Code,
		Message:    fmt.Sprintf("%s: %s", msg, sentinel.Message),
		Details:    sentinel.Details,
		Suggestion: sentinel.Suggestion,
		Cause:      err,
		ExitCode:   sentinel.ExitCode,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ee *EmberError
	if errors.As(err, &ee) {
		return &EmberError{
			Code:       ee.Code,
			Message:    ee.Message,
			Details:    details,
			Suggestion: ee.Suggestion,
			Cause:      ee.Cause,
			ExitCode:   ee.ExitCode,
		}
	}

	return &EmberError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ee *EmberError
	if errors.As(err, &ee) {
		return &EmberError{
			Code:       ee.Code,
			Message:    ee.Message,
			Details:    ee.Details,
			Suggestion: suggestion,
			Cause:      ee.Cause,
			ExitCode:   ee.ExitCode,
		}
	}

	return &EmberError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *EmberError
	if errors.As(err, &ee) {
		return ee.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ee *EmberError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
