package chain

import (
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Transaction is any of the three accepted transaction representations:
// a structural intent, a pre-encoded base64 string, or raw bytes.
type Transaction interface {
	transaction()
}

// EncodedTransaction is an already-serialized transaction in the canonical
// base64 form. Normalization passes it through unchanged.
type EncodedTransaction string

// RawTransaction is a raw serialized byte buffer. Normalization encodes it
// directly without structural serialization.
type RawTransaction []byte

// NativeTransfer is a transfer of the native asset. Gas is deducted from
// the input coins themselves; there is no separate gas object.
type NativeTransfer struct {
	InputCoins []string `json:"inputCoins"`
	Recipients []string `json:"recipients"`
	Amounts    []uint64 `json:"amounts"`
	GasBudget  uint64   `json:"gasBudget"`
}

// GenericTransfer is a transfer of a non-native asset. Gas is paid from a
// distinct native coin object disjoint from the input coins.
type GenericTransfer struct {
	InputCoins []string `json:"inputCoins"`
	Recipients []string `json:"recipients"`
	Amounts    []uint64 `json:"amounts"`
	GasPayment string   `json:"gasPayment"`
	GasBudget  uint64   `json:"gasBudget"`
}

func (EncodedTransaction) transaction()    {}
func (RawTransaction) transaction()        {}
func (*NativeTransfer) transaction()       {}
func (*GenericTransfer) transaction()      {}
func (MoveCallRequest) transaction()       {}
func (TransferObjectRequest) transaction() {}

// Validate checks the intent shape: one amount per recipient and at least
// one input coin.
func (t *NativeTransfer) Validate() error {
	if len(t.InputCoins) == 0 {
		return emberr.Wrap(emberr.ErrInvalidTransaction, "no input coins")
	}
	if len(t.Recipients) != len(t.Amounts) {
		return emberr.Wrap(emberr.ErrInvalidTransaction,
			"recipients (%d) and amounts (%d) mismatch", len(t.Recipients), len(t.Amounts))
	}
	return nil
}

// Validate checks the intent shape and that the gas payment is disjoint
// from the input coins.
func (t *GenericTransfer) Validate() error {
	if len(t.InputCoins) == 0 {
		return emberr.Wrap(emberr.ErrInvalidTransaction, "no input coins")
	}
	if len(t.Recipients) != len(t.Amounts) {
		return emberr.Wrap(emberr.ErrInvalidTransaction,
			"recipients (%d) and amounts (%d) mismatch", len(t.Recipients), len(t.Amounts))
	}
	if t.GasPayment == "" {
		return emberr.Wrap(emberr.ErrInvalidTransaction, "missing gas payment")
	}
	for _, id := range t.InputCoins {
		if id == t.GasPayment {
			return emberr.Wrap(emberr.ErrInvalidTransaction,
				"gas payment %s overlaps input coins", t.GasPayment)
		}
	}
	return nil
}
