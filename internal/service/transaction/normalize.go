package transaction

import (
	"context"
	"encoding/base64"

	"github.com/emberwallet/ember/internal/chain"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Normalize converts any accepted transaction representation into the
// canonical base64 form submitted to the node.
//
// An already-encoded transaction passes through unchanged, raw bytes are
// base64-encoded, and structural intents are serialized for sender first.
// Equivalent inputs in different forms normalize to the same string.
func Normalize(ctx context.Context, serializer chain.Serializer, sender string, tx chain.Transaction) (string, error) {
	switch t := tx.(type) {
	case chain.EncodedTransaction:
		if t == "" {
			return "", emberr.Wrap(emberr.ErrInvalidTransaction, "empty encoded transaction")
		}
		return string(t), nil
	case chain.RawTransaction:
		if len(t) == 0 {
			return "", emberr.Wrap(emberr.ErrInvalidTransaction, "empty transaction bytes")
		}
		return base64.StdEncoding.EncodeToString(t), nil
	case nil:
		return "", emberr.Wrap(emberr.ErrInvalidTransaction, "nil transaction")
	default:
		raw, err := serializer.Serialize(ctx, sender, tx)
		if err != nil {
			return "", emberr.Wrap(err, "serializing transaction for %s", sender)
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	}
}
