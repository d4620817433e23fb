package chain

import "context"

// Provider is the data-provider capability the wallet engine consumes.
// Implementations wrap a remote node; retry and backoff live with the
// transport, not with callers.
type Provider interface {
	// GetObject fetches a single object by id.
	GetObject(ctx context.Context, objectID string) (*ObjectRead, error)

	// GetObjectBatch fetches several objects in one round trip, preserving
	// input order.
	GetObjectBatch(ctx context.Context, objectIDs []string) ([]ObjectRead, error)

	// GetObjectsOwnedByAddress lists objects owned by an address.
	GetObjectsOwnedByAddress(ctx context.Context, address string) ([]ObjectInfo, error)

	// GetObjectsOwnedByObject lists objects owned by another object, used
	// for dynamic-field bag resolution.
	GetObjectsOwnedByObject(ctx context.Context, objectID string) ([]ObjectInfo, error)

	// GetCoinsOwnedByAddress lists coin objects of the given type owned by
	// an address, in the node's return order. An empty coinType lists all
	// coin objects.
	GetCoinsOwnedByAddress(ctx context.Context, address, coinType string) ([]Coin, error)

	// GetTransactionsForAddress lists transaction digests touching an
	// address. Digests may repeat.
	GetTransactionsForAddress(ctx context.Context, address string) ([]string, error)

	// GetTransactionWithEffects fetches a transaction and its effects.
	GetTransactionWithEffects(ctx context.Context, digest string) (*TransactionResponse, error)

	// DryRunTransaction simulates serialized transaction bytes without
	// committing state and returns the computed effects.
	DryRunTransaction(ctx context.Context, txBytes string) (*TransactionEffects, error)

	// ExecuteTransaction submits signed transaction bytes.
	ExecuteTransaction(ctx context.Context, txBytes, sigScheme, signature, publicKey string) (*TransactionResponse, error)

	// RequestFaucet asks the network faucet to fund an address.
	RequestFaucet(ctx context.Context, address string) error
}

// Serializer converts a structural transaction intent into canonical
// transport bytes. Only structural intents are serialized; pre-encoded
// representations bypass it.
type Serializer interface {
	Serialize(ctx context.Context, sender string, tx Transaction) ([]byte, error)
}

// Signer is the signing capability: byte-level signing plus the submit
// helpers that accept built intents.
type Signer interface {
	// Address returns the canonical prefixed-hex address of the key pair.
	Address() string

	// SignBytes signs arbitrary bytes.
	SignBytes(data []byte) ([]byte, error)

	// PaySui submits a native-asset transfer intent.
	PaySui(ctx context.Context, tx *NativeTransfer) (*TransactionResponse, error)

	// Pay submits a generic-asset transfer intent.
	Pay(ctx context.Context, tx *GenericTransfer) (*TransactionResponse, error)

	// MoveCall submits a contract call.
	MoveCall(ctx context.Context, req MoveCallRequest) (*TransactionResponse, error)

	// TransferObject submits a whole-object transfer.
	TransferObject(ctx context.Context, req TransferObjectRequest) (*TransactionResponse, error)
}
