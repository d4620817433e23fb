package chain

import "encoding/json"

// Coin is a read-only projection of a remote coin object. Selection only
// reads and aggregates; balances are never mutated locally.
type Coin struct {
	ObjectID string `json:"objectId"`
	CoinType string `json:"coinType"`
	Balance  uint64 `json:"balance"`
}

// TotalBalance sums the balances of a coin set.
func TotalBalance(coins []Coin) uint64 {
	var total uint64
	for _, c := range coins {
		total += c.Balance
	}
	return total
}

// ObjectIDs extracts the object ids of a coin set in order.
func ObjectIDs(coins []Coin) []string {
	ids := make([]string, len(coins))
	for i, c := range coins {
		ids[i] = c.ObjectID
	}
	return ids
}

// ObjectInfo is a reference to an owned object as returned by the
// owned-by-address and owned-by-object listings.
type ObjectInfo struct {
	ObjectID string `json:"objectId"`
	Version  uint64 `json:"version"`
	Digest   string `json:"digest"`
	Type     string `json:"type"`
}

// Owner identifies the owner of an object or balance change. Exactly one
// field is set.
type Owner struct {
	AddressOwner string `json:"AddressOwner,omitempty"`
	ObjectOwner  string `json:"ObjectOwner,omitempty"`
}

// ObjectRef is a versioned reference to an on-chain object.
type ObjectRef struct {
	ObjectID string `json:"objectId"`
	Version  uint64 `json:"version"`
	Digest   string `json:"digest"`
}

// MoveObject is the structured payload of an on-chain object: its encoded
// type string and decoded field map.
type MoveObject struct {
	DataType string         `json:"dataType"`
	Type     string         `json:"type"`
	Fields   map[string]any `json:"fields"`
}

// ObjectDetail combines an object's data with its owner and reference.
type ObjectDetail struct {
	Data      MoveObject `json:"data"`
	Owner     Owner      `json:"owner"`
	Reference ObjectRef  `json:"reference"`
}

// ObjectRead is the result of an object lookup: a status plus the detail
// when the object exists.
type ObjectRead struct {
	Status  string       `json:"status"`
	Details ObjectDetail `json:"details"`
}

// Exists reports whether the looked-up object exists.
func (o *ObjectRead) Exists() bool {
	return o.Status == ObjectStatusExists
}

// CoinBalanceChangeEvent records a fungible balance delta.
type CoinBalanceChangeEvent struct {
	Sender     string `json:"sender"`
	ChangeType string `json:"changeType"`
	Owner      Owner  `json:"owner"`
	CoinType   string `json:"coinType"`
	Amount     int64  `json:"amount"`
}

// TransferObjectEvent records an object changing owners.
type TransferObjectEvent struct {
	Sender     string `json:"sender"`
	Recipient  Owner  `json:"recipient"`
	ObjectType string `json:"objectType"`
	ObjectID   string `json:"objectId"`
}

// MoveEvent is an application-level event emitted by a contract call.
type MoveEvent struct {
	Type   string         `json:"type"`
	Fields map[string]any `json:"fields"`
}

// Event is a tagged union; exactly one member is non-nil.
type Event struct {
	CoinBalanceChange *CoinBalanceChangeEvent `json:"coinBalanceChange,omitempty"`
	TransferObject    *TransferObjectEvent    `json:"transferObject,omitempty"`
	MoveEvent         *MoveEvent              `json:"moveEvent,omitempty"`
}

// ExecutionStatus is the outcome of executing a transaction.
type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// TransactionEffects are the remote-computed consequences of a
// transaction, committed or simulated.
type TransactionEffects struct {
	Status            ExecutionStatus `json:"status"`
	TransactionDigest string          `json:"transactionDigest,omitempty"`
	Events            []Event         `json:"events,omitempty"`
	GasUsed           json.RawMessage `json:"gasUsed,omitempty"`
}

// TransactionResponse is a transaction with its effects and timestamp.
type TransactionResponse struct {
	Certificate json.RawMessage    `json:"certificate,omitempty"`
	Effects     TransactionEffects `json:"effects"`
	TimestampMs int64              `json:"timestamp_ms"`
}

// Digest returns the transaction digest recorded in the effects.
func (t *TransactionResponse) Digest() string {
	return t.Effects.TransactionDigest
}

// MoveCallRequest describes a contract call for submission.
type MoveCallRequest struct {
	PackageObjectID string   `json:"packageObjectId"`
	Module          string   `json:"module"`
	Function        string   `json:"function"`
	TypeArguments   []string `json:"typeArguments"`
	Arguments       []any    `json:"arguments"`
	GasBudget       uint64   `json:"gasBudget"`
}

// TransferObjectRequest describes a whole-object transfer for submission.
type TransferObjectRequest struct {
	ObjectID  string `json:"objectId"`
	Recipient string `json:"recipient"`
	GasBudget uint64 `json:"gasBudget"`
}
