// Package history fetches an address's transactions and classifies each
// successful one into a single dominant human-readable event with a
// signed balance delta.
package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/emberwallet/ember/internal/chain"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Classification kinds.
const (
	KindReceive = "Receive"
	KindSend    = "Send"
)

// Classification labels.
const (
	LabelReceived    = "Received"
	LabelSent        = "Sent"
	LabelAirdrop     = "Airdrop"
	LabelNFTReceived = "NFT Received"
	LabelNFTSent     = "NFT Sent"
	LabelNFTMinted   = "NFT Minted"
)

// dateLayout renders millisecond timestamps as long-form calendar dates,
// e.g. "7 March 2023".
const dateLayout = "2 January 2006"

// Classification is the dominant semantic reading of one transaction.
type Classification struct {
	Kind         string              `json:"type"`
	Label        string              `json:"text"`
	From         string              `json:"from,omitempty"`
	To           string              `json:"to,omitempty"`
	ResourceType string              `json:"resourceType,omitempty"`
	Suffix       string              `json:"changeTextSuffix,omitempty"`
	NFTData      *chain.ObjectDetail `json:"nftData,omitempty"`
}

// Entry is one classified transaction. Immutable once classified.
type Entry struct {
	Digest             string                   `json:"digest"`
	TimestampMs        int64                    `json:"timestamp_ms"`
	Date               string                   `json:"date"`
	TotalBalanceChange int64                    `json:"totalCoinBalanceChange"`
	Classification     Classification           `json:"changeType"`
	Effects            chain.TransactionEffects `json:"effects"`
}

// Classifier turns raw transaction effects into history entries.
type Classifier struct {
	provider chain.Provider
}

// NewClassifier creates a history classifier backed by the provider.
func NewClassifier(provider chain.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify fetches the address's transaction digests, deduplicates them,
// retrieves effects concurrently, and classifies every successful
// transaction. Failed transactions are excluded from the result, not
// surfaced as errors. Any remote failure fails the whole call; no partial
// history is returned. Entries come back sorted by timestamp descending,
// with provider order preserved between equal timestamps.
func (c *Classifier) Classify(ctx context.Context, address string) ([]Entry, error) {
	digests, err := c.provider.GetTransactionsForAddress(ctx, address)
	if err != nil {
		return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "listing transactions for %s", address)
	}

	unique := dedupe(digests)

	// One slot per digest so concurrent branches never share state.
	entries := make([]*Entry, len(unique))
	errs := make([]error, len(unique))

	var wg sync.WaitGroup
	for i, digest := range unique {
		wg.Add(1)
		go func(i int, digest string) {
			defer wg.Done()
			entries[i], errs[i] = c.classifyDigest(ctx, address, digest)
		}(i, digest)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			result = append(result, *e)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TimestampMs > result[j].TimestampMs
	})
	return result, nil
}

// classifyDigest fetches one transaction and classifies it. Returns nil
// without error when the transaction did not execute successfully.
func (c *Classifier) classifyDigest(ctx context.Context, address, digest string) (*Entry, error) {
	tx, err := c.provider.GetTransactionWithEffects(ctx, digest)
	if err != nil {
		return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "fetching transaction %s", digest)
	}
	if tx.Effects.Status.Status != chain.ExecutionStatusSuccess {
		return nil, nil
	}

	entry := &Entry{
		Digest:      digest,
		TimestampMs: tx.TimestampMs,
		Date:        time.UnixMilli(tx.TimestampMs).UTC().Format(dateLayout),
		Effects:     tx.Effects,
	}

	c.applyBalanceChanges(address, tx.Effects.Events, entry)
	if err := c.applyObjectTransfers(ctx, address, tx.Effects.Events, entry); err != nil {
		return nil, err
	}
	if err := c.applyMints(ctx, tx.Effects.Events, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// applyBalanceChanges accumulates fungible deltas and sets the initial
// classification. The first qualifying receive fixes the label; receives
// take precedence over sends.
func (c *Classifier) applyBalanceChanges(address string, events []chain.Event, entry *Entry) {
	for _, ev := range events {
		bc := ev.CoinBalanceChange
		if bc == nil || bc.Owner.AddressOwner != address ||
			bc.ChangeType == chain.ChangeTypeGas || bc.Amount < 0 {
			continue
		}
		entry.TotalBalanceChange += bc.Amount
		if entry.Classification.Kind != "" {
			continue
		}
		label := LabelReceived
		if bc.Sender == chain.AirdropSender {
			label = LabelAirdrop
		}
		entry.Classification = Classification{
			Kind:         KindReceive,
			Label:        label,
			From:         bc.Sender,
			To:           bc.Owner.AddressOwner,
			ResourceType: bc.CoinType,
			Suffix:       " " + chain.CoinSymbol(bc.CoinType),
		}
	}

	for _, ev := range events {
		bc := ev.CoinBalanceChange
		if bc == nil || bc.Sender != address ||
			bc.ChangeType == chain.ChangeTypeGas || bc.ChangeType == chain.ChangeTypePay {
			continue
		}
		entry.TotalBalanceChange += bc.Amount
		if entry.Classification.Kind != "" {
			continue
		}
		entry.Classification = Classification{
			Kind:         KindSend,
			Label:        LabelSent,
			From:         bc.Sender,
			To:           bc.Owner.AddressOwner,
			ResourceType: bc.CoinType,
			Suffix:       " " + chain.CoinSymbol(bc.CoinType),
		}
	}
}

// applyObjectTransfers overrides the classification for NFT transfers.
// Object-level transfers outrank raw balance deltas, so both the label
// and the numeric delta are replaced.
func (c *Classifier) applyObjectTransfers(ctx context.Context, address string, events []chain.Event, entry *Entry) error {
	var transfers []*chain.TransferObjectEvent
	for _, ev := range events {
		if ev.TransferObject != nil && ev.TransferObject.ObjectType == chain.DevnetNFTType {
			transfers = append(transfers, ev.TransferObject)
		}
	}
	if len(transfers) == 0 {
		return nil
	}

	ids := make([]string, len(transfers))
	for i, t := range transfers {
		ids[i] = t.ObjectID
	}
	details, err := c.objectDetails(ctx, ids)
	if err != nil {
		return err
	}

	for i, t := range transfers {
		received := t.Recipient.AddressOwner == address
		kind, label := KindSend, LabelNFTSent
		delta := int64(-1)
		if received {
			kind, label = KindReceive, LabelNFTReceived
			delta = 1
		}
		entry.Classification = Classification{
			Kind:         kind,
			Label:        label,
			From:         t.Sender,
			To:           t.Recipient.AddressOwner,
			ResourceType: t.ObjectType,
			Suffix:       " " + objectName(details[i]),
			NFTData:      details[i],
		}
		entry.TotalBalanceChange = delta
	}
	return nil
}

// applyMints overrides the classification for NFT mints. A mint outranks
// every other reading of the same transaction.
func (c *Classifier) applyMints(ctx context.Context, events []chain.Event, entry *Entry) error {
	var mints []*chain.MoveEvent
	for _, ev := range events {
		if ev.MoveEvent != nil && ev.MoveEvent.Type == chain.MintNFTEventType {
			mints = append(mints, ev.MoveEvent)
		}
	}
	if len(mints) == 0 {
		return nil
	}

	ids := make([]string, len(mints))
	for i, m := range mints {
		id, _ := m.Fields["object_id"].(string)
		ids[i] = id
	}
	details, err := c.objectDetails(ctx, ids)
	if err != nil {
		return err
	}

	for i, m := range mints {
		entry.Classification = Classification{
			Kind:         KindReceive,
			Label:        LabelNFTMinted,
			ResourceType: m.Type,
			Suffix:       " " + objectName(details[i]),
			NFTData:      details[i],
		}
		entry.TotalBalanceChange = 1
	}
	return nil
}

// objectDetails fetches object details concurrently, one slot per id.
// Missing objects yield a nil detail, not an error.
func (c *Classifier) objectDetails(ctx context.Context, ids []string) ([]*chain.ObjectDetail, error) {
	details := make([]*chain.ObjectDetail, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			read, err := c.provider.GetObject(ctx, id)
			if err != nil {
				errs[i] = emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "fetching object %s", id)
				return
			}
			if read.Exists() {
				detail := read.Details
				details[i] = &detail
			}
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return details, nil
}

// objectName extracts the display name field of an object detail.
func objectName(detail *chain.ObjectDetail) string {
	if detail == nil {
		return ""
	}
	name, _ := detail.Data.Fields["name"].(string)
	return name
}

// dedupe removes repeated digests, keeping first-occurrence order.
func dedupe(digests []string) []string {
	seen := make(map[string]bool, len(digests))
	unique := make([]string, 0, len(digests))
	for _, d := range digests {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}
	return unique
}
