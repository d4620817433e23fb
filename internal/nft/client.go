package nft

import (
	"context"
	"sync"

	"github.com/emberwallet/ember/internal/chain"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// Defaults for example mints.
const (
	DefaultName        = "Example NFT"
	DefaultDescription = "An NFT created by Sui Wallet"
	DefaultImageURL    = "ipfs://QmZPWWy5Si54R3d26toaqRiqvCH7HkGdXkxwUgCm2oKKM2?filename=img-sq-01.png"
)

// Submitter is the slice of the signing capability the client needs for
// mints and transfers.
type Submitter interface {
	MoveCall(ctx context.Context, req chain.MoveCallRequest) (*chain.TransactionResponse, error)
	TransferObject(ctx context.Context, req chain.TransferObjectRequest) (*chain.TransactionResponse, error)
}

// AssetView pairs a recognized asset with the descriptive fields resolved
// from its bag.
type AssetView struct {
	Asset  *Asset            `json:"nft"`
	Fields DescriptiveFields `json:"fields"`
}

// Client resolves asset-wrapper objects and their attached metadata.
type Client struct {
	provider chain.Provider
}

// NewClient creates an NFT client backed by the provider.
func NewClient(provider chain.Provider) *Client {
	return &Client{provider: provider}
}

// ParseObjects runs the asset-wrapper parser over a fetched object set,
// keeping only recognized assets.
func (c *Client) ParseObjects(objects []chain.ObjectRead) []*Asset {
	var assets []*Asset
	for i := range objects {
		if a := ParseAsset(&objects[i]); a != nil {
			assets = append(assets, a)
		}
	}
	return assets
}

// FetchAndParseByID batch-fetches objects by id and parses them.
func (c *Client) FetchAndParseByID(ctx context.Context, ids []string) ([]*Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	objects, err := c.provider.GetObjectBatch(ctx, ids)
	if err != nil {
		return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "fetching %d objects", len(ids))
	}
	return c.ParseObjects(objects), nil
}

// BagContent lists the objects owned by a bag and fetches them in one
// batched call.
func (c *Client) BagContent(ctx context.Context, bagID string) ([]chain.ObjectRead, error) {
	bagObjects, err := c.provider.GetObjectsOwnedByObject(ctx, bagID)
	if err != nil {
		return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "listing bag %s", bagID)
	}
	if len(bagObjects) == 0 {
		return nil, nil
	}

	ids := make([]string, len(bagObjects))
	for i, o := range bagObjects {
		ids[i] = o.ObjectID
	}
	objects, err := c.provider.GetObjectBatch(ctx, ids)
	if err != nil {
		return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "fetching bag %s content", bagID)
	}
	return objects, nil
}

// AssetsByID resolves ids into asset views: parse, then resolve each
// asset's bag concurrently and fold the domains into descriptive fields,
// joined back to the asset by id.
func (c *Client) AssetsByID(ctx context.Context, ids []string) ([]AssetView, error) {
	assets, err := c.FetchAndParseByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	return c.resolveViews(ctx, assets)
}

// AssetsFromObjects is AssetsByID over already-fetched objects.
func (c *Client) AssetsFromObjects(ctx context.Context, objects []chain.ObjectRead) ([]AssetView, error) {
	return c.resolveViews(ctx, c.ParseObjects(objects))
}

func (c *Client) resolveViews(ctx context.Context, assets []*Asset) ([]AssetView, error) {
	views := make([]AssetView, len(assets))
	errs := make([]error, len(assets))

	var wg sync.WaitGroup
	for i, asset := range assets {
		wg.Add(1)
		go func(i int, asset *Asset) {
			defer wg.Done()
			content, err := c.BagContent(ctx, asset.BagID)
			if err != nil {
				errs[i] = err
				return
			}
			views[i] = AssetView{Asset: asset, Fields: ParseDomains(content)}
		}(i, asset)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return views, nil
}

// MintExample mints a devnet example NFT. Empty arguments fall back to
// the stock name, description, and image.
func (c *Client) MintExample(ctx context.Context, submitter Submitter, name, description, imageURL string) (*chain.TransactionResponse, error) {
	if name == "" {
		name = DefaultName
	}
	if description == "" {
		description = DefaultDescription
	}
	if imageURL == "" {
		imageURL = DefaultImageURL
	}

	return submitter.MoveCall(ctx, chain.MoveCallRequest{
		PackageObjectID: "0x2",
		Module:          "devnet_nft",
		Function:        "mint",
		TypeArguments:   []string{},
		Arguments:       []any{name, description, imageURL},
		GasBudget:       chain.DefaultNFTGasBudget,
	})
}

// Transfer sends a whole NFT object to a recipient. gasBudget zero
// selects the NFT default.
func (c *Client) Transfer(ctx context.Context, submitter Submitter, nftID, recipient string, gasBudget uint64) (*chain.TransactionResponse, error) {
	if gasBudget == 0 {
		gasBudget = chain.DefaultNFTGasBudget
	}
	return submitter.TransferObject(ctx, chain.TransferObjectRequest{
		ObjectID:  nftID,
		Recipient: recipient,
		GasBudget: gasBudget,
	})
}

// ListOwned returns the NFT-like objects owned by an address: plain
// objects carrying a url or metadata field, plus bag-backed assets with
// their resolved descriptive fields merged into the object's field map.
func (c *Client) ListOwned(ctx context.Context, address string) ([]chain.ObjectRead, error) {
	infos, err := c.provider.GetObjectsOwnedByAddress(ctx, address)
	if err != nil {
		return nil, emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "listing objects for %s", address)
	}
	if len(infos) == 0 {
		return nil, nil
	}

	reads := make([]chain.ObjectRead, len(infos))
	errs := make([]error, len(infos))
	var wg sync.WaitGroup
	for i, info := range infos {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			read, err := c.provider.GetObject(ctx, id)
			if err != nil {
				errs[i] = emberr.WrapAs(emberr.ErrRemoteQueryFailed, err, "fetching object %s", id)
				return
			}
			reads[i] = *read
		}(i, info.ObjectID)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var nfts []chain.ObjectRead
	var bagBacked []chain.ObjectRead
	for _, read := range reads {
		if !read.Exists() {
			continue
		}
		fields := read.Details.Data.Fields
		if _, ok := fields["bag"]; ok {
			bagBacked = append(bagBacked, read)
			continue
		}
		if chain.IsCoinObjectType(read.Details.Data.Type) {
			continue
		}
		if _, ok := fields["url"]; ok {
			nfts = append(nfts, read)
		} else if _, ok := fields["metadata"]; ok {
			nfts = append(nfts, read)
		}
	}

	views, err := c.AssetsFromObjects(ctx, bagBacked)
	if err != nil {
		return nil, err
	}
	for _, view := range views {
		merged := view.Asset.Raw
		fields := make(map[string]any, len(merged.Details.Data.Fields)+3)
		for k, v := range merged.Details.Data.Fields {
			fields[k] = v
		}
		if view.Fields.URL != "" {
			fields["url"] = view.Fields.URL
		}
		if view.Fields.Name != "" {
			fields["name"] = view.Fields.Name
		}
		if view.Fields.Description != "" {
			fields["description"] = view.Fields.Description
		}
		merged.Details.Data.Fields = fields
		nfts = append(nfts, merged)
	}
	return nfts, nil
}
