// Package nft recognizes asset-wrapper objects by their encoded type
// strings and resolves the descriptive-domain records attached to them
// through dynamic-field bags.
package nft

import (
	"regexp"

	"github.com/emberwallet/ember/internal/chain"
)

// Structural templates for the originbyte object model. Matching is the
// only type information available; the remote schema is opaque.
var (
	assetRegex = regexp.MustCompile(
		`(0x[a-f0-9]{39,40})::nft::Nft<0x[a-f0-9]{39,40}::([a-zA-Z]{1,})::([a-zA-Z]{1,})>`)
	urlDomainRegex = regexp.MustCompile(
		`0x2::dynamic_field::Field<(0x[a-f0-9]{39,40})::utils::Marker<(0x[a-f0-9]{39,40})::display::UrlDomain>, (0x[a-f0-9]{39,40})::display::UrlDomain>`)
	displayDomainRegex = regexp.MustCompile(
		`0x2::dynamic_field::Field<(0x[a-f0-9]{39,40})::utils::Marker<(0x[a-f0-9]{39,40})::display::DisplayDomain>, (0x[a-f0-9]{39,40})::display::DisplayDomain>`)
)

// Asset is a recognized asset-wrapper object.
type Asset struct {
	ID              string           `json:"id"`
	Owner           chain.Owner      `json:"owner"`
	DataType        string           `json:"type"`
	PackageObjectID string           `json:"packageObjectId"`
	Module          string           `json:"packageModule"`
	ClassName       string           `json:"packageModuleClassName"`
	LogicalOwner    string           `json:"logicalOwner"`
	BagID           string           `json:"bagId"`
	Raw             chain.ObjectRead `json:"rawResponse"`
}

// DescriptiveFields is the partial metadata resolved from an asset's bag.
// Any field may be absent.
type DescriptiveFields struct {
	URL         string `json:"url,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ParseAsset matches an object against the asset-wrapper template and
// extracts its identity fields. Returns nil when the object is missing or
// its type does not match; absence is expected for most objects, not an
// error.
func ParseAsset(read *chain.ObjectRead) *Asset {
	if read == nil || !read.Exists() {
		return nil
	}

	detail := read.Details
	matches := assetRegex.FindStringSubmatch(detail.Data.Type)
	if matches == nil {
		return nil
	}

	fields := detail.Data.Fields
	logicalOwner, _ := fields["logical_owner"].(string)

	return &Asset{
		ID:              detail.Reference.ObjectID,
		Owner:           detail.Owner,
		DataType:        detail.Data.DataType,
		PackageObjectID: matches[1],
		Module:          matches[2],
		ClassName:       matches[3],
		LogicalOwner:    logicalOwner,
		BagID:           nestedString(fields, "bag", "fields", "id", "id"),
		Raw:             *read,
	}
}

// ParseDomains folds a bag's objects into descriptive fields: the first
// Url-domain object contributes url, the first Display-domain object
// contributes name and description. A bag containing neither yields the
// zero value. The fold is idempotent over the same input.
func ParseDomains(domains []chain.ObjectRead) DescriptiveFields {
	var out DescriptiveFields

	if d := firstMatching(domains, urlDomainRegex); d != nil {
		out.URL = nestedString(d.Details.Data.Fields, "value", "fields", "url")
	}
	if d := firstMatching(domains, displayDomainRegex); d != nil {
		out.Name = nestedString(d.Details.Data.Fields, "value", "fields", "name")
		out.Description = nestedString(d.Details.Data.Fields, "value", "fields", "description")
	}
	return out
}

func firstMatching(domains []chain.ObjectRead, re *regexp.Regexp) *chain.ObjectRead {
	for i := range domains {
		if domains[i].Exists() && re.MatchString(domains[i].Details.Data.Type) {
			return &domains[i]
		}
	}
	return nil
}

// nestedString walks a decoded field map along path and returns the
// terminal string value. Returns "" when any step is missing or has an
// unexpected shape.
func nestedString(fields map[string]any, path ...string) string {
	var current any = fields
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = m[key]
	}
	s, _ := current.(string)
	return s
}
