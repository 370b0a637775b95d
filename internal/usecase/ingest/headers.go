package ingest

import "strings"

// FieldAliases lists the header spellings accepted for one logical field,
// most preferred first
type FieldAliases struct {
	Field   string
	Aliases []string
}

// HeaderMap maps a logical field to the header it was found under
type HeaderMap map[string]string

// Logical field names shared by both tables
const (
	FieldDate    = "date"
	FieldOwner   = "owner"
	FieldMessage = "message"
	FieldMemo    = "memo"
)

// AssetFields are the accepted headers of the DB table
var AssetFields = []FieldAliases{
	{Field: FieldDate, Aliases: []string{"date", "Date"}},
	{Field: FieldOwner, Aliases: []string{"owner", "Owner"}},
	{Field: "net_cash", Aliases: []string{"net_cash"}},
	{Field: "savings", Aliases: []string{"savings"}},
	{Field: "stock_krw", Aliases: []string{"stock_krw", "stock_value"}},
	{Field: "fixed_asset", Aliases: []string{"fixed_asset"}},
	{Field: "long_loan", Aliases: []string{"long_loan"}},
	{Field: "total_asset", Aliases: []string{"total_asset"}},
	{Field: "net_worth", Aliases: []string{"net_worth"}},
	{Field: FieldMemo, Aliases: []string{"memo", "Memo"}},
}

// CommentFields are the accepted headers of the Comments table.
// The sheet header row is edited by hand, so spellings vary.
var CommentFields = []FieldAliases{
	{Field: FieldDate, Aliases: []string{"Date", "date"}},
	{Field: FieldOwner, Aliases: []string{"Owner", "owner"}},
	{Field: FieldMessage, Aliases: []string{"Comments", "comments", "Comment", "comment", "Message", "message"}},
}

// ResolveHeaders picks, for every field, the header it is stored under.
// An exact alias match wins in alias order; failing that a case-insensitive
// match is tried; failing that the first alias is used.
func ResolveHeaders(headers []string, fields []FieldAliases) HeaderMap {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	out := make(HeaderMap, len(fields))
	for _, f := range fields {
		out[f.Field] = resolveField(headers, present, f)
	}
	return out
}

func resolveField(headers []string, present map[string]bool, f FieldAliases) string {
	for _, alias := range f.Aliases {
		if present[alias] {
			return alias
		}
	}
	for _, alias := range f.Aliases {
		for _, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), alias) {
				return h
			}
		}
	}
	return f.Aliases[0]
}
