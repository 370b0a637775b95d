package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// Snapshots converts DB table rows into asset snapshots sorted by date,
// oldest first. Rows without a date are dropped.
func Snapshots(set *domain.RowSet) []domain.AssetSnapshot {
	if set == nil {
		return []domain.AssetSnapshot{}
	}
	h := ResolveHeaders(set.Headers, AssetFields)

	out := make([]domain.AssetSnapshot, 0, len(set.Rows))
	for _, row := range set.Rows {
		date := text(row.Fields[h[FieldDate]])
		if date == "" {
			continue
		}
		out = append(out, domain.AssetSnapshot{
			RowID:      row.ID,
			Date:       date,
			Owner:      domain.Owner(text(row.Fields[h[FieldOwner]])),
			NetCash:    ParseMoney(row.Fields[h["net_cash"]]),
			Savings:    ParseMoney(row.Fields[h["savings"]]),
			StockValue: ParseMoney(row.Fields[h["stock_krw"]]),
			FixedAsset: ParseMoney(row.Fields[h["fixed_asset"]]),
			LongLoan:   ParseMoney(row.Fields[h["long_loan"]]),
			TotalAsset: ParseMoney(row.Fields[h["total_asset"]]),
			NetWorth:   ParseMoney(row.Fields[h["net_worth"]]),
			Memo:       text(row.Fields[h[FieldMemo]]),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return domain.DateSortKey(out[i].Date).Before(domain.DateSortKey(out[j].Date))
	})
	return out
}

// Comments converts Comments table rows into entries sorted by date,
// most recent first. Rows without a date or a message are dropped.
func Comments(set *domain.RowSet) []domain.CommentEntry {
	if set == nil {
		return []domain.CommentEntry{}
	}
	h := ResolveHeaders(set.Headers, CommentFields)

	out := make([]domain.CommentEntry, 0, len(set.Rows))
	for _, row := range set.Rows {
		c := domain.CommentEntry{
			RowID:   row.ID,
			Date:    text(row.Fields[h[FieldDate]]),
			Owner:   text(row.Fields[h[FieldOwner]]),
			Message: text(row.Fields[h[FieldMessage]]),
		}
		if c.Date == "" || c.Message == "" {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return domain.DateSortKey(out[i].Date).After(domain.DateSortKey(out[j].Date))
	})
	return out
}

// CommentFieldsFor keys a comment by the headers of an existing Comments table
func CommentFieldsFor(headers []string, c domain.CommentEntry) map[string]any {
	h := ResolveHeaders(headers, CommentFields)
	return map[string]any{
		h[FieldDate]:    c.Date,
		h[FieldOwner]:   c.Owner,
		h[FieldMessage]: c.Message,
	}
}

// SnapshotFieldsFor keys a snapshot's values by the headers the DB table
// actually uses, so rows written here read back through the same aliases
func SnapshotFieldsFor(headers []string, s domain.AssetSnapshot) map[string]any {
	h := ResolveHeaders(headers, AssetFields)
	fields := s.Fields()
	out := make(map[string]any, len(fields))
	for field, v := range fields {
		header, ok := h[field]
		if !ok {
			header = field
		}
		out[header] = v
	}
	return out
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}
