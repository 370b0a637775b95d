package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the only date format accepted on submission
const DateLayout = "2006-01-02"

// Amount bounds. Amounts beyond them are treated as garbage rather than
// carried as arbitrarily large decimals.
const (
	MaxAmountDigits   = 18
	MaxAmountExponent = 15
)

// AmountInRange reports whether d has at most MaxAmountDigits integer digits
// and an exponent within ±MaxAmountExponent
func AmountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxAmountExponent || exp < -MaxAmountExponent {
		return false
	}
	return d.NumDigits()+int(exp) <= MaxAmountDigits
}

// Owner identifies the family member a snapshot belongs to
type Owner string

const (
	OwnerHusband Owner = "Husband"
	OwnerWife    Owner = "Wife"
	OwnerJoint   Owner = "Joint"
)

// Owners lists every valid snapshot owner in display order
var Owners = []Owner{OwnerHusband, OwnerWife, OwnerJoint}

// Valid reports whether o is one of the known owners
func (o Owner) Valid() bool {
	for _, known := range Owners {
		if o == known {
			return true
		}
	}
	return false
}

// ViewMode selects which owners are included in an aggregation
type ViewMode string

// ViewAll includes every owner
const ViewAll ViewMode = "All"

// ParseViewMode converts a query value into a ViewMode.
// An empty value means ViewAll.
func ParseViewMode(s string) (ViewMode, error) {
	if s == "" || s == string(ViewAll) {
		return ViewAll, nil
	}
	if Owner(s).Valid() {
		return ViewMode(s), nil
	}
	return "", &ValidationError{Field: "view", Reason: "must be All, Husband, Wife or Joint"}
}

// Includes reports whether a snapshot owned by o is part of the view
func (v ViewMode) Includes(o Owner) bool {
	return v == ViewAll || Owner(v) == o
}

// AssetSnapshot is one dated asset/liability record for one owner.
// TotalAsset and NetWorth are stored values and are not recomputed on read.
type AssetSnapshot struct {
	RowID      RowID           `json:"_row_number"`
	Date       string          `json:"date"`
	Owner      Owner           `json:"owner"`
	NetCash    decimal.Decimal `json:"net_cash"`
	Savings    decimal.Decimal `json:"savings"`
	StockValue decimal.Decimal `json:"stock_krw"`
	FixedAsset decimal.Decimal `json:"fixed_asset"`
	LongLoan   decimal.Decimal `json:"long_loan"`
	TotalAsset decimal.Decimal `json:"total_asset"`
	NetWorth   decimal.Decimal `json:"net_worth"`
	Memo       string          `json:"memo"`
}

// Validate ensures a submitted snapshot can be persisted
func (s *AssetSnapshot) Validate() error {
	if s.Date == "" {
		return MissingField("date")
	}
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be formatted as YYYY-MM-DD"}
	}
	if s.Owner == "" {
		return MissingField("owner")
	}
	if !s.Owner.Valid() {
		return &ValidationError{Field: "owner", Reason: "must be Husband, Wife or Joint"}
	}

	amounts := map[string]decimal.Decimal{
		"net_cash":    s.NetCash,
		"savings":     s.Savings,
		"stock_krw":   s.StockValue,
		"fixed_asset": s.FixedAsset,
		"long_loan":   s.LongLoan,
		"total_asset": s.TotalAsset,
		"net_worth":   s.NetWorth,
	}
	for _, field := range SnapshotAmountFields {
		if amounts[field].IsNegative() {
			return &ValidationError{Field: field, Reason: "cannot be negative"}
		}
	}
	for _, field := range []string{"net_cash", "savings", "stock_krw", "fixed_asset", "long_loan", "total_asset", "net_worth"} {
		if !AmountInRange(amounts[field]) {
			return &ValidationError{Field: field, Reason: "is out of range"}
		}
	}

	return nil
}

// AssetSum returns NetCash + Savings + StockValue + FixedAsset
func (s *AssetSnapshot) AssetSum() decimal.Decimal {
	return s.NetCash.Add(s.Savings).Add(s.StockValue).Add(s.FixedAsset)
}

// RecomputeDerived overwrites TotalAsset and NetWorth from the component fields
func (s *AssetSnapshot) RecomputeDerived() {
	s.TotalAsset = s.AssetSum()
	s.NetWorth = s.TotalAsset.Sub(s.LongLoan)
}

// Fields returns the store representation of the snapshot, keyed by the
// canonical DB table headers. The row id is not part of the mapping.
func (s *AssetSnapshot) Fields() map[string]any {
	return map[string]any{
		"date":        s.Date,
		"owner":       string(s.Owner),
		"net_cash":    s.NetCash.String(),
		"savings":     s.Savings.String(),
		"stock_krw":   s.StockValue.String(),
		"fixed_asset": s.FixedAsset.String(),
		"long_loan":   s.LongLoan.String(),
		"total_asset": s.TotalAsset.String(),
		"net_worth":   s.NetWorth.String(),
		"memo":        s.Memo,
	}
}

// SnapshotAmountFields are the user-entered monetary columns of the DB table
var SnapshotAmountFields = []string{"net_cash", "savings", "stock_krw", "fixed_asset", "long_loan"}

// SnapshotHeaders is the canonical header row of the DB table
var SnapshotHeaders = []string{
	"date", "owner", "net_cash", "savings", "stock_krw", "fixed_asset",
	"long_loan", "total_asset", "net_worth", "memo",
}
