package aggregate

import "github.com/shopspring/decimal"

// Asset categories shown in the distribution view
const (
	CategoryCash    = "Cash"
	CategorySavings = "Savings"
	CategoryStock   = "Stock"
	CategoryFixed   = "Fixed"
)

// Slice is one asset category of the distribution view
type Slice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Distribution breaks a period's assets down by category, leaving out
// categories that hold nothing. Liabilities are not part of it.
func Distribution(p Period) []Slice {
	all := []Slice{
		{Name: CategoryCash, Value: p.NetCash},
		{Name: CategorySavings, Value: p.Savings},
		{Name: CategoryStock, Value: p.StockValue},
		{Name: CategoryFixed, Value: p.FixedAsset},
	}

	out := make([]Slice, 0, len(all))
	for _, s := range all {
		if s.Value.IsPositive() {
			out = append(out, s)
		}
	}
	return out
}
