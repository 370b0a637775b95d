package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/simaogato/assetboard-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Period is the per-date sum of every snapshot in a view, annotated with
// the change since the previous period and the asset mix
type Period struct {
	Date       string          `json:"date"`
	NetCash    decimal.Decimal `json:"net_cash"`
	Savings    decimal.Decimal `json:"savings"`
	StockValue decimal.Decimal `json:"stock_krw"`
	FixedAsset decimal.Decimal `json:"fixed_asset"`
	LongLoan   decimal.Decimal `json:"long_loan"`
	TotalAsset decimal.Decimal `json:"total_asset"`
	NetWorth   decimal.Decimal `json:"net_worth"`

	Change    decimal.Decimal `json:"change"`
	ChangePct decimal.Decimal `json:"pct"`
	AbsChange decimal.Decimal `json:"abs_change"`

	PctCash    int64 `json:"pct_cash"`
	PctSavings int64 `json:"pct_savings"`
	PctStock   int64 `json:"pct_stock"`
	PctFixed   int64 `json:"pct_fixed"`
}

// Result is everything the dashboard charts need for one view
type Result struct {
	View         domain.ViewMode `json:"view"`
	Periods      []Period        `json:"periods"`
	Latest       Period          `json:"latest"`
	Previous     Period          `json:"previous"`
	Delta        decimal.Decimal `json:"delta"`
	Distribution []Slice         `json:"distribution"`
}

// Aggregate groups snapshots by date within the view and derives the
// period-over-period metrics. It never fails; empty input yields no
// periods and zero headline values.
func Aggregate(snapshots []domain.AssetSnapshot, view domain.ViewMode) *Result {
	periods := derive(group(snapshots, view))

	res := &Result{
		View:     view,
		Periods:  periods,
		Latest:   zeroPeriod(),
		Previous: zeroPeriod(),
	}
	if n := len(periods); n > 0 {
		res.Latest = periods[n-1]
		if n > 1 {
			res.Previous = periods[n-2]
		}
	}
	res.Delta = res.Latest.NetWorth.Sub(res.Previous.NetWorth)
	res.Distribution = Distribution(res.Latest)
	return res
}

// group sums snapshots sharing the exact same date string and returns the
// groups ordered by date, oldest first
func group(snapshots []domain.AssetSnapshot, view domain.ViewMode) []Period {
	index := make(map[string]int)
	groups := make([]Period, 0)

	for _, s := range snapshots {
		if !view.Includes(s.Owner) {
			continue
		}
		i, ok := index[s.Date]
		if !ok {
			i = len(groups)
			index[s.Date] = i
			p := zeroPeriod()
			p.Date = s.Date
			groups = append(groups, p)
		}
		g := &groups[i]
		g.NetCash = g.NetCash.Add(s.NetCash)
		g.Savings = g.Savings.Add(s.Savings)
		g.StockValue = g.StockValue.Add(s.StockValue)
		g.FixedAsset = g.FixedAsset.Add(s.FixedAsset)
		g.LongLoan = g.LongLoan.Add(s.LongLoan)
		g.TotalAsset = g.TotalAsset.Add(s.TotalAsset)
		g.NetWorth = g.NetWorth.Add(s.NetWorth)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return domain.DateSortKey(groups[i].Date).Before(domain.DateSortKey(groups[j].Date))
	})
	return groups
}

// derive walks the ordered periods carrying the previous net worth forward
func derive(periods []Period) []Period {
	for i := range periods {
		p := &periods[i]
		if i > 0 {
			prev := periods[i-1].NetWorth
			p.Change = p.NetWorth.Sub(prev)
			if !prev.IsZero() {
				p.ChangePct = p.Change.Mul(hundred).Div(prev)
			}
		}
		p.AbsChange = p.Change.Abs()

		total := p.NetCash.Add(p.Savings).Add(p.StockValue).Add(p.FixedAsset)
		if total.IsZero() {
			total = decimal.NewFromInt(1)
		}
		p.PctCash = share(p.NetCash, total)
		p.PctSavings = share(p.Savings, total)
		p.PctStock = share(p.StockValue, total)
		p.PctFixed = share(p.FixedAsset, total)
	}
	return periods
}

var half = decimal.NewFromFloat(0.5)

// share returns part/total as a percentage rounded to the nearest integer,
// halves rounding up toward positive infinity
func share(part, total decimal.Decimal) int64 {
	return part.Mul(hundred).Div(total).Add(half).Floor().IntPart()
}

func zeroPeriod() Period {
	return Period{
		NetCash:    decimal.Zero,
		Savings:    decimal.Zero,
		StockValue: decimal.Zero,
		FixedAsset: decimal.Zero,
		LongLoan:   decimal.Zero,
		TotalAsset: decimal.Zero,
		NetWorth:   decimal.Zero,
		Change:     decimal.Zero,
		ChangePct:  decimal.Zero,
		AbsChange:  decimal.Zero,
	}
}
