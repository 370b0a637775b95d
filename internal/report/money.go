package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount in the display format of the currency,
// rounding to the currency's minor unit
func FormatAmount(d decimal.Decimal, currency string) string {
	// money.New never returns a nil currency, unlike money.GetCurrency
	cur := *money.New(0, currency).Currency()
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatChange is FormatAmount with an explicit sign; zero renders as "-"
func FormatChange(d decimal.Decimal, currency string) string {
	switch {
	case d.IsZero():
		return "-"
	case d.IsPositive():
		return "+" + FormatAmount(d, currency)
	default:
		return FormatAmount(d, currency)
	}
}

// FormatPct renders a percentage with two decimals and a sign
func FormatPct(d decimal.Decimal) string {
	s := d.StringFixed(2) + "%"
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
