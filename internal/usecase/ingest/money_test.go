package ingest

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int64
	}{
		{"Won symbol with separators", "₩1,000,000", 1000000},
		{"Surrounding whitespace", "  2,500  ", 2500},
		{"Dollar symbol", "$12,345", 12345},
		{"Plain digits", "1000000", 1000000},
		{"Float value", float64(1500), 1500},
		{"Int value", 42, 42},
		{"JSON number", json.Number("77"), 77},
		{"Empty string", "", 0},
		{"Nil", nil, 0},
		{"Non numeric string", "n/a", 0},
		{"Only a symbol", "₩", 0},
		{"NaN float", math.NaN(), 0},
		{"Bool", true, 0},
		{"Negative", "-3,000", -3000},
		{"Numeric prefix", "1200won", 1200},
		{"Small exponent", "1.5e3", 1500},
		{"Huge exponent", "1e5000000", 0},
		{"Huge negative exponent", "1e-5000000", 0},
		{"Huge float", 1e300, 0},
		{"Too many digits", "₩12,345,678,901,234,567,890", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMoney(tt.input)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseMoney_FormattedEqualsDigits(t *testing.T) {
	pairs := map[string]string{
		"₩1,000,000":    "1000000",
		" ₩ 12,345 ":    "12345",
		"\t9,999\n":     "9999",
		"₩0":            "0",
		"1,234,567,890": "1234567890",
	}
	for formatted, digits := range pairs {
		assert.True(t, ParseMoney(digits).Equal(ParseMoney(formatted)), formatted)
	}
}

func TestParseMoney_Fraction(t *testing.T) {
	assert.True(t, decimal.RequireFromString("1234.5").Equal(ParseMoney("1,234.5")))
}
