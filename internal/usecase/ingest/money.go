package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// leadingNumber matches the numeric prefix a lenient float parser would accept
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseMoney converts a raw cell value into an amount.
// Numbers are taken as is. Strings lose currency symbols, thousands
// separators and whitespace before parsing. Anything missing, unparseable
// or out of range becomes zero; it never fails.
func ParseMoney(value any) decimal.Decimal {
	d := parseMoney(value)
	if !domain.AmountInRange(d) {
		return decimal.Zero
	}
	return d
}

func parseMoney(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		return parseMoneyString(v.String())
	case string:
		return parseMoneyString(v)
	case bool:
		return decimal.Zero
	default:
		return parseMoneyString(fmt.Sprint(v))
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func parseMoneyString(s string) decimal.Decimal {
	clean := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)

	num := leadingNumber.FindString(clean)
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}
