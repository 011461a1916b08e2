package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FractionDigits is 0 for JPY and KRW and 2 for everything else.
func FractionDigits(code string) int {
	switch strings.ToUpper(code) {
	case "JPY", "KRW":
		return 0
	default:
		return 2
	}
}

// Format renders amount in the given ISO 4217 currency using the grouping
// and decimal separators of locale. When either code cannot be parsed it
// falls back to "<CODE> <amount with 2 decimals>". It never fails.
func Format(amount float64, currencyCode, locale string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Fallback(amount, code)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Fallback(amount, code)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Fallback(amount, code)
	}

	p := message.NewPrinter(tag)
	digits := FractionDigits(unit.String())
	num := p.Sprint(number.Decimal(math.Abs(amount), number.Scale(digits)))

	sign := ""
	if amount < 0 && strings.Trim(num, "0.,\u00a0 ") != "" {
		sign = "-"
	}

	sym := symbolFor(unit.String(), locale)
	if c, ok := byLocale(locale); ok && c.SymbolAfter {
		return sign + num + " " + strings.TrimSpace(sym)
	}
	return sign + sym + num
}

// Fallback is the plain "<CODE> <amount.2f>" rendering.
func Fallback(amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	return code + " " + decimal.NewFromFloat(amount).StringFixed(2)
}
