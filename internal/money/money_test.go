package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountries_Table(t *testing.T) {
	all := Countries()
	require.Len(t, all, 30)

	seen := map[string]bool{}
	for _, c := range all {
		require.False(t, seen[c.Code], "duplicate %s", c.Code)
		seen[c.Code] = true
		require.NotEmpty(t, c.Currency)
		require.NotEmpty(t, c.Symbol)
		require.NotEmpty(t, c.Locale)
	}

	all[0].Code = "XX"
	assert.Equal(t, "US", Countries()[0].Code, "Countries returns a copy")
}

func TestLookupCountry(t *testing.T) {
	c, ok := LookupCountry("jp")
	require.True(t, ok)
	assert.Equal(t, "JPY", c.Currency)
	assert.Equal(t, "ja-JP", c.Locale)

	_, ok = LookupCountry("ZZ")
	assert.False(t, ok)

	assert.Equal(t, "USD", DefaultCountry().Currency)
}

func TestFractionDigits(t *testing.T) {
	assert.Equal(t, 0, FractionDigits("JPY"))
	assert.Equal(t, 0, FractionDigits("krw"))
	assert.Equal(t, 2, FractionDigits("USD"))
	assert.Equal(t, 2, FractionDigits("BHD"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		locale   string
		want     string
	}{
		{"usd", 1234.5, "USD", "en-US", "$1,234.50"},
		{"small usd", 0.1, "USD", "en-US", "$0.10"},
		{"negative", -50, "USD", "en-US", "-$50.00"},
		{"yen has no decimals", 1234.6, "JPY", "ja-JP", "¥1,235"},
		{"gbp", 99.99, "GBP", "en-GB", "£99.99"},
		{"euro suffix", 1234.5, "EUR", "de-DE", "1.234,50 €"},
		{"lowercase code", 5, "usd", "en-US", "$5.00"},
		{"unknown currency falls back", 10, "XYZ", "en-US", "XYZ 10.00"},
		{"bad locale falls back", 3.14159, "USD", "!!", "USD 3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.currency, tt.locale))
		})
	}
}

func TestFormat_NaNNeverPanics(t *testing.T) {
	require.NotPanics(t, func() {
		assert.Equal(t, "USD NaN", Format(math.NaN(), "USD", "en-US"))
	})
}
