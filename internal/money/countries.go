// Package money holds the supported-country table and locale-aware
// currency formatting.
package money

import "strings"

// Country is one row of the settings country picker.
type Country struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
	Locale   string `json:"locale"`
	// SymbolAfter places the symbol after the number ("1.234,50 €").
	SymbolAfter bool `json:"symbolAfter,omitempty"`
}

const DefaultCountryCode = "US"

var countries = []Country{
	{Code: "US", Name: "United States", Currency: "USD", Symbol: "$", Locale: "en-US"},
	{Code: "CA", Name: "Canada", Currency: "CAD", Symbol: "$", Locale: "en-CA"},
	{Code: "GB", Name: "United Kingdom", Currency: "GBP", Symbol: "£", Locale: "en-GB"},
	{Code: "AU", Name: "Australia", Currency: "AUD", Symbol: "$", Locale: "en-AU"},
	{Code: "NZ", Name: "New Zealand", Currency: "NZD", Symbol: "$", Locale: "en-NZ"},
	{Code: "IE", Name: "Ireland", Currency: "EUR", Symbol: "€", Locale: "en-IE"},
	{Code: "DE", Name: "Germany", Currency: "EUR", Symbol: "€", Locale: "de-DE", SymbolAfter: true},
	{Code: "FR", Name: "France", Currency: "EUR", Symbol: "€", Locale: "fr-FR", SymbolAfter: true},
	{Code: "ES", Name: "Spain", Currency: "EUR", Symbol: "€", Locale: "es-ES", SymbolAfter: true},
	{Code: "IT", Name: "Italy", Currency: "EUR", Symbol: "€", Locale: "it-IT", SymbolAfter: true},
	{Code: "NL", Name: "Netherlands", Currency: "EUR", Symbol: "€", Locale: "nl-NL"},
	{Code: "BE", Name: "Belgium", Currency: "EUR", Symbol: "€", Locale: "nl-BE"},
	{Code: "AT", Name: "Austria", Currency: "EUR", Symbol: "€", Locale: "de-AT"},
	{Code: "PT", Name: "Portugal", Currency: "EUR", Symbol: "€", Locale: "pt-PT", SymbolAfter: true},
	{Code: "FI", Name: "Finland", Currency: "EUR", Symbol: "€", Locale: "fi-FI", SymbolAfter: true},
	{Code: "SE", Name: "Sweden", Currency: "SEK", Symbol: "kr", Locale: "sv-SE", SymbolAfter: true},
	{Code: "NO", Name: "Norway", Currency: "NOK", Symbol: "kr", Locale: "nb-NO", SymbolAfter: true},
	{Code: "DK", Name: "Denmark", Currency: "DKK", Symbol: "kr.", Locale: "da-DK", SymbolAfter: true},
	{Code: "PL", Name: "Poland", Currency: "PLN", Symbol: "zł", Locale: "pl-PL", SymbolAfter: true},
	{Code: "CH", Name: "Switzerland", Currency: "CHF", Symbol: "CHF ", Locale: "de-CH"},
	{Code: "JP", Name: "Japan", Currency: "JPY", Symbol: "¥", Locale: "ja-JP"},
	{Code: "KR", Name: "South Korea", Currency: "KRW", Symbol: "₩", Locale: "ko-KR"},
	{Code: "CN", Name: "China", Currency: "CNY", Symbol: "¥", Locale: "zh-CN"},
	{Code: "IN", Name: "India", Currency: "INR", Symbol: "₹", Locale: "en-IN"},
	{Code: "SG", Name: "Singapore", Currency: "SGD", Symbol: "$", Locale: "en-SG"},
	{Code: "HK", Name: "Hong Kong", Currency: "HKD", Symbol: "HK$", Locale: "zh-HK"},
	{Code: "MX", Name: "Mexico", Currency: "MXN", Symbol: "$", Locale: "es-MX"},
	{Code: "BR", Name: "Brazil", Currency: "BRL", Symbol: "R$", Locale: "pt-BR"},
	{Code: "ZA", Name: "South Africa", Currency: "ZAR", Symbol: "R", Locale: "en-ZA"},
	{Code: "PH", Name: "Philippines", Currency: "PHP", Symbol: "₱", Locale: "en-PH"},
}

// Countries returns a copy of the supported-country table in display order.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// LookupCountry finds a country by its ISO 3166 alpha-2 code, case-insensitively.
func LookupCountry(code string) (Country, bool) {
	for _, c := range countries {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return Country{}, false
}

// DefaultCountry is the country used before the user picks one.
func DefaultCountry() Country {
	c, _ := LookupCountry(DefaultCountryCode)
	return c
}

func byLocale(locale string) (Country, bool) {
	for _, c := range countries {
		if strings.EqualFold(c.Locale, locale) {
			return c, true
		}
	}
	return Country{}, false
}

func symbolFor(currency, locale string) string {
	if c, ok := byLocale(locale); ok && c.Currency == currency {
		return c.Symbol
	}
	for _, c := range countries {
		if c.Currency == currency {
			return c.Symbol
		}
	}
	return currency + " "
}
