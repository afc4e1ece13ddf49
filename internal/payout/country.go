// Package payout holds the domain model for payout screenshot requests:
// the fixed country set, screenshot kinds, and amount handling.
package payout

import "time"

// Country describes one of the supported payout countries.
type Country struct {
	Code           string
	Name           string
	Flag           string
	Currency       string
	CurrencySymbol string
	Timezone       string
}

var countries = []Country{
	{Code: "colombia", Name: "Colombia", Flag: "🇨🇴", Currency: "COP", CurrencySymbol: "$", Timezone: "America/Bogota"},
	{Code: "paraguay", Name: "Paraguay", Flag: "🇵🇾", Currency: "PYG", CurrencySymbol: "₲", Timezone: "America/Asuncion"},
	{Code: "bolivia", Name: "Bolivia", Flag: "🇧🇴", Currency: "BOB", CurrencySymbol: "Bs.", Timezone: "America/La_Paz"},
	{Code: "argentina", Name: "Argentina", Flag: "🇦🇷", Currency: "ARS", CurrencySymbol: "$", Timezone: "America/Argentina/Buenos_Aires"},
	{Code: "ecuador", Name: "Ecuador", Flag: "🇪🇨", Currency: "USD", CurrencySymbol: "$", Timezone: "America/Guayaquil"},
}

// Countries returns the supported countries in display order.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// CountryByCode resolves a country by its callback key.
func CountryByCode(code string) (Country, bool) {
	for _, c := range countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// Location resolves the country's IANA timezone, falling back to UTC when
// the zone database has no entry.
func (c Country) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsZero reports whether the country is unset.
func (c Country) IsZero() bool {
	return c.Code == ""
}
