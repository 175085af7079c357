// Package mains resolves the local electrical grid frequency so hum-notch
// filters can be designed without asking the caller where they are.
// Resolution goes system timezone -> country -> grid frequency; anything
// ambiguous or unresolvable falls back to 50 Hz, the more common grid.
package mains

import (
	"strings"

	tz "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"

	"github.com/linuxmatters/sndgraph/internal/numeric"
)

const fallbackHz = 50

// FrequencyHz returns the local grid frequency, 50 or 60.
func FrequencyHz() float64 {
	timezone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return fallbackHz
	}
	return FrequencyForTimezone(timezone)
}

// FrequencyForTimezone returns the grid frequency for an IANA timezone.
// Exported so callers processing recordings from elsewhere can override the
// host's locale.
func FrequencyForTimezone(timezone string) float64 {
	if timezone == "UTC" || timezone == "GMT" || strings.HasPrefix(timezone, "Etc/") {
		return fallbackHz
	}
	m, err := tz.NewTimezoneCountryMap()
	if err != nil {
		return fallbackHz
	}
	country, err := m.GetCountry(timezone)
	if err != nil {
		return fallbackHz
	}
	if sixtyHzCountries[country] {
		return 60
	}
	// Japan runs both grids split by region within one timezone; the 50 Hz
	// fallback covers it like every other non-60 Hz country.
	return fallbackHz
}

// NotchTaps designs the hum-rejection FIR for the local grid at the given
// sample rate, ready to drive a numeric.FilterState ahead of the graph.
func NotchTaps(sampleRate float64, taps int) []float64 {
	return numeric.MainsNotchCoefficients(FrequencyHz(), sampleRate, taps)
}

// NotchTapsForTimezone is NotchTaps for an explicit IANA timezone.
func NotchTapsForTimezone(timezone string, sampleRate float64, taps int) []float64 {
	return numeric.MainsNotchCoefficients(FrequencyForTimezone(timezone), sampleRate, taps)
}

// sixtyHzCountries lists the countries whose grids run at 60 Hz: the
// Americas plus a handful of Pacific and Middle East grids. Everything else
// runs at 50 Hz. Source:
// https://en.wikipedia.org/wiki/Mains_electricity_by_country
var sixtyHzCountries = map[string]bool{
	// North and Central America
	"United States": true, "Canada": true, "Mexico": true,
	"Belize": true, "Costa Rica": true, "El Salvador": true, "Guatemala": true,
	"Honduras": true, "Nicaragua": true, "Panama": true,
	// Caribbean
	"Bahamas": true, "Barbados": true, "Cayman Islands": true, "Cuba": true,
	"Dominican Republic": true, "Haiti": true, "Jamaica": true,
	"Puerto Rico": true, "Trinidad and Tobago": true, "U.S. Virgin Islands": true,
	// South America
	"Brazil": true, "Colombia": true, "Ecuador": true, "Guyana": true,
	"Peru": true, "Suriname": true, "Venezuela": true,
	// Asia-Pacific and Middle East
	"South Korea": true, "Taiwan": true, "Philippines": true, "Saudi Arabia": true,
	"Guam": true, "American Samoa": true, "Marshall Islands": true,
	"Micronesia": true, "Palau": true,
}
