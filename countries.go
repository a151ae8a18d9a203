package geosearch

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CountryNamer resolves an ISO 3166-1 alpha-2 code to a human readable
// country name. An empty result means the code is not resolvable.
type CountryNamer interface {
	CountryName(code string) string
}

// CountryNamerFunc adapts a plain function to CountryNamer.
type CountryNamerFunc func(code string) string

// CountryName implements CountryNamer.
func (f CountryNamerFunc) CountryName(code string) string { return f(code) }

// CountryNames is a fixed code -> name table.
type CountryNames map[string]string

// CountryName implements CountryNamer.
func (m CountryNames) CountryName(code string) string { return m[code] }

// noCountryNames resolves nothing; used when country names must not
// contribute search terms.
var noCountryNames = CountryNamerFunc(func(string) string { return "" })

// displayNamer resolves names from the CLDR tables bundled with x/text.
type displayNamer struct {
	namer display.Namer
}

// NewLocalizedCountryNamer returns a CountryNamer producing country names in
// the given language, e.g. language.English yields "United Kingdom" for "GB".
func NewLocalizedCountryNamer(tag language.Tag) CountryNamer {
	return displayNamer{namer: display.Regions(tag)}
}

func (d displayNamer) CountryName(code string) string {
	if len(code) != 2 {
		return ""
	}
	region, err := language.ParseRegion(strings.ToUpper(code))
	if err != nil || !region.IsCountry() {
		return ""
	}
	return d.namer.Name(region)
}
