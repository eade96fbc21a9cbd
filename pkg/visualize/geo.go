package visualize

import (
	"sort"
	"strings"
	"unicode"

	"github.com/biter777/countries"
	"github.com/mozillazg/go-unidecode"
	"github.com/ullaakut/stargazers/pkg/stargazer"
	"golang.org/x/text/cases"
)

// aliases maps common ways of writing a country in a profile location
// to its alpha-3 code.
var aliases = map[string]string{
	"usa":                 "USA",
	"united states":       "USA",
	"u.s.a":               "USA",
	"uk":                  "GBR",
	"u.k":                 "GBR",
	"england":             "GBR",
	"scotland":            "GBR",
	"wales":               "GBR",
	"great britain":       "GBR",
	"britain":             "GBR",
	"russia":              "RUS",
	"south korea":         "KOR",
	"north korea":         "PRK",
	"taiwan":              "TWN",
	"vietnam":             "VNM",
	"iran":                "IRN",
	"turkey":              "TUR",
	"turkiye":             "TUR",
	"czechia":             "CZE",
	"czech republic":      "CZE",
	"holland":             "NLD",
	"the netherlands":     "NLD",
	"deutschland":         "DEU",
	"brasil":              "BRA",
	"espana":              "ESP",
	"italia":              "ITA",
	"schweiz":             "CHE",
	"suisse":              "CHE",
	"osterreich":          "AUT",
	"polska":              "POL",
	"nippon":              "JPN",
	"bolivia":             "BOL",
	"venezuela":           "VEN",
	"tanzania":            "TZA",
	"syria":               "SYR",
	"laos":                "LAO",
	"moldova":             "MDA",
	"sakartvelo":          "GEO",
	"republic of georgia": "GEO",
}

// usStates are matched as the United States. "Georgia" is read as the
// state, the country is still found as "Republic of Georgia" or "Sakartvelo".
var usStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "District of Columbia", "Florida", "Georgia",
	"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
	"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota",
	"Ohio", "Oklahoma", "Oregon", "Pennsylvania", "Rhode Island",
	"South Carolina", "South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// Locator finds the country mentioned in free-form profile locations.
type Locator struct {
	names  []string
	codes  map[string]string
	titles map[string]string
	caser  cases.Caser
}

// NewLocator creates a Locator that knows every ISO 3166 country.
func NewLocator() *Locator {
	l := &Locator{
		codes:  make(map[string]string),
		titles: make(map[string]string),
		caser:  cases.Fold(),
	}

	var derived [][2]string
	for _, country := range countries.All() {
		code, name := country.Alpha3(), country.String()
		if code == "" || name == "" || name == "Unknown" {
			continue
		}

		l.titles[code] = name
		l.codes[l.normalize(name)] = code

		// "Korea (Republic of)" and "Congo, Democratic Republic" are
		// also matched by their leading part.
		if idx := strings.IndexAny(name, "(,"); idx > 0 {
			derived = append(derived, [2]string{l.normalize(name[:idx]), code})
		}
	}

	for _, d := range derived {
		if _, exists := l.codes[d[0]]; !exists {
			l.codes[d[0]] = d[1]
		}
	}

	for _, state := range usStates {
		l.codes[l.normalize(state)] = "USA"
	}

	for alias, code := range aliases {
		l.codes[l.normalize(alias)] = code
	}

	for name := range l.codes {
		l.names = append(l.names, name)
	}

	// Longest names first, so that "niger" does not shadow "nigeria".
	sort.Slice(l.names, func(i, j int) bool {
		if len(l.names[i]) != len(l.names[j]) {
			return len(l.names[i]) > len(l.names[j])
		}
		return l.names[i] < l.names[j]
	})

	return l
}

// Locate returns the alpha-3 code of the country found in location.
// Comma-separated parts are searched from the last one, which usually
// holds the country, before the location as a whole.
func (l *Locator) Locate(location string) (string, bool) {
	location = l.normalize(location)
	if location == "" {
		return "", false
	}

	segments := strings.Split(location, ",")
	for idx := len(segments) - 1; idx >= 0; idx-- {
		if code, found := l.find(strings.TrimSpace(segments[idx])); found {
			return code, true
		}
	}

	return l.find(location)
}

// find returns the code of the longest known name found in s.
func (l *Locator) find(s string) (string, bool) {
	if s == "" {
		return "", false
	}

	for _, name := range l.names {
		if containsWord(s, name) {
			return l.codes[name], true
		}
	}

	return "", false
}

// Name returns the English name of the country of the given alpha-3 code.
func (l *Locator) Name(code string) string {
	if name, ok := l.titles[code]; ok {
		return name
	}

	return code
}

func (l *Locator) normalize(s string) string {
	return strings.TrimSpace(l.caser.String(unidecode.Unidecode(s)))
}

// containsWord reports whether word appears in s, surrounded by
// characters that are not letters or digits.
func containsWord(s, word string) bool {
	for offset := 0; offset < len(s); {
		idx := strings.Index(s[offset:], word)
		if idx < 0 {
			return false
		}

		start := offset + idx
		end := start + len(word)
		if isBoundary(s, start-1) && isBoundary(s, end) {
			return true
		}

		offset = start + 1
	}

	return false
}

func isBoundary(s string, idx int) bool {
	if idx < 0 || idx >= len(s) {
		return true
	}

	r := rune(s[idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// CountryCounts is the amount of stargazers located in each country.
type CountryCounts struct {
	Counts map[string]int

	// Mapped is the amount of stargazers whose country was found,
	// out of Total stargazers.
	Mapped int
	Total  int
}

// CountCountries counts the stargazers of each country.
func (l *Locator) CountCountries(rows []stargazer.Row) *CountryCounts {
	counts := &CountryCounts{
		Counts: make(map[string]int),
		Total:  len(rows),
	}

	for _, row := range rows {
		code, found := l.Locate(row.Location)
		if !found {
			continue
		}

		counts.Counts[code]++
		counts.Mapped++
	}

	return counts
}

// CountryCount is the amount of stargazers of a country.
type CountryCount struct {
	Code  string
	Name  string
	Count int
}

// Top returns the n countries with the most stargazers.
func (l *Locator) Top(counts *CountryCounts, n int) []CountryCount {
	var top []CountryCount
	for code, count := range counts.Counts {
		top = append(top, CountryCount{Code: code, Name: l.Name(code), Count: count})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Code < top[j].Code
	})

	if len(top) > n {
		top = top[:n]
	}

	return top
}
