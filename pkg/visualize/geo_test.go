package visualize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ullaakut/stargazers/pkg/stargazer"
)

func TestLocate(t *testing.T) {
	locator := NewLocator()

	tests := map[string]struct {
		location string

		expectedCode  string
		expectedFound bool
	}{
		"country name":             {location: "Paris, France", expectedCode: "FRA", expectedFound: true},
		"upper case":               {location: "TOKYO, JAPAN", expectedCode: "JPN", expectedFound: true},
		"accents":                  {location: "México", expectedCode: "MEX", expectedFound: true},
		"native name alias":        {location: "München, Deutschland", expectedCode: "DEU", expectedFound: true},
		"accented alias":           {location: "São Paulo, Brasil", expectedCode: "BRA", expectedFound: true},
		"abbreviation":             {location: "London, UK", expectedCode: "GBR", expectedFound: true},
		"longest name wins":        {location: "Lagos, Nigeria", expectedCode: "NGA", expectedFound: true},
		"shorter name still found": {location: "Niamey, Niger", expectedCode: "NER", expectedFound: true},
		"word boundaries":          {location: "Indianapolis", expectedFound: false},
		"us state":                 {location: "Indianapolis, Indiana", expectedCode: "USA", expectedFound: true},
		"state sharing a name":     {location: "New Jersey, USA", expectedCode: "USA", expectedFound: true},
		"state without country":    {location: "Newark, New Jersey", expectedCode: "USA", expectedFound: true},
		"state named as a country": {location: "Atlanta, Georgia", expectedCode: "USA", expectedFound: true},
		"country named as a state": {location: "Tbilisi, Republic of Georgia", expectedCode: "GEO", expectedFound: true},
		"state containing country": {location: "Santa Fe, New Mexico", expectedCode: "USA", expectedFound: true},
		"last part wins":           {location: "New Mexico, USA", expectedCode: "USA", expectedFound: true},
		"country after a city":     {location: "Mexico City, Mexico", expectedCode: "MEX", expectedFound: true},
		"abbreviation in a word":   {location: "Kyiv, Ukraine", expectedCode: "UKR", expectedFound: true},
		"unknown place":            {location: "Earth", expectedFound: false},
		"empty location":           {location: "", expectedFound: false},
	}

	for description, test := range tests {
		t.Run(description, func(t *testing.T) {
			code, found := locator.Locate(test.location)

			assert.Equal(t, test.expectedFound, found)
			assert.Equal(t, test.expectedCode, code)
		})
	}
}

func TestCountCountries(t *testing.T) {
	locator := NewLocator()

	counts := locator.CountCountries([]stargazer.Row{
		{Login: "alice", Location: "Paris, France"},
		{Login: "bob", Location: "Lyon, France"},
		{Login: "carol", Location: "Berlin, Germany"},
		{Login: "dave", Location: "The Internet"},
		{Login: "erin"},
	})

	assert.Equal(t, map[string]int{"FRA": 2, "DEU": 1}, counts.Counts)
	assert.Equal(t, 3, counts.Mapped)
	assert.Equal(t, 5, counts.Total)

	top := locator.Top(counts, 1)
	if assert.Len(t, top, 1) {
		assert.Equal(t, "FRA", top[0].Code)
		assert.Equal(t, 2, top[0].Count)
	}

	assert.Len(t, locator.Top(counts, 5), 2)
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("lagos, nigeria", "nigeria"))
	assert.False(t, containsWord("lagos, nigeria", "niger"))
	assert.True(t, containsWord("niger, niger", "niger"))
	assert.True(t, containsWord("uk", "uk"))
	assert.False(t, containsWord("ukraine", "uk"))
	assert.True(t, containsWord("duke, uk", "uk"))
}
