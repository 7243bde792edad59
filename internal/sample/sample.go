// Package sample embeds the country code dataset used by the demo and the tests.
package sample

import (
	"bytes"
	_ "embed"

	"github.com/robochat/simpletable/internal/source"
	"github.com/robochat/simpletable/internal/table"
)

//go:embed countries.csv
var countriesCSV []byte

// CountryHeaders is the header row of the embedded dataset.
var CountryHeaders = []string{"iso2", "iso3", "num", "name", "pop"}

// Countries returns the embedded dataset as a row source.
func Countries() (table.Source[string, string], error) {
	return source.CSV(bytes.NewReader(countriesCSV), source.CSVOptions{})
}

// CountriesCSV returns a copy of the raw embedded file.
func CountriesCSV() []byte {
	return bytes.Clone(countriesCSV)
}
