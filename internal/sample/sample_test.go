package sample_test

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/robochat/simpletable/internal/sample"
	"github.com/robochat/simpletable/internal/table"
)

func TestCountries(t *testing.T) {
	src, err := sample.Countries()
	assert.NilError(t, err)

	tab, err := table.NewTable(src, table.WithTitle("countries"))
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(tab.Headers(), sample.CountryHeaders))
	assert.Equal(t, tab.Height(), 29)
	assert.NilError(t, tab.Validate())

	// cells stay strings, leading zeros included
	first, err := tab.Record(0)
	assert.NilError(t, err)
	assert.Equal(t, first["iso3"], "AND")
	assert.Equal(t, first["num"], "020")

	last, err := tab.Record(-1)
	assert.NilError(t, err)
	assert.Equal(t, last["name"], "South Africa")
}

func TestCountriesCSVIsACopy(t *testing.T) {
	raw := sample.CountriesCSV()
	assert.Check(t, bytes.HasPrefix(raw, []byte("iso2,iso3,num,name,pop\n")))
	raw[0] = 'X'
	assert.Check(t, bytes.HasPrefix(sample.CountriesCSV(), []byte("iso2")))
}
