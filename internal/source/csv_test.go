package source_test

import (
	"bytes"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/robochat/simpletable/internal/source"
	"github.com/robochat/simpletable/internal/table"
)

func TestCSV(t *testing.T) {
	in := "id,name\n1,alpha\n2,\"beta, gamma\"\n"
	src, err := source.CSV(strings.NewReader(in), source.CSVOptions{})
	assert.NilError(t, err)

	tab, err := table.NewTable(src)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(tab.Headers(), []string{"id", "name"}))
	assert.Check(t, is.DeepEqual(tab.Rows(), [][]string{{"1", "alpha"}, {"2", "beta, gamma"}}))
}

func TestCSVOptions(t *testing.T) {
	in := "a; b\n1; 2\n"
	src, err := source.CSV(strings.NewReader(in), source.CSVOptions{Comma: ';', NoHeader: true, TrimLeadingSpace: true})
	assert.NilError(t, err)

	tab, err := table.NewColumnTable(src)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(tab.Headers(), []string{"col1", "col2"}))
	assert.Check(t, is.DeepEqual(tab.Rows(), [][]string{{"a", "b"}, {"1", "2"}}))
}

func TestCSVEmpty(t *testing.T) {
	src, err := source.CSV(strings.NewReader(""), source.CSVOptions{})
	assert.NilError(t, err)
	tab, err := table.NewTable(src)
	assert.NilError(t, err)
	assert.Equal(t, tab.Width(), 0)
	assert.Equal(t, tab.Height(), 0)
}

func TestCSVRaggedInputFailsConstruction(t *testing.T) {
	src, err := source.CSV(strings.NewReader("a,b\n1,2\n3\n"), source.CSVOptions{})
	assert.NilError(t, err)

	_, err = table.NewTable(src)
	assert.Check(t, is.ErrorIs(err, table.ErrShape))
	assert.Check(t, is.ErrorContains(err, "at row 1"))
}

func TestCSVMalformed(t *testing.T) {
	_, err := source.CSV(strings.NewReader("a,\"b\n"), source.CSVOptions{})
	assert.Check(t, is.ErrorContains(err, "failed to read csv"))
}

func TestWriteCSV(t *testing.T) {
	tab, err := table.NewTable(table.Rows([]string{"n", "label"}, [][]any{{1, "one"}, {2.5, "two, and a half"}}))
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, source.WriteCSV[string, any](&buf, tab))
	assert.Equal(t, buf.String(), "n,label\n1,one\n2.5,\"two, and a half\"\n")

	src, err := source.CSV(&buf, source.CSVOptions{})
	assert.NilError(t, err)
	back, err := table.NewColumnTable(src)
	assert.NilError(t, err)
	col, err := back.Column("label")
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(col, []string{"one", "two, and a half"}))
}
