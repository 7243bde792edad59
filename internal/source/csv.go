package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/robochat/simpletable/internal/table"
)

// CSVOptions tunes how CSV input is split into a header and rows.
type CSVOptions struct {
	Comma            rune // field delimiter, ',' when zero
	NoHeader         bool // the first record is data; headers become col1..colN
	TrimLeadingSpace bool
}

// CSV reads every record from r and returns them as a row source. Record
// widths are not enforced here so that ragged input surfaces as a table
// shape error at construction.
func CSV(r io.Reader, opts CSVOptions) (table.Source[string, string], error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = opts.TrimLeadingSpace

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return table.Rows[string, string](nil, nil), nil
	}

	var headers []string
	if opts.NoHeader {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("col%d", i+1)
		}
	} else {
		headers, records = records[0], records[1:]
	}
	return table.Rows(headers, records), nil
}

// WriteCSV writes the header and every row of t, formatting cells with fmt.Sprint.
func WriteCSV[K comparable, V any](w io.Writer, t table.Tabular[K, V]) error {
	cw := csv.NewWriter(w)

	record := make([]string, t.Width())
	for i, h := range t.Headers() {
		record[i] = fmt.Sprint(h)
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for n, row := range t.All() {
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", n, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
