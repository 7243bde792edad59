package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Column is a named column of cells. It is the element type of pair input
// and of column snapshots.
type Column[K comparable, V any] struct {
	Name   K
	Values []V
}

// Source is a validated construction input. Use Rows, ColumnMap, Records,
// Pairs, Merge or Detect to obtain one.
type Source[K comparable, V any] interface {
	frame(title string) (frame[K, V], error)
}

// frame is the normalized, owned, column-major form every source produces.
type frame[K comparable, V any] struct {
	headers []K
	cols    [][]V
}

func (f frame[K, V]) height() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0])
}

func (f frame[K, V]) rows() [][]V {
	rows, _ := ColumnsToRows(f.cols)
	return rows
}

// checkColumns confirms all columns have the length of the first.
func checkColumns[V any](title string, cols [][]V) error {
	for i, c := range cols {
		if len(c) != len(cols[0]) {
			return &ShapeError{
				Table:  title,
				Reason: fmt.Sprintf("column %d length differs from previous columns", i),
				Index:  -1,
				Want:   len(cols[0]),
				Got:    len(c),
			}
		}
	}
	return nil
}

type rowsSource[K comparable, V any] struct {
	headers []K
	rows    [][]V
}

// Rows builds a source from an explicit header and a sequence of equal-width rows.
func Rows[K comparable, V any](headers []K, rows [][]V) Source[K, V] {
	return rowsSource[K, V]{headers: headers, rows: rows}
}

func (s rowsSource[K, V]) frame(title string) (frame[K, V], error) {
	if err := checkUnique(title, s.headers); err != nil {
		return frame[K, V]{}, err
	}
	if len(s.headers) == 0 && len(s.rows) > 0 {
		return frame[K, V]{}, &ShapeError{
			Table:  title,
			Reason: "rows supplied without headers",
			Index:  -1,
			Want:   0,
			Got:    len(s.rows[0]),
		}
	}
	if err := checkRows(title, len(s.headers), s.rows); err != nil {
		return frame[K, V]{}, err
	}
	cols, _ := RowsToColumns(s.rows)
	if cols == nil {
		cols = make([][]V, len(s.headers))
	}
	return frame[K, V]{headers: slices.Clone(s.headers), cols: cols}, nil
}

type columnMapSource[K comparable, V any] struct {
	headers []K
	cols    map[K][]V
}

// ColumnMap builds a source from a name→column mapping. Go maps carry no
// order, so headers gives the column order and must name exactly the map keys.
func ColumnMap[K comparable, V any](headers []K, cols map[K][]V) Source[K, V] {
	return columnMapSource[K, V]{headers: headers, cols: cols}
}

func (s columnMapSource[K, V]) frame(title string) (frame[K, V], error) {
	if err := checkUnique(title, s.headers); err != nil {
		return frame[K, V]{}, err
	}
	if len(s.headers) != len(s.cols) {
		return frame[K, V]{}, &ShapeError{
			Table:  title,
			Reason: "header count differs from column count",
			Index:  -1,
			Want:   len(s.headers),
			Got:    len(s.cols),
		}
	}
	cols := make([][]V, len(s.headers))
	for i, h := range s.headers {
		c, ok := s.cols[h]
		if !ok {
			return frame[K, V]{}, &NoSuchColumnError{Table: title, Name: h}
		}
		cols[i] = slices.Clone(c)
	}
	if err := checkColumns(title, cols); err != nil {
		return frame[K, V]{}, err
	}
	return frame[K, V]{headers: slices.Clone(s.headers), cols: cols}, nil
}

type recordsSource[K comparable, V any] struct {
	records []map[K]V
	headers []K
}

// Records builds a source from name→value rows. The header order is taken
// from headers when given, otherwise from the first record's keys sorted by
// their fmt.Sprint form, then by type name. Every record must have the same
// key set.
func Records[K comparable, V any](records []map[K]V, headers ...K) Source[K, V] {
	return recordsSource[K, V]{records: records, headers: headers}
}

func (s recordsSource[K, V]) frame(title string) (frame[K, V], error) {
	headers := slices.Clone(s.headers)
	if len(headers) == 0 && len(s.records) > 0 {
		headers = sortedKeys(s.records[0])
	}
	if err := checkUnique(title, headers); err != nil {
		return frame[K, V]{}, err
	}
	rows := make([][]V, len(s.records))
	for i, rec := range s.records {
		row, err := recordRow(title, headers, rec)
		if err != nil {
			return frame[K, V]{}, &ShapeError{
				Table:  title,
				Reason: "record key set differs from the first record",
				Index:  i,
				Want:   len(headers),
				Got:    len(rec),
			}
		}
		rows[i] = row
	}
	cols, _ := RowsToColumns(rows)
	if cols == nil {
		cols = make([][]V, len(headers))
	}
	return frame[K, V]{headers: headers, cols: cols}, nil
}

func sortedKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// keys printing alike, such as 1 and "1", fall back to their type names
	slices.SortStableFunc(keys, func(a, b K) int {
		return cmp.Or(
			strings.Compare(fmt.Sprint(a), fmt.Sprint(b)),
			strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)),
		)
	})
	return keys
}

type pairsSource[K comparable, V any] struct {
	pairs []Column[K, V]
}

// Pairs builds a source from an ordered sequence of (name, column) pairs.
func Pairs[K comparable, V any](pairs ...Column[K, V]) Source[K, V] {
	return pairsSource[K, V]{pairs: pairs}
}

func (s pairsSource[K, V]) frame(title string) (frame[K, V], error) {
	f := frame[K, V]{
		headers: make([]K, len(s.pairs)),
		cols:    make([][]V, len(s.pairs)),
	}
	for i, p := range s.pairs {
		f.headers[i] = p.Name
		f.cols[i] = slices.Clone(p.Values)
	}
	if err := checkUnique(title, f.headers); err != nil {
		return frame[K, V]{}, err
	}
	if err := checkColumns(title, f.cols); err != nil {
		return frame[K, V]{}, err
	}
	return f, nil
}

type mergeSource[K comparable, V any] struct {
	base   Source[K, V]
	extras []Column[K, V]
}

// Merge adds extra columns on top of src. An extra column replaces a
// same-named column in place; new names are appended. Every extra column
// must match the height of the base.
func Merge[K comparable, V any](src Source[K, V], extras ...Column[K, V]) Source[K, V] {
	return mergeSource[K, V]{base: src, extras: extras}
}

func (s mergeSource[K, V]) frame(title string) (frame[K, V], error) {
	f, err := s.base.frame(title)
	if err != nil {
		return frame[K, V]{}, err
	}
	for _, extra := range s.extras {
		if len(f.cols) > 0 && len(extra.Values) != f.height() {
			return frame[K, V]{}, newLengthError(title, extra.Name, f.height(), len(extra.Values))
		}
		values := slices.Clone(extra.Values)
		if pos := slices.Index(f.headers, extra.Name); pos >= 0 {
			f.cols[pos] = values
			continue
		}
		f.headers = append(f.headers, extra.Name)
		f.cols = append(f.cols, values)
	}
	return f, nil
}

// Detect picks the source matching the dynamic type of input: a Source,
// map[K][]V (columns), [][]V (rows, needs headers), []map[K]V (records) or
// []Column[K,V] (pairs). The shapes are distinct Go types, so a width-2 row
// is never mistaken for a (name, column) pair. headers orders map and
// record input and is required for row input.
func Detect[K comparable, V any](input any, headers ...K) (Source[K, V], error) {
	switch v := input.(type) {
	case Source[K, V]:
		return v, nil
	case map[K][]V:
		if len(headers) == 0 {
			headers = sortedKeys(v)
		}
		return ColumnMap(headers, v), nil
	case [][]V:
		return Rows(headers, v), nil
	case []map[K]V:
		return Records(v, headers...), nil
	case []Column[K, V]:
		return Pairs(v...), nil
	default:
		return nil, &UnsupportedInputError{Input: fmt.Sprintf("%T", input)}
	}
}

// Option configures a table at construction time.
type Option func(*options)

type options struct {
	title     string
	observers []Observer
}

// WithTitle sets the table label.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithObserver registers an observer from the start.
func WithObserver(observer Observer) Option {
	return func(o *options) { o.observers = append(o.observers, observer) }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
