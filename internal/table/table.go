package table

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Table is the row-oriented store: an ordered sequence of rows plus a
// separately tracked header. Appending rows is cheap; column mutations touch
// every row. The zero value is an empty untitled table.
//
// Table is not safe for concurrent use.
type Table[K comparable, V any] struct {
	meta
	headers []K
	rows    [][]V
}

// NewTable builds a row-oriented table from src. All input storage is copied.
func NewTable[K comparable, V any](src Source[K, V], opts ...Option) (*Table[K, V], error) {
	if src == nil {
		src = Pairs[K, V]()
	}
	o := collect(opts)
	f, err := src.frame(o.title)
	if err != nil {
		return nil, err
	}
	return &Table[K, V]{
		meta:    newMeta(o.title, o.observers),
		headers: f.headers,
		rows:    f.rows(),
	}, nil
}

// Width returns the number of columns.
func (t *Table[K, V]) Width() int { return len(t.headers) }

// Height returns the number of rows.
func (t *Table[K, V]) Height() int { return len(t.rows) }

// Headers returns a copy of the column names in order.
func (t *Table[K, V]) Headers() []K { return slices.Clone(t.headers) }

// SetHeaders replaces the header. On an empty table it defines the columns;
// otherwise it must have the current width and relabels columns by position
// without moving any data.
func (t *Table[K, V]) SetHeaders(headers []K) error {
	if err := checkUnique(t.title, headers); err != nil {
		return t.reject("set_headers", err)
	}
	if len(t.headers) != 0 || len(t.rows) != 0 {
		if len(headers) != len(t.headers) {
			return t.reject("set_headers", &ShapeError{
				Table:  t.title,
				Reason: "new header length differs from table width",
				Index:  -1,
				Want:   len(t.headers),
				Got:    len(headers),
			})
		}
	}
	t.headers = slices.Clone(headers)
	t.notify(EventHeadersSet, map[string]any{"headers": t.Headers()})
	return nil
}

// Validate checks the shape invariants against the current storage.
func (t *Table[K, V]) Validate() error {
	if err := checkUnique(t.title, t.headers); err != nil {
		return err
	}
	if len(t.headers) == 0 && len(t.rows) > 0 {
		return &ShapeError{Table: t.title, Reason: "rows present in a table without columns", Index: 0, Want: 0, Got: len(t.rows)}
	}
	return checkRows(t.title, len(t.headers), t.rows)
}

// Row returns a copy of row i. Negative positions count from the end.
func (t *Table[K, V]) Row(i int) ([]V, error) {
	pos, err := resolveIndex(t.title, i, len(t.rows))
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.rows[pos]), nil
}

// Record returns row i keyed by column name.
func (t *Table[K, V]) Record(i int) (map[K]V, error) {
	pos, err := resolveIndex(t.title, i, len(t.rows))
	if err != nil {
		return nil, err
	}
	return rowRecord(t.headers, t.rows[pos]), nil
}

// Rows returns a copy of every row.
func (t *Table[K, V]) Rows() [][]V { return cloneRows(t.rows) }

// LiveRows exposes the backing row storage without copying. Writes through
// it bypass validation; call Validate afterwards.
func (t *Table[K, V]) LiveRows() [][]V { return t.rows }

// All iterates over row positions and row copies.
func (t *Table[K, V]) All() iter.Seq2[int, []V] {
	return func(yield func(int, []V) bool) {
		for i, r := range t.rows {
			if !yield(i, slices.Clone(r)) {
				return
			}
		}
	}
}

// Slice returns an independent table holding the rows selected by r, in range order.
func (t *Table[K, V]) Slice(r Range) (*Table[K, V], error) {
	idx, err := r.Indices(len(t.rows))
	if err != nil {
		return nil, err
	}
	rows := make([][]V, len(idx))
	for n, i := range idx {
		rows[n] = slices.Clone(t.rows[i])
	}
	return &Table[K, V]{meta: t.derive(), headers: t.Headers(), rows: rows}, nil
}

// SetRow replaces row i.
func (t *Table[K, V]) SetRow(i int, row []V) error {
	pos, err := resolveIndex(t.title, i, len(t.rows))
	if err != nil {
		return t.reject("set_row", err)
	}
	if err := checkWidth(t.title, len(t.headers), row); err != nil {
		return t.reject("set_row", err)
	}
	t.rows[pos] = slices.Clone(row)
	t.notify(EventRowSet, map[string]any{"position": pos})
	return nil
}

// SetRecord replaces row i from a record covering exactly the header set.
func (t *Table[K, V]) SetRecord(i int, rec map[K]V) error {
	row, err := recordRow(t.title, t.headers, rec)
	if err != nil {
		return t.reject("set_record", err)
	}
	return t.SetRow(i, row)
}

// SetRange replaces the rows selected by r. rows must hold one row per
// selected position; the table height never changes.
func (t *Table[K, V]) SetRange(r Range, rows [][]V) error {
	idx, err := r.Indices(len(t.rows))
	if err != nil {
		return t.reject("set_range", err)
	}
	if len(rows) != len(idx) {
		return t.reject("set_range", &ShapeError{
			Table:  t.title,
			Reason: "replacement row count differs from selected range",
			Index:  -1,
			Want:   len(idx),
			Got:    len(rows),
		})
	}
	for _, row := range rows {
		if err := checkWidth(t.title, len(t.headers), row); err != nil {
			return t.reject("set_range", err)
		}
	}
	for n, i := range idx {
		t.rows[i] = slices.Clone(rows[n])
	}
	t.notify(EventRowSet, map[string]any{"positions": idx})
	return nil
}

// InsertRow inserts row before position i, clamping i like list insert.
func (t *Table[K, V]) InsertRow(i int, row []V) error {
	if err := checkWidth(t.title, len(t.headers), row); err != nil {
		return t.reject("insert_row", err)
	}
	pos := insertionPoint(i, len(t.rows))
	t.rows = slices.Insert(t.rows, pos, slices.Clone(row))
	t.notify(EventRowInsert, map[string]any{"position": pos})
	return nil
}

// InsertRecord inserts a record before position i.
func (t *Table[K, V]) InsertRecord(i int, rec map[K]V) error {
	row, err := recordRow(t.title, t.headers, rec)
	if err != nil {
		return t.reject("insert_record", err)
	}
	return t.InsertRow(i, row)
}

// AppendRow adds row at the end.
func (t *Table[K, V]) AppendRow(row []V) error { return t.InsertRow(len(t.rows), row) }

// AppendRecord adds a record at the end.
func (t *Table[K, V]) AppendRecord(rec map[K]V) error { return t.InsertRecord(len(t.rows), rec) }

// ExtendRows appends every row, or none if any has the wrong width.
func (t *Table[K, V]) ExtendRows(rows [][]V) error {
	for _, row := range rows {
		if err := checkWidth(t.title, len(t.headers), row); err != nil {
			return t.reject("extend_rows", err)
		}
	}
	start := len(t.rows)
	t.rows = append(t.rows, cloneRows(rows)...)
	t.notify(EventRowInsert, map[string]any{"position": start, "count": len(rows)})
	return nil
}

// DeleteRow removes row i.
func (t *Table[K, V]) DeleteRow(i int) error {
	_, err := t.PopRow(i)
	return err
}

// PopRow removes row i and returns it.
func (t *Table[K, V]) PopRow(i int) ([]V, error) {
	pos, err := resolveIndex(t.title, i, len(t.rows))
	if err != nil {
		return nil, t.reject("delete_row", err)
	}
	row := t.rows[pos]
	t.rows = slices.Delete(t.rows, pos, pos+1)
	t.notify(EventRowDelete, map[string]any{"position": pos})
	return row, nil
}

// DeleteRange removes every row selected by r.
func (t *Table[K, V]) DeleteRange(r Range) error {
	idx, err := r.Indices(len(t.rows))
	if err != nil {
		return t.reject("delete_range", err)
	}
	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		drop[i] = struct{}{}
	}
	kept := t.rows[:0:0]
	for i, row := range t.rows {
		if _, gone := drop[i]; !gone {
			kept = append(kept, row)
		}
	}
	t.rows = kept
	t.notify(EventRowDelete, map[string]any{"positions": idx})
	return nil
}

func (t *Table[K, V]) columnIndex(name K) (int, error) {
	pos := slices.Index(t.headers, name)
	if pos < 0 {
		return 0, &NoSuchColumnError{Table: t.title, Name: name}
	}
	return pos, nil
}

// HasColumn reports whether name is a header.
func (t *Table[K, V]) HasColumn(name K) bool { return slices.Contains(t.headers, name) }

// Column returns a copy of the named column's cells.
func (t *Table[K, V]) Column(name K) ([]V, error) {
	pos, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	col := make([]V, len(t.rows))
	for i, row := range t.rows {
		col[i] = row[pos]
	}
	return col, nil
}

// Columns returns a copy of every column in header order.
func (t *Table[K, V]) Columns() []Column[K, V] {
	out := make([]Column[K, V], len(t.headers))
	for c, h := range t.headers {
		col := make([]V, len(t.rows))
		for i, row := range t.rows {
			col[i] = row[c]
		}
		out[c] = Column[K, V]{Name: h, Values: col}
	}
	return out
}

// SetColumn replaces the named column, or appends it as the last column when
// the name is unknown.
func (t *Table[K, V]) SetColumn(name K, values []V) error {
	pos := slices.Index(t.headers, name)
	if pos < 0 {
		return t.insertColumn("set_column", len(t.headers), name, values)
	}
	if len(values) != len(t.rows) {
		return t.reject("set_column", newLengthError(t.title, name, len(t.rows), len(values)))
	}
	for i, row := range t.rows {
		row[pos] = values[i]
	}
	t.notify(EventColumnSet, map[string]any{"column": name})
	return nil
}

// InsertColumn adds a named column before header position index.
func (t *Table[K, V]) InsertColumn(index int, name K, values []V) error {
	return t.insertColumn("insert_column", index, name, values)
}

func (t *Table[K, V]) insertColumn(op string, index int, name K, values []V) error {
	if err := checkName(name); err != nil {
		return t.reject(op, err)
	}
	if slices.Contains(t.headers, name) {
		return t.reject(op, &DuplicateNameError{Table: t.title, Name: name})
	}
	pos := 0
	if len(t.headers) == 0 {
		// a table without columns takes its height from the first column
		t.rows = make([][]V, len(values))
		for i, v := range values {
			t.rows[i] = []V{v}
		}
		t.headers = []K{name}
	} else {
		if len(values) != len(t.rows) {
			return t.reject(op, newLengthError(t.title, name, len(t.rows), len(values)))
		}
		pos = insertionPoint(index, len(t.headers))
		t.headers = slices.Insert(t.headers, pos, name)
		for i := range t.rows {
			t.rows[i] = slices.Insert(t.rows[i], pos, values[i])
		}
	}
	t.notify(EventColumnInsert, map[string]any{"column": name, "position": pos})
	return nil
}

// DeleteColumn removes the named column. Removing the last column also
// removes the now empty rows.
func (t *Table[K, V]) DeleteColumn(name K) error {
	pos, err := t.columnIndex(name)
	if err != nil {
		return t.reject("delete_column", err)
	}
	t.headers = slices.Delete(t.headers, pos, pos+1)
	if len(t.headers) == 0 {
		t.rows = nil
	} else {
		for i := range t.rows {
			t.rows[i] = slices.Delete(t.rows[i], pos, pos+1)
		}
	}
	t.notify(EventColumnDelete, map[string]any{"column": name})
	return nil
}

// Select returns an independent table with only the named columns, in the requested order.
func (t *Table[K, V]) Select(names ...K) (*Table[K, V], error) {
	if err := checkUnique(t.title, names); err != nil {
		return nil, err
	}
	idx := make([]int, len(names))
	for n, name := range names {
		pos, err := t.columnIndex(name)
		if err != nil {
			return nil, err
		}
		idx[n] = pos
	}
	var rows [][]V
	if len(names) > 0 {
		rows = make([][]V, len(t.rows))
		for i, row := range t.rows {
			out := make([]V, len(idx))
			for n, pos := range idx {
				out[n] = row[pos]
			}
			rows[i] = out
		}
	}
	return &Table[K, V]{meta: t.derive(), headers: slices.Clone(names), rows: rows}, nil
}

// Get resolves a selector: a Position yields a row, a Range a table and a Name a column.
func (t *Table[K, V]) Get(sel Selector[K]) (Selection[K, V], error) {
	switch s := sel.(type) {
	case Position:
		row, err := t.Row(int(s))
		return Selection[K, V]{Kind: RowSelection, Row: row}, err
	case Range:
		sub, err := t.Slice(s)
		if err != nil {
			return Selection[K, V]{}, err
		}
		return Selection[K, V]{Kind: RangeSelection, Table: sub}, nil
	case Name[K]:
		col, err := t.Column(s.Key)
		return Selection[K, V]{Kind: ColumnSelection, Column: col}, err
	default:
		return Selection[K, V]{}, fmt.Errorf("unknown selector %T", sel)
	}
}

// Delete removes the row, rows or column addressed by sel.
func (t *Table[K, V]) Delete(sel Selector[K]) error {
	switch s := sel.(type) {
	case Position:
		return t.DeleteRow(int(s))
	case Range:
		return t.DeleteRange(s)
	case Name[K]:
		return t.DeleteColumn(s.Key)
	default:
		return fmt.Errorf("unknown selector %T", sel)
	}
}

// Clone returns an independent copy without observers.
func (t *Table[K, V]) Clone() *Table[K, V] {
	return &Table[K, V]{meta: t.derive(), headers: t.Headers(), rows: t.Rows()}
}

// ToColumnTable converts to the column-oriented layout.
func (t *Table[K, V]) ToColumnTable() *ColumnTable[K, V] {
	ct := &ColumnTable[K, V]{
		meta:    t.derive(),
		headers: t.Headers(),
		cols:    make(map[K][]V, len(t.headers)),
	}
	for _, c := range t.Columns() {
		ct.cols[c.Name] = c.Values
	}
	return ct
}

func (t *Table[K, V]) String() string {
	var b strings.Builder
	b.WriteString("Table(\n")
	for _, row := range t.rows {
		fmt.Fprintf(&b, "    %v,\n", row)
	}
	fmt.Fprintf(&b, "    title = %q,\n    headers = %v)", t.title, t.headers)
	return b.String()
}
