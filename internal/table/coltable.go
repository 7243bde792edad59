package table

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ColumnTable is the column-oriented store: an ordered mapping from column
// name to cells. Column mutations are cheap; every row mutation touches each
// column once. The zero value is an empty untitled table.
//
// ColumnTable is not safe for concurrent use.
type ColumnTable[K comparable, V any] struct {
	meta
	headers []K
	cols    map[K][]V
}

// NewColumnTable builds a column-oriented table from src. All input storage is copied.
func NewColumnTable[K comparable, V any](src Source[K, V], opts ...Option) (*ColumnTable[K, V], error) {
	if src == nil {
		src = Pairs[K, V]()
	}
	o := collect(opts)
	f, err := src.frame(o.title)
	if err != nil {
		return nil, err
	}
	ct := &ColumnTable[K, V]{
		meta:    newMeta(o.title, o.observers),
		headers: f.headers,
		cols:    make(map[K][]V, len(f.headers)),
	}
	for i, h := range f.headers {
		col := f.cols[i]
		if col == nil {
			col = []V{}
		}
		ct.cols[h] = col
	}
	return ct, nil
}

// Width returns the number of columns.
func (ct *ColumnTable[K, V]) Width() int { return len(ct.headers) }

// Height returns the number of rows, taken from the first column.
func (ct *ColumnTable[K, V]) Height() int {
	if len(ct.headers) == 0 {
		return 0
	}
	return len(ct.cols[ct.headers[0]])
}

// Headers returns a copy of the column names in order.
func (ct *ColumnTable[K, V]) Headers() []K { return slices.Clone(ct.headers) }

// SetHeaders replaces the header. On a table without columns it defines
// empty columns; otherwise it must have the current width and relabels the
// columns by position, keeping their data in place.
func (ct *ColumnTable[K, V]) SetHeaders(headers []K) error {
	if err := checkUnique(ct.title, headers); err != nil {
		return ct.reject("set_headers", err)
	}
	cols := make(map[K][]V, len(headers))
	if len(ct.headers) == 0 {
		for _, h := range headers {
			cols[h] = []V{}
		}
	} else {
		if len(headers) != len(ct.headers) {
			return ct.reject("set_headers", &ShapeError{
				Table:  ct.title,
				Reason: "new header length differs from table width",
				Index:  -1,
				Want:   len(ct.headers),
				Got:    len(headers),
			})
		}
		for i, h := range headers {
			cols[h] = ct.cols[ct.headers[i]]
		}
	}
	ct.headers = slices.Clone(headers)
	ct.cols = cols
	ct.notify(EventHeadersSet, map[string]any{"headers": ct.Headers()})
	return nil
}

// Validate checks the shape invariants against the current storage.
func (ct *ColumnTable[K, V]) Validate() error {
	if err := checkUnique(ct.title, ct.headers); err != nil {
		return err
	}
	if len(ct.headers) != len(ct.cols) {
		return &ShapeError{
			Table:  ct.title,
			Reason: "header count differs from column count",
			Index:  -1,
			Want:   len(ct.headers),
			Got:    len(ct.cols),
		}
	}
	height := ct.Height()
	for _, h := range ct.headers {
		col, ok := ct.cols[h]
		if !ok {
			return &NoSuchColumnError{Table: ct.title, Name: h}
		}
		if len(col) != height {
			return &ShapeError{
				Table:  ct.title,
				Reason: fmt.Sprintf("column %v length differs from previous columns", h),
				Index:  -1,
				Want:   height,
				Got:    len(col),
			}
		}
	}
	return nil
}

func (ct *ColumnTable[K, V]) rowAt(pos int) []V {
	row := make([]V, len(ct.headers))
	for c, h := range ct.headers {
		row[c] = ct.cols[h][pos]
	}
	return row
}

// Row returns row i assembled from the columns. Negative positions count from the end.
func (ct *ColumnTable[K, V]) Row(i int) ([]V, error) {
	pos, err := resolveIndex(ct.title, i, ct.Height())
	if err != nil {
		return nil, err
	}
	return ct.rowAt(pos), nil
}

// Record returns row i keyed by column name.
func (ct *ColumnTable[K, V]) Record(i int) (map[K]V, error) {
	row, err := ct.Row(i)
	if err != nil {
		return nil, err
	}
	return rowRecord(ct.headers, row), nil
}

// Rows returns every row.
func (ct *ColumnTable[K, V]) Rows() [][]V {
	rows := make([][]V, ct.Height())
	for i := range rows {
		rows[i] = ct.rowAt(i)
	}
	return rows
}

// LiveColumn exposes the backing storage of one column without copying.
// Writes through it bypass validation; call Validate afterwards.
func (ct *ColumnTable[K, V]) LiveColumn(name K) ([]V, error) {
	col, ok := ct.lookup(name)
	if !ok {
		return nil, &NoSuchColumnError{Table: ct.title, Name: name}
	}
	return col, nil
}

// LiveColumns exposes the name→column map itself. Columns may be replaced
// or resliced through it; call Validate afterwards.
func (ct *ColumnTable[K, V]) LiveColumns() map[K][]V { return ct.cols }

// All iterates over row positions and assembled rows.
func (ct *ColumnTable[K, V]) All() iter.Seq2[int, []V] {
	return func(yield func(int, []V) bool) {
		for i := range ct.Height() {
			if !yield(i, ct.rowAt(i)) {
				return
			}
		}
	}
}

// Slice returns an independent table holding the rows selected by r, in range order.
func (ct *ColumnTable[K, V]) Slice(r Range) (*ColumnTable[K, V], error) {
	idx, err := r.Indices(ct.Height())
	if err != nil {
		return nil, err
	}
	out := &ColumnTable[K, V]{
		meta:    ct.derive(),
		headers: ct.Headers(),
		cols:    make(map[K][]V, len(ct.headers)),
	}
	for _, h := range ct.headers {
		src := ct.cols[h]
		col := make([]V, len(idx))
		for n, i := range idx {
			col[n] = src[i]
		}
		out.cols[h] = col
	}
	return out, nil
}

// SetRow replaces row i.
func (ct *ColumnTable[K, V]) SetRow(i int, row []V) error {
	pos, err := resolveIndex(ct.title, i, ct.Height())
	if err != nil {
		return ct.reject("set_row", err)
	}
	if err := checkWidth(ct.title, len(ct.headers), row); err != nil {
		return ct.reject("set_row", err)
	}
	for c, h := range ct.headers {
		ct.cols[h][pos] = row[c]
	}
	ct.notify(EventRowSet, map[string]any{"position": pos})
	return nil
}

// SetRecord replaces row i from a record covering exactly the header set.
func (ct *ColumnTable[K, V]) SetRecord(i int, rec map[K]V) error {
	row, err := recordRow(ct.title, ct.headers, rec)
	if err != nil {
		return ct.reject("set_record", err)
	}
	return ct.SetRow(i, row)
}

// SetRange replaces the rows selected by r with one row per selected position.
func (ct *ColumnTable[K, V]) SetRange(r Range, rows [][]V) error {
	idx, err := r.Indices(ct.Height())
	if err != nil {
		return ct.reject("set_range", err)
	}
	if len(rows) != len(idx) {
		return ct.reject("set_range", &ShapeError{
			Table:  ct.title,
			Reason: "replacement row count differs from selected range",
			Index:  -1,
			Want:   len(idx),
			Got:    len(rows),
		})
	}
	for _, row := range rows {
		if err := checkWidth(ct.title, len(ct.headers), row); err != nil {
			return ct.reject("set_range", err)
		}
	}
	for c, h := range ct.headers {
		col := ct.cols[h]
		for n, i := range idx {
			col[i] = rows[n][c]
		}
	}
	ct.notify(EventRowSet, map[string]any{"positions": idx})
	return nil
}

// InsertRow inserts row before position i, clamping i like list insert.
func (ct *ColumnTable[K, V]) InsertRow(i int, row []V) error {
	if err := checkWidth(ct.title, len(ct.headers), row); err != nil {
		return ct.reject("insert_row", err)
	}
	pos := insertionPoint(i, ct.Height())
	for c, h := range ct.headers {
		ct.cols[h] = slices.Insert(ct.cols[h], pos, row[c])
	}
	ct.notify(EventRowInsert, map[string]any{"position": pos})
	return nil
}

// InsertRecord inserts a record before position i.
func (ct *ColumnTable[K, V]) InsertRecord(i int, rec map[K]V) error {
	row, err := recordRow(ct.title, ct.headers, rec)
	if err != nil {
		return ct.reject("insert_record", err)
	}
	return ct.InsertRow(i, row)
}

// AppendRow adds row at the end.
func (ct *ColumnTable[K, V]) AppendRow(row []V) error { return ct.InsertRow(ct.Height(), row) }

// AppendRecord adds a record at the end.
func (ct *ColumnTable[K, V]) AppendRecord(rec map[K]V) error {
	return ct.InsertRecord(ct.Height(), rec)
}

// ExtendRows appends every row, or none if any has the wrong width.
func (ct *ColumnTable[K, V]) ExtendRows(rows [][]V) error {
	for _, row := range rows {
		if err := checkWidth(ct.title, len(ct.headers), row); err != nil {
			return ct.reject("extend_rows", err)
		}
	}
	start := ct.Height()
	for c, h := range ct.headers {
		col := ct.cols[h]
		for _, row := range rows {
			col = append(col, row[c])
		}
		ct.cols[h] = col
	}
	ct.notify(EventRowInsert, map[string]any{"position": start, "count": len(rows)})
	return nil
}

// DeleteRow removes row i.
func (ct *ColumnTable[K, V]) DeleteRow(i int) error {
	_, err := ct.PopRow(i)
	return err
}

// PopRow removes row i and returns it.
func (ct *ColumnTable[K, V]) PopRow(i int) ([]V, error) {
	pos, err := resolveIndex(ct.title, i, ct.Height())
	if err != nil {
		return nil, ct.reject("delete_row", err)
	}
	row := ct.rowAt(pos)
	for _, h := range ct.headers {
		ct.cols[h] = slices.Delete(ct.cols[h], pos, pos+1)
	}
	ct.notify(EventRowDelete, map[string]any{"position": pos})
	return row, nil
}

// DeleteRange removes every row selected by r.
func (ct *ColumnTable[K, V]) DeleteRange(r Range) error {
	idx, err := r.Indices(ct.Height())
	if err != nil {
		return ct.reject("delete_range", err)
	}
	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		drop[i] = struct{}{}
	}
	for _, h := range ct.headers {
		src := ct.cols[h]
		kept := make([]V, 0, len(src)-len(drop))
		for i, v := range src {
			if _, gone := drop[i]; !gone {
				kept = append(kept, v)
			}
		}
		ct.cols[h] = kept
	}
	ct.notify(EventRowDelete, map[string]any{"positions": idx})
	return nil
}

// lookup reads a column, treating a name that cannot be hashed as absent.
func (ct *ColumnTable[K, V]) lookup(name K) ([]V, bool) {
	if !hashable(name) {
		return nil, false
	}
	col, ok := ct.cols[name]
	return col, ok
}

// HasColumn reports whether name is a header.
func (ct *ColumnTable[K, V]) HasColumn(name K) bool {
	_, ok := ct.lookup(name)
	return ok
}

// Column returns a copy of the named column's cells.
func (ct *ColumnTable[K, V]) Column(name K) ([]V, error) {
	col, ok := ct.lookup(name)
	if !ok {
		return nil, &NoSuchColumnError{Table: ct.title, Name: name}
	}
	return slices.Clone(col), nil
}

// Columns returns a copy of every column in header order.
func (ct *ColumnTable[K, V]) Columns() []Column[K, V] {
	out := make([]Column[K, V], len(ct.headers))
	for i, h := range ct.headers {
		out[i] = Column[K, V]{Name: h, Values: slices.Clone(ct.cols[h])}
	}
	return out
}

// SetColumn replaces the named column, or appends it as the last column when
// the name is unknown.
func (ct *ColumnTable[K, V]) SetColumn(name K, values []V) error {
	if _, ok := ct.lookup(name); !ok {
		return ct.insertColumn("set_column", len(ct.headers), name, values)
	}
	if len(values) != ct.Height() {
		return ct.reject("set_column", newLengthError(ct.title, name, ct.Height(), len(values)))
	}
	ct.cols[name] = slices.Clone(values)
	ct.notify(EventColumnSet, map[string]any{"column": name})
	return nil
}

// InsertColumn adds a named column before header position index.
func (ct *ColumnTable[K, V]) InsertColumn(index int, name K, values []V) error {
	return ct.insertColumn("insert_column", index, name, values)
}

func (ct *ColumnTable[K, V]) insertColumn(op string, index int, name K, values []V) error {
	if err := checkName(name); err != nil {
		return ct.reject(op, err)
	}
	if _, ok := ct.cols[name]; ok {
		return ct.reject(op, &DuplicateNameError{Table: ct.title, Name: name})
	}
	if len(ct.headers) > 0 && len(values) != ct.Height() {
		return ct.reject(op, newLengthError(ct.title, name, ct.Height(), len(values)))
	}
	if ct.cols == nil {
		ct.cols = make(map[K][]V)
	}
	pos := insertionPoint(index, len(ct.headers))
	ct.headers = slices.Insert(ct.headers, pos, name)
	ct.cols[name] = slices.Clone(values)
	if ct.cols[name] == nil {
		ct.cols[name] = []V{}
	}
	ct.notify(EventColumnInsert, map[string]any{"column": name, "position": pos})
	return nil
}

// DeleteColumn removes the named column.
func (ct *ColumnTable[K, V]) DeleteColumn(name K) error {
	if _, ok := ct.lookup(name); !ok {
		return ct.reject("delete_column", &NoSuchColumnError{Table: ct.title, Name: name})
	}
	ct.headers = slices.DeleteFunc(ct.headers, func(h K) bool { return h == name })
	delete(ct.cols, name)
	ct.notify(EventColumnDelete, map[string]any{"column": name})
	return nil
}

// Select returns an independent table with only the named columns, in the requested order.
func (ct *ColumnTable[K, V]) Select(names ...K) (*ColumnTable[K, V], error) {
	if err := checkUnique(ct.title, names); err != nil {
		return nil, err
	}
	out := &ColumnTable[K, V]{
		meta:    ct.derive(),
		headers: slices.Clone(names),
		cols:    make(map[K][]V, len(names)),
	}
	for _, name := range names {
		col, err := ct.Column(name)
		if err != nil {
			return nil, err
		}
		out.cols[name] = col
	}
	return out, nil
}

// Get resolves a selector: a Position yields a row, a Range a table and a Name a column.
func (ct *ColumnTable[K, V]) Get(sel Selector[K]) (Selection[K, V], error) {
	switch s := sel.(type) {
	case Position:
		row, err := ct.Row(int(s))
		return Selection[K, V]{Kind: RowSelection, Row: row}, err
	case Range:
		sub, err := ct.Slice(s)
		if err != nil {
			return Selection[K, V]{}, err
		}
		return Selection[K, V]{Kind: RangeSelection, Table: sub}, nil
	case Name[K]:
		col, err := ct.Column(s.Key)
		return Selection[K, V]{Kind: ColumnSelection, Column: col}, err
	default:
		return Selection[K, V]{}, fmt.Errorf("unknown selector %T", sel)
	}
}

// Delete removes the row, rows or column addressed by sel.
func (ct *ColumnTable[K, V]) Delete(sel Selector[K]) error {
	switch s := sel.(type) {
	case Position:
		return ct.DeleteRow(int(s))
	case Range:
		return ct.DeleteRange(s)
	case Name[K]:
		return ct.DeleteColumn(s.Key)
	default:
		return fmt.Errorf("unknown selector %T", sel)
	}
}

// Clone returns an independent copy without observers.
func (ct *ColumnTable[K, V]) Clone() *ColumnTable[K, V] {
	out, _ := ct.Slice(Every())
	return out
}

// ToTable converts to the row-oriented layout.
func (ct *ColumnTable[K, V]) ToTable() *Table[K, V] {
	return &Table[K, V]{meta: ct.derive(), headers: ct.Headers(), rows: ct.Rows()}
}

func (ct *ColumnTable[K, V]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ColumnTable(title = %q,", ct.title)
	for _, h := range ct.headers {
		fmt.Fprintf(&b, "\n    %v: %v", h, ct.cols[h])
	}
	b.WriteString(")")
	return b.String()
}
