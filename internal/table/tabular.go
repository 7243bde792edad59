// Package table implements an in-memory table addressable by row position,
// row range and column name, in a row-oriented (Table) and a
// column-oriented (ColumnTable) layout. Both keep the table rectangular:
// every mutator validates its input first and leaves the table untouched
// when it rejects a call.
package table

import (
	"iter"
	"slices"
)

// Tabular is the contract shared by Table and ColumnTable.
type Tabular[K comparable, V any] interface {
	ID() string
	Title() string
	Width() int
	Height() int
	Headers() []K
	SetHeaders(headers []K) error
	Validate() error

	Row(i int) ([]V, error)
	Record(i int) (map[K]V, error)
	Rows() [][]V
	All() iter.Seq2[int, []V]
	SetRow(i int, row []V) error
	SetRecord(i int, rec map[K]V) error
	SetRange(r Range, rows [][]V) error
	InsertRow(i int, row []V) error
	InsertRecord(i int, rec map[K]V) error
	AppendRow(row []V) error
	AppendRecord(rec map[K]V) error
	ExtendRows(rows [][]V) error
	DeleteRow(i int) error
	DeleteRange(r Range) error
	PopRow(i int) ([]V, error)

	HasColumn(name K) bool
	Column(name K) ([]V, error)
	Columns() []Column[K, V]
	SetColumn(name K, values []V) error
	InsertColumn(index int, name K, values []V) error
	DeleteColumn(name K) error

	Get(sel Selector[K]) (Selection[K, V], error)
	Delete(sel Selector[K]) error

	AddObserver(observer Observer)
	RemoveObserver(observer Observer)
}

var (
	_ Tabular[string, any] = (*Table[string, any])(nil)
	_ Tabular[string, any] = (*ColumnTable[string, any])(nil)
)

// Equal reports whether a and b have the same headers and the same rows in order.
func Equal[K comparable, V comparable](a, b Tabular[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is Equal with a caller supplied cell comparison.
func EqualFunc[K comparable, V any](a, b Tabular[K, V], eq func(x, y V) bool) bool {
	if !slices.Equal(a.Headers(), b.Headers()) || a.Height() != b.Height() {
		return false
	}
	ra, rb := a.Rows(), b.Rows()
	for i := range ra {
		if !slices.EqualFunc(ra[i], rb[i], eq) {
			return false
		}
	}
	return true
}
