package table

import (
	"fmt"
	"reflect"
	"slices"
)

// resolveIndex maps a possibly negative row position onto [0, n).
func resolveIndex(title string, i, n int) (int, error) {
	pos := i
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return 0, &IndexError{Table: title, Index: i, Height: n}
	}
	return pos, nil
}

// insertionPoint clamps i the way list.insert does.
func insertionPoint(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// hashable reports whether name can key a map. Only a K that is or contains
// an interface can hold a name that cannot, such as a slice stored in an any.
func hashable[K comparable](name K) bool {
	switch reflect.TypeFor[K]().Kind() {
	case reflect.Interface, reflect.Struct, reflect.Array:
	default:
		return true
	}
	return comparableValue(name)
}

// comparableValue reports whether == on v cannot panic.
func comparableValue(v any) bool {
	rv := reflect.ValueOf(v)
	return !rv.IsValid() || rv.Comparable()
}

// checkName rejects a column name that cannot be hashed.
func checkName[K comparable](name K) error {
	if !hashable(name) {
		return &UnsupportedInputError{Input: fmt.Sprintf("column name of type %T", name)}
	}
	return nil
}

// checkUnique fails on the first unhashable or repeated header name.
func checkUnique[K comparable](title string, headers []K) error {
	seen := make(map[K]struct{}, len(headers))
	for _, h := range headers {
		if err := checkName(h); err != nil {
			return err
		}
		if _, dup := seen[h]; dup {
			return &DuplicateNameError{Table: title, Name: h}
		}
		seen[h] = struct{}{}
	}
	return nil
}

// checkRows confirms every row is exactly width cells wide.
func checkRows[V any](title string, width int, rows [][]V) error {
	for i, r := range rows {
		if len(r) != width {
			return &ShapeError{
				Table:  title,
				Reason: "row length differs from header count",
				Index:  i,
				Want:   width,
				Got:    len(r),
			}
		}
	}
	return nil
}

// checkWidth is the mutator pre-condition for a single supplied row.
func checkWidth[V any](title string, width int, row []V) error {
	if width == 0 {
		return &WidthError{Table: title, Want: 0, Got: len(row), Reason: "table has no columns"}
	}
	if len(row) != width {
		return newWidthError(title, width, len(row))
	}
	return nil
}

// recordRow orders a name→value record by headers. The record must cover
// exactly the header set.
func recordRow[K comparable, V any](title string, headers []K, rec map[K]V) ([]V, error) {
	if len(headers) == 0 {
		return nil, &WidthError{Table: title, Want: 0, Got: len(rec), Reason: "table has no columns"}
	}
	if len(rec) != len(headers) {
		return nil, &WidthError{Table: title, Want: len(headers), Got: len(rec), Reason: "record keys differ from headers"}
	}
	row := make([]V, len(headers))
	for i, h := range headers {
		v, ok := rec[h]
		if !ok {
			return nil, &WidthError{
				Table:  title,
				Want:   len(headers),
				Got:    len(rec),
				Reason: fmt.Sprintf("record is missing column %v", h),
			}
		}
		row[i] = v
	}
	return row, nil
}

func rowRecord[K comparable, V any](headers []K, row []V) map[K]V {
	rec := make(map[K]V, len(headers))
	for i, h := range headers {
		rec[h] = row[i]
	}
	return rec
}

func cloneRows[V any](rows [][]V) [][]V {
	out := make([][]V, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}
