package table

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrShape            = errors.New("shape mismatch")
	ErrDuplicateName    = errors.New("duplicate column name")
	ErrWidth            = errors.New("row width mismatch")
	ErrLength           = errors.New("column length mismatch")
	ErrNoSuchColumn     = errors.New("no such column")
	ErrUnsupportedInput = errors.New("unsupported input")
	ErrIndex            = errors.New("row index out of range")
	ErrZeroStep         = errors.New("range step cannot be zero")
)

// joinParts renders the "subject - detail - detail" form shared by all table errors.
func joinParts(subject string, parts ...string) string {
	out := []string{subject}
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " - ")
}

func tableLabel(title string) string {
	if title == "" {
		return "table"
	}
	return fmt.Sprintf("table %q", title)
}

// ShapeError reports storage whose rows or columns are not rectangular.
type ShapeError struct {
	Table  string // table title (may be empty)
	Reason string // human-readable explanation
	Index  int    // offending row position, -1 if not row specific
	Want   int
	Got    int
}

func (e *ShapeError) Error() string {
	var at string
	if e.Index >= 0 {
		at = fmt.Sprintf("at row %d", e.Index)
	}
	return joinParts(
		fmt.Sprintf("shape violation in %s", tableLabel(e.Table)),
		e.Reason,
		fmt.Sprintf("want %d, got %d", e.Want, e.Got),
		at,
	)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// DuplicateNameError reports a header sequence that repeats a name.
type DuplicateNameError struct {
	Table string
	Name  any
}

func (e *DuplicateNameError) Error() string {
	return joinParts(
		fmt.Sprintf("duplicate column in %s", tableLabel(e.Table)),
		fmt.Sprintf("name=%v", e.Name),
	)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// WidthError reports a supplied row whose length or key set does not match the headers.
type WidthError struct {
	Table  string
	Want   int
	Got    int
	Reason string
}

func (e *WidthError) Error() string {
	return joinParts(
		fmt.Sprintf("row width mismatch in %s", tableLabel(e.Table)),
		fmt.Sprintf("want %d, got %d", e.Want, e.Got),
		e.Reason,
	)
}

func (e *WidthError) Is(target error) bool { return target == ErrWidth }

// LengthError reports a supplied column whose length does not match the table height.
type LengthError struct {
	Table  string
	Column any
	Want   int
	Got    int
}

func (e *LengthError) Error() string {
	return joinParts(
		fmt.Sprintf("column length mismatch in %s.%v", tableLabel(e.Table), e.Column),
		fmt.Sprintf("want %d, got %d", e.Want, e.Got),
	)
}

func (e *LengthError) Is(target error) bool { return target == ErrLength }

// NoSuchColumnError reports a lookup or delete by an unknown column name.
type NoSuchColumnError struct {
	Table string
	Name  any
}

func (e *NoSuchColumnError) Error() string {
	return joinParts(
		fmt.Sprintf("column not found in %s", tableLabel(e.Table)),
		fmt.Sprintf("name=%v", e.Name),
	)
}

func (e *NoSuchColumnError) Is(target error) bool { return target == ErrNoSuchColumn }

// UnsupportedInputError reports construction input matching none of the known shapes.
type UnsupportedInputError struct {
	Input string // dynamic type of the rejected input
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported table input of type %s", e.Input)
}

func (e *UnsupportedInputError) Is(target error) bool { return target == ErrUnsupportedInput }

// IndexError reports a row position outside the table.
type IndexError struct {
	Table  string
	Index  int
	Height int
}

func (e *IndexError) Error() string {
	return joinParts(
		fmt.Sprintf("row index out of range in %s", tableLabel(e.Table)),
		fmt.Sprintf("index=%d", e.Index),
		fmt.Sprintf("height=%d", e.Height),
	)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndex }

func newWidthError(title string, want, got int) *WidthError {
	return &WidthError{Table: title, Want: want, Got: got}
}

func newLengthError(title string, column any, want, got int) *LengthError {
	return &LengthError{Table: title, Column: column, Want: want, Got: got}
}
