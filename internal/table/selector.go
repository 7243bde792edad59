package table

// Selector addresses part of a table: one row, a range of rows or one column.
// The set is closed: Position, Range and Name are the only implementations.
type Selector[K comparable] interface {
	selector()
}

// Position selects a single row. Negative values count from the end.
type Position int

// ByPosition selects row i.
func ByPosition(i int) Position { return Position(i) }

func (Position) selector() {}

// Name selects a column by its header name.
type Name[K comparable] struct {
	Key K
}

// ByName selects the column called key.
func ByName[K comparable](key K) Name[K] { return Name[K]{Key: key} }

func (Name[K]) selector() {}

// Range selects rows the way a Python slice does: optional start and stop,
// negative bounds counted from the end, and a non-zero step that may be negative.
type Range struct {
	start, stop       int
	hasStart, hasStop bool
	step              int
	hasStep           bool
}

// ByRange selects rows start:stop:step.
func ByRange(start, stop, step int) Range {
	return Range{start: start, stop: stop, hasStart: true, hasStop: true, step: step, hasStep: true}
}

// Span selects rows start:stop.
func Span(start, stop int) Range { return ByRange(start, stop, 1) }

// From selects rows start: to the end.
func From(start int) Range { return Range{start: start, hasStart: true} }

// To selects rows :stop.
func To(stop int) Range { return Range{stop: stop, hasStop: true} }

// Every selects all rows. It is also the zero Range.
func Every() Range { return Range{} }

// By returns a copy of r with the given step.
func (r Range) By(step int) Range {
	r.step = step
	r.hasStep = true
	return r
}

func (Range) selector() {}

// Step reports the range step, 1 when unset.
func (r Range) Step() int {
	if !r.hasStep {
		return 1
	}
	return r.step
}

// Indices resolves r against a sequence of length n and returns the selected
// positions in range order.
func (r Range) Indices(n int) ([]int, error) {
	step := r.Step()
	if step == 0 {
		return nil, ErrZeroStep
	}

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	clamp := func(v int) int {
		if v < 0 {
			v += n
			if v < lower {
				v = lower
			}
		} else if v > upper {
			v = upper
		}
		return v
	}

	start := lower
	if step < 0 {
		start = upper
	}
	if r.hasStart {
		start = clamp(r.start)
	}
	stop := upper
	if step < 0 {
		stop = lower
	}
	if r.hasStop {
		stop = clamp(r.stop)
	}

	// count up front so that start+k*step never leaves [lower, upper]
	var span, stride uint
	if step > 0 && start < stop {
		span, stride = uint(stop-start), uint(step)
	} else if step < 0 && start > stop {
		span, stride = uint(start-stop), uint(-step)
	}
	if span == 0 {
		return nil, nil
	}
	count := int((span-1)/stride) + 1

	out := make([]int, count)
	for k := range out {
		out[k] = start + k*step
	}
	return out, nil
}

// SelectionKind tells which field of a Selection is populated.
type SelectionKind int

const (
	RowSelection SelectionKind = iota
	RangeSelection
	ColumnSelection
)

// Selection is the result of Get. Row is set for a Position, Table for a Range
// (same concrete kind as the source) and Column for a Name.
type Selection[K comparable, V any] struct {
	Kind   SelectionKind
	Row    []V
	Column []V
	Table  Tabular[K, V]
}
