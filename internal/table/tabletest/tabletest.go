// Package tabletest holds fixtures and assertions shared by the table tests.
package tabletest

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/robochat/simpletable/internal/table"
)

// Kind constructs one of the two table layouts behind the common interface.
type Kind[K comparable, V any] struct {
	Name string
	New  func(src table.Source[K, V], opts ...table.Option) (table.Tabular[K, V], error)
}

// Kinds returns the row-oriented and the column-oriented constructors.
func Kinds[K comparable, V any]() []Kind[K, V] {
	return []Kind[K, V]{
		{Name: "rows", New: func(src table.Source[K, V], opts ...table.Option) (table.Tabular[K, V], error) {
			t, err := table.NewTable(src, opts...)
			if err != nil {
				return nil, err
			}
			return t, nil
		}},
		{Name: "columns", New: func(src table.Source[K, V], opts ...table.Option) (table.Tabular[K, V], error) {
			t, err := table.NewColumnTable(src, opts...)
			if err != nil {
				return nil, err
			}
			return t, nil
		}},
	}
}

// NumberHeaders names the columns of Numbers.
var NumberHeaders = []string{"a", "b", "c"}

// NumberRows returns n rows of the form [i, 10*i, 100*i].
func NumberRows(n int) [][]int {
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = []int{i, 10 * i, 100 * i}
	}
	return rows
}

// Numbers is a three column int source with n rows.
func Numbers(n int) table.Source[string, int] {
	return table.Rows(NumberHeaders, NumberRows(n))
}

// MustBuild constructs a table of the given kind or fails the test
func MustBuild[K comparable, V any](t *testing.T, kind Kind[K, V], src table.Source[K, V], opts ...table.Option) table.Tabular[K, V] {
	t.Helper()
	tab, err := kind.New(src, opts...)
	assert.NilError(t, err, "building %s table", kind.Name)
	return tab
}

// Snapshot is a copy of a table's headers and rows.
type Snapshot[K comparable, V any] struct {
	Headers []K
	Rows    [][]V
}

// Take records the current contents of tab.
func Take[K comparable, V any](tab table.Tabular[K, V]) Snapshot[K, V] {
	return Snapshot[K, V]{Headers: tab.Headers(), Rows: tab.Rows()}
}

// AssertUnchanged checks that tab still holds exactly what snap recorded
func AssertUnchanged[K comparable, V any](t *testing.T, tab table.Tabular[K, V], snap Snapshot[K, V]) {
	t.Helper()
	assert.Check(t, is.DeepEqual(tab.Headers(), snap.Headers))
	assert.Check(t, is.DeepEqual(tab.Rows(), snap.Rows))
	AssertValid(t, tab)
}

// AssertShape checks width and height
func AssertShape[K comparable, V any](t *testing.T, tab table.Tabular[K, V], width, height int) {
	t.Helper()
	assert.Check(t, is.Equal(tab.Width(), width), "width")
	assert.Check(t, is.Equal(tab.Height(), height), "height")
}

// AssertValid checks the shape invariants
func AssertValid[K comparable, V any](t *testing.T, tab table.Tabular[K, V]) {
	t.Helper()
	assert.Check(t, tab.Validate(), "table should be rectangular")
}

// Recorder is an observer that keeps every event it receives.
type Recorder struct {
	Events []table.Event
}

func (r *Recorder) OnEvent(event table.Event) {
	r.Events = append(r.Events, event)
}

// Types lists the recorded event types in order.
func (r *Recorder) Types() []table.EventType {
	out := make([]table.EventType, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}
