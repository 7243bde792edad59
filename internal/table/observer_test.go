package table_test

import (
	"bytes"
	"log/slog"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/robochat/simpletable/internal/table"
	"github.com/robochat/simpletable/internal/table/tabletest"
)

func TestObserverReceivesMutations(t *testing.T) {
	eachKind(t, func(t *testing.T, k kind) {
		rec := &tabletest.Recorder{}
		tab := tabletest.MustBuild(t, k, tabletest.Numbers(3), table.WithTitle("watched"), table.WithObserver(rec))

		assert.NilError(t, tab.AppendRow([]int{3, 30, 300}))
		assert.NilError(t, tab.SetRow(0, []int{1, 1, 1}))
		assert.NilError(t, tab.DeleteRow(-1))
		assert.NilError(t, tab.SetColumn("d", []int{0, 0, 0}))
		assert.NilError(t, tab.SetColumn("d", []int{1, 1, 1}))
		assert.NilError(t, tab.DeleteColumn("d"))
		assert.NilError(t, tab.SetHeaders([]string{"x", "y", "z"}))

		assert.Check(t, is.DeepEqual(rec.Types(), []table.EventType{
			table.EventRowInsert,
			table.EventRowSet,
			table.EventRowDelete,
			table.EventColumnInsert,
			table.EventColumnSet,
			table.EventColumnDelete,
			table.EventHeadersSet,
		}))

		first := rec.Events[0]
		assert.Equal(t, first.TableID, tab.ID())
		assert.Equal(t, first.Title, "watched")
		assert.Check(t, !first.Timestamp.IsZero())
		assert.Check(t, is.DeepEqual(first.Data, map[string]any{"position": 3}))
	})
}

func TestObserverSeesRejections(t *testing.T) {
	eachKind(t, func(t *testing.T, k kind) {
		rec := &tabletest.Recorder{}
		tab := numbers(t, k, 2)
		tab.AddObserver(rec)

		err := tab.AppendRow([]int{1})
		assert.Check(t, is.ErrorIs(err, table.ErrWidth))
		assert.Assert(t, is.Len(rec.Events, 1))

		event := rec.Events[0]
		assert.Equal(t, event.Type, table.EventMutationRejected)
		data, ok := event.Data.(map[string]any)
		assert.Assert(t, ok)
		assert.Equal(t, data["op"], "insert_row")
		assert.Equal(t, data["error"], err)
	})
}

func TestRemoveObserver(t *testing.T) {
	eachKind(t, func(t *testing.T, k kind) {
		first, second := &tabletest.Recorder{}, &tabletest.Recorder{}
		tab := numbers(t, k, 2)
		tab.AddObserver(first)
		tab.AddObserver(second)

		assert.NilError(t, tab.DeleteRow(0))
		tab.RemoveObserver(first)
		assert.NilError(t, tab.DeleteRow(0))

		assert.Check(t, is.Len(first.Events, 1))
		assert.Check(t, is.Len(second.Events, 2))
	})
}

// tally is an Observer whose value == cannot compare.
type tally struct {
	count *int
	tags  []string
}

func (o tally) OnEvent(table.Event) { *o.count++ }

func TestRemoveIncomparableObserver(t *testing.T) {
	eachKind(t, func(t *testing.T, k kind) {
		var n int
		rec := &tabletest.Recorder{}
		tab := numbers(t, k, 3)
		tab.AddObserver(tally{count: &n, tags: []string{"x"}})
		tab.AddObserver(rec)
		tab.AddObserver(tally{count: &n})

		tab.RemoveObserver(tally{count: &n})
		assert.NilError(t, tab.DeleteRow(0))
		assert.Equal(t, n, 2)

		tab.RemoveObserver(rec)
		assert.NilError(t, tab.DeleteRow(0))
		assert.Equal(t, n, 4)
		assert.Check(t, is.Len(rec.Events, 1))
	})
}

func TestSliceHasNoObservers(t *testing.T) {
	eachKind(t, func(t *testing.T, k kind) {
		rec := &tabletest.Recorder{}
		tab := tabletest.MustBuild(t, k, tabletest.Numbers(4), table.WithObserver(rec))

		sel, err := tab.Get(table.Span(0, 2))
		assert.NilError(t, err)
		assert.NilError(t, sel.Table.DeleteRow(0))
		assert.Check(t, is.Len(rec.Events, 0))
	})
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tab, err := table.NewTable(tabletest.Numbers(2), table.WithTitle("logged"),
		table.WithObserver(table.NewLoggingObserver(logger)))
	assert.NilError(t, err)

	assert.NilError(t, tab.AppendRow([]int{2, 20, 200}))
	out := buf.String()
	assert.Check(t, is.Contains(out, "level=DEBUG"))
	assert.Check(t, is.Contains(out, "msg=table_mutation"))
	assert.Check(t, is.Contains(out, "event=row_insert"))
	assert.Check(t, is.Contains(out, "title=logged"))
	assert.Check(t, is.Contains(out, "table_id="+tab.ID()))

	buf.Reset()
	assert.Check(t, tab.DeleteColumn("missing") != nil)
	assert.Check(t, is.Contains(buf.String(), "level=WARN"))
	assert.Check(t, is.Contains(buf.String(), "event=mutation_rejected"))
}

func TestLoggingObserverDefaultLogger(t *testing.T) {
	assert.Assert(t, table.NewLoggingObserver(nil) != nil)
}
