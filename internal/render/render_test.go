package render_test

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/robochat/simpletable/internal/render"
	"github.com/robochat/simpletable/internal/table"
)

func people(t *testing.T) *table.Table[string, any] {
	t.Helper()
	tab, err := table.NewTable(table.Rows([]string{"name", "age"}, [][]any{
		{"ada", 36},
		{"grace", 85},
		{"linus", 54},
		{"ken", 81},
	}), table.WithTitle("people"))
	assert.NilError(t, err)
	return tab
}

func TestRenderAllRows(t *testing.T) {
	out := render.Render[string, any](people(t), render.Options{})

	for _, want := range []string{"name", "age", "ada", "36", "grace", "ken", "81"} {
		assert.Check(t, is.Contains(out, want))
	}
	assert.Check(t, !strings.Contains(out, render.Ellipsis))
	assert.Check(t, !strings.Contains(out, "people"))
	assert.Check(t, !strings.Contains(out, "rows"))
}

func TestRenderLimit(t *testing.T) {
	out := render.Render[string, any](people(t), render.Options{Limit: 2, ShowTitle: true})

	assert.Check(t, is.Contains(out, "people"))
	assert.Check(t, is.Contains(out, "grace"))
	assert.Check(t, !strings.Contains(out, "linus"))
	assert.Check(t, is.Contains(out, render.Ellipsis))
	assert.Check(t, strings.HasSuffix(out, "2 of 4 rows"))
}

func TestRenderColumnTable(t *testing.T) {
	ct := people(t).ToColumnTable()
	assert.NilError(t, ct.DeleteColumn("age"))

	out := render.Render[string, any](ct, render.Options{Limit: 10})
	assert.Check(t, is.Contains(out, "linus"))
	assert.Check(t, !strings.Contains(out, "54"))
}
