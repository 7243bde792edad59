package table_test

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/robochat/simpletable/internal/table"
)

func TestRangeIndices(t *testing.T) {
	cases := []struct {
		name string
		r    table.Range
		n    int
		want []int
	}{
		{name: "every", r: table.Every(), n: 5, want: []int{0, 1, 2, 3, 4}},
		{name: "span", r: table.Span(1, 4), n: 10, want: []int{1, 2, 3}},
		{name: "strided", r: table.ByRange(1, 10, 2), n: 10, want: []int{1, 3, 5, 7, 9}},
		{name: "last", r: table.From(-1), n: 10, want: []int{9}},
		{name: "negative stop", r: table.To(-3), n: 10, want: []int{0, 1, 2, 3, 4, 5, 6}},
		{name: "reversed", r: table.Every().By(-1), n: 4, want: []int{3, 2, 1, 0}},
		{name: "reversed span", r: table.Span(8, 2).By(-2), n: 10, want: []int{8, 6, 4}},
		{name: "from going back", r: table.From(3).By(-1), n: 10, want: []int{3, 2, 1, 0}},
		{name: "clamped", r: table.ByRange(-20, 20, 3), n: 10, want: []int{0, 3, 6, 9}},
		{name: "from before start", r: table.From(-20), n: 3, want: []int{0, 1, 2}},
		{name: "past the end", r: table.Span(20, 30), n: 10, want: nil},
		{name: "crossed bounds", r: table.Span(5, 2), n: 10, want: nil},
		{name: "empty sequence", r: table.Every(), n: 0, want: nil},
		{name: "step past the end", r: table.ByRange(1, 10, math.MaxInt), n: 10, want: []int{1}},
		{name: "largest negative step", r: table.Every().By(math.MinInt), n: 10, want: []int{9}},
		{name: "large negative step", r: table.From(5).By(-math.MaxInt), n: 10, want: []int{5}},
		{name: "large step near stop", r: table.ByRange(8, 10, math.MaxInt-5), n: 10, want: []int{8}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.r.Indices(tc.n)
			assert.NilError(t, err)
			assert.Check(t, is.DeepEqual(got, tc.want))
		})
	}
}

func TestRangeZeroStep(t *testing.T) {
	_, err := table.Every().By(0).Indices(10)
	assert.ErrorIs(t, err, table.ErrZeroStep)

	_, err = table.ByRange(0, 5, 0).Indices(10)
	assert.ErrorIs(t, err, table.ErrZeroStep)
}

func TestRangeStep(t *testing.T) {
	assert.Equal(t, table.Every().Step(), 1)
	assert.Equal(t, table.Span(0, 2).Step(), 1)
	assert.Equal(t, table.From(4).By(-3).Step(), -3)
}
