package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/robochat/simpletable/internal/sample"
	"github.com/robochat/simpletable/internal/table"
)

func TestParseRange(t *testing.T) {
	cases := map[string][]int{
		"":       {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		"1:4":    {1, 2, 3},
		"::2":    {0, 2, 4, 6, 8},
		"-3:":    {7, 8, 9},
		":2":     {0, 1},
		"8:2:-3": {8, 5},
		"::-4":   {9, 5, 1},
	}
	for in, want := range cases {
		r, err := parseRange(in)
		assert.NilError(t, err, in)
		got, err := r.Indices(10)
		assert.NilError(t, err, in)
		assert.Check(t, is.DeepEqual(got, want), "range %q", in)
	}

	for _, bad := range []string{"a:b", "1:2:3:4", "1.5"} {
		_, err := parseRange(bad)
		assert.Check(t, err != nil, bad)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]string{"-csv", "in.csv", "-layout", "columns", "-select", "a,b", "-rows", "::2", "-limit", "5"})
	assert.NilError(t, err)
	assert.Equal(t, cfg.csvPath, "in.csv")
	assert.Equal(t, cfg.layout, "columns")
	assert.Check(t, is.DeepEqual(cfg.columns, []string{"a", "b"}))
	assert.Assert(t, cfg.rows != nil)
	assert.Equal(t, cfg.rows.Step(), 2)
	assert.Equal(t, cfg.limit, 5)
	assert.Equal(t, cfg.driver, "postgres")

	cfg, err = parseConfig([]string{"-csv", "in.csv", "-rows", "-2"})
	assert.NilError(t, err)
	assert.Check(t, cfg.rows == nil)
	assert.Assert(t, cfg.position != nil)
	assert.Equal(t, *cfg.position, -2)

	for _, args := range [][]string{
		{},
		{"-csv", "a.csv", "-query", "select 1", "-dsn", "x"},
		{"-query", "select 1"},
		{"-csv", "a.csv", "-layout", "diagonal"},
		{"-csv", "a.csv", "-comma", ";;"},
		{"-csv", "a.csv", "-rows", "x"},
		{"-csv", "a.csv", "-rows", "1.5"},
	} {
		_, err := parseConfig(args)
		assert.Check(t, err != nil, "args %v", args)
	}
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.csv")
	assert.NilError(t, os.WriteFile(path, sample.CountriesCSV(), 0o644))
	return path
}

func TestRunCSV(t *testing.T) {
	for _, layout := range []string{"rows", "columns"} {
		t.Run(layout, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.csv")
			cfg, err := parseConfig([]string{
				"-csv", writeSample(t),
				"-layout", layout,
				"-title", "countries",
				"-rows", "0:3",
				"-select", "iso3,name",
				"-out", out,
			})
			assert.NilError(t, err)

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			assert.NilError(t, run(cfg, logger, &buf))

			assert.Check(t, is.Contains(buf.String(), "countries"))
			assert.Check(t, is.Contains(buf.String(), "Andorra"))
			assert.Check(t, !bytes.Contains(buf.Bytes(), []byte("Austria")))

			written, err := os.ReadFile(out)
			assert.NilError(t, err)
			assert.Equal(t, string(written), "iso3,name\nAND,Andorra\nARE,United Arab Emirates\nARG,Argentina\n")
		})
	}
}

func TestRunUnknownColumn(t *testing.T) {
	cfg, err := parseConfig([]string{"-csv", writeSample(t), "-select", "capital"})
	assert.NilError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err = run(cfg, logger, io.Discard)
	assert.Check(t, is.ErrorContains(err, "column not found"))
}

func TestRunRowPosition(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := writeSample(t)

	for _, layout := range []string{"rows", "columns"} {
		t.Run(layout, func(t *testing.T) {
			cfg, err := parseConfig([]string{"-csv", path, "-layout", layout, "-rows", "-1", "-select", "name"})
			assert.NilError(t, err)
			var buf bytes.Buffer
			assert.NilError(t, run(cfg, logger, &buf))
			assert.Check(t, is.Contains(buf.String(), "South Africa"))
			assert.Check(t, !bytes.Contains(buf.Bytes(), []byte("Andorra")))

			cfg, err = parseConfig([]string{"-csv", path, "-layout", layout, "-rows", "1", "-select", "name"})
			assert.NilError(t, err)
			buf.Reset()
			assert.NilError(t, run(cfg, logger, &buf))
			assert.Check(t, is.Contains(buf.String(), "United Arab Emirates"))
			assert.Check(t, !bytes.Contains(buf.Bytes(), []byte("Andorra")))

			for _, pos := range []string{"50", "-50"} {
				cfg, err = parseConfig([]string{"-csv", path, "-layout", layout, "-rows", pos})
				assert.NilError(t, err)
				err = run(cfg, logger, io.Discard)
				assert.Check(t, is.ErrorIs(err, table.ErrIndex), "position %s", pos)
			}
		})
	}
}
