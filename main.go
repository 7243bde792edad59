package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/robochat/simpletable/internal/logging"
	"github.com/robochat/simpletable/internal/render"
	"github.com/robochat/simpletable/internal/sample"
	"github.com/robochat/simpletable/internal/table"
)

func main() {
	logger, closeFn := logging.SetupLogger(logging.Config{
		Level:  logging.ParseLevel(os.Getenv("SIMPLETABLE_LOG_LEVEL")),
		SeqURL: os.Getenv("SIMPLETABLE_SEQ_URL"),
	})
	defer closeFn()

	logger.Info("Starting demo...")

	fail := func(msg string, err error) {
		logger.Error(msg, "error", err)
		closeFn()
		os.Exit(1)
	}

	// 1. Load the embedded dataset in both layouts
	src, err := sample.Countries()
	if err != nil {
		fail("failed to read sample data", err)
	}
	observer := table.NewLoggingObserver(logger)
	rows, err := table.NewTable(src, table.WithTitle("countries"), table.WithObserver(observer))
	if err != nil {
		fail("failed to build row table", err)
	}
	cols, err := table.NewColumnTable(src, table.WithTitle("countries"), table.WithObserver(observer))
	if err != nil {
		fail("failed to build column table", err)
	}
	logger.Info("loaded", "width", rows.Width(), "height", rows.Height(), "same", table.Equal[string, string](rows, cols))

	// 2. Row access, negative positions count from the end
	last, err := rows.Record(-1)
	if err != nil {
		fail("failed to read last row", err)
	}
	logger.Info("last country", "record", last)

	// 3. Add a column derived from another one
	pops, err := cols.Column("pop")
	if err != nil {
		fail("failed to read population", err)
	}
	millions := make([]string, len(pops))
	for i, p := range pops {
		n, err := strconv.Atoi(p)
		if err != nil {
			fail("population is not a number", err)
		}
		millions[i] = fmt.Sprintf("%.1f", float64(n)/1e6)
	}
	if err := cols.SetColumn("pop_m", millions); err != nil {
		fail("failed to add column", err)
	}

	// 4. A rejected call leaves the table as it was
	if err := rows.AppendRow([]string{"XX", "XXX"}); err != nil {
		logger.Warn("append rejected", "error", err, "height", rows.Height())
	}

	// 5. Slices are independent copies
	firstFive, err := cols.Slice(table.Span(0, 5))
	if err != nil {
		fail("failed to slice", err)
	}
	view, err := firstFive.Select("iso3", "name", "pop_m")
	if err != nil {
		fail("failed to select columns", err)
	}
	if err := view.DeleteRow(0); err != nil {
		fail("failed to delete row", err)
	}
	logger.Info("slice edited", "slice_height", view.Height(), "source_height", cols.Height())

	fmt.Println(render.Render[string, string](view, render.Options{ShowTitle: true}))
	fmt.Println(render.Render[string, string](rows, render.Options{Limit: 5}))

	logger.Info("Demo finished")
}
