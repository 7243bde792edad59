package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/robochat/simpletable/internal/logging"
	"github.com/robochat/simpletable/internal/render"
	"github.com/robochat/simpletable/internal/source"
	"github.com/robochat/simpletable/internal/table"
)

type config struct {
	csvPath  string
	noHeader bool
	comma    string
	driver   string
	dsn      string
	query    string
	timeout  time.Duration
	layout   string
	title    string
	columns  []string
	rows     *table.Range
	position *int
	limit    int
	out      string
	logLevel string
	seqURL   string
}

func parseConfig(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("simpletable", flag.ContinueOnError)
	fs.StringVar(&cfg.csvPath, "csv", "", "CSV file to load, - for stdin")
	fs.BoolVar(&cfg.noHeader, "no-header", false, "treat the first CSV record as data")
	fs.StringVar(&cfg.comma, "comma", ",", "CSV field delimiter")
	fs.StringVar(&cfg.driver, "driver", "postgres", "database/sql driver name")
	fs.StringVar(&cfg.dsn, "dsn", "", "database connection string")
	fs.StringVar(&cfg.query, "query", "", "SQL query whose result becomes the table")
	fs.DurationVar(&cfg.timeout, "timeout", 30*time.Second, "SQL query timeout")
	fs.StringVar(&cfg.layout, "layout", "rows", "storage layout: rows or columns")
	fs.StringVar(&cfg.title, "title", "", "table title")
	selectCols := fs.String("select", "", "comma separated columns to keep, in order")
	rowRange := fs.String("rows", "", "row range start:stop:step, or a single row position")
	fs.IntVar(&cfg.limit, "limit", 20, "maximum rows to render, 0 for all")
	fs.StringVar(&cfg.out, "out", "", "write the resulting table as CSV to this file")
	fs.StringVar(&cfg.logLevel, "log-level", envOr("SIMPLETABLE_LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.StringVar(&cfg.seqURL, "seq", envOr("SIMPLETABLE_SEQ_URL", ""), "Seq server URL for log shipping")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if (cfg.csvPath == "") == (cfg.query == "") {
		return config{}, errors.New("exactly one of -csv or -query is required")
	}
	if cfg.query != "" && cfg.dsn == "" {
		return config{}, errors.New("-query needs -dsn")
	}
	if cfg.layout != "rows" && cfg.layout != "columns" {
		return config{}, fmt.Errorf("unknown layout %q", cfg.layout)
	}
	if len([]rune(cfg.comma)) != 1 {
		return config{}, fmt.Errorf("-comma must be a single character, got %q", cfg.comma)
	}
	if *selectCols != "" {
		cfg.columns = strings.Split(*selectCols, ",")
	}
	switch {
	case *rowRange == "":
	case !strings.Contains(*rowRange, ":"):
		pos, err := strconv.Atoi(strings.TrimSpace(*rowRange))
		if err != nil {
			return config{}, fmt.Errorf("invalid row position %q: %w", *rowRange, err)
		}
		cfg.position = &pos
	default:
		r, err := parseRange(*rowRange)
		if err != nil {
			return config{}, err
		}
		cfg.rows = &r
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// parseRange reads Python slice notation: "1:4", "::2", "-3:".
func parseRange(s string) (table.Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return table.Range{}, fmt.Errorf("invalid row range %q", s)
	}
	nums := make([]*int, 3)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return table.Range{}, fmt.Errorf("invalid row range %q: %w", s, err)
		}
		nums[i] = &n
	}
	var r table.Range
	switch start, stop := nums[0], nums[1]; {
	case start != nil && stop != nil:
		r = table.Span(*start, *stop)
	case start != nil:
		r = table.From(*start)
	case stop != nil:
		r = table.To(*stop)
	default:
		r = table.Every()
	}
	if nums[2] != nil {
		r = r.By(*nums[2])
	}
	return r, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeFn := logging.SetupLogger(logging.Config{
		Level:  logging.ParseLevel(cfg.logLevel),
		SeqURL: cfg.seqURL,
	})
	defer closeFn()
	slog.SetDefault(logger)

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("simpletable failed", "error", err)
		closeFn()
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger, w io.Writer) error {
	if cfg.csvPath != "" {
		src, err := loadCSV(cfg)
		if err != nil {
			return err
		}
		return show(cfg, src, logger, w)
	}

	db, err := sql.Open(cfg.driver, cfg.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()
	src, err := source.Query(ctx, db, cfg.query)
	if err != nil {
		return err
	}
	return show(cfg, src, logger, w)
}

func loadCSV(cfg config) (table.Source[string, string], error) {
	var r io.Reader = os.Stdin
	if cfg.csvPath != "-" {
		f, err := os.Open(cfg.csvPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open csv: %w", err)
		}
		defer f.Close()
		r = f
	}
	return source.CSV(r, source.CSVOptions{
		Comma:    []rune(cfg.comma)[0],
		NoHeader: cfg.noHeader,
	})
}

func show[V any](cfg config, src table.Source[string, V], logger *slog.Logger, w io.Writer) error {
	opts := []table.Option{
		table.WithTitle(cfg.title),
		table.WithObserver(table.NewLoggingObserver(logger)),
	}

	var (
		t   table.Tabular[string, V]
		err error
	)
	if cfg.layout == "columns" {
		t, err = buildColumns(src, cfg, opts)
	} else {
		t, err = buildRows(src, cfg, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}

	logger.Info("table loaded",
		slog.String("layout", cfg.layout),
		slog.Int("width", t.Width()),
		slog.Int("height", t.Height()),
	)

	fmt.Fprintln(w, render.Render(t, render.Options{Limit: cfg.limit, ShowTitle: true}))

	if cfg.out != "" {
		f, err := os.Create(cfg.out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", cfg.out, err)
		}
		defer f.Close()
		if err := source.WriteCSV(f, t); err != nil {
			return err
		}
		logger.Info("table written", slog.String("path", cfg.out))
	}
	return nil
}

func buildRows[V any](src table.Source[string, V], cfg config, opts []table.Option) (table.Tabular[string, V], error) {
	t, err := table.NewTable(src, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.rows != nil || cfg.position != nil {
		r, err := rowSelection[V](t, cfg)
		if err != nil {
			return nil, err
		}
		if t, err = t.Slice(r); err != nil {
			return nil, err
		}
	}
	if cfg.columns != nil {
		if t, err = t.Select(cfg.columns...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func buildColumns[V any](src table.Source[string, V], cfg config, opts []table.Option) (table.Tabular[string, V], error) {
	t, err := table.NewColumnTable(src, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.rows != nil || cfg.position != nil {
		r, err := rowSelection[V](t, cfg)
		if err != nil {
			return nil, err
		}
		if t, err = t.Slice(r); err != nil {
			return nil, err
		}
	}
	if cfg.columns != nil {
		if t, err = t.Select(cfg.columns...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// rowSelection turns -rows into a range over t. A single position must name
// an existing row, negative positions counting from the end.
func rowSelection[V any](t table.Tabular[string, V], cfg config) (table.Range, error) {
	if cfg.position == nil {
		return *cfg.rows, nil
	}
	pos := *cfg.position
	if _, err := t.Row(pos); err != nil {
		return table.Range{}, err
	}
	if pos < 0 {
		pos += t.Height()
	}
	return table.Span(pos, pos+1), nil
}
