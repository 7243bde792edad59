package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robochat/simpletable/internal/table"
)

// SQL drains rows into a row source. The header comes from the result
// columns and cells keep whatever type the driver scanned; rows is left
// open for the caller to close.
func SQL(rows *sql.Rows) (table.Source[string, any], error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var data [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(data), err)
		}
		data = append(data, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return table.Rows(cols, data), nil
}

// Query runs query on db and drains the result with SQL.
func Query(ctx context.Context, db *sql.DB, query string, args ...any) (table.Source[string, any], error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	return SQL(rows)
}
