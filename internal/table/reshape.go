package table

// RowsToColumns transposes equal-length rows into columns.
func RowsToColumns[V any](rows [][]V) ([][]V, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	width := len(rows[0])
	if err := checkRows("", width, rows); err != nil {
		return nil, err
	}
	cols := make([][]V, width)
	for c := range cols {
		col := make([]V, len(rows))
		for r, row := range rows {
			col[r] = row[c]
		}
		cols[c] = col
	}
	return cols, nil
}

// ColumnsToRows transposes equal-length columns into rows.
func ColumnsToRows[V any](cols [][]V) ([][]V, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	height := len(cols[0])
	for i, c := range cols {
		if len(c) != height {
			return nil, &ShapeError{
				Reason: "column lengths differ",
				Index:  -1,
				Want:   height,
				Got:    len(cols[i]),
			}
		}
	}
	rows := make([][]V, height)
	for r := range rows {
		row := make([]V, len(cols))
		for c, col := range cols {
			row[c] = col[r]
		}
		rows[r] = row
	}
	return rows, nil
}

// ColumnsToMap pairs headers with columns. The two sequences must have equal length.
func ColumnsToMap[K comparable, V any](headers []K, cols [][]V) (map[K][]V, error) {
	if len(headers) != len(cols) {
		return nil, &ShapeError{
			Reason: "header count differs from column count",
			Index:  -1,
			Want:   len(headers),
			Got:    len(cols),
		}
	}
	if err := checkUnique("", headers); err != nil {
		return nil, err
	}
	m := make(map[K][]V, len(headers))
	for i, h := range headers {
		m[h] = cols[i]
	}
	return m, nil
}

// RowsToMap builds a name→column mapping from headers and equal-length rows.
func RowsToMap[K comparable, V any](headers []K, rows [][]V) (map[K][]V, error) {
	if err := checkRows("", len(headers), rows); err != nil {
		return nil, err
	}
	cols, err := RowsToColumns(rows)
	if err != nil {
		return nil, err
	}
	if cols == nil {
		cols = make([][]V, len(headers))
	}
	return ColumnsToMap(headers, cols)
}
