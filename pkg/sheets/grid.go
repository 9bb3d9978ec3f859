package sheets

// grid is a sheet held as full rows starting at column A; grid[0] is row 1.

// project cuts rng out of g the way the Sheets values API does: trailing
// empty cells in a row and trailing empty rows are dropped, while blank
// rows in the middle are kept as empty slices.
func project(g [][]string, rng Range) [][]string {
	start := ColumnIndex(rng.StartCol)
	end := ColumnIndex(rng.EndCol)
	first := rng.StartRow
	if first <= 0 {
		first = 1
	}

	out := [][]string{}
	for i := first - 1; i < len(g); i++ {
		row := g[i]
		cells := []string{}
		for c := start; c <= end && c < len(row); c++ {
			cells = append(cells, row[c])
		}
		out = append(out, trimTrailing(cells))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// place writes values into row starting at column col, growing it as needed.
func place(row []string, col int, values []string) []string {
	need := col + len(values)
	for len(row) < need {
		row = append(row, "")
	}
	copy(row[col:], values)
	return row
}

// lastUsedRow returns the 1-based index of the last row with any content in
// the column span of rng, or 0 for an empty sheet.
func lastUsedRow(g [][]string, rng Range) int {
	start := ColumnIndex(rng.StartCol)
	end := ColumnIndex(rng.EndCol)
	for i := len(g) - 1; i >= 0; i-- {
		for c := start; c <= end && c < len(g[i]); c++ {
			if g[i][c] != "" {
				return i + 1
			}
		}
	}
	return 0
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
