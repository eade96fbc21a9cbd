package store

import (
	"sort"

	"github.com/ullaakut/stargazers/pkg/stargazer"
)

// Table is a set of rows keyed by login.
type Table struct {
	rows map[string]stargazer.Row
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{rows: make(map[string]stargazer.Row)}
}

// Upsert inserts the row, or replaces the row that has the same login.
// It reports whether the row was inserted.
func (t *Table) Upsert(row stargazer.Row) bool {
	_, exists := t.rows[row.Login]
	t.rows[row.Login] = row
	return !exists
}

// Get returns the row of the given login.
func (t *Table) Get(login string) (stargazer.Row, bool) {
	row, ok := t.rows[login]
	return row, ok
}

// Len returns the amount of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns every row of the table, sorted by login.
func (t *Table) Rows() []stargazer.Row {
	rows := make([]stargazer.Row, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Login < rows[j].Login
	})

	return rows
}
