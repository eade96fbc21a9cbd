package visualize

import (
	"sort"
	"time"

	"github.com/ullaakut/stargazers/pkg/stargazer"
)

// Point is the amount of stars of a repository at the end of a day.
type Point struct {
	Day   time.Time
	Count int
	Total int
}

// Cumulative counts the stars given each day and their running total.
// Rows without a starring date are ignored.
func Cumulative(rows []stargazer.Row) []Point {
	daily := make(map[time.Time]int)
	for _, row := range rows {
		if row.StarredAt.IsZero() {
			continue
		}

		t := row.StarredAt.UTC()
		daily[time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)]++
	}

	points := make([]Point, 0, len(daily))
	for day, count := range daily {
		points = append(points, Point{Day: day, Count: count})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Day.Before(points[j].Day)
	})

	var total int
	for idx := range points {
		total += points[idx].Count
		points[idx].Total = total
	}

	return points
}
