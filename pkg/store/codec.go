package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ullaakut/stargazers/pkg/stargazer"
)

// Columns is the column order of the dataset files.
var Columns = []string{
	"starred_at",
	"id",
	"login",
	"name",
	"company",
	"location",
	"email",
	"bio",
	"twitter_username",
	"followers_count",
	"following_count",
	"public_repos",
	"public_gists",
	"blog",
	"hireable",
	"created_at",
	"updated_at",
}

const loginColumn = "login"

// encodeRow returns the record of a row, in the order of Columns.
func encodeRow(row stargazer.Row) []string {
	return []string{
		formatTime(row.StarredAt),
		formatInt(row.ID),
		row.Login,
		row.Name,
		row.Company,
		row.Location,
		row.Email,
		row.Bio,
		row.TwitterUsername,
		strconv.Itoa(row.Followers),
		strconv.Itoa(row.Following),
		strconv.Itoa(row.PublicRepos),
		strconv.Itoa(row.PublicGists),
		row.Blog,
		formatBool(row.Hireable),
		formatTime(row.CreatedAt),
		formatTime(row.UpdatedAt),
	}
}

// decodeRow parses a record, given the index of each known column in it.
// Missing columns keep their zero value.
func decodeRow(record []string, index map[string]int) (stargazer.Row, error) {
	var (
		row stargazer.Row
		err error
	)

	value := func(column string) string {
		idx, ok := index[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	row.Login = value("login")
	row.Name = value("name")
	row.Company = value("company")
	row.Location = value("location")
	row.Email = value("email")
	row.Bio = value("bio")
	row.TwitterUsername = value("twitter_username")
	row.Blog = value("blog")

	fields := []struct {
		column string
		parse  func(string) error
	}{
		{"starred_at", func(s string) (err error) { row.StarredAt, err = parseTime(s); return }},
		{"id", func(s string) (err error) { row.ID, err = parseInt64(s); return }},
		{"followers_count", func(s string) (err error) { row.Followers, err = parseInt(s); return }},
		{"following_count", func(s string) (err error) { row.Following, err = parseInt(s); return }},
		{"public_repos", func(s string) (err error) { row.PublicRepos, err = parseInt(s); return }},
		{"public_gists", func(s string) (err error) { row.PublicGists, err = parseInt(s); return }},
		{"hireable", func(s string) (err error) { row.Hireable, err = parseBool(s); return }},
		{"created_at", func(s string) (err error) { row.CreatedAt, err = parseTime(s); return }},
		{"updated_at", func(s string) (err error) { row.UpdatedAt, err = parseTime(s); return }},
	}

	for _, field := range fields {
		if err = field.parse(value(field.column)); err != nil {
			return row, fmt.Errorf("invalid %s: %v", field.column, err)
		}
	}

	return row, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Some exporters write timestamps with a space separator.
		if t, err2 := time.Parse("2006-01-02 15:04:05Z07:00", s); err2 == nil {
			return t.UTC(), nil
		}
		return time.Time{}, err
	}

	return t.UTC(), nil
}

func formatInt(i int64) string {
	if i == 0 {
		return ""
	}

	return strconv.FormatInt(i, 10)
}

func parseInt64(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.ParseInt(s, 10, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}

	return strconv.FormatBool(*b)
}

func parseBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}

	return &b, nil
}
