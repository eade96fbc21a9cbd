package stargazer

import (
	"time"

	"github.com/ullaakut/stargazers/pkg/github"
)

// Row is a stargazer of a repository along with its public profile.
// Rows are uniquely identified by their Login.
type Row struct {
	StarredAt       time.Time
	ID              int64
	Login           string
	Name            string
	Company         string
	Location        string
	Email           string
	Bio             string
	TwitterUsername string
	Followers       int
	Following       int
	PublicRepos     int
	PublicGists     int
	Blog            string
	Hireable        *bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewRow combines a star and the profile of the user who gave it.
func NewRow(star github.Star, profile *github.Profile) Row {
	login := profile.Login
	if login == "" {
		login = star.Login
	}

	return Row{
		StarredAt:       star.StarredAt,
		ID:              profile.ID,
		Login:           login,
		Name:            profile.Name,
		Company:         profile.Company,
		Location:        profile.Location,
		Email:           profile.Email,
		Bio:             profile.Bio,
		TwitterUsername: profile.TwitterUsername,
		Followers:       profile.Followers,
		Following:       profile.Following,
		PublicRepos:     profile.PublicRepos,
		PublicGists:     profile.PublicGists,
		Blog:            profile.Blog,
		Hireable:        profile.Hireable,
		CreatedAt:       profile.CreatedAt.UTC(),
		UpdatedAt:       profile.UpdatedAt.UTC(),
	}
}

// AccountAge returns the age of the account at the given time, in days.
func (r Row) AccountAge(now time.Time) float64 {
	if r.CreatedAt.IsZero() {
		return 0
	}

	return now.Sub(r.CreatedAt).Hours() / 24
}
