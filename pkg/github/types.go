package github

import "time"

// Star is a user starring a repository at a given time.
type Star struct {
	Login     string
	StarredAt time.Time
}

// StarList is the result of walking the stargazers of a repository.
type StarList struct {
	Stars []Star
	Pages int

	// Complete is false when the walk was interrupted by a failed request.
	// Stars then only holds the records collected until the failure.
	Complete bool

	// Status is the HTTP status that interrupted the walk, if any.
	Status int

	// Err is the transport error that interrupted the walk, if any.
	Err error
}

// Profile holds the public profile of a GitHub user.
type Profile struct {
	ID              int64     `json:"id"`
	Login           string    `json:"login"`
	Name            string    `json:"name"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Email           string    `json:"email"`
	Bio             string    `json:"bio"`
	TwitterUsername string    `json:"twitter_username"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	PublicRepos     int       `json:"public_repos"`
	PublicGists     int       `json:"public_gists"`
	Blog            string    `json:"blog"`
	Hireable        *bool     `json:"hireable"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// starEntry is an element of a stargazers page, as returned when
// requesting the star media type.
type starEntry struct {
	User *struct {
		Login string `json:"login"`
	} `json:"user"`
	StarredAt *time.Time `json:"starred_at"`
}

func (e starEntry) star() Star {
	var s Star
	if e.User != nil {
		s.Login = e.User.Login
	}

	if e.StarredAt != nil {
		s.StarredAt = e.StarredAt.UTC()
	}

	return s
}
