package context

import (
	"path/filepath"
	"time"
)

// Context represents the context of a stargazers run.
type Context struct {
	RepoOwner   string
	RepoName    string
	GithubToken string

	// APIURL is the base URL of the GitHub REST API.
	APIURL string

	DataDirectoryPath   string
	OutputDirectoryPath string

	// CacheDirectoryPath and CacheTTL enable the profile response
	// cache when both are set.
	CacheDirectoryPath string
	CacheTTL           time.Duration

	// RequestDelay is slept between two profile requests.
	RequestDelay time.Duration

	// MaxRetries is the amount of retries for transient upstream failures.
	MaxRetries uint
}

// Repository returns the repository identifier in the owner/name form.
func (c *Context) Repository() string {
	return c.RepoOwner + "/" + c.RepoName
}

// CSVPath returns the path of the dataset of the repository.
func (c *Context) CSVPath() string {
	return filepath.Join(c.DataDirectoryPath, c.RepoOwner, c.RepoName+".csv")
}

// CacheEnabled reports whether the profile cache should be used.
func (c *Context) CacheEnabled() bool {
	return c.CacheDirectoryPath != "" && c.CacheTTL > 0
}
