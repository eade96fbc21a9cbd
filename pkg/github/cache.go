package github

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kennygrant/sanitize"
	"github.com/spf13/afero"
	"github.com/ullaakut/disgo"
	"github.com/ullaakut/stargazers/pkg/context"
)

// cache stores profile response bodies on disk. A nil cache never
// finds anything and never stores anything.
type cache struct {
	fs  afero.Fs
	ctx *context.Context

	// now is used to compute the age of cache entries.
	now func() time.Time
}

// get searches the cache directory for a file matching the supplied
// URL that is younger than the configured TTL.
func (c *cache) get(url string) ([]byte, bool) {
	if c == nil || !c.ctx.CacheEnabled() {
		return nil, false
	}

	filename := cacheEntryFilename(c.ctx, url)
	info, err := c.fs.Stat(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			disgo.Debugf("Unable to stat cache entry %q: %v\n", filename, err)
		}
		return nil, false
	}

	if c.clock().Sub(info.ModTime()) > c.ctx.CacheTTL {
		disgo.Debugf("Cache entry %q expired\n", filename)
		return nil, false
	}

	body, err := afero.ReadFile(c.fs, filename)
	if err != nil {
		// If cache entry is unreadable, re-fetch it from its URL.
		disgo.Errorf("Cache entry %q corrupted; removing and refetching\n", filename)
		if err := c.clearEntry(url); err != nil {
			disgo.Debugf("Unable to remove cache entry %q: %v\n", filename, err)
		}
		return nil, false
	}

	return body, true
}

// put stores the supplied response body in the cache.
func (c *cache) put(url string, body []byte) error {
	if c == nil || !c.ctx.CacheEnabled() {
		return nil
	}

	filename := cacheEntryFilename(c.ctx, url)
	if err := c.fs.MkdirAll(filepath.Dir(filename), os.ModeDir|0755); err != nil {
		return fmt.Errorf("unable to create cache directory: %v", err)
	}

	if err := afero.WriteFile(c.fs, filename, body, 0644); err != nil {
		return fmt.Errorf("unable to write response in cache file: %v", err)
	}

	return nil
}

// clearEntry clears a specified cache entry.
func (c *cache) clearEntry(url string) error {
	return c.fs.Remove(cacheEntryFilename(c.ctx, url))
}

func (c *cache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}

	return time.Now()
}

// cacheEntryFilename creates a filename-safe name in a subdirectory
// of the configured cache dir, with any access token stripped out.
func cacheEntryFilename(ctx *context.Context, url string) string {
	newURL := strings.Replace(url, fmt.Sprintf("access_token=%s", ctx.GithubToken), "", 1)
	return filepath.Join(ctx.CacheDirectoryPath, ctx.RepoOwner, ctx.RepoName, sanitize.BaseName(newURL))
}

// Clear clears all cache entries for the repository specified in the context.
func Clear(fs afero.Fs, ctx *context.Context) error {
	return fs.RemoveAll(filepath.Join(ctx.CacheDirectoryPath, ctx.RepoOwner, ctx.RepoName))
}
