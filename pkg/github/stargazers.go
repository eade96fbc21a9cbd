package github

import (
	"fmt"
	"net/url"
	"strings"
)

const listPagination = 100

// PageFunc is called after each page of stargazers is fetched.
type PageFunc func(page, stars int)

// Stargazers walks every page of stargazers of the given repository,
// in the order returned by the API. The walk stops at the first empty
// or malformed page, or when there is no next page.
//
// A failed request does not return an error: the stars collected so far
// are returned in a StarList that is not Complete.
func (c *Client) Stargazers(owner, name string, progress PageFunc) (*StarList, error) {
	if owner == "" || name == "" || strings.Contains(owner+name, "/") {
		return nil, fmt.Errorf("invalid repository %q", owner+"/"+name)
	}

	list := &StarList{}
	next := fmt.Sprintf("%s/repos/%s/%s/stargazers?per_page=%d", c.baseURL, url.PathEscape(owner), url.PathEscape(name), listPagination)

	for next != "" {
		resp, err := c.Get(next)
		if err != nil {
			list.Err = err
			return list, nil
		}

		if !resp.OK() {
			list.Status = resp.StatusCode
			return list, nil
		}

		var entries []starEntry
		if err := resp.Decode(&entries); err != nil {
			// Not a list of stargazers, nothing more to collect.
			break
		}

		if len(entries) == 0 {
			break
		}

		list.Pages++
		for _, entry := range entries {
			list.Stars = append(list.Stars, entry.star())
		}

		if progress != nil {
			progress(list.Pages, len(list.Stars))
		}

		next = resp.Next
	}

	list.Complete = true
	return list, nil
}
