package github

import (
	"fmt"
	"net/url"

	"github.com/ullaakut/disgo"
)

// Profile fetches the public profile of a user. A response other than
// 200 is returned as a *StatusError.
func (c *Client) Profile(login string) (*Profile, error) {
	profileURL := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(login))

	body, found := c.cache.get(profileURL)
	if !found {
		resp, err := c.Get(profileURL)
		if err != nil {
			return nil, err
		}

		if !resp.OK() {
			return nil, &StatusError{URL: profileURL, StatusCode: resp.StatusCode}
		}

		body = resp.Body
		if err := c.cache.put(profileURL, body); err != nil {
			disgo.Debugf("Unable to cache profile of %q: %v\n", login, err)
		}
	}

	var profile Profile
	if err := (&Response{Body: body}).Decode(&profile); err != nil {
		return nil, fmt.Errorf("unable to unmarshal profile of %q: %v", login, err)
	}

	return &profile, nil
}
