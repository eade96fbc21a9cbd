package stargazer

import (
	"errors"
	"time"

	"github.com/ullaakut/disgo"
	"github.com/ullaakut/disgo/style"
	"github.com/ullaakut/stargazers/pkg/github"
)

// DefaultDelay is the delay between two profile requests, which keeps
// the enrichment under the secondary rate limits of the API.
const DefaultDelay = 100 * time.Millisecond

// ProfileFetcher fetches the public profile of a user.
type ProfileFetcher interface {
	Profile(login string) (*github.Profile, error)
}

// ProgressFunc is called once for every star processed by the Enricher.
type ProgressFunc func(done, total int)

// Enrichment is the result of enriching a list of stars.
type Enrichment struct {
	Rows []Row

	// Malformed is the amount of stars without a login.
	Malformed int

	// Unavailable is the amount of users whose profile could not be fetched.
	Unavailable int
}

// Enricher fetches the profile of each stargazer.
type Enricher struct {
	fetcher  ProfileFetcher
	delay    time.Duration
	sleep    func(time.Duration)
	progress ProgressFunc
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithDelay sets the delay between two profile requests.
func WithDelay(delay time.Duration) EnricherOption {
	return func(e *Enricher) { e.delay = delay }
}

// WithProgress sets the observer notified of the enrichment progress.
func WithProgress(progress ProgressFunc) EnricherOption {
	return func(e *Enricher) { e.progress = progress }
}

// NewEnricher creates an Enricher that uses fetcher to look profiles up.
func NewEnricher(fetcher ProfileFetcher, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		fetcher: fetcher,
		delay:   DefaultDelay,
		sleep:   time.Sleep,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Enrich fetches the profile of every star, in order. Stars without a
// login and users whose profile is unavailable are skipped.
func (e *Enricher) Enrich(stars []github.Star) *Enrichment {
	var (
		result    Enrichment
		requested bool
	)

	for idx, star := range stars {
		if star.Login == "" {
			disgo.Errorln(style.Failure(style.SymbolCross, " Missing login in stargazer entry ", idx+1, ", skipping it"))
			result.Malformed++
			e.notify(idx+1, len(stars))
			continue
		}

		if requested && e.delay > 0 {
			e.sleep(e.delay)
		}
		requested = true

		profile, err := e.fetcher.Profile(star.Login)
		if err != nil {
			var statusErr *github.StatusError
			if errors.As(err, &statusErr) {
				disgo.Debugf("Profile of %q unavailable (HTTP %d), skipping it\n", star.Login, statusErr.StatusCode)
			} else {
				disgo.Debugf("Unable to fetch profile of %q: %v\n", star.Login, err)
			}

			result.Unavailable++
			e.notify(idx+1, len(stars))
			continue
		}

		result.Rows = append(result.Rows, NewRow(star, profile))
		e.notify(idx+1, len(stars))
	}

	return &result
}

func (e *Enricher) notify(done, total int) {
	if e.progress != nil {
		e.progress(done, total)
	}
}
