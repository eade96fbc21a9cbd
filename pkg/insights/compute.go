package insights

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/ullaakut/stargazers/pkg/stargazer"
)

// Factor summarizes the distribution of a profile attribute.
type Factor struct {
	Mean   float64
	Median float64
}

// Report represents the summary of the stargazers of a repository.
type Report struct {
	Stargazers int

	// Hireable is the share of stargazers who declared themselves hireable.
	Hireable float64

	// Located is the share of stargazers who set a location.
	Located float64

	Factors     map[FactorName]Factor
	Percentiles map[Percentile]float64
}

// Compute summarizes the profiles of the given rows.
func Compute(rows []stargazer.Row, now time.Time) (*Report, error) {
	if len(rows) == 0 {
		return nil, errors.New("no stargazers to summarize")
	}

	data := make(map[FactorName][]float64)

	var hireable, located int
	for _, row := range rows {
		data[followersFactor] = append(data[followersFactor], float64(row.Followers))
		data[followingFactor] = append(data[followingFactor], float64(row.Following))
		data[publicReposFactor] = append(data[publicReposFactor], float64(row.PublicRepos))
		data[publicGistsFactor] = append(data[publicGistsFactor], float64(row.PublicGists))
		data[accountAgeFactor] = append(data[accountAgeFactor], row.AccountAge(now))

		if row.Hireable != nil && *row.Hireable {
			hireable++
		}

		if row.Location != "" {
			located++
		}
	}

	report := &Report{
		Stargazers: len(rows),
		Hireable:   float64(hireable) / float64(len(rows)),
		Located:    float64(located) / float64(len(rows)),
		Factors:    make(map[FactorName]Factor),
	}

	for _, factor := range factors {
		mean, err := stats.Mean(data[factor])
		if err != nil {
			return nil, fmt.Errorf("unable to compute mean of %q: %v", factor, err)
		}

		median, err := stats.Median(data[factor])
		if err != nil {
			return nil, fmt.Errorf("unable to compute median of %q: %v", factor, err)
		}

		report.Factors[factor] = Factor{
			Mean:   mean,
			Median: median,
		}
	}

	// Only compute percentiles if there are enough stargazers for
	// them to be meaningful.
	if len(rows) > minPercentileRows {
		report.Percentiles = make(map[Percentile]float64)
		for _, percentile := range percentiles {
			// Error is ignored on purpose.
			pctl, _ := strconv.ParseFloat(string(percentile), 64)

			value, err := stats.Percentile(data[followersFactor], pctl)
			if err != nil {
				return nil, fmt.Errorf("unable to compute %sth percentile of followers: %v", percentile, err)
			}

			report.Percentiles[percentile] = value
		}
	}

	return report, nil
}
