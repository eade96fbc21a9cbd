package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
	"github.com/ullaakut/disgo"
	"github.com/ullaakut/disgo/style"
	"github.com/ullaakut/stargazers/pkg/context"
	"github.com/ullaakut/stargazers/pkg/github"
	"github.com/ullaakut/stargazers/pkg/insights"
	"github.com/ullaakut/stargazers/pkg/stargazer"
	"github.com/ullaakut/stargazers/pkg/store"
	"github.com/ullaakut/stargazers/pkg/visualize"
)

type runOptions struct {
	refresh   bool
	summary   bool
	visualize bool

	// progress receives the progress bar of the profile requests.
	progress io.Writer

	clientOptions []github.Option
}

func fetchStargazers(ctx *context.Context, fs afero.Fs, opts runOptions) error {
	disgo.Infof("Beginning fetching process for repository %s\n", ctx.Repository())

	clientOptions := opts.clientOptions
	if ctx.CacheEnabled() {
		if opts.refresh {
			if err := github.Clear(fs, ctx); err != nil {
				return fmt.Errorf("unable to clear cache: %v", err)
			}
		}
		clientOptions = append(clientOptions, github.WithCache(fs))
	}

	client := github.NewClient(ctx, clientOptions...)

	disgo.StartStepf("Fetching stargazers of %s", ctx.Repository())
	list, err := client.Stargazers(ctx.RepoOwner, ctx.RepoName, func(page, stars int) {
		disgo.Debugf("Fetched page %d, %d stargazers so far\n", page, stars)
	})
	if err != nil {
		return disgo.FailStepf("unable to fetch stargazers: %v", err)
	}
	disgo.EndStep()

	if !list.Complete {
		warnIncomplete(list)
	}

	disgo.Infof("Fetching profiles of %d stargazers\n", len(list.Stars))
	enrichment := enrichStars(client, ctx, list.Stars, opts.progress)

	if enrichment.Unavailable > 0 {
		disgo.Errorln(style.Important(enrichment.Unavailable, " profiles could not be fetched and were left out"))
	}

	result, err := store.New(fs).Merge(ctx.CSVPath(), enrichment.Rows)
	if err != nil {
		return fmt.Errorf("unable to store stargazers: %v", err)
	}

	if opts.summary && len(enrichment.Rows) > 0 {
		report, err := insights.Compute(enrichment.Rows, time.Now())
		if err != nil {
			return fmt.Errorf("unable to compute summary: %v", err)
		}

		insights.Render(report)
	}

	if opts.visualize {
		dataset := visualize.Dataset{Path: result.Path, Owner: ctx.RepoOwner, Repo: ctx.RepoName}
		if err := renderDataset(fs, dataset, ctx.OutputDirectoryPath); err != nil {
			return err
		}
	}

	disgo.Infof("%s Fetch successful. %d stargazers fetched, %d profiles merged into %s (%d new, %d updated, %d in total).\n",
		style.Success(style.SymbolCheck),
		len(list.Stars),
		len(enrichment.Rows),
		result.Path,
		result.Inserted,
		result.Updated,
		result.Total,
	)

	return nil
}

func warnIncomplete(list *github.StarList) {
	if list.Err != nil {
		disgo.Errorln(style.Important("Stargazer listing interrupted after ", list.Pages, " pages: ", list.Err, ". Keeping the ", len(list.Stars), " stargazers fetched so far."))
		return
	}

	disgo.Errorln(style.Important("GitHub answered with status ", list.Status, " after ", list.Pages, " pages. Keeping the ", len(list.Stars), " stargazers fetched so far."))
}

func enrichStars(client *github.Client, ctx *context.Context, stars []github.Star, out io.Writer) *stargazer.Enrichment {
	if len(stars) == 0 || out == nil {
		return stargazer.NewEnricher(client, stargazer.WithDelay(ctx.RequestDelay)).Enrich(stars)
	}

	p, bar := setupProgressBar(out, len(stars))

	enricher := stargazer.NewEnricher(client,
		stargazer.WithDelay(ctx.RequestDelay),
		stargazer.WithProgress(func(done, total int) {
			bar.Increment()
		}),
	)

	enrichment := enricher.Enrich(stars)

	bar.SetTotal(int64(len(stars)), true)
	p.Wait()

	return enrichment
}
