package visualize

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/ullaakut/stargazers/pkg/stargazer"
)

const (
	chartFilename = "stars_plot.png"
	mapFilename   = "users_map.html"
)

// Artifacts are the files produced for a dataset.
type Artifacts struct {
	ChartPath string
	MapPath   string

	// Mapped is the amount of stargazers placed on the map.
	Mapped int
}

// Render draws the visualizations of the given rows of a dataset into
// <outDir>/<owner>/<repo>/.
func Render(fs afero.Fs, dataset Dataset, rows []stargazer.Row, outDir string) (*Artifacts, error) {
	dir := filepath.Join(outDir, dataset.Owner, dataset.Repo)
	if err := fs.MkdirAll(dir, os.ModeDir|0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %v", err)
	}

	artifacts := &Artifacts{
		ChartPath: filepath.Join(dir, chartFilename),
		MapPath:   filepath.Join(dir, mapFilename),
	}

	var chart bytes.Buffer
	if err := RenderChart(&chart, Cumulative(rows), "Cumulative GitHub Stars - "+dataset.Repository()); err != nil {
		return nil, fmt.Errorf("unable to draw stars plot: %v", err)
	}

	if err := afero.WriteFile(fs, artifacts.ChartPath, chart.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("unable to write stars plot: %v", err)
	}

	locator := NewLocator()
	counts := locator.CountCountries(rows)
	artifacts.Mapped = counts.Mapped

	var page bytes.Buffer
	if err := RenderMap(&page, locator, counts, "Stargazers of "+dataset.Repository()); err != nil {
		return nil, err
	}

	if err := afero.WriteFile(fs, artifacts.MapPath, page.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("unable to write users map: %v", err)
	}

	return artifacts, nil
}
