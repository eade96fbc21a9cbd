package visualize

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Dataset is the CSV file of the stargazers of a repository.
type Dataset struct {
	Path  string
	Owner string
	Repo  string
}

// Repository returns the owner/repo identifier of the dataset.
func (d Dataset) Repository() string {
	return d.Owner + "/" + d.Repo
}

// Datasets lists the datasets stored in dataDir, sorted by repository.
// Only files laid out as <dataDir>/<owner>/<repo>.csv are datasets.
func Datasets(fs afero.Fs, dataDir string) ([]Dataset, error) {
	var datasets []Dataset

	err := afero.Walk(fs, dataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dataDir {
				return nil
			}
			return err
		}

		if info.IsDir() || filepath.Ext(path) != ".csv" {
			return nil
		}

		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}

		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 2 {
			return nil
		}

		datasets = append(datasets, Dataset{
			Path:  path,
			Owner: parts[0],
			Repo:  strings.TrimSuffix(parts[1], ".csv"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].Repository() < datasets[j].Repository()
	})

	return datasets, nil
}

// Find returns the dataset of the given repository.
func Find(datasets []Dataset, repository string) (Dataset, bool) {
	for _, dataset := range datasets {
		if dataset.Repository() == repository {
			return dataset, true
		}
	}

	return Dataset{}, false
}
