package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ullaakut/disgo"
	"github.com/ullaakut/disgo/style"
	"github.com/ullaakut/stargazers/pkg/store"
	"github.com/ullaakut/stargazers/pkg/visualize"
)

func newVisualizeCommand(fs afero.Fs, v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "visualize [owner/repo]",
		Short: "Render the star history and the stargazer map of a fetched repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir := v.GetString("datadir")

			datasets, err := visualize.Datasets(fs, dataDir)
			if err != nil {
				return fmt.Errorf("unable to list datasets: %v", err)
			}

			if len(datasets) == 0 {
				return fmt.Errorf("no datasets found in %q, fetch the stargazers of a repository first", dataDir)
			}

			var dataset visualize.Dataset
			if len(args) == 1 {
				owner, name, err := parseRepository(args[0])
				if err != nil {
					return err
				}

				var found bool
				dataset, found = visualize.Find(datasets, owner+"/"+name)
				if !found {
					return fmt.Errorf("no dataset found for repository %s/%s in %q", owner, name, dataDir)
				}
			} else {
				dataset, err = selectDataset(cmd.InOrStdin(), datasets)
				if err != nil {
					return err
				}
			}

			return renderDataset(fs, dataset, v.GetString("outdir"))
		},
	}
}

func renderDataset(fs afero.Fs, dataset visualize.Dataset, outDir string) error {
	disgo.StartStepf("Rendering visualizations of %s", dataset.Repository())

	table, err := store.New(fs).Load(dataset.Path)
	if err != nil {
		return disgo.FailStepf("unable to load dataset: %v", err)
	}

	artifacts, err := visualize.Render(fs, dataset, table.Rows(), outDir)
	if err != nil {
		return disgo.FailStepf("unable to render visualizations: %v", err)
	}
	disgo.EndStep()

	disgo.Infof("%s Star history written to %s\n", style.Success(style.SymbolCheck), artifacts.ChartPath)
	disgo.Infof("%s Map of %d located stargazers written to %s\n", style.Success(style.SymbolCheck), artifacts.Mapped, artifacts.MapPath)

	return nil
}
