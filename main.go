package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ullaakut/disgo"
	"github.com/ullaakut/disgo/style"
	"github.com/ullaakut/stargazers/pkg/context"
	"github.com/ullaakut/stargazers/pkg/github"
	"github.com/ullaakut/stargazers/pkg/stargazer"
)

const envFile = ".env"

func newRootCommand(fs afero.Fs) *cobra.Command {
	v := viper.New()
	v.SetFs(fs)

	var logFile io.Closer

	root := &cobra.Command{
		Use:           "stargazers [owner/repo]",
		Short:         "Fetch the stargazers of a GitHub repository along with their profiles",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v, cmd.Flags()); err != nil {
				return err
			}

			closer, err := setupLogging(cmd.OutOrStdout(), v.GetBool("verbose"), v.GetString("logfile"))
			if err != nil {
				return err
			}
			logFile = closer

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logFile == nil {
				return nil
			}
			return logFile.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			repository, err := repositoryArgument(cmd, args)
			if err != nil {
				return err
			}

			ctx, err := newContext(v, repository)
			if err != nil {
				return err
			}

			return fetchStargazers(ctx, fs, runOptions{
				refresh:   v.GetBool("refresh"),
				summary:   v.GetBool("summary"),
				visualize: v.GetBool("visualize"),
				progress:  cmd.OutOrStdout(),
			})
		},
	}

	persistent := root.PersistentFlags()
	persistent.StringP("datadir", "d", "./data", "Set the directory in which the stargazer datasets are stored")
	persistent.StringP("outdir", "o", "./visualizations", "Set the directory in which to write visualizations")
	persistent.BoolP("verbose", "v", false, "Enable verbose logging")
	persistent.StringP("logfile", "l", "", "Also write logs to this file, rotated when it grows too large")

	flags := root.Flags()
	flags.Duration("delay", stargazer.DefaultDelay, "Delay between two profile requests")
	flags.Uint("retries", 3, "Maximum amount of retries for rate-limited or failing requests")
	flags.String("api-url", github.DefaultAPIURL, "Base URL of the GitHub REST API")
	flags.StringP("cachedir", "c", "", "Set the directory in which to cache profile responses")
	flags.Duration("cache-ttl", 0, "Lifetime of cached profile responses, disables the cache when zero")
	flags.Bool("refresh", false, "Clear the profile cache of the repository before fetching")
	flags.Bool("summary", true, "Print statistics about the fetched stargazers")
	flags.Bool("visualize", false, "Render the visualizations of the repository once fetched")

	root.AddCommand(newVisualizeCommand(fs, v))

	return root
}

// loadConfig binds the command flags, the environment and the optional
// .env file of the working directory into v.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix("stargazers")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("github_token", "GITHUB_TOKEN"); err != nil {
		return err
	}

	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to read %s file: %v", envFile, err)
	}

	return nil
}

func newContext(v *viper.Viper, repository string) (*context.Context, error) {
	owner, name, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	token := v.GetString("github_token")
	if token == "" {
		return nil, errors.New("missing github access token. Please set one in your GITHUB_TOKEN environment variable or in a .env file")
	}

	return &context.Context{
		RepoOwner:           owner,
		RepoName:            name,
		GithubToken:         token,
		APIURL:              v.GetString("api-url"),
		DataDirectoryPath:   v.GetString("datadir"),
		OutputDirectoryPath: v.GetString("outdir"),
		CacheDirectoryPath:  v.GetString("cachedir"),
		CacheTTL:            v.GetDuration("cache-ttl"),
		RequestDelay:        v.GetDuration("delay"),
		MaxRetries:          v.GetUint("retries"),
	}, nil
}

// parseRepository splits an owner/repo identifier.
func parseRepository(repository string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(repository), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: should be of the form \"owner/repo\"", repository)
	}

	return parts[0], parts[1], nil
}

func repositoryArgument(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	return promptRepository(cmd.InOrStdin())
}

func main() {
	start := time.Now()

	if err := newRootCommand(afero.NewOsFs()).Execute(); err != nil {
		disgo.Errorln(style.Failure(style.SymbolCross, " ", err))
		os.Exit(1)
	}

	disgo.Debugf("Done in %s\n", time.Since(start).Round(time.Millisecond))
}
