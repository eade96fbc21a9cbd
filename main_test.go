package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ullaakut/disgo"
	"github.com/ullaakut/stargazers/pkg/context"
	"github.com/ullaakut/stargazers/pkg/github"
	"github.com/ullaakut/stargazers/pkg/store"
)

func TestParseRepository(t *testing.T) {
	tests := map[string]struct {
		repository string

		expectedOwner string
		expectedName  string
		expectedErr   bool
	}{
		"valid repository": {
			repository: "ullaakut/astronomer",

			expectedOwner: "ullaakut",
			expectedName:  "astronomer",
		},
		"surrounding spaces": {
			repository: " ullaakut/astronomer\n",

			expectedOwner: "ullaakut",
			expectedName:  "astronomer",
		},
		"missing slash":    {repository: "astronomer", expectedErr: true},
		"too many slashes": {repository: "github.com/ullaakut/astronomer", expectedErr: true},
		"missing owner":    {repository: "/astronomer", expectedErr: true},
		"missing name":     {repository: "ullaakut/", expectedErr: true},
		"empty repository": {repository: "", expectedErr: true},
		"only a slash":     {repository: "/", expectedErr: true},
	}

	for description, test := range tests {
		t.Run(description, func(t *testing.T) {
			owner, name, err := parseRepository(test.repository)
			if test.expectedErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedOwner, owner)
			assert.Equal(t, test.expectedName, name)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		envFile string
		env     map[string]string
		args    []string

		expectedToken   string
		expectedDataDir string
		expectedDelay   time.Duration
	}{
		"defaults": {
			expectedDataDir: "./data",
			expectedDelay:   100 * time.Millisecond,
		},
		"token from environment": {
			env: map[string]string{"GITHUB_TOKEN": "fromEnv"},

			expectedToken:   "fromEnv",
			expectedDataDir: "./data",
			expectedDelay:   100 * time.Millisecond,
		},
		"token from env file": {
			envFile: "GITHUB_TOKEN=fromFile\n",

			expectedToken:   "fromFile",
			expectedDataDir: "./data",
			expectedDelay:   100 * time.Millisecond,
		},
		"environment overrides env file": {
			envFile: "GITHUB_TOKEN=fromFile\n",
			env:     map[string]string{"GITHUB_TOKEN": "fromEnv"},

			expectedToken:   "fromEnv",
			expectedDataDir: "./data",
			expectedDelay:   100 * time.Millisecond,
		},
		"prefixed environment variables": {
			env: map[string]string{"STARGAZERS_DATADIR": "/tmp/stars", "STARGAZERS_DELAY": "1s"},

			expectedDataDir: "/tmp/stars",
			expectedDelay:   time.Second,
		},
		"flags": {
			env:  map[string]string{"STARGAZERS_DATADIR": "/tmp/stars"},
			args: []string{"--datadir", "datasets", "--delay", "250ms"},

			expectedDataDir: "datasets",
			expectedDelay:   250 * time.Millisecond,
		},
	}

	for description, test := range tests {
		t.Run(description, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", "")
			t.Setenv("STARGAZERS_DATADIR", "")
			t.Setenv("STARGAZERS_DELAY", "")
			for key, value := range test.env {
				t.Setenv(key, value)
			}

			fs := afero.NewMemMapFs()
			if test.envFile != "" {
				require.NoError(t, afero.WriteFile(fs, envFile, []byte(test.envFile), 0644))
			}

			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags.String("datadir", "./data", "")
			flags.Duration("delay", 100*time.Millisecond, "")
			require.NoError(t, flags.Parse(test.args))

			v := viper.New()
			v.SetFs(fs)
			require.NoError(t, loadConfig(v, flags))

			assert.Equal(t, test.expectedToken, v.GetString("github_token"))
			assert.Equal(t, test.expectedDataDir, v.GetString("datadir"))
			assert.Equal(t, test.expectedDelay, v.GetDuration("delay"))
		})
	}
}

func TestNewContextMissingToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	v := viper.New()
	v.SetFs(afero.NewMemMapFs())
	require.NoError(t, loadConfig(v, pflag.NewFlagSet("test", pflag.ContinueOnError)))

	_, err := newContext(v, "ullaakut/astronomer")
	assert.Error(t, err)
}

func stargazersAPI(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fakeToken", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/repos/ullaakut/astronomer/stargazers":
			if r.URL.Query().Get("page") == "2" {
				w.Write([]byte(`[]`))
				return
			}

			w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=2>; rel="next"`, r.Host, r.URL.Path))
			w.Write([]byte(`[
				{"starred_at": "2020-01-02T10:00:00Z", "user": {"login": "alice"}},
				{"starred_at": "2020-02-03T10:00:00Z", "user": {"login": "bob"}},
				{"starred_at": "2020-02-04T10:00:00Z", "user": {"login": "ghost"}}
			]`))
		case "/users/alice":
			w.Write([]byte(`{"id": 1, "login": "alice", "location": "Paris, France", "followers": 10, "created_at": "2015-01-01T00:00:00Z"}`))
		case "/users/bob":
			w.Write([]byte(`{"id": 2, "login": "bob", "location": "Berlin", "hireable": true, "followers": 3, "created_at": "2018-01-01T00:00:00Z"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
		}
	}
}

func TestRootCommand(t *testing.T) {
	server := httptest.NewServer(stargazersAPI(t))
	defer server.Close()

	t.Setenv("GITHUB_TOKEN", "fakeToken")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/ullaakut/astronomer.csv", []byte("login,followers_count\ncarol,7\nbob,1\n"), 0644))

	out := &bytes.Buffer{}
	root := newRootCommand(fs)
	root.SetOut(out)
	root.SetArgs([]string{
		"ullaakut/astronomer",
		"--api-url", server.URL,
		"--datadir", "data",
		"--outdir", "visualizations",
		"--delay", "0s",
		"--visualize",
	})

	require.NoError(t, root.Execute())

	table, err := store.New(fs).Load("data/ullaakut/astronomer.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	bob, found := table.Get("bob")
	require.True(t, found)
	assert.Equal(t, 3, bob.Followers)
	assert.Equal(t, int64(2), bob.ID)
	require.NotNil(t, bob.Hireable)
	assert.True(t, *bob.Hireable)

	carol, found := table.Get("carol")
	require.True(t, found)
	assert.Equal(t, 7, carol.Followers)

	_, found = table.Get("ghost")
	assert.False(t, found)

	for _, path := range []string{
		"visualizations/ullaakut/astronomer/stars_plot.png",
		"visualizations/ullaakut/astronomer/users_map.html",
	} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, exists, path)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestFetchStargazersInterruptedListing(t *testing.T) {
	server := httptest.NewServer(stargazersAPI(t))
	defer server.Close()

	logger := &bytes.Buffer{}
	disgo.SetTerminalOptions(disgo.WithColors(false), disgo.WithDefaultOutput(logger), disgo.WithErrorOutput(logger))

	// The second page of stargazers fails at the transport level.
	httpClient := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Query().Get("page") == "2" {
				return nil, errors.New("connection reset by peer")
			}

			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer fakeToken")
			return http.DefaultTransport.RoundTrip(r)
		}),
	}

	ctx := &context.Context{
		RepoOwner:         "ullaakut",
		RepoName:          "astronomer",
		GithubToken:       "fakeToken",
		APIURL:            server.URL,
		DataDirectoryPath: "data",
	}

	fs := afero.NewMemMapFs()
	err := fetchStargazers(ctx, fs, runOptions{
		clientOptions: []github.Option{github.WithHTTPClient(httpClient)},
	})
	require.NoError(t, err)

	assert.Contains(t, logger.String(), "Stargazer listing interrupted after 1 pages")
	assert.Contains(t, logger.String(), "connection reset by peer")
	assert.Contains(t, logger.String(), "Keeping the 3 stargazers fetched so far.")

	table, err := store.New(fs).Load(ctx.CSVPath())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestRootCommandPromptsForRepository(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "fakeToken")

	root := newRootCommand(afero.NewMemMapFs())
	root.SetOut(&bytes.Buffer{})
	root.SetIn(strings.NewReader("not-a-repository\n"))
	root.SetArgs([]string{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-repository")
}

func TestVisualizeCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/ullaakut/astronomer.csv", []byte(
		"starred_at,login,location\n2020-01-02T10:00:00Z,alice,\"Paris, France\"\n2020-03-02T10:00:00Z,bob,Tokyo\n",
	), 0644))
	require.NoError(t, afero.WriteFile(fs, "data/golang/go.csv", []byte("login\n"), 0644))

	tests := map[string]struct {
		args  []string
		input string

		expectedErr bool
	}{
		"repository argument": {
			args: []string{"visualize", "ullaakut/astronomer", "--datadir", "data", "--outdir", "argument"},
		},
		"interactive selection": {
			args:  []string{"visualize", "--datadir", "data", "--outdir", "interactive"},
			input: "9\n2\n",
		},
		"unknown repository": {
			args: []string{"visualize", "ullaakut/cameradar", "--datadir", "data"},

			expectedErr: true,
		},
		"no datasets": {
			args: []string{"visualize", "--datadir", "empty"},

			expectedErr: true,
		},
	}

	for description, test := range tests {
		t.Run(description, func(t *testing.T) {
			root := newRootCommand(fs)
			root.SetOut(&bytes.Buffer{})
			root.SetIn(strings.NewReader(test.input))
			root.SetArgs(test.args)

			err := root.Execute()
			if test.expectedErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			outDir := test.args[len(test.args)-1]
			exists, err := afero.Exists(fs, outDir+"/ullaakut/astronomer/stars_plot.png")
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}
