package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/faultnote/internal/config"
	"github.com/muurk/faultnote/internal/logging"
)

const searchBody = `{
  "object": "list",
  "results": [
    {"object": "page", "id": "page-1", "url": "https://www.notion.so/page-1",
     "properties": {"title": {"type": "title", "title": [{"plain_text": "Notes"}]}}},
    {"object": "page", "id": "page-2",
     "properties": {"Name": {"type": "title", "title": [{"plain_text": "Bugs"}]}}}
  ],
  "has_more": false
}`

// resetFlags restores every flag to its default so runs do not leak state
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setup isolates the environment and writes a config file pointing at baseURL
func setup(t *testing.T, baseURL string) string {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.TokenEnvVar, "secret_test")
	t.Setenv(logging.LogLevelEnvVar, "")
	t.Setenv(logging.LogFileEnvVar, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "version: 1\napi:\n  base_url: " + baseURL + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	return path
}

func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(t, &out, &out, stdin, args...)
	return out.String(), err
}

// executeSplit keeps stdout and stderr apart
func executeSplit(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(t, &stdout, &stderr, nil, args...)
	return stdout.String(), stderr.String(), err
}

func run(t *testing.T, stdout, stderr io.Writer, stdin io.Reader, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// unreachable fails the test if the client makes any request
func unreachable(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "faultnote "))
	assert.Contains(t, out, "(commit: ")
}

func TestConfigPath(t *testing.T) {
	path := setup(t, "http://unused")
	out, err := execute(t, nil, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestConfigInit(t *testing.T) {
	setup(t, "http://unused")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, nil, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config written")
	assert.FileExists(t, path)

	out, err = execute(t, nil, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Config written")

	reg, err := config.LoadRegistryFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, reg.API.BaseURL)
}

func TestPagesCompact(t *testing.T) {
	var searched bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searched = r.Method == http.MethodPost && r.URL.Path == "/v1/search"
		assert.Equal(t, "Bearer secret_test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()
	path := setup(t, srv.URL)

	out, err := execute(t, nil, "pages", "--config", path, "--format", "compact")
	require.NoError(t, err)
	assert.True(t, searched)
	assert.Contains(t, out, "Notes")
	assert.Contains(t, out, "Bugs")
	assert.Contains(t, out, "page-2")
}

func TestPagesJSONIsMachineReadable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()
	path := setup(t, srv.URL)

	out, err := execute(t, nil, "pages", "--config", path, "--format", "json")
	require.NoError(t, err)

	var pages []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &pages))
	require.Len(t, pages, 2)
	assert.Equal(t, "Bugs", pages[1]["title"])
}

func TestPagesUnknownFormat(t *testing.T) {
	path := setup(t, unreachable(t).URL)

	_, err := execute(t, nil, "pages", "--config", path, "--format", "yaml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}

func TestPagesAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`))
	}))
	defer srv.Close()
	path := setup(t, srv.URL)

	out, err := execute(t, nil, "pages", "--config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Authentication failed")
	assert.Contains(t, out, config.TokenEnvVar)
}

func TestPagesJSONFailureGoesToStderr(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`))
	}))
	defer srv.Close()
	path := setup(t, srv.URL)

	stdout, stderr, err := executeSplit(t, "pages", "--config", path, "--format", "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, stdout, "a pipe into jq sees no output")
	assert.Contains(t, stderr, "Authentication failed")
}

func TestMissingTokenFailsBeforeRequest(t *testing.T) {
	srv := unreachable(t)
	path := setup(t, srv.URL)
	t.Setenv(config.TokenEnvVar, "")
	t.Setenv(config.LegacyTokenEnvVar, "")

	t.Run("pages", func(t *testing.T) {
		out, err := execute(t, nil, "pages", "--config", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, errReported)
		assert.Contains(t, out, "No integration token")
		assert.Contains(t, out, config.TokenEnvVar)
	})

	t.Run("append", func(t *testing.T) {
		out, err := execute(t, nil, "append", "--config", path, "--page", "page-1",
			"--error", "e", "--problem", "p", "--solution", "s")
		require.Error(t, err)
		assert.ErrorIs(t, err, errReported)
		assert.Contains(t, out, "No integration token")
	})

	t.Run("dry run needs no token", func(t *testing.T) {
		_, err := execute(t, nil, "append", "--config", path, "--dry-run",
			"--error", "e", "--problem", "p", "--solution", "s")
		require.NoError(t, err)
	})
}

func TestAppendMissingFields(t *testing.T) {
	path := setup(t, unreachable(t).URL)

	out, err := execute(t, nil, "append", "--config", path, "--page", "page-1", "--error", "boom")
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "missing Problem, Solution")
}

func TestAppendNoPage(t *testing.T) {
	path := setup(t, unreachable(t).URL)

	out, err := execute(t, nil, "append", "--config", path,
		"--error", "e", "--problem", "p", "--solution", "s")
	require.Error(t, err)
	assert.Contains(t, out, "No page selected")
}

func TestAppendSendsEntryAndRemembersPage(t *testing.T) {
	var paths []string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"object":"list","results":[]}`))
	}))
	defer srv.Close()
	path := setup(t, srv.URL)

	out, err := execute(t, nil, "append", "--config", path, "--page", "page-2",
		"--error", "NullPointerException", "--problem", "p", "--solution", "s",
		"--code", "x := nil", "--language", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "Entry appended")
	assert.Equal(t, []string{"PATCH /v1/blocks/page-2/children"}, paths)

	children, ok := body["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.Contains(t, mustJSON(t, body), `"language":"go"`)

	reg, err := config.LoadRegistryFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "page-2", reg.LastPage())

	// --page now defaults to the remembered page
	paths = nil
	_, err = execute(t, nil, "append", "--config", path,
		"--error", "e", "--problem", "p", "--solution", "s")
	require.NoError(t, err)
	assert.Equal(t, []string{"PATCH /v1/blocks/page-2/children"}, paths)
}

func TestAppendDryRunSendsNothing(t *testing.T) {
	path := setup(t, unreachable(t).URL)

	out, err := execute(t, strings.NewReader("fmt.Println(err)\n"), "append", "--config", path,
		"--error", "e", "--problem", "p", "--solution", "s",
		"--code-file", "-", "--language", "go", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "heading_3"`)
	assert.Contains(t, out, `"language": "go"`)
	assert.Contains(t, out, "fmt.Println(err)")
	assert.Contains(t, out, "Nothing was sent")
}

func TestAppendCodeFlagsAreExclusive(t *testing.T) {
	path := setup(t, unreachable(t).URL)

	_, err := execute(t, nil, "append", "--config", path,
		"--error", "e", "--problem", "p", "--solution", "s",
		"--code", "x", "--code-file", "y", "--dry-run")
	assert.Error(t, err)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
