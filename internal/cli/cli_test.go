package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seabearDEV/scaf/internal/config"
	"github.com/seabearDEV/scaf/internal/fileutil"
	"github.com/seabearDEV/scaf/internal/scaffold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup isolates the data directory and moves into an empty project dir.
func setup(t *testing.T) string {
	t.Helper()
	t.Setenv(fileutil.DataDirEnv, t.TempDir())
	fileutil.ResetDataDirectory()
	config.ClearCache()
	t.Cleanup(func() {
		fileutil.ResetDataDirectory()
		config.ClearCache()
	})
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootWritesDashboard(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.MkdirAll(filepath.Join("src", "app", "dashboard"), 0755))

	out, err := run(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Dashboard file created successfully!")

	got, err := os.ReadFile(filepath.Join(dir, scaffold.DefaultDestination))
	require.NoError(t, err)
	assert.Equal(t, scaffold.DashboardPage, string(got))
}

func TestRootOverwritesExistingPage(t *testing.T) {
	setup(t)
	require.NoError(t, os.MkdirAll(filepath.Join("src", "app", "dashboard"), 0755))
	require.NoError(t, os.WriteFile(scaffold.DefaultDestination, []byte(strings.Repeat("x", 10000)), 0644))

	_, err := run(t, "")
	require.NoError(t, err)

	got, err := os.ReadFile(scaffold.DefaultDestination)
	require.NoError(t, err)
	assert.Equal(t, scaffold.DashboardPage, string(got))
}

func TestRootFailsWithoutProjectDirectory(t *testing.T) {
	dir := setup(t)

	out, err := run(t, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, out, "no confirmation on failure")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRootRejectsArguments(t *testing.T) {
	setup(t)
	_, err := run(t, "", "bogus")
	assert.Error(t, err)
}

func TestWriteFromStdin(t *testing.T) {
	setup(t)
	require.NoError(t, os.Mkdir("out", 0755))

	out, err := run(t, "hello\nworld\n", "write", "--from", "-", "-o", "out/demo.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 12 bytes to out/demo.txt.")

	got, err := os.ReadFile("out/demo.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(got))
}

func TestWriteFromFile(t *testing.T) {
	setup(t)
	require.NoError(t, os.WriteFile("source.txt", []byte("naïve — café\n"), 0644))

	_, err := run(t, "", "write", "--from", "source.txt", "-o", "copy.txt", "--verify")
	require.NoError(t, err)

	got, err := os.ReadFile("copy.txt")
	require.NoError(t, err)
	assert.Equal(t, "naïve — café\n", string(got))
}

func TestWriteMissingDirectory(t *testing.T) {
	dir := setup(t)

	_, err := run(t, "", "write", "-o", "missing_dir/demo.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteParents(t *testing.T) {
	setup(t)

	_, err := run(t, "", "write", "dashboard", "-p")
	require.NoError(t, err)

	got, err := os.ReadFile(scaffold.DefaultDestination)
	require.NoError(t, err)
	assert.Equal(t, scaffold.DashboardPage, string(got))
}

func TestWriteNoOverwrite(t *testing.T) {
	setup(t)
	require.NoError(t, os.WriteFile("page.tsx", []byte("keep"), 0644))

	_, err := run(t, "", "write", "-o", "page.tsx", "--no-overwrite")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrExist))
	assert.Contains(t, err.Error(), "--force")

	got, err := os.ReadFile("page.tsx")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(got))

	_, err = run(t, "", "write", "-o", "page.tsx", "--no-overwrite", "--force")
	require.NoError(t, err)
	got, err = os.ReadFile("page.tsx")
	require.NoError(t, err)
	assert.Equal(t, scaffold.DashboardPage, string(got))
}

func TestWriteBackup(t *testing.T) {
	setup(t)
	require.NoError(t, os.WriteFile("page.tsx", []byte("previous"), 0644))

	out, err := run(t, "", "write", "-o", "page.tsx", "--backup", "--atomic")
	require.NoError(t, err)
	assert.Contains(t, out, "Previous content saved to")

	matches, err := filepath.Glob(filepath.Join(fileutil.GetBackupDirectory(), "write-*", "page.tsx"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	saved, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "previous", string(saved))
}

func TestWriteEncodingFlag(t *testing.T) {
	setup(t)

	_, err := run(t, "café", "write", "--from", "-", "-o", "latin.txt", "--encoding", "latin1")
	require.NoError(t, err)

	got, err := os.ReadFile("latin.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, got)
}

func TestWriteUsesConfigDefaults(t *testing.T) {
	setup(t)
	require.NoError(t, config.SetSetting("destination", "web/app/page.tsx"))
	require.NoError(t, config.SetSetting("create_parents", "true"))

	_, err := run(t, "")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join("web", "app", "page.tsx"))
	require.NoError(t, err)
	assert.Equal(t, scaffold.DashboardPage, string(got))
}

func TestWriteUnknownTemplate(t *testing.T) {
	setup(t)
	_, err := run(t, "", "write", "landing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestList(t *testing.T) {
	setup(t)

	out, err := run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "dashboard")
	assert.Contains(t, out, scaffold.DefaultDestination)

	out, err = run(t, "", "list", "--json")
	require.NoError(t, err)
	var templates []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &templates))
	require.Len(t, templates, 1)
	assert.Equal(t, "dashboard", templates[0]["name"])
	assert.Equal(t, scaffold.DefaultDestination, templates[0]["destination"])
}

func TestShow(t *testing.T) {
	setup(t)

	out, err := run(t, "", "show")
	require.NoError(t, err)
	assert.Equal(t, scaffold.DashboardPage, out)

	_, err = run(t, "", "show", "missing")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	setup(t)

	_, err := run(t, "", "config", "set", "encoding", "utf-16le")
	require.NoError(t, err)

	out, err := run(t, "", "config", "get", "encoding")
	require.NoError(t, err)
	assert.Equal(t, "utf-16le\n", out)

	out, err = run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "destination")
	assert.Contains(t, out, scaffold.DefaultDestination)

	_, err = run(t, "", "config", "reset")
	require.NoError(t, err)
	out, err = run(t, "", "config", "get", "encoding")
	require.NoError(t, err)
	assert.Equal(t, "utf-8\n", out)

	_, err = run(t, "", "config", "set", "encoding", "klingon")
	assert.Error(t, err)
}

func TestReadPayload(t *testing.T) {
	got, err := readPayload("-", strings.NewReader("  keep whitespace  \n\n"))
	require.NoError(t, err)
	assert.Equal(t, "  keep whitespace  \n\n", got)

	_, err = readPayload(filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}

func TestAskConfirmation(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, askConfirmation(strings.NewReader("Y\n"), &out, "Overwrite? "))
	assert.False(t, askConfirmation(strings.NewReader("n\n"), &out, "Overwrite? "))
	assert.False(t, askConfirmation(strings.NewReader(""), &out, "Overwrite? "))
	assert.Contains(t, out.String(), "Overwrite? ")
}

func TestExecuteExitStatus(t *testing.T) {
	dir := setup(t)

	var out, errOut bytes.Buffer
	code := execute(nil, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "✗ ")
	assert.Contains(t, errOut.String(), "no such file or directory")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, os.MkdirAll(filepath.Join("src", "app", "dashboard"), 0755))
	out.Reset()
	errOut.Reset()
	code = execute([]string{}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Dashboard file created successfully!")
}

func TestWriteBackupFailureWarns(t *testing.T) {
	setup(t)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	t.Setenv(fileutil.DataDirEnv, blocker)
	fileutil.ResetDataDirectory()
	require.NoError(t, os.WriteFile("page.tsx", []byte("previous"), 0644))

	var out, errOut bytes.Buffer
	code := execute([]string{"write", "-o", "page.tsx", "--backup"}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, errOut.String(), "Could not back up page.tsx")

	got, err := os.ReadFile("page.tsx")
	require.NoError(t, err)
	assert.Equal(t, scaffold.DashboardPage, string(got))
}

func TestPromptOverwrite(t *testing.T) {
	tests := []struct {
		name                              string
		exists, overwrite, fromStdin, tty bool
		want                              bool
	}{
		{"existing file on terminal", true, false, false, true, true},
		{"payload from stdin", true, false, true, true, false},
		{"overwrite already allowed", true, true, false, true, false},
		{"no file yet", false, false, false, true, false},
		{"not a terminal", true, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, promptOverwrite(tt.exists, tt.overwrite, tt.fromStdin, tt.tty))
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
