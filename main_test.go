package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing protein tree", nil, "ERROR: -p (protein input tree) is required"},
		{"only run id", []string{"-r", "run1"}, "ERROR: -p (protein input tree) is required"},
		{"unknown flag", []string{"--bogus"}, "unknown flag: --bogus"},
		{"stray argument", []string{"tree.nwk"}, "ERROR:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestMissingTreeFile(t *testing.T) {
	code, _, stderr := runCLI(t, "-p", filepath.Join(t.TempDir(), "nope.tree"))
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "nope.tree not found")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "ggregion version "+version)
}

func TestTopologyDOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "McrA.tree")
	require.NoError(t, os.WriteFile(path, []byte("((fig|1.1.peg.2:1,fig|1.1.peg.1:1)90:1,fig|190192.1.peg.7:1);\n"), 0o644))

	code, stdout, _ := runCLI(t, "topology", path)
	require.Equal(t, ExitSuccess, code)
	assert.True(t, strings.HasPrefix(stdout, "digraph tree {"))
	assert.Contains(t, stdout, `label="fig|190192.1.peg.7"`)
	// canonical order puts peg.1 before peg.2
	assert.Less(t, strings.Index(stdout, "peg.1\""), strings.Index(stdout, "peg.2\""))
}

func TestTopologyBadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.tree")
	require.NoError(t, os.WriteFile(path, []byte("(a,b);"), 0o644))

	code, _, stderr := runCLI(t, "topology", path, "--format", "png")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, `unknown format "png"`)
}

func TestInitDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "DATABASE.sqlite")
	code, _, _ := runCLI(t, "initdb", "--db", path)
	require.Equal(t, ExitSuccess, code)
	assert.FileExists(t, path)
}

func TestConfigSetGet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	var stdout, stderr bytes.Buffer

	require.Equal(t, ExitSuccess, run([]string{"config", "set", "threshold", "5"}, &stdout, &stderr), stderr.String())
	assert.FileExists(t, filepath.Join(home, ".ggregion.yaml"))

	stdout.Reset()
	require.Equal(t, ExitSuccess, run([]string{"config", "get", "threshold"}, &stdout, &stderr), stderr.String())
	assert.Equal(t, "5\n", stdout.String())
}
