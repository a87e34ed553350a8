package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"topoorder/internal/config"
	"topoorder/internal/dependency"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a fresh command tree with args and returns stdout, stderr
// and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, name := range []string{config.EnvRoot, config.EnvOutput, config.EnvPackage, config.EnvFormat} {
		t.Setenv(name, "")
	}

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func imp(path string) string {
	return "import 'package:manim_web/" + path + "';\n"
}

func TestSetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	assert.Equal(t, testVersion, rootCmd.Version)
	assert.Equal(t, testVersion, GetVersion())
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "topoorder", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage, "Expected SilenceUsage to be true")
}

func TestVersionTemplate(t *testing.T) {
	cmd := newRootCmd()
	cmd.Version = "1.0.0"

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "topoorder version 1.0.0\n", buf.String())
}

func TestSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}

	for _, expected := range []string{"order", "graph", "check", "init", "version"} {
		assert.True(t, found[expected], "Expected subcommand %s to be registered", expected)
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "debug", "verbose", "quiet", "log-format"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag --%s", name)
	}
}

func TestRootRunsOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"A.dart": "",
		"B.dart": imp("A.dart"),
		"C.dart": imp("A.dart") + imp("B.dart"),
	})

	stdout, _, err := execute(t, "--root", root, "--output", "-", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "A.dart\nB.dart\nC.dart\n", stdout)
}

func TestGetExitCode(t *testing.T) {
	cycle := &dependency.CycleError{Cycle: []dependency.NodeID{"a", "b", "a"}}

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: ExitCodeSuccess},
		{name: "generic error", err: errors.New("boom"), expected: ExitCodeError},
		{name: "configuration error", err: &config.ConfigurationError{Message: "bad"}, expected: ExitCodeError},
		{name: "cycle", err: cycle, expected: ExitCodeCycle},
		{name: "wrapped cycle", err: fmt.Errorf("order failed: %w", cycle), expected: ExitCodeCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getExitCode(tt.err))
		})
	}
}

func TestPrintConfigurationHint(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetErr(&buf)

	printConfigurationHint(cmd, fmt.Errorf("wrapped: %w", &config.ConfigurationError{
		Field:       "format",
		ErrorType:   config.ErrorTypeValidation,
		Message:     "unknown output format",
		Suggestions: []string{"use lines"},
	}))
	assert.Contains(t, buf.String(), "Suggestions:")
	assert.Contains(t, buf.String(), "use lines")

	buf.Reset()
	printConfigurationHint(cmd, errors.New("plain"))
	assert.Empty(t, buf.String())
}
