package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"topoorder/internal/config"
	"topoorder/internal/dependency"
	"topoorder/internal/formatting"
	"topoorder/internal/scanner"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func testSettings(root, output string) config.Config {
	settings := config.GetDefaultConfig()
	settings.Root = root
	settings.Output = output
	return settings
}

func newTestApp(t *testing.T, settings config.Config) (*Application, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	cfg := NewConfig(false, true, "")
	cfg.Settings = &settings
	cfg.Stdout = &stdout
	application, err := NewApplication(cfg)
	require.NoError(t, err)
	return application, &stdout
}

func imp(path string) string {
	return "import 'package:manim_web/" + path + "';\n"
}

func TestOrder_WritesDependenciesFirst(t *testing.T) {
	root := writeTree(t, map[string]string{
		"A.dart": "",
		"B.dart": imp("A.dart"),
		"C.dart": imp("A.dart") + imp("B.dart"),
	})
	output := filepath.Join(t.TempDir(), "topo_order.txt")
	application, _ := newTestApp(t, testSettings(root, output))

	result, err := application.Order(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "A.dart\nB.dart\nC.dart", string(data))
	assert.Equal(t, data, result.Output)
	assert.Len(t, result.Files, 3)

	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err, "each run carries a UUID")
}

func TestOrder_ReverseWalkOrder(t *testing.T) {
	// Walk order is a, b, c; dependencies run the other way.
	root := writeTree(t, map[string]string{
		"a.dart": imp("b.dart"),
		"b.dart": imp("c.dart"),
		"c.dart": "",
	})
	application, stdout := newTestApp(t, testSettings(root, "-"))

	_, err := application.Order(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c.dart\nb.dart\na.dart\n", stdout.String())
}

func TestOrder_EveryFileOnceAndDependenciesFirst(t *testing.T) {
	root := writeTree(t, map[string]string{
		"constants.dart":          "",
		"util/color.dart":         imp("constants.dart"),
		"util/array.dart":         "",
		"util/bezier.dart":        imp("util/array.dart") + imp("constants.dart"),
		"mobject/mobject.dart":    imp("util/color.dart") + imp("util/array.dart"),
		"mobject/vmobject.dart":   imp("mobject/mobject.dart") + imp("util/bezier.dart"),
		"scene/scene.dart":        imp("mobject/vmobject.dart") + "// " + imp("scene/renderer.dart"),
		"scene/renderer.dart":     imp("scene/scene.dart"),
		"assets/readme.txt":       "plain text",
		"mobject/types/text.dart": imp("mobject/vmobject.dart") + imp("mobject/vmobject.dart"),
	})
	application, _ := newTestApp(t, testSettings(root, filepath.Join(t.TempDir(), "out.txt")))

	result, err := application.Order(context.Background())
	require.NoError(t, err)

	position := make(map[dependency.NodeID]int)
	for i, id := range result.Order {
		_, dup := position[id]
		require.False(t, dup, "%s listed twice", id)
		position[id] = i
	}
	assert.Len(t, position, 10)

	for _, f := range result.Files {
		for _, dep := range f.Deps {
			assert.Less(t, position[dependency.NodeID(dep)], position[dependency.NodeID(f.ID)],
				"%s must precede %s", dep, f.ID)
		}
	}
}

func TestOrder_CycleWritesNothing(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.dart": imp("b.dart"),
		"b.dart": imp("a.dart"),
		"c.dart": "",
	})
	output := filepath.Join(t.TempDir(), "topo_order.txt")
	application, _ := newTestApp(t, testSettings(root, output))

	_, err := application.Order(context.Background())
	require.Error(t, err)

	var cycleErr *dependency.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []dependency.NodeID{"a.dart", "b.dart", "a.dart"}, cycleErr.Cycle)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output may be written on a cycle")
}

func TestOrder_CycleKeepsPreviousOutput(t *testing.T) {
	root := writeTree(t, map[string]string{"a.dart": imp("a.dart")})
	output := filepath.Join(t.TempDir(), "topo_order.txt")
	require.NoError(t, os.WriteFile(output, []byte("previous"), 0o644))
	application, _ := newTestApp(t, testSettings(root, output))

	_, err := application.Order(context.Background())
	require.Error(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestOrder_UndiscoveredDependencies(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.dart": imp("generated/missing.dart"),
	})
	application, stdout := newTestApp(t, testSettings(root, "-"))

	result, err := application.Order(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "generated/missing.dart\na.dart\n", stdout.String())
	assert.Equal(t, []dependency.NodeID{"generated/missing.dart"}, result.Graph.Undiscovered())
}

func TestOrder_EmptyRoot(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(t.TempDir(), "topo_order.txt")
	application, _ := newTestApp(t, testSettings(root, output))

	result, err := application.Order(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Order)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestOrder_MissingRoot(t *testing.T) {
	application, _ := newTestApp(t, testSettings(filepath.Join(t.TempDir(), "lib"), "-"))

	_, err := application.Order(context.Background())
	assert.Error(t, err)
}

func TestOrder_Formats(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.dart": "",
		"b.dart": imp("a.dart"),
	})

	t.Run("json", func(t *testing.T) {
		settings := testSettings(root, "-")
		settings.Format = "json"
		application, stdout := newTestApp(t, settings)

		_, err := application.Order(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `["a.dart", "b.dart"]`, stdout.String())
	})

	t.Run("template", func(t *testing.T) {
		settings := testSettings(root, "-")
		settings.Format = "template"
		settings.Template = `{{ .Index }} {{ .ID | upper }}`
		application, stdout := newTestApp(t, settings)

		_, err := application.Order(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "0 A.DART\n1 B.DART\n", stdout.String())
	})
}

func TestOrder_TableFileIsPlainText(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.dart": imp("gone.dart"),
		"b.dart": imp("a.dart"),
	})
	output := filepath.Join(t.TempDir(), "topo_order.txt")
	settings := testSettings(root, output)
	settings.Format = "table"

	cfg := NewConfig(false, true, "")
	cfg.Settings = &settings
	cfg.Color = true
	application, err := NewApplication(cfg)
	require.NoError(t, err)

	_, err = application.Order(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gone.dart (missing)")
	assert.NotContains(t, string(data), "\x1b[", "a file must not contain terminal escape codes")
	assert.NotContains(t, string(data), "╭", "a file uses the plain table style")
}

func TestAnalyze_DoesNotWrite(t *testing.T) {
	root := writeTree(t, map[string]string{"a.dart": ""})
	output := filepath.Join(t.TempDir(), "topo_order.txt")
	application, _ := newTestApp(t, testSettings(root, output))

	result, err := application.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dependency.NodeID{"a.dart"}, result.Order)
	assert.Empty(t, result.Output)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRender_Graph(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.dart": "",
		"b.dart": imp("a.dart"),
	})
	application, _ := newTestApp(t, testSettings(root, "-"))

	result, err := application.Analyze(context.Background())
	require.NoError(t, err)

	data, err := application.Render(result, formatting.FormatLines, true)
	require.NoError(t, err)
	assert.Equal(t, "a.dart:\nb.dart: a.dart", strings.TrimSpace(string(data)))
}

func TestResult_Entries(t *testing.T) {
	graph := BuildGraph([]scanner.File{
		{ID: "a.dart"},
		{ID: "b.dart", Deps: []string{"a.dart", "x.dart", "a.dart"}},
	})
	order, err := graph.TopologicalSort()
	require.NoError(t, err)

	entries := (&Result{Graph: graph, Order: order}).Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, formatting.Entry{
		Index:      0,
		ID:         "a.dart",
		Discovered: true,
		DependsOn:  []string{},
		Dependents: []string{"b.dart"},
	}, entries[0])
	assert.Equal(t, formatting.Entry{
		Index:      1,
		ID:         "x.dart",
		Discovered: false,
		DependsOn:  []string{},
		Dependents: []string{"b.dart"},
	}, entries[1])
	assert.Equal(t, []string{"a.dart", "x.dart"}, entries[2].DependsOn)
}

func TestRun_WatchRebuildsOnChange(t *testing.T) {
	root := writeTree(t, map[string]string{"a.dart": ""})
	output := filepath.Join(t.TempDir(), "topo_order.txt")
	settings := testSettings(root, output)
	settings.Watch.Debounce = 50 * time.Millisecond

	cfg := NewConfig(false, true, "")
	cfg.Settings = &settings
	cfg.Watch = true
	application, err := NewApplication(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	readOutput := func() string {
		data, _ := os.ReadFile(output)
		return string(data)
	}
	require.Eventually(t, func() bool { return readOutput() == "a.dart" }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.dart"), []byte(imp("a.dart")), 0o644))
	require.Eventually(t, func() bool { return readOutput() == "a.dart\nb.dart" }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch mode did not stop")
	}
}

func TestOutputMatcher(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "topo_order.txt")
	application, _ := newTestApp(t, testSettings(dir, output))

	match := application.outputMatcher()
	require.NotNil(t, match)
	assert.True(t, match(output))
	assert.True(t, match(filepath.Join(dir, ".topo_order.txt.12345.tmp")))
	assert.False(t, match(filepath.Join(dir, "a.dart")))
	assert.False(t, match(filepath.Join(dir, "sub", "topo_order.txt")))

	stdoutApp, _ := newTestApp(t, testSettings(dir, "-"))
	assert.Nil(t, stdoutApp.outputMatcher())
}
