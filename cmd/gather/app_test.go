package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for relPath, content := range files {
		path := filepath.Join(dir, relPath)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func runApp(t *testing.T, args *Args) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app, err := BuildApp(args, &out)
	require.NoError(t, err)
	err = app.Run()
	return out.String(), err
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApp_CollectDefaults(t *testing.T) {
	assert := assert.New(t)
	dir := createProject(t, map[string]string{
		"engine/core/main.cpp":       "int main() {}",
		"plugins/vk/Window.h":        "struct Window;",
		"engine/platform/Window.h":   "class Window;",
		"engine/platform/Window.cpp": "Window::Window() {}",
	})

	out, err := runApp(t, &Args{Dir: dir, Collect: &CollectCmd{}})
	require.NoError(t, err)

	content := readOutput(t, filepath.Join(dir, "collected_files.txt"))
	assert.Equal(
		"=== main.cpp ===\n\nint main() {}\n\n\f\n\n"+
			"=== Window.cpp ===\n\nWindow::Window() {}\n\n\f\n\n"+
			"=== Window.h ===\n\nclass Window;\n\n\f\n\n",
		content)

	assert.Contains(out, "Searching for main.cpp...\n")
	assert.Contains(out, "Found: "+filepath.Join(dir, "engine", "platform", "Window.h")+"\n")
	assert.Contains(out, "Not found: Mesh.h\n")
	assert.Contains(out, "Collected content written to: "+filepath.Join(dir, "collected_files.txt")+"\n")
	assert.Contains(out, "Total files found: 3 of 14\n")
	assert.Contains(out, "Summary: 3 files")
}

func TestApp_CollectOverrides(t *testing.T) {
	assert := assert.New(t)
	dir := createProject(t, map[string]string{
		"src/a.txt":       "from src",
		"lib/a.txt":       "from lib",
		"lib/build/b.txt": "built",
	})

	out, err := runApp(t, &Args{Dir: dir, Collect: &CollectCmd{
		Output:  "out.txt",
		Roots:   []string{"lib", "src"},
		Exclude: []string{"build"},
		Targets: []string{"a.txt", "b.txt"},
	}})
	require.NoError(t, err)

	content := readOutput(t, filepath.Join(dir, "out.txt"))
	assert.Equal("=== a.txt ===\n\nfrom lib\n\n\f\n\n", content)
	assert.Contains(out, "Total files found: 1 of 2\n")
}

func TestApp_CollectTruncatesOutput(t *testing.T) {
	dir := createProject(t, map[string]string{
		"engine/main.cpp":     "x",
		"collected_files.txt": "stale content that is longer",
	})

	_, err := runApp(t, &Args{Dir: dir, Collect: &CollectCmd{}})
	require.NoError(t, err)
	assert.Equal(t, "=== main.cpp ===\n\nx\n\n\f\n\n", readOutput(t, filepath.Join(dir, "collected_files.txt")))
}

func TestApp_DumpOldestFirst(t *testing.T) {
	assert := assert.New(t)
	dir := createProject(t, map[string]string{
		"plugins/new.txt":     "new",
		"plugins/sub/old.txt": "old",
		"engine/skip.txt":     "not dumped",
	})
	now := time.Now()
	require.NoError(t, os.Chtimes(filepath.Join(dir, "plugins", "sub", "old.txt"), now, now.Add(-2*time.Hour)))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "plugins", "new.txt"), now, now.Add(-time.Hour)))

	out, err := runApp(t, &Args{Dir: dir, Dump: &DumpCmd{}})
	require.NoError(t, err)

	oldHeading := filepath.Join("plugins", "sub", "old.txt")
	newHeading := filepath.Join("plugins", "new.txt")
	assert.Equal(
		"=== "+oldHeading+" ===\n\nold\n\n\f\n\n"+
			"=== "+newHeading+" ===\n\nnew\n\n\f\n\n",
		readOutput(t, filepath.Join(dir, "vulkan_files.txt")))

	assert.Contains(out, "Total files found: 2\n")
	assert.Contains(out, "All files from [plugins] written to: "+filepath.Join(dir, "vulkan_files.txt")+"\n")
}

func TestApp_DumpInclude(t *testing.T) {
	dir := createProject(t, map[string]string{
		"plugins/a.cpp":         "a",
		"plugins/a.h":           "h",
		"plugins/shaders/v.cpp": "v",
	})

	_, err := runApp(t, &Args{Dir: dir, Dump: &DumpCmd{Include: []string{"**/*.cpp"}, Output: "cpp.txt"}})
	require.NoError(t, err)

	content := readOutput(t, filepath.Join(dir, "cpp.txt"))
	assert.Contains(t, content, "=== "+filepath.Join("plugins", "a.cpp")+" ===")
	assert.Contains(t, content, "=== "+filepath.Join("plugins", "shaders", "v.cpp")+" ===")
	assert.NotContains(t, content, "a.h")
}

func TestApp_DumpOutputInsideRoot(t *testing.T) {
	assert := assert.New(t)
	dir := createProject(t, map[string]string{"a.txt": "hello"})

	out, err := runApp(t, &Args{Dir: dir, Dump: &DumpCmd{Roots: []string{"."}, Output: "all.txt"}})
	require.NoError(t, err)

	content := readOutput(t, filepath.Join(dir, "all.txt"))
	assert.Equal("=== a.txt ===\n\nhello\n\n\f\n\n", content)
	assert.Equal(1, strings.Count(content, "\f"))
	assert.Contains(out, "Total files found: 1\n")
}

func TestApp_Tree(t *testing.T) {
	dir := createProject(t, map[string]string{
		"CMakeLists.txt":   "",
		"build/cache.txt":  "",
		"src/main.cpp":     "",
		".git/HEAD":        "",
		"external/lib.cpp": "",
	})

	out, err := runApp(t, &Args{Dir: dir, Tree: &TreeCmd{}})
	require.NoError(t, err)
	assert.Equal(t,
		"Project Folder Tree Structure:\n\n"+
			"├── CMakeLists.txt\n"+
			"└── src\n"+
			"    └── main.cpp\n",
		out)
}

func TestApp_TreeExcludeOverride(t *testing.T) {
	dir := createProject(t, map[string]string{
		"build/cache.txt": "",
		"docs/readme.md":  "",
	})

	out, err := runApp(t, &Args{Dir: dir, Tree: &TreeCmd{Exclude: []string{"docs"}}})
	require.NoError(t, err)
	assert.Contains(t, out, "└── build\n")
	assert.NotContains(t, out, "docs")
}

func TestApp_ConfigFile(t *testing.T) {
	config := `
[collect]
targets = ["util.h"]
roots = ["lib"]
output = "util.txt"
`
	dir := createProject(t, map[string]string{
		"lib/util.h":  "util",
		"gather.toml": config,
	})

	out, err := runApp(t, &Args{Dir: dir, Config: filepath.Join(dir, "gather.toml"), Collect: &CollectCmd{}})
	require.NoError(t, err)
	assert.Equal(t, "=== util.h ===\n\nutil\n\n\f\n\n", readOutput(t, filepath.Join(dir, "util.txt")))
	assert.Contains(t, out, "Total files found: 1 of 1\n")
}

func TestApp_InvalidExcludePattern(t *testing.T) {
	dir := t.TempDir()
	_, err := runApp(t, &Args{Dir: dir, Tree: &TreeCmd{Exclude: []string{"[oops"}}})
	assert.ErrorContains(t, err, "invalid pattern")
}

func TestBuildApp_UnknownEstimator(t *testing.T) {
	_, err := BuildApp(&Args{TokenEstimator: "bogus", Tree: &TreeCmd{}}, &bytes.Buffer{})
	assert.Error(t, err)
}
