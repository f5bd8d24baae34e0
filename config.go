package gather

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hayeah/gather/ignore"
)

// Config holds the settings of every subcommand. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	Collect CollectConfig `toml:"collect"`
	Dump    DumpConfig    `toml:"dump"`
	Tree    TreeConfig    `toml:"tree"`
}

// CollectConfig configures first-match collection.
type CollectConfig struct {
	Targets []string `toml:"targets"`
	Roots   []string `toml:"roots"`
	Exclude []string `toml:"exclude"`
	Output  string   `toml:"output"`
}

// Request returns the search request described by c.
func (c CollectConfig) Request() SearchRequest {
	return SearchRequest{Roots: c.Roots, Targets: c.Targets, Exclude: c.Exclude}
}

// DumpConfig configures the time-ordered dump of every file.
type DumpConfig struct {
	Roots   []string `toml:"roots"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Output  string   `toml:"output"`
}

// TreeConfig configures the tree listing.
type TreeConfig struct {
	Root      string   `toml:"root"`
	Exclude   []string `toml:"exclude"`
	Gitignore bool     `toml:"gitignore"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Collect: CollectConfig{
			Targets: []string{
				"main.cpp",
				"Application.cpp", "Application.h",
				"Window.cpp", "Window.h",
				"Input.cpp", "Input.h",
				"RenderAPI.cpp", "RenderAPI.h",
				"IRenderBackend.h",
				"Camera.cpp", "Camera.h",
				"Mesh.cpp", "Mesh.h",
			},
			Roots:  []string{"engine", "plugins"},
			Output: "collected_files.txt",
		},
		Dump: DumpConfig{
			Roots:  []string{"plugins"},
			Output: "vulkan_files.txt",
		},
		Tree: TreeConfig{
			Root:    ".",
			Exclude: []string{"build", ".git", ".github", ".vscode", "external"},
		},
	}
}

// LoadConfig decodes the TOML file at path over the defaults. Keys present in
// the file replace the default value; unknown keys are an error. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks output paths and glob patterns.
func (c *Config) Validate() error {
	if c.Collect.Output == "" {
		return fmt.Errorf("collect.output must be set")
	}
	if c.Dump.Output == "" {
		return fmt.Errorf("dump.output must be set")
	}
	for _, patterns := range [][]string{c.Collect.Exclude, c.Dump.Exclude, c.Dump.Include, c.Tree.Exclude} {
		if err := ignore.ValidatePatterns(patterns); err != nil {
			return err
		}
	}
	return nil
}
