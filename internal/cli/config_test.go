package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/platmap/platmap/pkg/graph"
	"github.com/platmap/platmap/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[layout]
mode = "venn"
width = 1600
seed = 7
bridge_threshold = 5

[colors]
source = "#112233"
"Data Lake" = "#445566"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Layout.Mode != graph.ModeVenn {
		t.Errorf("mode = %q, want venn", cfg.Layout.Mode)
	}
	if cfg.Layout.Width != 1600 {
		t.Errorf("width = %g, want 1600", cfg.Layout.Width)
	}
	if cfg.Layout.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Layout.Seed)
	}
	if cfg.Colors["Data Lake"] != "#445566" {
		t.Errorf("platform color = %q", cfg.Colors["Data Lake"])
	}
}

func TestLoadConfig_MissingDefaultIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Layout.Mode != "" {
		t.Error("missing default config should yield an empty config")
	}
}

func TestLoadConfig_MissingExplicitFails(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing config path should error")
	}
}

func TestLoadConfig_MalformedFails(t *testing.T) {
	path := writeConfig(t, "[layout\nmode =")
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed TOML should error")
	}
}

func TestConfig_ApplyKeepsFlagValues(t *testing.T) {
	cfg := &Config{
		Layout: LayoutConfig{Mode: graph.ModeVenn, Width: 1600, Seed: 7},
		Colors: map[string]string{"source": "#112233"},
	}

	// Flag already set: config must not override.
	opts := pipeline.Options{Mode: graph.ModeColumn}
	cfg.Apply(&opts)

	if opts.Mode != graph.ModeColumn {
		t.Errorf("mode = %q, flag value must win over config", opts.Mode)
	}
	if opts.Width != 1600 {
		t.Errorf("width = %g, unset option should take config value", opts.Width)
	}
	if opts.Seed != 7 {
		t.Errorf("seed = %d, want 7", opts.Seed)
	}
	if opts.Colors.Resolve("source") != "#112233" {
		t.Error("colors not applied")
	}
}
