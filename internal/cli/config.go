package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/platmap/platmap/pkg/errors"
	"github.com/platmap/platmap/pkg/pipeline"
	"github.com/platmap/platmap/pkg/style"
)

// Config is the on-disk TOML configuration. All fields are optional; unset
// values keep the pipeline defaults, and command-line flags win over the
// file.
//
//	[layout]
//	mode = "venn"
//	width = 1600
//	height = 900
//	seed = 7
//	bridge_threshold = 5
//	sub_columns = 3
//
//	[colors]
//	source = "#5470c6"
//	"Data Lake" = "#3ba272"
type Config struct {
	Layout LayoutConfig      `toml:"layout"`
	Colors map[string]string `toml:"colors"`
}

// LayoutConfig mirrors the pipeline's build options.
type LayoutConfig struct {
	Mode            string  `toml:"mode"`
	Width           float64 `toml:"width"`
	Height          float64 `toml:"height"`
	Seed            uint64  `toml:"seed"`
	BridgeThreshold int     `toml:"bridge_threshold"`
	SubColumns      int     `toml:"sub_columns"`
}

// loadConfig reads the config file at path. An empty path falls back to
// the default location, where a missing file yields an empty config rather
// than an error; an explicit path must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return &cfg, nil
}

// defaultConfigPath returns the XDG config location
// (~/.config/platmap/config.toml).
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// Apply copies the config's set fields onto opts. Zero values are left
// alone so flags and pipeline defaults still apply.
func (c *Config) Apply(opts *pipeline.Options) {
	if c.Layout.Mode != "" && opts.Mode == "" {
		opts.Mode = c.Layout.Mode
	}
	if c.Layout.Width != 0 && opts.Width == 0 {
		opts.Width = c.Layout.Width
	}
	if c.Layout.Height != 0 && opts.Height == 0 {
		opts.Height = c.Layout.Height
	}
	if c.Layout.Seed != 0 && opts.Seed == 0 {
		opts.Seed = c.Layout.Seed
	}
	if c.Layout.BridgeThreshold != 0 && opts.BridgeThreshold == 0 {
		opts.BridgeThreshold = c.Layout.BridgeThreshold
	}
	if c.Layout.SubColumns != 0 && opts.SubColumns == 0 {
		opts.SubColumns = c.Layout.SubColumns
	}
	if len(c.Colors) > 0 && opts.Colors == nil {
		opts.Colors = style.ColorMap(c.Colors)
	}
}
