package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/noise"
	"github.com/san-kum/glyphgarden/internal/seed"
	"github.com/san-kum/glyphgarden/internal/theme"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS           = garden.DefaultFPS
	DefaultCellWidth     = 6
	DefaultCellHeight    = 12
	DefaultGlyphInterval = 1.5
	DefaultSnapshotDir   = ".glyphgarden"
	DefaultWindowWidth   = 1280
	DefaultWindowHeight  = 800
)

type Config struct {
	// Date overrides the calendar day the garden is seeded from (YYYY-MM-DD).
	Date string `yaml:"date,omitempty"`
	// Seed pins both random streams, ignoring the date.
	Seed          int64           `yaml:"seed,omitempty"`
	FPS           int             `yaml:"fps"`
	ReducedMotion bool            `yaml:"reduced_motion"`
	Noise         string          `yaml:"noise"`
	GlyphInterval float64         `yaml:"glyph_interval"`
	Cell          CellConfig      `yaml:"cell"`
	Window        WindowConfig    `yaml:"window"`
	Theme         ThemeConfig     `yaml:"theme"`
	Sections      []theme.Section `yaml:"sections,omitempty"`
	SnapshotDir   string          `yaml:"snapshot_dir"`
}

// CellConfig is the size of one terminal cell in world units.
type CellConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ThemeConfig struct {
	Chars   string   `yaml:"chars"`
	Colors  []string `yaml:"colors"`
	Density int      `yaml:"density"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:           DefaultFPS,
		Noise:         noise.DefaultBackend,
		GlyphInterval: DefaultGlyphInterval,
		Cell:          CellConfig{Width: DefaultCellWidth, Height: DefaultCellHeight},
		Window:        WindowConfig{Width: DefaultWindowWidth, Height: DefaultWindowHeight},
		Theme: ThemeConfig{
			Chars:   garden.DefaultChars,
			Colors:  append([]string(nil), garden.DefaultColors...),
			Density: garden.DefaultDensity,
		},
		SnapshotDir: DefaultSnapshotDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting the engine cannot run with.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.GlyphInterval <= 0 {
		return fmt.Errorf("glyph_interval must be positive, got %f", c.GlyphInterval)
	}
	if c.Cell.Width <= 0 || c.Cell.Height <= 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d", c.Cell.Width, c.Cell.Height)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Theme.Density < 0 {
		return fmt.Errorf("density must not be negative, got %d", c.Theme.Density)
	}
	if _, err := noise.New(c.Noise, 0); err != nil {
		return err
	}
	if c.Date != "" {
		if _, err := seed.ParseDay(c.Date); err != nil {
			return err
		}
	}
	if _, err := c.GardenTheme(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// Seeds resolves the random seeds: a pinned seed wins over a date, which
// wins over today.
func (c *Config) Seeds() (seed.Seeds, seed.Day, error) {
	day := seed.Today()
	if c.Date != "" {
		d, err := seed.ParseDay(c.Date)
		if err != nil {
			return seed.Seeds{}, seed.Day{}, err
		}
		day = d
	}
	if c.Seed != 0 {
		return seed.Fixed(c.Seed), day, nil
	}
	return day.Seeds(), day, nil
}

func (c *Config) GardenTheme() (*garden.Theme, error) {
	return garden.NewTheme(c.Theme.Chars, c.Theme.Colors, c.Theme.Density)
}

// EngineOptions builds engine options for a viewport of w by h world units.
func (c *Config) EngineOptions(w, h float64) (garden.Options, error) {
	seeds, _, err := c.Seeds()
	if err != nil {
		return garden.Options{}, err
	}
	th, err := c.GardenTheme()
	if err != nil {
		return garden.Options{}, err
	}
	return garden.Options{
		Seeds:         seeds,
		Noise:         c.Noise,
		Width:         w,
		Height:        h,
		Theme:         th,
		ReducedMotion: c.ReducedMotion,
		FPS:           c.FPS,
		GlyphInterval: time.Duration(c.GlyphInterval * float64(time.Second)),
	}, nil
}

// AllSections returns the configured sections, or the built-in ones when
// none are configured.
func (c *Config) AllSections() []theme.Section {
	if len(c.Sections) > 0 {
		return c.Sections
	}
	return BuiltinSections()
}
