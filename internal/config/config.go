package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/plus3/pentis/generator"
	"github.com/plus3/pentis/grid"
	"github.com/plus3/pentis/piece"
	"github.com/plus3/pentis/playfield"
	"gopkg.in/yaml.v3"
)

// GridConfig sets the playfield size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayConfig sets frame timing. Speeds and delays are in seconds.
type PlayConfig struct {
	FallSpeed  float64       `yaml:"fall_speed"`
	LockDelay  float64       `yaml:"lock_delay"`
	SpawnDelay float64       `yaml:"spawn_delay"`
	Tick       time.Duration `yaml:"tick"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Config represents a pentis.yml file.
type Config struct {
	Grid      GridConfig `yaml:"grid"`
	PieceSize int        `yaml:"piece_size"`
	Seed      uint64     `yaml:"seed,omitempty"`     // 0 picks a random seed
	Selector  string     `yaml:"selector,omitempty"` // "uniform" or "bag"
	Play      PlayConfig `yaml:"play"`
	Log       LogConfig  `yaml:"log"`
}

func Default() *Config {
	play := playfield.DefaultConfig()
	return &Config{
		Grid:      GridConfig{Width: 10, Height: 20},
		PieceSize: generator.PieceSize,
		Selector:  "uniform",
		Play: PlayConfig{
			FallSpeed:  play.FallSpeed,
			LockDelay:  play.LockDelay,
			SpawnDelay: play.SpawnDelay,
			Tick:       16 * time.Millisecond,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path and overlays it on Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate performs strict validation on the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.PieceSize < 1 || c.PieceSize > piece.MaxShapeCells {
		errs = append(errs, fmt.Errorf("piece_size must be between 1 and %d, got %d", piece.MaxShapeCells, c.PieceSize))
	}
	if c.Selector != "uniform" && c.Selector != "bag" {
		errs = append(errs, fmt.Errorf("invalid selector: %s (must be 'uniform' or 'bag')", c.Selector))
	}
	if c.Play.FallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("play.fall_speed must be > 0, got %g", c.Play.FallSpeed))
	}
	if c.Play.LockDelay < 0 || c.Play.SpawnDelay < 0 {
		errs = append(errs, errors.New("play delays must be >= 0"))
	}
	if c.Play.Tick <= 0 {
		errs = append(errs, fmt.Errorf("play.tick must be > 0, got %s", c.Play.Tick))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (c *Config) Extent() (grid.Extent, error) {
	return grid.NewExtent(c.Grid.Width, c.Grid.Height)
}

// Playfield returns the frame timing for playfield.NewGame.
func (c *Config) Playfield() playfield.Config {
	return playfield.Config{
		FallSpeed:  c.Play.FallSpeed,
		LockDelay:  c.Play.LockDelay,
		SpawnDelay: c.Play.SpawnDelay,
	}
}

// ResolvedSeed returns Seed, or a random one when Seed is 0.
func (c *Config) ResolvedSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return rand.Uint64()
}

// NewGenerator returns a generator for the configured grid with its library
// loaded, drawing shapes from a source seeded with seed.
func (c *Config) NewGenerator(seed uint64) (*generator.Generator, error) {
	ext, err := c.Extent()
	if err != nil {
		return nil, err
	}

	var sel generator.Selector = generator.NewUniform(generator.NewRand(seed))
	if c.Selector == "bag" {
		sel = generator.NewBag(generator.NewRand(seed))
	}

	gen := generator.New(ext, generator.WithSelector(sel))
	if err := gen.CreatePieceLibrary(c.PieceSize); err != nil {
		return nil, fmt.Errorf("piece library: %w", err)
	}
	return gen, nil
}
