package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/pentis/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, generator.PieceSize, cfg.PieceSize)

	ext, err := cfg.Extent()
	require.NoError(t, err)
	assert.Equal(t, "10x20", ext.String())
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "pentis.yml")
	validConfig := `grid:
  width: 12
  height: 30
seed: 42
selector: bag
play:
  fall_speed: 2.5
  tick: 10ms
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(validConfig), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Grid.Width)
	assert.Equal(t, 30, cfg.Grid.Height)
	assert.Equal(t, uint64(42), cfg.ResolvedSeed())
	assert.Equal(t, "bag", cfg.Selector)
	assert.Equal(t, 2.5, cfg.Play.FallSpeed)
	assert.Equal(t, 10*time.Millisecond, cfg.Play.Tick)
	assert.Equal(t, "json", cfg.Log.Format)

	// Unset keys keep their defaults.
	assert.Equal(t, generator.PieceSize, cfg.PieceSize)
	assert.Equal(t, Default().Play.LockDelay, cfg.Playfield().LockDelay)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/pentis.yml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("grid: [width"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Grid.Width = 0 }, "grid must be positive"},
		{"piece too large", func(c *Config) { c.PieceSize = 9 }, "piece_size"},
		{"piece too small", func(c *Config) { c.PieceSize = 0 }, "piece_size"},
		{"unknown selector", func(c *Config) { c.Selector = "weighted" }, "invalid selector"},
		{"stopped clock", func(c *Config) { c.Play.FallSpeed = 0 }, "fall_speed"},
		{"negative delay", func(c *Config) { c.Play.LockDelay = -1 }, "delays"},
		{"zero tick", func(c *Config) { c.Play.Tick = 0 }, "tick"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Grid.Height = -1
	cfg.Selector = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid must be positive")
	assert.Contains(t, err.Error(), "invalid selector")
}

func TestNewGenerator(t *testing.T) {
	cfg := Default()
	cfg.Grid = GridConfig{Width: 12, Height: 30}

	a, err := cfg.NewGenerator(7)
	require.NoError(t, err)
	b, err := cfg.NewGenerator(7)
	require.NoError(t, err)
	assert.Equal(t, 18, a.Library().Len())

	for range 20 {
		pa, err := a.MakePiece()
		require.NoError(t, err)
		pb, err := b.MakePiece()
		require.NoError(t, err)
		assert.True(t, pa.SameCells(pb), "equal seeds must deal equal pieces")
	}

	cfg.Grid.Width = 0
	_, err = cfg.NewGenerator(7)
	assert.Error(t, err)
}
