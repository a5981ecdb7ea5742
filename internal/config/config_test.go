package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 30, cfg.Scene.FieldSize)
	assert.Equal(t, float32(140), cfg.Scene.BlockSize)
	assert.Equal(t, "#085f63", cfg.Scene.Colors.Background)
	assert.Equal(t, float32(10000), cfg.Input.PointerDivisor)
	assert.Equal(t, float32(40), cfg.Input.TiltDivisor)
}

func TestDefaultModelIsBundled(t *testing.T) {
	cfg := DefaultConfig()
	_, err := os.Stat(filepath.Join("..", "..", cfg.ModelPath))
	assert.NoError(t, err)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nao-existe.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyline.yaml")
	data := []byte("scene:\n  field_size: 4\n  colors:\n    building: \"#ff0000\"\nseed: 7\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Scene.FieldSize)
	assert.Equal(t, "#ff0000", cfg.Scene.Colors.Building)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, float32(140), cfg.Scene.BlockSize)
	assert.Equal(t, "#49beb7", cfg.Scene.Colors.Light)
}

func TestLoadRejectsInvalidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scene:\n  colors:\n    fog: azul\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"campo vazio", func(c *Config) { c.Scene.FieldSize = 0 }},
		{"bloco negativo", func(c *Config) { c.Scene.BlockSize = -1 }},
		{"sem protótipos", func(c *Config) { c.Scene.Prototypes = 0 }},
		{"stagger zero", func(c *Config) { c.Animation.RiseStagger = 0 }},
		{"divisor zero", func(c *Config) { c.Input.TiltDivisor = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyline.yaml")
	cfg := DefaultConfig()
	cfg.Window.Fullscreen = true
	cfg.Input.TiltBridge.Enabled = true

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
