package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"MisPaint/internal/paint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOptional_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	styles, err := cfg.Styles()
	require.NoError(t, err)
	assert.Equal(t, paint.DefaultStyles(), styles)
	assert.False(t, cfg.Debug())
}

func TestLoadOptional_OverridesKeepDefaults(t *testing.T) {
	assert := assert.New(t)
	path := writeConfig(t, `
canvas:
  width: 640
brush:
  color: tomato
  opacity: 50
share:
  port: 9000
log:
  level: DEBUG
`)
	cfg, err := LoadOptional(path)
	require.NoError(t, err)

	assert.Equal(640, cfg.Canvas.Width)
	assert.Equal(700, cfg.Canvas.Height)
	assert.Equal(9000, cfg.Share.Port)
	assert.True(cfg.Share.Advertise)
	assert.True(cfg.Debug())

	styles, err := cfg.Styles()
	require.NoError(t, err)
	assert.Equal(color.NRGBA{R: 0xff, G: 0x63, B: 0x47, A: 0x80}, styles.Brush.Color)
	assert.Equal(2.0, styles.Brush.Width)
	assert.Equal(paint.DefaultEraser, styles.Eraser)
}

func TestLoadOptional_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"brush color":  "brush:\n  color: notacolor\n",
		"eraser width": "eraser:\n  width: 0\n",
		"opacity":      "brush:\n  opacity: 120\n",
		"canvas":       "canvas:\n  height: -1\n",
		"port":         "share:\n  port: 70000\n",
		"log level":    "log:\n  level: loud\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadOptional(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadOptional_Malformed(t *testing.T) {
	_, err := LoadOptional(writeConfig(t, "canvas: [1, 2\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}
