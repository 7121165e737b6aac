package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inksynth.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "127.0.0.1", c.OSC.Host)
	assert.Equal(t, 57120, c.OSC.Port)
	assert.Equal(t, "/shape", c.OSC.Address)
	assert.Equal(t, 1000, c.Canvas.Width)
	assert.Equal(t, 700, c.Canvas.Height)
	assert.Equal(t, 20, c.Canvas.MaxHistory)
	assert.True(t, c.HintEnabled())
	assert.Empty(t, c.Feed.Listen)
	assert.NoError(t, c.Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[osc]
host = "192.168.1.20"
port = 9000

[canvas]
width = 640
hint = false

[feed]
listen = ":8765"
advertise = true
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.20", c.OSC.Host)
	assert.Equal(t, 9000, c.OSC.Port)
	assert.Equal(t, "/shape", c.OSC.Address)
	assert.Equal(t, 640, c.Canvas.Width)
	assert.Equal(t, 700, c.Canvas.Height)
	assert.False(t, c.HintEnabled())
	assert.Equal(t, ":8765", c.Feed.Listen)
	assert.True(t, c.Feed.Advertise)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[osc\nport = 1"},
		{"unknown key", "[osc]\nvolume = 11\n"},
		{"port range", "[osc]\nport = 70000\n"},
		{"address", "[osc]\naddress = \"shape\"\n"},
		{"negative size", "[canvas]\nwidth = -5\n"},
		{"advertise without listen", "[feed]\nadvertise = true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
