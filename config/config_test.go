package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainmap/lib/logger"
)

func TestParse(t *testing.T) {
	src := `# table tunables
capacity 64
load-factor 0.5
shards 8
LogLevel debug
logformat json
loggrowth no
`
	p, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 64, p.Capacity)
	assert.Equal(t, 0.5, p.LoadFactor)
	assert.Equal(t, 8, p.Shards)
	assert.Equal(t, "debug", p.LogLevel)
	assert.Equal(t, "json", p.LogFormat)
	assert.False(t, p.LogGrowth)
	assert.Equal(t, "", p.LogFile)
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestParseBadNumber(t *testing.T) {
	_, err := Parse(strings.NewReader("capacity lots\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config capacity")

	_, err = Parse(strings.NewReader("load-factor high\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config load-factor")
}

func TestSetupConfigProperties(t *testing.T) {
	defer func() {
		Properties = Default()
		logger.Setup(Properties.LoggerSettings())
	}()
	filename := filepath.Join(t.TempDir(), "chainmap.conf")
	require.NoError(t, os.WriteFile(filename, []byte("capacity 32\nloglevel warn\n"), 0644))

	SetupConfigProperties(filename)
	assert.Equal(t, 32, Properties.Capacity)
	assert.Equal(t, "warn", Properties.LoggerSettings().Level)

	require.Panics(t, func() {
		SetupConfigProperties(filepath.Join(t.TempDir(), "missing.conf"))
	})
}
