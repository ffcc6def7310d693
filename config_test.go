package xbee

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "/dev/ttyUSB0", cfg.Device)
	assert.Equal(t, 9600, cfg.Baud)
	assert.Equal(t, "info", cfg.LogLevel)
}

func Test_LoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func Test_LoadConfig_OverridesDefaultsPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbee.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: /dev/ttyUSB3\nbaud: 19200\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB3", cfg.Device)
	assert.Equal(t, 19200, cfg.Baud)
	assert.Equal(t, "info", cfg.LogLevel, "fields absent from the file should keep their default")
}

func Test_LoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbee.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func Test_Config_RegisterFlags_FlagsOverrideConfig(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"--device=/dev/ttyACM0", "--baud=115200"}))

	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
}
