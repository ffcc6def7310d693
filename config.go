package xbee

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by LoadConfig when path does not
// exist.
var ErrConfigNotFound = errors.New("xbee: config file not found")

// ErrConfigInvalid is returned by LoadConfig when path exists but does
// not parse as the Config YAML shape.
var ErrConfigInvalid = errors.New("xbee: config file is invalid")

// Config describes one radio link: which device to open, at what
// baud, how big the receive plumbing should be, an optional reset
// line, and how verbosely to log. Defaults are applied first, then
// any YAML file, then any flags bound by RegisterFlags — flags always
// win, the way the teacher's cmd/direwolf layers flags over its
// config file.
type Config struct {
	Device       string `yaml:"device"`
	Baud         int    `yaml:"baud"`
	RingCapacity int    `yaml:"ring_capacity"`
	OutCapacity  int    `yaml:"out_capacity"`
	ResetChip    string `yaml:"reset_chip"`
	ResetLine    int    `yaml:"reset_line"`
	LogLevel     string `yaml:"log_level"`
}

// DefaultConfig returns the baseline Config applied before any YAML
// file or flag overrides.
func DefaultConfig() Config {
	return Config{
		Device:       "/dev/ttyUSB0",
		Baud:         9600,
		RingCapacity: 512,
		OutCapacity:  512,
		LogLevel:     "info",
	}
}

// LoadConfig reads and parses a YAML config file over DefaultConfig.
// Fields the file doesn't mention keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %s", ErrConfigInvalid, path, err)
	}

	return cfg, nil
}

// RegisterFlags binds fs's flags to cfg's fields so that parsing fs
// layers CLI overrides on top of file-loaded defaults.
func (cfg *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfg.Device, "device", cfg.Device, "serial device path")
	fs.IntVar(&cfg.Baud, "baud", cfg.Baud, "serial baud rate")
	fs.IntVar(&cfg.RingCapacity, "ring-capacity", cfg.RingCapacity, "receive ring buffer size in bytes")
	fs.IntVar(&cfg.OutCapacity, "out-capacity", cfg.OutCapacity, "decode output buffer size in bytes")
	fs.StringVar(&cfg.ResetChip, "reset-chip", cfg.ResetChip, "gpiochip name for the optional reset line")
	fs.IntVar(&cfg.ResetLine, "reset-line", cfg.ResetLine, "gpio line offset for the optional reset line")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn, or error")
}
