package settings

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 3000
)

type Arguments struct {
	// the host name or IP address to listen on
	Host string `yaml:"host"`

	// the port number to listen on
	Port int `yaml:"port"`

	// Dataset file (.json or .bson). Empty uses the embedded dataset.
	DataFile string `yaml:"data_file"`

	// Directory for log files; empty logs to stdout only
	LogDir string `yaml:"log_dir"`

	ConfigFile string `yaml:"-"`

	// Strongly verbose logging
	Verbose bool `yaml:"verbose"`

	Debug         bool `yaml:"debug"`
	PrintToScreen bool `yaml:"print_to_screen"`

	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	Version string `yaml:"-"`
}

var (
	instance *Arguments
	once     sync.Once
)

// GetSettings returns the process-wide settings, created with defaults on first use.
func GetSettings() *Arguments {
	once.Do(func() {
		instance = DefaultArguments()
	})
	return instance
}

func DefaultArguments() *Arguments {
	return &Arguments{
		Host:            DefaultHost,
		Port:            DefaultPort,
		Verbose:         true,
		PrintToScreen:   true,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Version:         "0.1.0",
	}
}

// LoadConfigFile overlays the YAML file at path onto args. Keys missing from
// the file leave the current values untouched.
func LoadConfigFile(path string, args *Arguments) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	if err := yaml.Unmarshal(raw, args); err != nil {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return nil
}

// Validate validates the arguments and returns an error if invalid
func Validate(args *Arguments) error {
	// Validate port range
	if args.Port < 1 || args.Port > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", args.Port)
	}

	if args.Host == "" {
		return fmt.Errorf("host must not be empty")
	}

	// If a data file is specified, check that it exists and is a regular file
	if args.DataFile != "" {
		info, err := os.Stat(args.DataFile)
		if err != nil {
			return fmt.Errorf("could not access data file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("data file path is a directory: %s", args.DataFile)
		}
	}

	if args.LogDir != "" {
		if err := os.MkdirAll(args.LogDir, 0755); err != nil {
			return fmt.Errorf("could not create log directory: %w", err)
		}
	}

	for name, d := range map[string]time.Duration{
		"read timeout":     args.ReadTimeout,
		"write timeout":    args.WriteTimeout,
		"shutdown timeout": args.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("invalid %s: %s (must not be negative)", name, d)
		}
	}

	return nil
}
