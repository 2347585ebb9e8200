package qsim

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

/*
Config holds the settings of the shot runner and the CLI. Seed 0 means
unseeded: every shot then draws from the system source.
*/
type Config struct {
	Qubits      int
	Shots       int
	Seed        uint64
	Workers     int
	MaxFailures int
	ShotTimeout time.Duration
	LogLevel    string
}

func NewConfig() *Config {
	return &Config{
		Qubits:      1,
		Shots:       1024,
		Seed:        0,
		Workers:     4,
		MaxFailures: 3,
		ShotTimeout: 10 * time.Second,
		LogLevel:    "info",
	}
}

// SetDefaults registers the NewConfig values on v.
func SetDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault("qubits", d.Qubits)
	v.SetDefault("shots", d.Shots)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("max_failures", d.MaxFailures)
	v.SetDefault("shot_timeout", d.ShotTimeout)
	v.SetDefault("log_level", d.LogLevel)
}

/*
LoadConfig reads a Config from v. Environment variables prefixed with QSIM_
override file values, so QSIM_SHOTS=4096 sets shots. When path is not empty
it is read as the config file.
*/
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("qsim")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Qubits:      v.GetInt("qubits"),
		Shots:       v.GetInt("shots"),
		Seed:        v.GetUint64("seed"),
		Workers:     v.GetInt("workers"),
		MaxFailures: v.GetInt("max_failures"),
		ShotTimeout: v.GetDuration("shot_timeout"),
		LogLevel:    v.GetString("log_level"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch {
	case c.Qubits <= 0:
		return fmt.Errorf("%w: qubits must be positive, got %d", ErrInvalidArgument, c.Qubits)
	case c.Shots <= 0:
		return fmt.Errorf("%w: shots must be positive, got %d", ErrInvalidArgument, c.Shots)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidArgument, c.Workers)
	case c.MaxFailures < 0:
		return fmt.Errorf("%w: max_failures must not be negative, got %d", ErrInvalidArgument, c.MaxFailures)
	}
	return nil
}
