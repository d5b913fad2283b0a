// Package config loads the settings of the assistant and the service from an optional YAML file,
// an optional .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"gitlab.com/dirk.krummacker/address-book/internal/logger"
)

const (
	// Dir is the directory name under XDG_CONFIG_HOME.
	Dir = "address-book"
	// File is the config file name.
	File = "config.yml"
)

// Config holds all settings. The zero value is not usable; start from Default.
type Config struct {
	Port       string         `yaml:"port"`
	GinLogging bool           `yaml:"gin_logging"`
	Log        logger.Options `yaml:"log"`
	Seed       Database       `yaml:"seed"`
}

// Database holds the connection parameters of the MySQL database contacts are imported from.
type Database struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Name     string `yaml:"name"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:       "8080",
		GinLogging: true,
		Seed:       Database{Name: "test"},
	}
}

// Path returns the default path of the config file. Respects XDG_CONFIG_HOME, defaults to
// ~/.config/address-book/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, Dir, File)
}

// Load reads the config file at path (the default path if empty), then .env in the working
// directory, then the environment. Missing files are not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = Path()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	// Variables already set in the environment win over .env.
	_ = godotenv.Load()

	overrideFromEnv(cfg)
	return cfg, nil
}

// overrideFromEnv applies the environment variables that are set.
func overrideFromEnv(cfg *Config) {
	setFromEnv(&cfg.Port, "PORT")
	if v, ok := os.LookupEnv("GIN_LOGGING"); ok {
		cfg.GinLogging = !strings.EqualFold(v, "off")
	}
	setFromEnv(&cfg.Log.Level, "LOG_LEVEL")
	setFromEnv(&cfg.Log.Format, "LOG_FORMAT")
	setFromEnv(&cfg.Log.File, "LOG_FILE")
	setFromEnv(&cfg.Seed.User, "DBUSER")
	setFromEnv(&cfg.Seed.Password, "DBPWD")
	setFromEnv(&cfg.Seed.Host, "DBHOST")
	setFromEnv(&cfg.Seed.Name, "DBNAME")
}

func setFromEnv(field *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*field = v
	}
}

// DSN returns the MySQL data source name, or "" when no host is configured.
func (d Database) DSN() string {
	if d.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Name)
}
