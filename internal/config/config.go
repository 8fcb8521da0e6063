// Package config resolves mbtestgen settings from defaults, an optional
// config file, MBTESTGEN_* environment variables, and command-line flags,
// in ascending priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/leoschwarz/mbtestgen/pkg/buildinfo"
)

// DefaultArchiveURL is the published archive of per-entity MBID lists.
const DefaultArchiveURL = "https://leoschwarz.com/git-assets/musicbrainz_rust/mbids.tar.gz"

// Config holds the settings the generate and extract commands run with.
type Config struct {
	Num        int      `mapstructure:"num"`
	Output     string   `mapstructure:"output"`
	ArchiveURL string   `mapstructure:"archive_url"`
	UserAgent  string   `mapstructure:"user_agent"`
	Entities   []string `mapstructure:"entities"`
	Seed       int64    `mapstructure:"seed"`
}

// Load builds the effective configuration. flags may be nil when no command
// flags apply.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("num", 25)
	v.SetDefault("output", "lookup_gen_test.go")
	v.SetDefault("archive_url", DefaultArchiveURL)
	v.SetDefault("user_agent", fmt.Sprintf("mbtestgen/%s (mail@leoschwarz.com)", buildinfo.BinaryVersion))
	v.SetDefault("seed", int64(0))

	v.SetConfigName(".mbtestgen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := Home(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("MBTESTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Home returns the mbtestgen home directory, honoring MBTESTGEN_HOME.
func Home() (string, error) {
	if home := os.Getenv("MBTESTGEN_HOME"); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mbtestgen"), nil
}

// EnsureHome creates the home directory if it does not exist.
func EnsureHome() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(home, 0o750); err != nil {
		return "", fmt.Errorf("failed to create home directory: %w", err)
	}
	return home, nil
}

// CacheDir returns the identifier-list cache directory path without creating
// it; the fetcher treats its absence as the download trigger.
func CacheDir() (string, error) {
	home, err := EnsureHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "mbids"), nil
}
