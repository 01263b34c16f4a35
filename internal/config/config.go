// Package config loads the CLI settings from defaults, an optional golurk.json file and
// GOLURK_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
	// Graylog is a host:port receiving GELF over UDP, off when empty
	Graylog string `mapstructure:"graylog"`
}

type ReplayConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Driver is sqlite or postgres
	Driver string `mapstructure:"driver"`
	// Path is the sqlite file, DSN the postgres connection string
	Path string `mapstructure:"path"`
	DSN  string `mapstructure:"dsn"`
}

type BattleConfig struct {
	Format     string `mapstructure:"format"`
	SeedFamily string `mapstructure:"seedFamily"`
}

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Replay ReplayConfig `mapstructure:"replay"`
	Battle BattleConfig `mapstructure:"battle"`
	// DataDir holds optional species.csv and moves.json overrides
	DataDir string `mapstructure:"dataDir"`
	// TeamsFile is where saved teams live
	TeamsFile string        `mapstructure:"teamsFile"`
	Metrics   MetricsConfig `mapstructure:"metrics"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// File receives the exported metrics, stderr when empty
	File     string        `mapstructure:"file"`
	Interval time.Duration `mapstructure:"interval"`
}

func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	return filepath.Join(configDir, "golurk")
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", filepath.Join(configDir, "logs"))
	v.SetDefault("log.file", "golurk")
	v.SetDefault("log.console", true)
	v.SetDefault("log.graylog", "")

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.driver", "sqlite")
	v.SetDefault("replay.path", filepath.Join(configDir, "replays.db"))
	v.SetDefault("replay.dsn", "")

	v.SetDefault("battle.format", "gen9customgame")
	v.SetDefault("battle.seedFamily", "sodium")

	v.SetDefault("dataDir", "")
	v.SetDefault("teamsFile", filepath.Join(configDir, "saves", "teams.json"))
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.file", "")
	v.SetDefault("metrics.interval", 30*time.Second)
}

// Load reads the configuration. An empty path searches the default config dir and the working
// directory for golurk.json; a missing file there is not an error, a missing explicit path is.
// Flags that were set on the command line win over everything else; their names are config keys.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	configDir := DefaultConfigDir()
	setDefaults(v, configDir)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	v.SetEnvPrefix("GOLURK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("golurk")
		v.SetConfigType("json")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
