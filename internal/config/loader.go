package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".repstat"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for repstat settings.
const envPrefix = "REPSTAT"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	dfl := Default()

	viperCfg.SetDefault("study.error", dfl.Study.Error)
	viperCfg.SetDefault("study.time_pcts", dfl.Study.TimePcts)
	viperCfg.SetDefault("study.format_pcts", dfl.Study.FormatPcts)
	viperCfg.SetDefault("study.io_types", dfl.Study.IoTypes)

	viperCfg.SetDefault("source.dir", dfl.Source.Dir)
	viperCfg.SetDefault("source.url", dfl.Source.URL)
	viperCfg.SetDefault("source.cache_size", dfl.Source.CacheSize)
	viperCfg.SetDefault("source.attempts", dfl.Source.Attempts)
	viperCfg.SetDefault("source.delay", dfl.Source.Delay)
	viperCfg.SetDefault("source.timeout", dfl.Source.Timeout)

	viperCfg.SetDefault("log.level", dfl.Log.Level)
	viperCfg.SetDefault("log.format", dfl.Log.Format)
}
