package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir     = "data_dir"
	cfgKeyDataFile    = "data_file"
	cfgKeyLocale      = "locale"
	cfgKeyLogLevel    = "log_level"
	cfgKeyMetricsFile = "metrics_file"

	defaultLocale   = types.LocaleEnglish
	defaultLogLevel = "warn"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	DataDir     string `yaml:"data_dir,omitempty"`
	DataFile    string `yaml:"data_file,omitempty"`
	Locale      string `yaml:"locale"`
	LogLevel    string `yaml:"log_level"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// loadConfig reads config.yaml from configDir using Viper. A missing file is
// not an error; defaults apply. FRONTDESK_LOCALE and FRONTDESK_LOG_LEVEL
// override the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLocale, defaultLocale)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.BindEnv(cfgKeyLocale, "FRONTDESK_LOCALE"); err != nil {
		return nil, err
	}
	if err := v.BindEnv(cfgKeyLogLevel, "FRONTDESK_LOG_LEVEL"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with cfg if the file does not
// exist. An existing file is left alone.
func writeConfigIfMissing(configDir string, cfg configFile) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
