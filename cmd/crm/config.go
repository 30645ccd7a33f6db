// Config loading for the crm CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/crm/internal/paths"
	"github.com/mesh-intelligence/crm/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDataDir   = "data_dir"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
	cfgKeyPageSize  = "default_page_size"

	defaultLogLevel  = "warn"
	defaultLogFormat = types.LogFormatText
	defaultPageSize  = 10
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# crm CLI configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Logging: debug, info, warn, error; text or json
log_level: warn
log_format: text

# Page size used by "crm list" when --size is not given
default_page_size: 10
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. CRM_-prefixed environment variables override
// file values.
func loadConfig(configDir string) (types.Config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return types.Config{}, system(fmt.Errorf("ensure config dir: %w", err))
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, system(fmt.Errorf("ensure default config: %w", err))
	}

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeyPageSize, defaultPageSize)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("CRM")
	for _, key := range []string{cfgKeyLogLevel, cfgKeyLogFormat, cfgKeyPageSize} {
		if err := v.BindEnv(key); err != nil {
			return types.Config{}, system(fmt.Errorf("bind env %s: %w", key, err))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, types.Invalid("crm.loadConfig", fmt.Errorf("read config: %w", err))
		}
	}

	cfg := types.Config{
		DataDir:   v.GetString(cfgKeyDataDir),
		LogLevel:  v.GetString(cfgKeyLogLevel),
		LogFormat: v.GetString(cfgKeyLogFormat),
		PageSize:  v.GetInt(cfgKeyPageSize),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, types.Invalid("crm.loadConfig", fmt.Errorf("%s: %w", filepath.Join(configDir, paths.ConfigFileName), err))
	}
	return cfg, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml
// already exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, paths.ConfigFileName)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
