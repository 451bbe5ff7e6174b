package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration. The password is stored in the
// user-only config file so scripted sessions survive restarts; unset it and
// export HMC_PASSWORD instead when that is not acceptable.
type Config struct {
	Endpoint          string `yaml:"endpoint,omitempty"`
	User              string `yaml:"user,omitempty"`
	Password          string `yaml:"password,omitempty"`
	Output            string `yaml:"output,omitempty"`
	SkipSSLValidation bool   `yaml:"skip_ssl_validation,omitempty"`
}

func loadConfig() *Config {
	return &Config{
		Endpoint:          viper.GetString("endpoint"),
		User:              viper.GetString("user"),
		Password:          viper.GetString("password"),
		Output:            viper.GetString("output"),
		SkipSSLValidation: viper.GetBool("skip_ssl_validation"),
	}
}

func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".hmcctl")

		err = os.MkdirAll(configDir, 0o700)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
