// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"path/filepath"
	"strings"

	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/filesystem"
	"github.com/grundrisse/grundrisse/where"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// DotEnvFiles lists the .env files consulted before the environment is bound, in priority order.
func DotEnvFiles() []string {
	return []string{
		".env",
		filepath.Join(where.Config(), ".env"),
	}
}

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	viper.SetConfigName(constant.Grundrisse)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	// Synchronize environment variable bindings.
	viper.SetEnvPrefix(constant.Grundrisse)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	// Initialize factory default values.
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// loadDotEnv populates the process environment from the first-found .env files.
// Variables that are already set are never overridden.
func loadDotEnv() error {
	for _, path := range DotEnvFiles() {
		exists, err := filesystem.API().Exists(path)
		if err != nil || !exists {
			continue
		}

		f, err := filesystem.API().Open(path)
		if err != nil {
			return err
		}

		env, err := godotenv.Parse(f)
		_ = f.Close()
		if err != nil {
			return err
		}

		for k, v := range env {
			if _, set := lookupEnv(k); !set {
				if err := setEnv(k, v); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
