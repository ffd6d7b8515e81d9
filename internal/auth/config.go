package auth

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// AuthConfig holds authentication configuration. QualityFlow validates
// bearer tokens issued by the identity provider; it does not issue them.
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	Issuer          string `yaml:"issuer" mapstructure:"issuer"`
	RequireIssuer   bool   `yaml:"require_issuer" mapstructure:"require_issuer"`
	ClockSkewMinute int    `yaml:"clock_skew_minutes" mapstructure:"clock_skew_minutes"`
}

// LoadAuthConfig loads and validates authentication configuration
func LoadAuthConfig(configPath string) (*AuthConfig, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("auth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetDefault("require_issuer", false)
	v.SetDefault("clock_skew_minutes", 1)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if _, statErr := os.Stat(configPath); configPath == "" || statErr == nil {
				return nil, fmt.Errorf("error reading auth config file: %w", err)
			}
		}
	}

	var config AuthConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling auth config: %w", err)
	}

	// Environment always wins for the secret
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.JWTSecret = jwtSecret
	}

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required (auth.yaml or JWT_SECRET)")
	}

	return &config, nil
}
