package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime settings the server reads at startup.
type Config struct {
	Port             int      `mapstructure:"port"`
	FirestoreProject string   `mapstructure:"firestore_project"`
	CredentialsFile  string   `mapstructure:"credentials_file"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from TASTEBOOK_* environment variables and an
// optional tastebook.yaml in the working directory. An empty
// firestore_project selects the in-memory store.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("tastebook")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("firestore_project", "")
	v.SetDefault("credentials_file", "")
	v.SetDefault("allowed_origins", []string{"*"})

	v.SetConfigName("tastebook")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
