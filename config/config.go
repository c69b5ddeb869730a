package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Firebase  FirebaseConfig
	ImageHost ImageHostConfig
	Security  SecurityConfig
	Scheduler SchedulerConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port string
}

// DatabaseConfig selects the backing store: URL (PostgreSQL) wins over Path
// (sqlite) when both are set.
type DatabaseConfig struct {
	Path string
	URL  string
}

// FirebaseConfig holds auth verification settings. Credentials themselves
// stay in the FIREBASE_SERVICE_ACCOUNT* environment variables.
type FirebaseConfig struct {
	ProjectID string `mapstructure:"project_id"`
}

// ImageHostConfig holds the external image hosting relay settings.
type ImageHostConfig struct {
	Endpoint string
	APIKey   string `mapstructure:"api_key"`
}

// SecurityConfig holds the at-rest encryption key for stored API keys.
type SecurityConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

// SchedulerConfig toggles the nightly summary snapshot job.
type SchedulerConfig struct {
	Enabled bool
}

// CORSConfig holds the allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// KEEPLY_, e.g. KEEPLY_SERVER_PORT.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("database.path", "./keeply.db")
	v.SetDefault("database.url", "")
	v.SetDefault("firebase.project_id", "")
	v.SetDefault("imagehost.endpoint", "https://api.imgbb.com/1/upload")
	v.SetDefault("imagehost.api_key", "")
	v.SetDefault("security.encryption_key", "")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:8081", // Expo dev server
		"http://localhost:19006",
	})

	v.SetConfigType("toml")
	v.SetConfigName("keeply")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/keeply")

	v.SetEnvPrefix("KEEPLY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
