package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Storage   StorageConfig
	JWT       JWTConfig
	Razorpay  RazorpayConfig
	Artifacts ArtifactsConfig
	Bootstrap BootstrapConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
	Environment  string
}

// IsProduction reports whether unexpected error details must be hidden from clients.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// StorageConfig selects the persistence backend ("mongodb" or "memory").
type StorageConfig struct {
	Driver string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// Expiry returns the token lifetime.
func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiresIn) * time.Second
}

// RazorpayConfig holds payment gateway credentials
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
	MockAPI   bool
}

// ArtifactsConfig controls where rendered ticket images live and how they are served
type ArtifactsConfig struct {
	Dir           string
	URLPrefix     string
	RenderTimeout time.Duration
}

// BootstrapConfig is only read by the provisioning command.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

// LogConfig holds logger settings. File enables a rotating file sink.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	JSON       bool
}

// envBindings maps config keys to the conventional environment names used in deployments.
var envBindings = map[string]string{
	"Server.Port":             "PORT",
	"Server.Environment":      "APP_ENV",
	"MongoDB.URI":             "MONGODB_URI",
	"MongoDB.Database":        "MONGODB_DATABASE",
	"Storage.Driver":          "STORAGE_DRIVER",
	"JWT.Secret":              "JWT_SECRET",
	"JWT.ExpiresIn":           "JWT_EXPIRES_IN",
	"Razorpay.KeyID":          "RAZORPAY_KEY_ID",
	"Razorpay.KeySecret":      "RAZORPAY_KEY_SECRET",
	"Razorpay.Currency":       "RAZORPAY_CURRENCY",
	"Razorpay.MockAPI":        "RAZORPAY_MOCK_API",
	"Artifacts.Dir":           "TICKETS_DIR",
	"Bootstrap.AdminUsername": "ADMIN_USERNAME",
	"Bootstrap.AdminPassword": "ADMIN_PASSWORD",
	"Log.Level":               "LOG_LEVEL",
	"Log.File":                "LOG_FILE",
	"Log.JSON":                "LOG_JSON",
}

// Load loads configuration from a .env file, config files and environment variables.
// path is an extra directory searched for config.yaml.
func Load(path string) (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "5000")
	v.SetDefault("Server.AllowedHosts", []string{"*"})
	v.SetDefault("Server.Environment", "development")
	v.SetDefault("MongoDB.URI", "mongodb://127.0.0.1:27017")
	v.SetDefault("MongoDB.Database", "lotteryDB")
	v.SetDefault("MongoDB.ConnectTimeout", 10*time.Second)
	v.SetDefault("Storage.Driver", "mongodb")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 1 day
	v.SetDefault("Razorpay.Currency", "INR")
	v.SetDefault("Razorpay.MockAPI", false)
	v.SetDefault("Artifacts.Dir", "./tickets")
	v.SetDefault("Artifacts.URLPrefix", "/tickets")
	v.SetDefault("Artifacts.RenderTimeout", 30*time.Second)
	v.SetDefault("Log.Level", "info")
	v.SetDefault("Log.MaxSizeMB", 50)
	v.SetDefault("Log.MaxBackups", 5)
	v.SetDefault("Log.MaxAgeDays", 28)
}
