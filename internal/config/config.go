package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	App struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`
	Database struct {
		URL            string `mapstructure:"url"`
		MigrateOnStart bool   `mapstructure:"migrate_on_start"`
	} `mapstructure:"database"`
	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	Scheduling struct {
		DefaultDuration int `mapstructure:"default_duration"`
	} `mapstructure:"scheduling"`
}

// Load reads defaults, an optional config.yaml and the environment, in that
// order of precedence. A .env file in the working directory is loaded first
// when present; variables already set are not overwritten.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("app.port", "8080")
	v.SetDefault("database.migrate_on_start", true)
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("scheduling.default_duration", 60)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("app.port", "APP_PORT")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("database.migrate_on_start", "DB_MIGRATE_ON_START")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.token_ttl", "JWT_TTL")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("scheduling.default_duration", "SCHEDULING_DEFAULT_DURATION")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.CORS.AllowedOrigins = splitOrigins(c.CORS.AllowedOrigins)

	if c.Database.URL == "" {
		return Config{}, errors.New("config: database.url/DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return Config{}, errors.New("config: auth.jwt_secret/JWT_SECRET is required")
	}
	if c.Scheduling.DefaultDuration <= 0 {
		return Config{}, fmt.Errorf("config: scheduling.default_duration must be > 0, got %d", c.Scheduling.DefaultDuration)
	}
	return c, nil
}

// splitOrigins accepts both a YAML list and a single comma separated env value.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
