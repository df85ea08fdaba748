package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string   `mapstructure:"PORT"`
	Env           string   `mapstructure:"ENV"`
	DatabaseURL   string   `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`
	AuthSecret    string   `mapstructure:"AUTH_SECRET"`
	AuthUsers     string   `mapstructure:"AUTH_USERS"`
	TokenTTLHours int      `mapstructure:"TOKEN_TTL_HOURS"`
	GeocodeOnline bool     `mapstructure:"GEOCODE_ONLINE"`
	GeocodeURL    string   `mapstructure:"GEOCODE_URL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("TOKEN_TTL_HOURS", 12)
	v.SetDefault("GEOCODE_ONLINE", false)
	v.SetDefault("GEOCODE_URL", "https://nominatim.openstreetmap.org/search")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("AUTH_USERS")
	v.BindEnv("TOKEN_TTL_HOURS")
	v.BindEnv("GEOCODE_ONLINE")
	v.BindEnv("GEOCODE_URL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: Authentication is bypassed. Do NOT use this in production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Users parses AUTH_USERS ("alice:secret,bob:hunter2") into a username to
// password map. Malformed entries are skipped.
func (c *Config) Users() map[string]string {
	users := make(map[string]string)
	for _, pair := range strings.Split(c.AuthUsers, ",") {
		name, pass, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || name == "" {
			continue
		}
		users[name] = pass
	}
	return users
}

// Validate checks that the configuration is safe to run. Outside development
// mode AUTH_SECRET and at least one credential pair are required so the login
// endpoint can actually authenticate someone.
func (c *Config) Validate() error {
	if c.IsDev() {
		return nil
	}
	if c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required when ENV is not development")
	}
	if len(c.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be at least 32 characters, got %d", len(c.AuthSecret))
	}
	if len(c.Users()) == 0 {
		return fmt.Errorf("AUTH_USERS is required when ENV is not development (format: \"user:password,user2:password2\")")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive, got %d", c.TokenTTLHours)
	}
	return nil
}
