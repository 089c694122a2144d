package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/glowdesk/glowdesk/pkg/timeutil"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32    `mapstructure:"DB_MIN_CONNS"`
	RedisURL       string   `mapstructure:"REDIS_URL"`
	JWTSecret      string   `mapstructure:"JWT_SECRET"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
	CalDayStart    string   `mapstructure:"CAL_DAY_START"`
	CalDayEnd      string   `mapstructure:"CAL_DAY_END"`
	CalSlotMinutes int      `mapstructure:"CAL_SLOT_MINUTES"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("CAL_DAY_START", "08:00")
	v.SetDefault("CAL_DAY_END", "20:00")
	v.SetDefault("CAL_SLOT_MINUTES", 30)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("CAL_DAY_START")
	v.BindEnv("CAL_DAY_END")
	v.BindEnv("CAL_SLOT_MINUTES")

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
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active: all requests get admin access.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: Set ENV=production and configure JWT_SECRET for production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// JWT_SECRET must be set so that real authentication is enforced, and the
// calendar window must parse to a non-empty range that divides evenly into
// slots.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf(
			"JWT_SECRET must be set when ENV=%q. "+
				"Refusing to start without authentication configuration", c.Env)
	}

	start, err := timeutil.ParseClock(c.CalDayStart)
	if err != nil {
		return fmt.Errorf("CAL_DAY_START: %w", err)
	}
	end, err := timeutil.ParseClock(c.CalDayEnd)
	if err != nil {
		return fmt.Errorf("CAL_DAY_END: %w", err)
	}
	if start >= end {
		return fmt.Errorf("CAL_DAY_START %q must be before CAL_DAY_END %q", c.CalDayStart, c.CalDayEnd)
	}
	if c.CalSlotMinutes <= 0 {
		return fmt.Errorf("CAL_SLOT_MINUTES must be positive, got %d", c.CalSlotMinutes)
	}
	if (end-start)%c.CalSlotMinutes != 0 {
		return fmt.Errorf("calendar window %s-%s is not divisible by CAL_SLOT_MINUTES=%d",
			c.CalDayStart, c.CalDayEnd, c.CalSlotMinutes)
	}

	return nil
}
