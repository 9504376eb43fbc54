package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

const DevFrontendOrigin = "http://localhost:5173"

type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Admin     AdminConfig     `yaml:"admin"`
	Session   SessionConfig   `yaml:"session"`
	Booking   BookingConfig   `yaml:"booking"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`

	// Policy is resolved from Booking.ConflictPolicy by Load.
	Policy domain.ConflictPolicy `yaml:"-"`
}

type AppConfig struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	FrontendURL string `yaml:"frontend_url"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AdminConfig struct {
	DefaultUser     string `yaml:"default_user"`
	DefaultPassword string `yaml:"default_password"`
}

type SessionConfig struct {
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
}

type BookingConfig struct {
	ConflictPolicy       string        `yaml:"conflict_policy"`
	PendingTTL           time.Duration `yaml:"pending_ttl"`
	AvailabilityCacheTTL time.Duration `yaml:"availability_cache_ttl"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Port:        "3001",
			Environment: "development",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			DBName:  "quincho_booking",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Admin: AdminConfig{
			DefaultUser:     "admin",
			DefaultPassword: "admin",
		},
		Session: SessionConfig{
			CookieName: "quincho-booking.sid",
			TTL:        24 * time.Hour,
		},
		Booking: BookingConfig{
			ConflictPolicy:       domain.PolicyConfirmedOnly.Name,
			AvailabilityCacheTTL: 5 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   15 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (if present), then environment variables. A .env file in the working
// directory is loaded into the environment first when it exists.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using OS environment.")
	}

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			expanded := []byte(os.ExpandEnv(string(data)))
			if err := yaml.Unmarshal(expanded, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	policy, err := domain.ParseConflictPolicy(cfg.Booking.ConflictPolicy)
	if err != nil {
		return nil, err
	}
	cfg.Policy = policy

	if cfg.RateLimit.Requests <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", cfg.RateLimit.Requests)
	}
	if cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimit.Window)
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}
	if cfg.Booking.PendingTTL < 0 {
		return nil, fmt.Errorf("PENDING_TTL must not be negative, got %s", cfg.Booking.PendingTTL)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString("PORT", &c.App.Port)
	setString("APP_ENV", &c.App.Environment)
	setString("FRONTEND_URL", &c.App.FrontendURL)

	setString("DATABASE_URL", &c.Database.URL)
	setString("DB_HOST", &c.Database.Host)
	setString("DB_PORT", &c.Database.Port)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("DB_SSLMODE", &c.Database.SSLMode)

	setString("REDIS_HOST", &c.Redis.Host)
	setString("REDIS_PORT", &c.Redis.Port)
	setString("REDIS_PASSWORD", &c.Redis.Password)

	setString("DEFAULT_ADMIN_USER", &c.Admin.DefaultUser)
	setString("DEFAULT_ADMIN_PASSWORD", &c.Admin.DefaultPassword)

	setString("SESSION_COOKIE_NAME", &c.Session.CookieName)
	setString("CONFLICT_POLICY", &c.Booking.ConflictPolicy)

	var errs []error
	errs = append(errs,
		setInt("REDIS_DB", &c.Redis.DB),
		setInt("RATE_LIMIT_REQUESTS", &c.RateLimit.Requests),
		setDuration("SESSION_TTL", &c.Session.TTL),
		setDuration("PENDING_TTL", &c.Booking.PendingTTL),
		setDuration("AVAILABILITY_CACHE_TTL", &c.Booking.AvailabilityCacheTTL),
		setDuration("RATE_LIMIT_WINDOW", &c.RateLimit.Window),
		setBool("METRICS_ENABLED", &c.Metrics.Enabled),
	)

	return errors.Join(errs...)
}

// IsProduction is true when APP_ENV says so or a public frontend is configured.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production") || c.App.FrontendURL != ""
}

func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.Redis.Host, c.Redis.Port)
}

// AllowedOrigins lists the CORS origins: the local dev frontend plus the
// configured frontend and its www/non-www twin.
func (c *Config) AllowedOrigins() []string {
	origins := []string{DevFrontendOrigin}

	frontend := strings.TrimRight(strings.TrimSpace(c.App.FrontendURL), "/")
	if frontend == "" {
		return origins
	}
	origins = append(origins, frontend)

	u, err := url.Parse(frontend)
	if err != nil || u.Host == "" {
		return origins
	}

	twin := *u
	if strings.HasPrefix(u.Host, "www.") {
		twin.Host = strings.TrimPrefix(u.Host, "www.")
	} else {
		twin.Host = "www." + u.Host
	}
	return append(origins, twin.String())
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", key, v)
	}
	*dst = n
	return nil
}

func setDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", key, v)
	}
	*dst = d
	return nil
}

func setBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	*dst = b
	return nil
}
