package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "hookfire"
	defaultDBCharset  = "utf8mb4"
	defaultRedisURL   = "redis://localhost:6379/0"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	DSN            string                `yaml:"dsn"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	RedisURL       string                `yaml:"redis_url"`
	JWTSecret      string                `yaml:"jwt_secret"`
	Timezone       string                `yaml:"timezone"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Scheduler      SchedulerConfig       `yaml:"scheduler"`
}

// DatabaseRuntimeConfig assembles a MySQL DSN when `dsn` is not given directly.
type DatabaseRuntimeConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// SchedulerConfig configures the external background-task scheduler client.
type SchedulerConfig struct {
	BaseURL  string `yaml:"base_url"`
	Timezone string `yaml:"timezone"`
	SettleMS int    `yaml:"settle_ms"`
}

// Load reads the YAML config file and applies defaults. A missing file is not
// an error; defaults (plus env overrides) apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = envOr("HOOKFIRE_ENV", defaultEnv)
	}
	if strings.TrimSpace(c.DSN) == "" {
		c.DSN = c.Database.dsn()
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		c.RedisURL = envOr("HOOKFIRE_REDIS_URL", defaultRedisURL)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		c.JWTSecret = os.Getenv("HOOKFIRE_JWT_SECRET")
	}
	if strings.TrimSpace(c.Scheduler.BaseURL) == "" {
		c.Scheduler.BaseURL = os.Getenv("HOOKFIRE_SCHEDULER_URL")
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return !strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

func (d DatabaseRuntimeConfig) dsn() string {
	host := valueOr(d.Host, defaultDBHost)
	port := d.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := valueOr(d.User, defaultDBUser)
	password := valueOr(d.Password, defaultDBPassword)
	name := valueOr(d.Name, defaultDBName)
	charset := valueOr(d.Charset, defaultDBCharset)

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		user, password, host, port, name, charset)
}

func valueOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
