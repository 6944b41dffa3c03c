// Package config loads the service configuration with viper. Values come
// from built-in defaults, then config.toml, then INV_ prefixed environment
// variables, e.g. INV_DATABASE_PASSWORD for database.password.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is the development secret; production refuses to start with it
const DefaultJWTSecret = "change-me-in-production"

const (
	envProduction = "production"
	entraHost     = "https://login.microsoftonline.com"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	OIDC      OIDCConfig      `mapstructure:"oidc"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Printing  PrintingConfig  `mapstructure:"printing"`
	Backup    BackupConfig    `mapstructure:"backup"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Swagger   SwaggerConfig   `mapstructure:"swagger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Port    string `mapstructure:"port"`
	Version string `mapstructure:"version"`
}

// LogConfig selects the zap level, the json or console encoder, and
// stdout, stderr or a file path as output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// DatabaseConfig covers both drivers. Connection lifetimes are minutes.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	MigrationsPath  string `mapstructure:"migrations_path"`
}

// DSN builds a postgres URL with the credentials escaped.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) Addr() string { return fmt.Sprintf("%s:%d", r.Host, r.Port) }

// JWTConfig signs the locally issued tokens. RefreshSecret falls back to
// Secret when empty.
type JWTConfig struct {
	Secret                 string        `mapstructure:"secret"`
	RefreshSecret          string        `mapstructure:"refresh_secret"`
	Issuer                 string        `mapstructure:"issuer"`
	AccessTokenExpiration  time.Duration `mapstructure:"access_token_expiration"`
	RefreshTokenExpiration time.Duration `mapstructure:"refresh_token_expiration"`
	MaxRefreshCount        int           `mapstructure:"max_refresh_count"`
}

// OIDCConfig accepts Microsoft Entra ID tokens the console obtains through
// MSAL. Audience, Issuer and JWKSURL are derived from ClientID and TenantID
// when left empty.
type OIDCConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	TenantID string `mapstructure:"tenant_id"`
	ClientID string `mapstructure:"client_id"`
	Audience string `mapstructure:"audience"`
	Issuer   string `mapstructure:"issuer"`
	JWKSURL  string `mapstructure:"jwks_url"`
}

type HTTPConfig struct {
	ReadTimeout           time.Duration `mapstructure:"read_timeout"`
	WriteTimeout          time.Duration `mapstructure:"write_timeout"`
	IdleTimeout           time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes        int           `mapstructure:"max_header_bytes"`
	MaxBodySize           int64         `mapstructure:"max_body_size"`
	RateLimitEnabled      bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests     int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow       time.Duration `mapstructure:"rate_limit_window"`
	AuthRateLimitEnabled  bool          `mapstructure:"auth_rate_limit_enabled"`
	AuthRateLimitRequests int           `mapstructure:"auth_rate_limit_requests"`
	AuthRateLimitWindow   time.Duration `mapstructure:"auth_rate_limit_window"`
	CORSAllowOrigins      []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods      []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders      []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies        []string      `mapstructure:"trusted_proxies"`
}

// StorageConfig points at S3 or an S3 compatible store. Endpoint stays
// empty for AWS; PublicBaseURL prefixes object keys in item image URLs.
type StorageConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UsePathStyle    bool          `mapstructure:"use_path_style"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
}

type PrintingConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	ChromePath    string        `mapstructure:"chrome_path"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
}

type BackupConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Prefix   string        `mapstructure:"prefix"`
}

type CacheConfig struct {
	SettingsTTL  time.Duration `mapstructure:"settings_ttl"`
	DashboardTTL time.Duration `mapstructure:"dashboard_ttl"`
}

// SwaggerConfig guards /swagger. AllowedIPs holds addresses or CIDRs and
// allows everyone when empty.
type SwaggerConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	RequireAuth bool     `mapstructure:"require_auth"`
	AllowedIPs  []string `mapstructure:"allowed_ips"`
}

type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"`
	SamplingRatio     float64       `mapstructure:"sampling_ratio"`
	ServiceName       string        `mapstructure:"service_name"`
	Insecure          bool          `mapstructure:"insecure"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	MetricsInterval   time.Duration `mapstructure:"metrics_interval"`
	LogsEnabled       bool          `mapstructure:"logs_enabled"`
	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"`
	DBSlowQueryThresh time.Duration `mapstructure:"db_slow_query_threshold"`
	ProfilingEnabled  bool          `mapstructure:"profiling_enabled"`
	PyroscopeAddress  string        `mapstructure:"pyroscope_address"`
}

// defaults registers every key, including the empty ones, so that
// AutomaticEnv can override keys missing from config.toml.
var defaults = map[string]any{
	"app.name":    "inventory-api",
	"app.env":     "development",
	"app.port":    "8080",
	"app.version": "dev",

	"database.driver":             "postgres",
	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "inventory",
	"database.sslmode":            "disable",
	"database.sqlite_path":        "inventory.db",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.auto_migrate":       false,
	"database.migrations_path":    "migrations",

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":                   DefaultJWTSecret,
	"jwt.refresh_secret":           "",
	"jwt.issuer":                   "inventory-api",
	"jwt.access_token_expiration":  15 * time.Minute,
	"jwt.refresh_token_expiration": 7 * 24 * time.Hour,
	"jwt.max_refresh_count":        10,

	"oidc.enabled":   false,
	"oidc.tenant_id": "",
	"oidc.client_id": "",
	"oidc.audience":  "",
	"oidc.issuer":    "",
	"oidc.jwks_url":  "",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout": 15 * time.Second,
	// label sheets render inside the request
	"http.write_timeout":            60 * time.Second,
	"http.idle_timeout":             60 * time.Second,
	"http.max_header_bytes":         1 << 20,
	"http.max_body_size":            10 << 20,
	"http.rate_limit_enabled":       false,
	"http.rate_limit_requests":      100,
	"http.rate_limit_window":        time.Minute,
	"http.auth_rate_limit_enabled":  false,
	"http.auth_rate_limit_requests": 5,
	"http.auth_rate_limit_window":   time.Minute,
	"http.cors_allow_origins":       []string{},
	"http.cors_allow_methods":       []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers":       []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":          []string{},

	"storage.enabled":           false,
	"storage.endpoint":          "",
	"storage.region":            "us-east-1",
	"storage.bucket":            "inventory",
	"storage.access_key_id":     "",
	"storage.secret_access_key": "",
	"storage.use_path_style":    false,
	"storage.presign_expiry":    15 * time.Minute,
	"storage.public_base_url":   "",

	"printing.enabled":        false,
	"printing.chrome_path":    "",
	"printing.timeout":        30 * time.Second,
	"printing.max_concurrent": 2,

	"backup.interval": 24 * time.Hour,
	"backup.prefix":   "backups/",

	"cache.settings_ttl":  5 * time.Minute,
	"cache.dashboard_ttl": time.Minute,

	"swagger.enabled":      false,
	"swagger.require_auth": false,
	"swagger.allowed_ips":  []string{},

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "",
	"telemetry.insecure":                false,
	"telemetry.metrics_enabled":         false,
	"telemetry.metrics_interval":        time.Minute,
	"telemetry.logs_enabled":            false,
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
	"telemetry.profiling_enabled":       false,
	"telemetry.pyroscope_address":       "http://localhost:4040",
}

// Load reads config.toml from ., ./config or /app when present and applies
// the environment on top.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("INV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.derive()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// derive fills the settings whose default depends on another setting.
func (c *Config) derive() {
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.App.Name
	}
	if c.OIDC.Audience == "" {
		c.OIDC.Audience = c.OIDC.ClientID
	}
	if tenant := c.OIDC.TenantID; tenant != "" {
		if c.OIDC.Issuer == "" {
			c.OIDC.Issuer = entraHost + "/" + tenant + "/v2.0"
		}
		if c.OIDC.JWKSURL == "" {
			c.OIDC.JWKSURL = entraHost + "/" + tenant + "/discovery/v2.0/keys"
		}
	}
}

// validate reports every problem at once.
func (c *Config) validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	db := c.Database
	check(db.Driver == "postgres" || db.Driver == "sqlite",
		"database.driver must be 'postgres' or 'sqlite', got %q", db.Driver)
	check(db.MaxOpenConns > 0, "database.max_open_conns must be positive")
	check(db.MaxIdleConns >= 0, "database.max_idle_conns cannot be negative")
	check(db.MaxIdleConns <= db.MaxOpenConns,
		"database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)", db.MaxIdleConns, db.MaxOpenConns)

	if c.OIDC.Enabled {
		check(c.OIDC.TenantID != "" || (c.OIDC.Issuer != "" && c.OIDC.JWKSURL != ""),
			"oidc.tenant_id (or oidc.issuer and oidc.jwks_url) is required when oidc is enabled")
		check(c.OIDC.Audience != "", "oidc.client_id or oidc.audience is required when oidc is enabled")
	}
	check(!c.Storage.Enabled || c.Storage.Bucket != "", "storage.bucket is required when storage is enabled")
	check(c.Printing.MaxConcurrent >= 0, "printing.max_concurrent cannot be negative")
	check(c.Telemetry.SamplingRatio >= 0 && c.Telemetry.SamplingRatio <= 1,
		"telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)

	if c.IsProduction() {
		check(c.JWT.Secret != DefaultJWTSecret, "jwt.secret must be set in production")
		check(c.JWT.Secret == DefaultJWTSecret || len(c.JWT.Secret) >= 32,
			"jwt.secret must be at least 32 characters in production")
		if db.Driver == "postgres" {
			check(db.Password != "", "database.password is required in production")
			check(db.SSLMode != "disable", "database.sslmode cannot be 'disable' in production")
		}
		check(!slices.Contains(c.HTTP.CORSAllowOrigins, "*"),
			"http.cors_allow_origins cannot be '*' in production")
		check(!c.Telemetry.DBLogFullSQL, "telemetry.db_log_full_sql must be false in production")
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool { return c.App.Env == envProduction }
