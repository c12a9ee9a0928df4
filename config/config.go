package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"

	"github.com/vinestrading/catalog-service/internal/validation"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Upload    UploadConfig
	Bootstrap BootstrapConfig
	I18n      I18nConfig
}

type ServerConfig struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
	// Requests per second allowed on the login endpoints, per client IP.
	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"1"`
	LoginBurst     int     `env:"LOGIN_RATE_BURST" envDefault:"5"`
}

// LoggerConfig overrides the APP_ENV logging defaults when set.
type LoggerConfig struct {
	Level             string `env:"LOGGER_LEVEL"`
	Encoding          string `env:"LOGGER_ENCODING"`
	DisableCaller     bool   `env:"LOGGER_DISABLE_CALLER" envDefault:"false"`
	DisableStacktrace bool   `env:"LOGGER_DISABLE_STACKTRACE" envDefault:"false"`
}

type DatabaseConfig struct {
	// Driver is one of pgx, postgres, mysql or sqlite.
	Driver   string `env:"DB_DRIVER" envDefault:"pgx"`
	DSN      string `env:"DB_DSN"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"vines"`
	Password string `env:"DB_PASSWORD" envDefault:"vines"`
	DBName   string `env:"DB_NAME" envDefault:"vines_catalog"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	// SQLitePath is used when Driver is sqlite and DSN is empty.
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"vines.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"1m"`
}

type JWTConfig struct {
	SecretKey string        `env:"JWT_SECRET_KEY"`
	TTL       time.Duration `env:"JWT_TTL" envDefault:"30m"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"vines-catalog"`
}

type UploadConfig struct {
	Dir       string `env:"UPLOAD_DIR" envDefault:"uploads"`
	URLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/static/uploads"`
	MaxBytes  int64  `env:"UPLOAD_MAX_BYTES" envDefault:"8388608"`
}

type BootstrapConfig struct {
	Username string `env:"BOOTSTRAP_ADMIN_USERNAME" envDefault:"owner"`
	Password string `env:"BOOTSTRAP_ADMIN_PASSWORD" envDefault:"DesignMaster2025"`
}

type I18nConfig struct {
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
}

// MinSecretLength is the shortest JWT signing secret accepted at startup.
const MinSecretLength = 32

// placeholderSecrets are values that ship in examples and must never sign tokens.
var placeholderSecrets = []string{
	"supersecretkey",
	"your-secret-key-change-this-in-prod",
	"changeme",
	"secret",
}

// LoadEnv parses the process environment into a Config and validates it.
func LoadEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	secret := strings.TrimSpace(c.JWT.SecretKey)
	switch {
	case secret == "":
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	case isPlaceholderSecret(secret):
		errs = append(errs, errors.New("JWT_SECRET_KEY must not be a placeholder value"))
	case len(secret) < MinSecretLength:
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY must be at least %d bytes", MinSecretLength))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}

	switch c.Database.Driver {
	case "pgx", "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.Database.Driver))
	}

	if strings.TrimSpace(c.Upload.Dir) == "" {
		errs = append(errs, errors.New("UPLOAD_DIR is required"))
	}
	if !strings.HasPrefix(c.Upload.URLPrefix, "/") {
		errs = append(errs, errors.New("UPLOAD_URL_PREFIX must start with /"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}

	if strings.TrimSpace(c.Bootstrap.Username) == "" || c.Bootstrap.Password == "" {
		errs = append(errs, errors.New("bootstrap admin username and password are required"))
	} else {
		if n := utf8.RuneCountInString(c.Bootstrap.Password); n < validation.MinPasswordLength {
			errs = append(errs, fmt.Errorf("BOOTSTRAP_ADMIN_PASSWORD must be at least %d characters", validation.MinPasswordLength))
		}
		if len(c.Bootstrap.Password) > validation.MaxPasswordBytes {
			errs = append(errs, fmt.Errorf("BOOTSTRAP_ADMIN_PASSWORD must be at most %d bytes", validation.MaxPasswordBytes))
		}
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

// DataSourceName builds the driver specific DSN unless DB_DSN overrides it.
func (d DatabaseConfig) DataSourceName() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC&clientFoundRows=true",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	case "sqlite":
		return "file:" + d.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
	default:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     d.Host + ":" + d.Port,
			Path:     d.DBName,
			RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
		}
		return u.String()
	}
}

func isPlaceholderSecret(secret string) bool {
	for _, p := range placeholderSecrets {
		if strings.EqualFold(secret, p) {
			return true
		}
	}
	return false
}
