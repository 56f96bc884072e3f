// Package config reads the studio backend settings from the environment.
// Every variable has a default suitable for local development; Load reports
// every invalid setting at once.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. It is public knowledge,
// so tokens signed with it are forgeable; main logs a warning when it is active.
const DefaultJWTSecret = "default_secret_key"

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "tarumenyan-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DBConfig selects the database driver and its connection string.
type DBConfig struct {
	Driver      string // postgres|mysql|sqlite
	URL         string // DSN for postgres/mysql
	Path        string // file path for sqlite
	AutoMigrate bool
}

// AuthConfig holds token signing and the optional admin seed account.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// S3Config configures the S3/MinIO upload backend.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string // base URL objects are served from, e.g. https://cdn.example.com/bucket
}

// UploadConfig describes where uploaded files live and how large they may be.
type UploadConfig struct {
	Backend             string // local|s3
	Dir                 string // local root of the managed upload directory
	PublicPrefix        string // URL prefix the local root is served under
	DocumentsDir        string // pricelist PDF destination
	PricelistFilename   string
	PricelistPublicCopy string // optional extra copy of the pricelist (e.g. frontend public dir)
	MaxBodyBytes        int64
	MaxUploadBytes      int64
	S3                  S3Config
}

// ChatbotConfig configures the conversational upstream (Rasa REST webhook).
type ChatbotConfig struct {
	URL            string
	HealthURL      string
	Timeout        time.Duration
	Attempts       int
	HealthInterval time.Duration
	RecordHistory  bool
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 30s
	IdleTimeout       time.Duration // e.g. 60s
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int    // bytes
	GinMode           string // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	DB      DBConfig
	Auth    AuthConfig
	Upload  UploadConfig
	Chatbot ChatbotConfig

	// Threshold is the minimum FAQ match score used when the chatbot falls back to FAQ answers.
	Threshold float64

	// Rate limiting
	RateRPS   float64 // tokens per second; 0 disables the limiter
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad is Load that panics on invalid configuration.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the environment, normalizes aliases and validates the result.
// On error the partially loaded Config is still returned.
func Load() (Config, error) {
	cfg := Config{
		Port:              envString("PORT", "3001"),
		ReadTimeout:       envDuration("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: envDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      envDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       envDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   envDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		MaxHeaderBytes:    envInt("MAX_HEADER_BYTES", 1<<20),
		GinMode:           envString("GIN_MODE", "release"),

		LogLevel:       envString("LOG_LEVEL", "info"),
		LogPretty:      envBool("LOG_PRETTY", false),
		SwaggerEnabled: envBool("SWAGGER_ENABLED", false),
		APIBasePath:    cleanPath(envString("API_BASE_PATH", "/api")),

		DB:      loadDB(),
		Auth:    loadAuth(),
		Upload:  loadUpload(),
		Chatbot: loadChatbot(),

		Threshold: envFloat("THRESHOLD", 0.32),
		RateRPS:   envFloat("RATE_RPS", 20),
		RateBurst: envInt("RATE_BURST", 40),

		CORS: CORSConfig{AllowedOrigins: envList("CORS_ALLOWED_ORIGINS")},
		Security: SecurityConfig{
			EnableHSTS: envBool("ENABLE_HSTS", false),
			HSTSMaxAge: envDuration("HSTS_MAX_AGE", 180*24*time.Hour),
		},
		IdempotencyTTL: envDuration("IDEMPOTENCY_TTL", 24*time.Hour),

		OTEL: OTELConfig{
			Enabled:     envBool("OTEL_ENABLED", false),
			Endpoint:    envString("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: envString("OTEL_SERVICE_NAME", "tarumenyan-backend"),
			SampleRatio: envFloat("OTEL_TRACES_SAMPLER_ARG", 1),
		},
	}
	cfg.normalize()
	return cfg, cfg.Validate()
}

func loadDB() DBConfig {
	return DBConfig{
		Driver:      envString("DB_DRIVER", "sqlite"),
		URL:         envString("DATABASE_URL", ""),
		Path:        envString("DB_PATH", "tarumenyan.db"),
		AutoMigrate: envBool("DB_AUTO_MIGRATE", true),
	}
}

func loadAuth() AuthConfig {
	return AuthConfig{
		JWTSecret:     envString("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:      envDuration("TOKEN_TTL", 24*time.Hour),
		AdminName:     envString("ADMIN_NAME", "Admin"),
		AdminEmail:    envString("ADMIN_EMAIL", ""),
		AdminPassword: envString("ADMIN_PASSWORD", ""),
	}
}

func loadUpload() UploadConfig {
	return UploadConfig{
		Backend:             envString("UPLOAD_BACKEND", "local"),
		Dir:                 envString("UPLOAD_DIR", "uploads"),
		PublicPrefix:        cleanPath(envString("UPLOAD_PUBLIC_PREFIX", "/uploads")),
		DocumentsDir:        envString("DOCUMENTS_DIR", "uploads/documents"),
		PricelistFilename:   envString("PRICELIST_FILENAME", "Tarumenyan Pricelist.pdf"),
		PricelistPublicCopy: envString("PRICELIST_PUBLIC_COPY", ""),
		MaxBodyBytes:        int64(envInt("MAX_BODY_BYTES", 1<<20)),
		MaxUploadBytes:      int64(envInt("MAX_UPLOAD_BYTES", 10<<20)),
		S3: S3Config{
			Endpoint:  envString("S3_ENDPOINT", ""),
			AccessKey: envString("S3_ACCESS_KEY", ""),
			SecretKey: envString("S3_SECRET_KEY", ""),
			Bucket:    envString("S3_BUCKET", ""),
			Region:    envString("S3_REGION", ""),
			UseSSL:    envBool("S3_USE_SSL", true),
			PublicURL: strings.TrimRight(envString("S3_PUBLIC_URL", ""), "/"),
		},
	}
}

func loadChatbot() ChatbotConfig {
	return ChatbotConfig{
		URL:            envString("CHATBOT_URL", "http://localhost:5005/webhooks/rest/webhook"),
		HealthURL:      envString("CHATBOT_HEALTH_URL", ""),
		Timeout:        envDuration("CHATBOT_TIMEOUT", 10*time.Second),
		Attempts:       envInt("CHATBOT_ATTEMPTS", 2),
		HealthInterval: envDuration("CHATBOT_HEALTH_INTERVAL", 10*time.Second),
		RecordHistory:  envBool("CHATBOT_RECORD_HISTORY", false),
	}
}

// aliases maps accepted spellings onto canonical values.
var aliases = map[string]string{
	"warning":    "warn",
	"postgresql": "postgres",
	"supabase":   "postgres",
	"sqlite3":    "sqlite",
	"minio":      "s3",
}

func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if a, ok := aliases[s]; ok {
		return a
	}
	return s
}

func (c *Config) normalize() {
	c.LogLevel = canonical(c.LogLevel)
	c.DB.Driver = canonical(c.DB.Driver)
	c.Upload.Backend = canonical(c.Upload.Backend)
	c.Auth.AdminEmail = strings.ToLower(strings.TrimSpace(c.Auth.AdminEmail))

	switch c.GinMode = strings.ToLower(c.GinMode); c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
}

// Validate returns every problem found, joined.
func (c Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.DB.validate(),
		c.Auth.validate(),
		c.Upload.validate(),
		c.Chatbot.validate(),
		c.validateLimits(),
	)
}

func (c Config) validateServer() error {
	var errs []error
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error, fatal, panic", c.LogLevel))
	}
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	for _, d := range []time.Duration{c.ReadTimeout, c.ReadHeaderTimeout, c.WriteTimeout, c.IdleTimeout, c.ShutdownTimeout} {
		if d <= 0 {
			errs = append(errs, errors.New("timeouts must be positive durations"))
			break
		}
	}
	if c.MaxHeaderBytes <= 0 {
		errs = append(errs, errors.New("MAX_HEADER_BYTES must be > 0"))
	}
	return errors.Join(errs...)
}

func (d DBConfig) validate() error {
	switch d.Driver {
	case "postgres", "mysql":
		if strings.TrimSpace(d.URL) == "" {
			return fmt.Errorf("DATABASE_URL is required for DB_DRIVER=%s", d.Driver)
		}
	case "sqlite":
		if strings.TrimSpace(d.Path) == "" {
			return errors.New("DB_PATH must not be empty")
		}
	default:
		return fmt.Errorf("DB_DRIVER %q is not one of postgres, mysql, sqlite", d.Driver)
	}
	return nil
}

func (a AuthConfig) validate() error {
	var errs []error
	if a.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be > 0"))
	}
	if a.AdminEmail != "" && len(a.AdminPassword) < 6 {
		errs = append(errs, errors.New("ADMIN_PASSWORD needs at least 6 characters when ADMIN_EMAIL is set"))
	}
	return errors.Join(errs...)
}

func (u UploadConfig) validate() error {
	var errs []error
	switch u.Backend {
	case "local":
		if strings.TrimSpace(u.Dir) == "" {
			errs = append(errs, errors.New("UPLOAD_DIR must not be empty"))
		}
	case "s3":
		if u.S3.Endpoint == "" || u.S3.Bucket == "" {
			errs = append(errs, errors.New("S3_ENDPOINT and S3_BUCKET are required for UPLOAD_BACKEND=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("UPLOAD_BACKEND %q is not one of local, s3", u.Backend))
	}
	if strings.TrimSpace(u.DocumentsDir) == "" || strings.TrimSpace(u.PricelistFilename) == "" {
		errs = append(errs, errors.New("DOCUMENTS_DIR and PRICELIST_FILENAME must not be empty"))
	}
	if u.MaxBodyBytes <= 0 || u.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES and MAX_UPLOAD_BYTES must be > 0"))
	}
	return errors.Join(errs...)
}

func (b ChatbotConfig) validate() error {
	var errs []error
	if strings.TrimSpace(b.URL) == "" {
		errs = append(errs, errors.New("CHATBOT_URL must not be empty"))
	}
	if b.Timeout <= 0 || b.HealthInterval <= 0 {
		errs = append(errs, errors.New("CHATBOT_TIMEOUT and CHATBOT_HEALTH_INTERVAL must be positive durations"))
	}
	if b.Attempts < 1 {
		errs = append(errs, errors.New("CHATBOT_ATTEMPTS must be >= 1"))
	}
	return errors.Join(errs...)
}

func (c Config) validateLimits() error {
	var errs []error
	if c.Threshold < 0 || c.Threshold > 1 {
		errs = append(errs, errors.New("THRESHOLD must be between 0 and 1"))
	}
	if c.RateRPS < 0 {
		errs = append(errs, errors.New("RATE_RPS must be >= 0"))
	}
	if c.RateBurst < 1 {
		errs = append(errs, errors.New("RATE_BURST must be >= 1"))
	}
	if c.Security.HSTSMaxAge < 0 {
		errs = append(errs, errors.New("HSTS_MAX_AGE must be >= 0"))
	}
	if c.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("IDEMPOTENCY_TTL must be > 0"))
	}
	if c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1 {
		errs = append(errs, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]"))
	}
	return errors.Join(errs...)
}

// UsingDefaultSecret reports whether tokens are signed with DefaultJWTSecret.
func (c Config) UsingDefaultSecret() bool {
	return c.Auth.JWTSecret == DefaultJWTSecret
}

// Unset, empty and unparsable variables all yield the default.

func envString(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envParsed[T any](k string, def T, parse func(string) (T, error)) T {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	out, err := parse(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return out
}

func envInt(k string, def int) int { return envParsed(k, def, strconv.Atoi) }

func envFloat(k string, def float64) float64 {
	return envParsed(k, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func envDuration(k string, def time.Duration) time.Duration {
	return envParsed(k, def, time.ParseDuration)
}

func envBool(k string, def bool) bool {
	return envParsed(k, def, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "1", "true", "yes", "y", "on":
			return true, nil
		case "0", "false", "no", "n", "off":
			return false, nil
		}
		return false, strconv.ErrSyntax
	})
}

// envList splits a comma separated variable, dropping blank entries.
func envList(k string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cleanPath returns p with one leading slash and no trailing slash; blank
// input becomes "/".
func cleanPath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
