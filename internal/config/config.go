package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "CAPPRICE"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Workflow  WorkflowConfig
	Email     EmailConfig
	Retention RetentionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds the report bucket settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WorkflowConfig points at the n8n webhook that prices a simulation.
type WorkflowConfig struct {
	WebhookURL  string `mapstructure:"webhook_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the webhook call timeout.
func (w *WorkflowConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSecs) * time.Second
}

// EmailConfig holds report delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// RetentionConfig controls the purge of old simulations. Days <= 0 disables it.
type RetentionConfig struct {
	Days     int    `mapstructure:"days"`
	Schedule string `mapstructure:"schedule"`
}

// Enabled reports whether old simulations should be purged.
func (r *RetentionConfig) Enabled() bool {
	return r.Days > 0
}

// MaxAge returns how long a simulation is kept.
func (r *RetentionConfig) MaxAge() time.Duration {
	return time.Duration(r.Days) * 24 * time.Hour
}

// Load reads configuration from environment variables with the CAPPRICE_ prefix.
// A .env file in the working directory is loaded first when present; variables that
// are already set win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "capprice")
	v.SetDefault("db.password", "capprice_secret")
	v.SetDefault("db.name", "capprice_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "capprice-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5000,http://127.0.0.1:5000")

	// The pricing workflow can take minutes to answer.
	v.SetDefault("workflow.webhook_url", "")
	v.SetDefault("workflow.timeout_secs", 240)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "sa-east-1")
	v.SetDefault("email.from_address", "noreply@capprice.com.br")
	v.SetDefault("email.from_name", "CAP Price")

	v.SetDefault("retention.days", 90)
	v.SetDefault("retention.schedule", "@daily")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "CAPPRICE_SERVER_PORT",
		"server.read_timeout":   "CAPPRICE_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "CAPPRICE_SERVER_WRITE_TIMEOUT",
		"server.environment":    "CAPPRICE_SERVER_ENVIRONMENT",
		"db.host":               "CAPPRICE_DB_HOST",
		"db.port":               "CAPPRICE_DB_PORT",
		"db.user":               "CAPPRICE_DB_USER",
		"db.password":           "CAPPRICE_DB_PASSWORD",
		"db.name":               "CAPPRICE_DB_NAME",
		"db.sslmode":            "CAPPRICE_DB_SSLMODE",
		"db.max_open":           "CAPPRICE_DB_MAX_OPEN",
		"db.max_idle":           "CAPPRICE_DB_MAX_IDLE",
		"s3.region":             "CAPPRICE_S3_REGION",
		"s3.bucket":             "CAPPRICE_S3_BUCKET",
		"s3.endpoint":           "CAPPRICE_S3_ENDPOINT",
		"s3.access_key":         "CAPPRICE_S3_ACCESS_KEY",
		"s3.secret_key":         "CAPPRICE_S3_SECRET_KEY",
		"s3.presign_expiry":     "CAPPRICE_S3_PRESIGN_EXPIRY",
		"log.level":             "CAPPRICE_LOG_LEVEL",
		"log.format":            "CAPPRICE_LOG_FORMAT",
		"cors.allowed_origins":  "CAPPRICE_CORS_ALLOWED_ORIGINS",
		"workflow.webhook_url":  "CAPPRICE_WORKFLOW_WEBHOOK_URL",
		"workflow.timeout_secs": "CAPPRICE_WORKFLOW_TIMEOUT_SECS",
		"email.provider":        "CAPPRICE_EMAIL_PROVIDER",
		"email.region":          "CAPPRICE_EMAIL_REGION",
		"email.from_address":    "CAPPRICE_EMAIL_FROM_ADDRESS",
		"email.from_name":       "CAPPRICE_EMAIL_FROM_NAME",
		"retention.days":        "CAPPRICE_RETENTION_DAYS",
		"retention.schedule":    "CAPPRICE_RETENTION_SCHEDULE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CAPPRICE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CAPPRICE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Workflow = WorkflowConfig{
		WebhookURL:  v.GetString("workflow.webhook_url"),
		TimeoutSecs: v.GetInt("workflow.timeout_secs"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Retention = RetentionConfig{
		Days:     v.GetInt("retention.days"),
		Schedule: v.GetString("retention.schedule"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Workflow.TimeoutSecs <= 0 {
		return fmt.Errorf("config: workflow.timeout_secs must be positive, got %d", c.Workflow.TimeoutSecs)
	}
	switch c.Email.Provider {
	case "noop", "ses":
	default:
		return fmt.Errorf("config: unknown email.provider %q", c.Email.Provider)
	}
	return nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
