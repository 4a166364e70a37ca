package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	OAuth     OAuthConfig
	Redis     RedisConfig
	Logging   LoggingConfig
	Payment   PaymentConfig
	Storage   StorageConfig
	Advisor   AdvisorConfig
	Scheduler SchedulerConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	SettingsPort    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	ResetTokenExpiry   time.Duration
	BCryptCost         int
}

// OAuthConfig contains OAuth provider configuration
type OAuthConfig struct {
	Google GoogleOAuthConfig
}

// GoogleOAuthConfig contains Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether Google sign-in is configured
func (g GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// PaymentConfig controls the simulated payment gateway
type PaymentConfig struct {
	Currency         string
	ProcessDelay     time.Duration
	RefundDelay      time.Duration
	ProcessSuccess   float64
	RefundSuccess    float64
	ReferralDiscount float64
}

// StorageConfig selects where rendered receipts are kept
type StorageConfig struct {
	Backend            string // local, s3 or gcs
	LocalDir           string
	Bucket             string
	Prefix             string
	S3Region           string
	S3Endpoint         string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// AdvisorConfig configures the plan advisor
type AdvisorConfig struct {
	OpenAIAPIKey string
	Model        string
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
}

// SchedulerConfig configures the subscription lifecycle job
type SchedulerConfig struct {
	Enabled      bool
	Schedule     string
	ReminderDays int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			SettingsPort:    getEnvAsInt("SETTINGS_PORT", 8081),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "signature"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./signature.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "supersecretkey"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			ResetTokenExpiry:   getEnvAsDuration("RESET_TOKEN_EXPIRY", time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		OAuth: OAuthConfig{
			Google: GoogleOAuthConfig{
				ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
				RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
			},
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("REDIS_CACHE_TTL", 10*time.Minute),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Payment: PaymentConfig{
			Currency:         getEnv("PAYMENT_CURRENCY", "USD"),
			ProcessDelay:     getEnvAsDuration("PAYMENT_PROCESS_DELAY", 1500*time.Millisecond),
			RefundDelay:      getEnvAsDuration("PAYMENT_REFUND_DELAY", time.Second),
			ProcessSuccess:   getEnvAsFloat("PAYMENT_SUCCESS_RATE", 0.9),
			RefundSuccess:    getEnvAsFloat("REFUND_SUCCESS_RATE", 0.95),
			ReferralDiscount: getEnvAsFloat("REFERRAL_DISCOUNT", 0.2),
		},
		Storage: StorageConfig{
			Backend:            getEnv("RECEIPT_STORAGE", "local"),
			LocalDir:           getEnv("RECEIPT_DIR", "./receipts"),
			Bucket:             getEnv("RECEIPT_BUCKET", ""),
			Prefix:             getEnv("RECEIPT_PREFIX", "receipts/"),
			S3Region:           getEnv("AWS_REGION", "us-east-1"),
			S3Endpoint:         getEnv("S3_ENDPOINT", ""),
			AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Advisor: AdvisorConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:      getEnvAsDuration("ADVISOR_TIMEOUT", 8*time.Second),
		},
		Scheduler: SchedulerConfig{
			Enabled:      getEnvAsBool("SCHEDULER_ENABLED", true),
			Schedule:     getEnv("LIFECYCLE_SCHEDULE", "*/15 * * * *"),
			ReminderDays: getEnvAsInt("RENEWAL_REMINDER_DAYS", 7),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.IsProduction() && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "supersecretkey") {
		return fmt.Errorf("JWT_SECRET must be set and should not use default value in production")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Payment.ProcessSuccess < 0 || c.Payment.ProcessSuccess > 1 {
		return fmt.Errorf("PAYMENT_SUCCESS_RATE must be between 0 and 1, got %v", c.Payment.ProcessSuccess)
	}
	if c.Payment.RefundSuccess < 0 || c.Payment.RefundSuccess > 1 {
		return fmt.Errorf("REFUND_SUCCESS_RATE must be between 0 and 1, got %v", c.Payment.RefundSuccess)
	}

	switch c.Storage.Backend {
	case "local":
	case "s3", "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("RECEIPT_BUCKET is required for %s receipt storage", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unsupported receipt storage: %s", c.Storage.Backend)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
