package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, Environment: "development"},
		Database: DatabaseConfig{Driver: "sqlite"},
		Auth:     AuthConfig{JWTSecret: "supersecretkey"},
		Payment:  PaymentConfig{ProcessSuccess: 0.9, RefundSuccess: 0.95},
		Storage:  StorageConfig{Backend: "local"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults in development", mutate: func(c *Config) {}},
		{name: "default secret in production", mutate: func(c *Config) { c.Server.Environment = "production" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "success rate above one", mutate: func(c *Config) { c.Payment.ProcessSuccess = 1.5 }, wantErr: true},
		{name: "refund rate negative", mutate: func(c *Config) { c.Payment.RefundSuccess = -0.1 }, wantErr: true},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.Backend = "s3" }, wantErr: true},
		{name: "gcs with bucket", mutate: func(c *Config) { c.Storage.Backend = "gcs"; c.Storage.Bucket = "receipts" }},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Backend = "ftp" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_RATE", "0.75")
	if got := getEnvAsFloat("TEST_RATE", 0.1); got != 0.75 {
		t.Errorf("getEnvAsFloat() = %v, want 0.75", got)
	}

	t.Setenv("TEST_RATE", "nope")
	if got := getEnvAsFloat("TEST_RATE", 0.1); got != 0.1 {
		t.Errorf("getEnvAsFloat() = %v, want fallback 0.1", got)
	}
}
