package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		Port:           "5000",
		JWTSecret:      "a-sufficiently-long-development-secret-value",
		DBPassword:     "password",
		DBSSLMode:      "disable",
		AllowedOrigins: "http://localhost:5000",
		Env:            "development",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid development config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "production rejects default secret",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			wantErr: "JWT_SECRET must be changed from the default value in production",
		},
		{
			name: "production rejects short secret",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "short"
			},
			wantErr: "JWT_SECRET must be at least 32 characters in production",
		},
		{
			name: "production rejects weak db password",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "a-sufficiently-long-production-secret-value!"
				c.DBPassword = "password"
				c.DBSSLMode = "require"
			},
			wantErr: "a strong DB_PASSWORD is required in production",
		},
		{
			name: "production rejects disabled ssl",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "a-sufficiently-long-production-secret-value!"
				c.DBPassword = "s3cure-db-password"
				c.DBSSLMode = "disable"
			},
			wantErr: "DB_SSLMODE must not be 'disable' in production",
		},
		{
			name: "valid production config",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "a-sufficiently-long-production-secret-value!"
				c.DBPassword = "s3cure-db-password"
				c.DBSSLMode = "require"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
