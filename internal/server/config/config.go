// Package config handles configuration for the vault server, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

import "time"

// Environment names. Anything other than EnvProduction is treated as a
// development deployment for key-provisioning purposes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds runtime settings for the vault server.
//
// Fields:
//   - Address: bind address for the HTTP endpoint.
//   - DatabaseDSN: pgx DSN (postgres://...) or a SQLite path for development.
//   - Environment: deployment flag; production refuses generated keys.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - EncryptionKey: base64 AES-256 key for stored secrets; empty in development.
//   - KeyFile: development fallback location for a generated encryption key.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
type Config struct {
	Address                      string
	DatabaseDSN                  string
	Environment                  string
	SecretKey                    string
	EncryptionKey                string
	KeyFile                      string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
}

// IsProduction reports whether the deployment is flagged production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.DatabaseDSN = "file:instance/vault.db?_foreign_keys=on"
	c.Environment = EnvDevelopment
	c.SecretKey = "super-secret-key"
	c.EncryptionKey = ""
	c.KeyFile = "instance/vault.key"
	c.AccessTokenValidityDuration = 1 * time.Hour
	c.RefreshTokenValidityDuration = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
