package config

import "os"

// parseEnv overlays configuration from environment variables. This is the
// expected channel in production, where the encryption key must be supplied
// externally rather than read from a local key file.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("VAULT_ADDRESS"); ok {
		config.Address = v
	}
	if v, ok := os.LookupEnv("VAULT_DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("VAULT_ENV"); ok {
		config.Environment = v
	}
	if v, ok := os.LookupEnv("VAULT_SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("VAULT_ENCRYPTION_KEY"); ok {
		config.EncryptionKey = v
	}
	if v, ok := os.LookupEnv("VAULT_KEY_FILE"); ok {
		config.KeyFile = v
	}
}
