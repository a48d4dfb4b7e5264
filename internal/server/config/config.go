// Package config handles configuration for the cofre server,
// including defaults and an environment-variable overlay.
package config

import "time"

// Config holds runtime settings for the cofre server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - SecretHim / SecretHer: the two participant secrets checked at login.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - SessionKey: HMAC secret for signing the session cookie (HS256).
//   - SessionTTL: session cookie lifetime.
//   - SignedURLTTL: expiry window requested for signed media URLs.
//   - StorageDriver: "supabase" or "s3".
//   - SupabaseURL / SupabaseKey / Bucket: Supabase storage settings.
//   - S3RootUser / S3RootPassword / S3Region / S3BaseEndpoint: settings for
//     the S3-compatible driver.
type Config struct {
	Addr           string
	SecretHim      string
	SecretHer      string
	DatabaseDSN    string
	SessionKey     string
	SessionTTL     time.Duration
	SignedURLTTL   time.Duration
	StorageDriver  string
	SupabaseURL    string
	SupabaseKey    string
	Bucket         string
	S3RootUser     string
	S3RootPassword string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults. The session key
// default matches the value the first deployments shipped with and must be
// overridden via SECRET_KEY in any real environment.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SessionKey = "cafe_com_seguranca_2026"
	c.SessionTTL = 2 * time.Hour
	c.SignedURLTTL = 1 * time.Hour
	c.StorageDriver = DriverSupabase
	c.S3Region = "us-east-1"
}

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverSupabase = "supabase"
	DriverS3       = "s3"
)

// LoadConfig builds a Config by applying defaults and then overlaying
// values from environment variables. Configuration is read once at process
// start; there is no runtime reload.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}
