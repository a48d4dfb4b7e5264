package config

import (
	"os"
	"strings"
)

// parseEnv populates Config fields from environment variables.
//
// Variable names are kept identical to the first deployments of this app so
// an existing environment keeps working unchanged:
//
//	ADDRESS         HTTP bind address (e.g. ":8080")
//	SENHA_ELE       participant secret for "Ele"
//	SENHA_ELA       participant secret for "Ela"
//	DATABASE_URL    PostgreSQL DSN
//	SECRET_KEY      session cookie signing key
//	STORAGE_DRIVER  "supabase" (default) or "s3"
//	SUPABASE_URL    storage base URL (trailing slashes trimmed)
//	SUPABASE_KEY    storage API key
//	BUCKET_NAME     bucket holding attachments
//	S3_ROOT_USER / S3_ROOT_PASSWORD / S3_REGION / S3_BASE_ENDPOINT
//
// Unset variables leave the corresponding defaults in place.
func parseEnv(config *Config) {
	setString(&config.Addr, "ADDRESS")
	setString(&config.SecretHim, "SENHA_ELE")
	setString(&config.SecretHer, "SENHA_ELA")
	setString(&config.DatabaseDSN, "DATABASE_URL")
	setString(&config.SessionKey, "SECRET_KEY")
	setString(&config.StorageDriver, "STORAGE_DRIVER")
	setString(&config.SupabaseKey, "SUPABASE_KEY")
	setString(&config.Bucket, "BUCKET_NAME")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("SUPABASE_URL"); ok {
		config.SupabaseURL = strings.TrimRight(strings.TrimSpace(v), "/")
	}
}

func setString(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}
