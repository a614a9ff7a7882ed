package config

const (
	EnvPrefix = "RFLINK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv        = "RFLINK_APP_ENV"
	EnvPort          = "RFLINK_APP_PORT"
	EnvDBDSN         = "RFLINK_DB_DSN"
	EnvDBHost        = "RFLINK_DB_HOST"
	EnvDBUser        = "RFLINK_DB_USER"
	EnvDBPassword    = "RFLINK_DB_PASSWORD"
	EnvDBName        = "RFLINK_DB_NAME"
	EnvRedisURL      = "RFLINK_REDIS_URL"
	EnvRedisAddr     = "RFLINK_REDIS_ADDR"
	EnvUseSQLite     = "RFLINK_USE_SQLITE"
	EnvSnapshotTTL   = "RFLINK_CATALOG_SNAPSHOT_TTL"
	EnvCableTypesTTL = "RFLINK_CATALOG_CABLE_TYPES_TTL"
	EnvCORSOrigins   = "RFLINK_CORS_ALLOWED_ORIGINS"
)

// DSN parts required when RFLINK_DB_DSN is not set
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
