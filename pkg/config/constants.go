package config

// EnvPrefix is passed to envconfig; all variables already carry the full
// RECICLACRED_ name in their struct tags, so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and tooling.
const (
	EnvAppEnv                 = "RECICLACRED_APP_ENV"
	EnvPort                   = "RECICLACRED_APP_PORT"
	EnvDBDSN                  = "RECICLACRED_DB_DSN"
	EnvDBHost                 = "RECICLACRED_DB_HOST"
	EnvDBUser                 = "RECICLACRED_DB_USER"
	EnvDBName                 = "RECICLACRED_DB_NAME"
	EnvRedisURL               = "RECICLACRED_REDIS_URL"
	EnvJWTSecret              = "RECICLACRED_JWT_SECRET"
	EnvJWTIssuer              = "RECICLACRED_JWT_ISSUER"
	EnvJWTExpMins             = "RECICLACRED_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "RECICLACRED_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
