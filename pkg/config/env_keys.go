package config

// Environment variable names read by Load.
const (
	EnvAppEnv       = "APP_ENV"
	EnvPort         = "PORT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvLogWarnStack = "LOG_WARN_STACK"

	EnvDBDSN              = "DATABASE_URL"
	EnvDBDriver           = "DB_DRIVER"
	EnvDBInsecureTLSHosts = "DB_INSECURE_TLS_HOSTS"
	EnvDBMaxOpenConns     = "DB_MAX_OPEN_CONNS"
	EnvDBMaxIdleConns     = "DB_MAX_IDLE_CONNS"
	EnvDBConnMaxLifetime  = "DB_CONN_MAX_LIFETIME"
	EnvDBConnMaxIdleTime  = "DB_CONN_MAX_IDLE_TIME"

	EnvRedisURL = "REDIS_URL"

	EnvAutoMigrate        = "AUTO_MIGRATE"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvIdempotencyTTL     = "IDEMPOTENCY_TTL"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
