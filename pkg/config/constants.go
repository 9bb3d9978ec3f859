package config

const (
	// EnvPrefix is empty: every field names its full variable in the tag.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreDriverSheets = "sheets"
	StoreDriverSQL    = "sql"
	StoreDriverMemory = "memory"
)

const (
	EnvAppEnv                       = "INVITACION_APP_ENV"
	EnvPort                         = "INVITACION_APP_PORT"
	EnvStoreDriver                  = "INVITACION_STORE_DRIVER"
	EnvEventTimezone                = "INVITACION_EVENT_TIMEZONE"
	EnvSpreadsheetID                = "GOOGLE_SHEETS_SPREADSHEET_ID"
	EnvSheetsClientEmail            = "GOOGLE_SHEETS_CLIENT_EMAIL"
	EnvSheetsPrivateKey             = "GOOGLE_SHEETS_PRIVATE_KEY"
	EnvGoogleCredentialsJSON        = "INVITACION_GOOGLE_CREDENTIALS_JSON"
	EnvGoogleApplicationCredentials = "INVITACION_GOOGLE_APPLICATION_CREDENTIALS"
	EnvAdminPassword                = "ADMIN_PASSWORD"
	EnvDBDriver                     = "INVITACION_DB_DRIVER"
	EnvDBDSN                        = "INVITACION_DB_DSN"
	EnvRedisURL                     = "INVITACION_REDIS_URL"
	EnvRateLimitWindow              = "INVITACION_RATE_LIMIT_WINDOW"
	EnvCORSAllowedOrigins           = "INVITACION_CORS_ALLOWED_ORIGINS"
)
