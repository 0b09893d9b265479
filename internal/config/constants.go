package config

// Application constants
const (
	AppName = "MedDash"

	// EnvPrefix namespaces every environment variable, e.g. MEDDASH_SERVER_PORT.
	EnvPrefix = "MEDDASH"

	// ConfigFileEnv overrides the config file search.
	ConfigFileEnv = "MEDDASH_CONFIG_FILE"

	DefaultCSVPath = "public/data/selected1.csv"

	// API routes
	APIBasePath       = "/api"
	HealthEndpoint    = "/api/health"
	MetricsEndpoint   = "/metrics"
	WebSocketEndpoint = "/ws"
)

// Build information, set with -ldflags "-X meddash/internal/config.AppVersion=...".
var (
	AppVersion = "dev"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

// Valid enumerations accepted by Config.validate.
var (
	logLevels       = []string{"debug", "info", "warn", "error"}
	logFormats      = []string{"json", "text"}
	logOutputs      = []string{"console", "file", "both"}
	dailyCountModes = []string{"auto", "always", "never"}
	traceExporters  = []string{"stdout", "none"}
	metricExporters = []string{"prometheus", "none"}
)
