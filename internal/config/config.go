package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"foccacia/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory  = "memory"
	StorageElastic = "elastic"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	StorageBackend            string
	ElasticURL                string
	ElasticTimeout            time.Duration
	ElasticCircuitEnabled     bool
	ElasticCircuitFailures    int
	ElasticCircuitOpenWait    time.Duration
	ElasticCircuitHalfOpenReq int

	FootballAPIBaseURL            string
	FootballAPIKey                string
	FootballAPITimeout            time.Duration
	FootballAPIMaxRetries         int
	FootballAPICircuitEnabled     bool
	FootballAPICircuitFailures    int
	FootballAPICircuitOpenWait    time.Duration
	FootballAPICircuitHalfOpenReq int

	CacheEnabled     bool
	CacheTTL         time.Duration
	SearchMaxWorkers int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageBackend := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", StorageMemory)))
	switch storageBackend {
	case StorageMemory, StorageElastic:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_BACKEND %q: valid values are %s, %s", storageBackend, StorageMemory, StorageElastic)
	}

	elasticURL := strings.TrimSpace(getEnv("ELASTIC_URL", "http://localhost:9200"))
	if storageBackend == StorageElastic && elasticURL == "" {
		return Config{}, fmt.Errorf("ELASTIC_URL is required when STORAGE_BACKEND=%s", StorageElastic)
	}
	elasticTimeout, err := time.ParseDuration(getEnv("ELASTIC_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ELASTIC_TIMEOUT: %w", err)
	}
	if elasticTimeout <= 0 {
		return Config{}, fmt.Errorf("ELASTIC_TIMEOUT must be > 0")
	}
	elasticCircuitEnabled, err := strconv.ParseBool(getEnv("ELASTIC_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ELASTIC_CIRCUIT_ENABLED: %w", err)
	}
	elasticCircuitFailures, err := getEnvAsInt("ELASTIC_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ELASTIC_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if elasticCircuitFailures < 1 {
		return Config{}, fmt.Errorf("ELASTIC_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	elasticCircuitOpenWait, err := time.ParseDuration(getEnv("ELASTIC_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ELASTIC_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if elasticCircuitOpenWait <= 0 {
		return Config{}, fmt.Errorf("ELASTIC_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	elasticCircuitHalfOpenReq, err := getEnvAsInt("ELASTIC_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ELASTIC_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if elasticCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("ELASTIC_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	footballAPITimeout, err := time.ParseDuration(getEnv("FOOTBALL_API_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_API_TIMEOUT: %w", err)
	}
	if footballAPITimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_API_TIMEOUT must be > 0")
	}
	footballAPIMaxRetries, err := getEnvAsInt("FOOTBALL_API_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_API_MAX_RETRIES: %w", err)
	}
	if footballAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("FOOTBALL_API_MAX_RETRIES must be >= 0")
	}
	footballAPICircuitEnabled, err := strconv.ParseBool(getEnv("FOOTBALL_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_API_CIRCUIT_ENABLED: %w", err)
	}
	footballAPICircuitFailures, err := getEnvAsInt("FOOTBALL_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if footballAPICircuitFailures < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	footballAPICircuitOpenWait, err := time.ParseDuration(getEnv("FOOTBALL_API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if footballAPICircuitOpenWait <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	footballAPICircuitHalfOpenReq, err := getEnvAsInt("FOOTBALL_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if footballAPICircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	footballAPIKey := strings.TrimSpace(getEnv("FOOTBALL_API_KEY", ""))
	if appEnv == EnvProd && footballAPIKey == "" {
		return Config{}, fmt.Errorf("FOOTBALL_API_KEY is required when APP_ENV=%s", EnvProd)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	searchMaxWorkers, err := getEnvAsInt("SEARCH_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEARCH_MAX_WORKERS: %w", err)
	}
	if searchMaxWorkers < 1 {
		return Config{}, fmt.Errorf("SEARCH_MAX_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofAddr == "" {
		pprofAddr = ":6060"
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "foccacia-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		StorageBackend:            storageBackend,
		ElasticURL:                elasticURL,
		ElasticTimeout:            elasticTimeout,
		ElasticCircuitEnabled:     elasticCircuitEnabled,
		ElasticCircuitFailures:    elasticCircuitFailures,
		ElasticCircuitOpenWait:    elasticCircuitOpenWait,
		ElasticCircuitHalfOpenReq: elasticCircuitHalfOpenReq,

		FootballAPIBaseURL:            strings.TrimSpace(getEnv("FOOTBALL_API_BASE_URL", "https://v3.football.api-sports.io")),
		FootballAPIKey:                footballAPIKey,
		FootballAPITimeout:            footballAPITimeout,
		FootballAPIMaxRetries:         footballAPIMaxRetries,
		FootballAPICircuitEnabled:     footballAPICircuitEnabled,
		FootballAPICircuitFailures:    footballAPICircuitFailures,
		FootballAPICircuitOpenWait:    footballAPICircuitOpenWait,
		FootballAPICircuitHalfOpenReq: footballAPICircuitHalfOpenReq,

		CacheEnabled:     cacheEnabled,
		CacheTTL:         cacheTTL,
		SearchMaxWorkers: searchMaxWorkers,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
