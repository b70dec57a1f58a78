package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultLegalAPIBase is the backend address used when LEGAL_API_BASE is unset.
const DefaultLegalAPIBase = "http://localhost:8000"

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Locale   LocaleConfig
	Activity ActivityConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Name               string
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	VisitorTTLMinutes  int
}

// BackendConfig locates the legal assistant API. The address is looked up on
// every call so a changed environment takes effect without a restart.
type BackendConfig struct {
	fallback string
}

type LocaleConfig struct {
	Default  string
	PrefsKey string // redis key prefix for per-visitor locale
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

type ActivityConfig struct {
	Topic   string
	LogPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "AI Hukum"),
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			VisitorTTLMinutes:  getEnvAsInt("VISITOR_TTL_MINUTES", 60),
		},
		Backend: NewBackendConfig(DefaultLegalAPIBase),
		Locale: LocaleConfig{
			Default:  getEnv("DEFAULT_LOCALE", "id"),
			PrefsKey: getEnv("LOCALE_PREFS_KEY", "ai-hukum:lang:"),
		},
		Activity: ActivityConfig{
			Topic:   getEnv("ACTIVITY_TOPIC", "ACTIVITY"),
			LogPath: getEnv("ACTIVITY_LOG_PATH", "logs/activity.log"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "ai-hukum-web"),
		},
	}
}

func NewBackendConfig(fallback string) BackendConfig {
	return BackendConfig{fallback: fallback}
}

// BaseURL reads LEGAL_API_BASE at call time.
func (b BackendConfig) BaseURL() string {
	if v := getEnv("LEGAL_API_BASE", ""); v != "" {
		return v
	}
	if b.fallback != "" {
		return b.fallback
	}
	return DefaultLegalAPIBase
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
