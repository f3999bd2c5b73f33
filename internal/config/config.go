package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Gate    GateConfig
	Memory  MemoryConfig
	Logging LoggingConfig
	Metrics MetricsConfig
	API     APIConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig holds settings for the Groq completion backend
type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	TopP        float64
	Timeout     time.Duration
}

// GateConfig holds engagement-gate policy settings
type GateConfig struct {
	PolicyPath   string
	WatchChanges bool
}

// MemoryConfig holds conversation memory settings
type MemoryConfig struct {
	MaxHistory int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// MetricsConfig holds metrics/monitoring settings
type MetricsConfig struct {
	Enabled  bool
	Endpoint string
}

// APIConfig holds request authentication and throttling settings
type APIConfig struct {
	Key             string // empty disables auth
	AllowedOrigins  string
	RateLimitPerMin int
	RateLimitBurst  int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SEC", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SEC", 60)) * time.Second,
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			APIKey:      getEnv("GROQ_API_KEY", ""),
			Model:       getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.8),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 60),
			TopP:        getEnvFloat("LLM_TOP_P", 0.9),
			Timeout:     time.Duration(getEnvInt("LLM_TIMEOUT_SEC", 15)) * time.Second,
		},
		Gate: GateConfig{
			PolicyPath:   getEnv("GATE_POLICY_PATH", "configs/gate.cedar"),
			WatchChanges: getEnvBool("GATE_WATCH_CHANGES", true),
		},
		Memory: MemoryConfig{
			MaxHistory: getEnvInt("MAX_HISTORY", 6),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Metrics: MetricsConfig{
			Enabled:  getEnvBool("METRICS_ENABLED", true),
			Endpoint: getEnv("METRICS_ENDPOINT", "/metrics"),
		},
		API: APIConfig{
			Key:             getEnv("API_KEY", ""),
			AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
			RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 120),
			RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 20),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
