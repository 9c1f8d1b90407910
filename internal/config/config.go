package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Institution InstitutionConfig
	Ai          AIConfig
	RateLimit   RateLimitConfig
	Pipeline    PipelineConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	NatsURL     string
	RedisURL    string
}

type DatabaseConfig struct {
	Connection string
}

type InstitutionConfig struct {
	Name      string
	ShortName string
	Phone     string
	Email     string
	Domain    string
	Website   string
}

type AIConfig struct {
	// Provider selects the generation backend ("ollama").
	Provider          string
	OllamaBaseURL     string
	OllamaModel       string
	EmbeddingModel    string
	GenerationTimeout time.Duration
}

type RateLimitConfig struct {
	Window       time.Duration
	IPLimit      int64
	SessionLimit int64
	// Backend selects the counter store: "memory" or "redis".
	Backend string
}

type PipelineConfig struct {
	LowConfidenceThreshold float64
	ContextCacheTTL        time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "app.log.csv"),
			NatsURL:     getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Institution: InstitutionConfig{
			Name:      getEnv("INSTITUTION_NAME", "Universidad Autónoma de Nayarit"),
			ShortName: getEnv("INSTITUTION_SHORT_NAME", "UAN"),
			Phone:     getEnv("INSTITUTION_PHONE", "311-211-8800"),
			Email:     getEnv("INSTITUTION_EMAIL", "contacto@uan.edu.mx"),
			Domain:    getEnv("INSTITUTION_DOMAIN", "uan.edu.mx"),
			Website:   getEnv("INSTITUTION_WEBSITE", "https://www.uan.edu.mx"),
		},
		Ai: AIConfig{
			Provider:          getEnv("GENERATION_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_MODEL", "solar:10.7b"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GenerationTimeout: getEnvAsDuration("GENERATION_TIMEOUT", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			Window:       getEnvAsDuration("RATE_LIMIT_WINDOW", 60*time.Second),
			IPLimit:      int64(getEnvAsInt("RATE_LIMIT_IP", 60)),
			SessionLimit: int64(getEnvAsInt("RATE_LIMIT_SESSION", 20)),
			Backend:      getEnv("RATE_LIMIT_BACKEND", "memory"),
		},
		Pipeline: PipelineConfig{
			LowConfidenceThreshold: getEnvAsFloat("LOW_CONFIDENCE_THRESHOLD", 0.6),
			ContextCacheTTL:        getEnvAsDuration("CONTEXT_CACHE_TTL", 5*time.Minute),
		},
	}
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
