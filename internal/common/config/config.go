package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  []string

	// Адреса сервисов для шлюза и редактора.
	MapsURL   string
	EditorURL string

	// Редактор
	EditorProfile      string
	SubmitTimeout      int
	SessionIdleMinutes int

	// Бэкенд карт
	MapsDBPath         string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CacheExpiryMinutes int
	KafkaBrokers       []string
	KafkaTopic         string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		CORSOrigins:  getEnvAsList("CORS_ORIGINS"),

		MapsURL:   getEnv("MAPS_URL", "http://localhost:3002"),
		EditorURL: getEnv("EDITOR_URL", "http://localhost:3001"),

		EditorProfile:      getEnv("EDITOR_PROFILE", ""),
		SubmitTimeout:      getEnvAsInt("SUBMIT_TIMEOUT", 10),
		SessionIdleMinutes: getEnvAsInt("SESSION_IDLE_MINUTES", 120),

		MapsDBPath:         getEnv("MAPS_DB_PATH", "data/maps.db"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		CacheExpiryMinutes: getEnvAsInt("CACHE_EXPIRY_MINUTES", 30),
		KafkaBrokers:       getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "map.created"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// getEnvAsList разбирает список через запятую; пустые элементы отбрасываются.
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
