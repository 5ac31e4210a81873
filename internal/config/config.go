package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Провайдеры инвестиционного плана
const (
	PlanProviderLocal = "local"
	PlanProviderAI    = "ai"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port            int
	MaxPrincipal    float64
	MaxContribution float64
	MaxYears        int
	MaxRate         float64
	MaxBalanceCap   float64
	MaxEntries      int
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string

	PlanProvider      string
	PlanFallbackLocal bool
	AIEndpoint        string
	AIAPIKey          string
	AIModel           string
	AITimeout         time.Duration
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		MaxPrincipal:    getEnvFloat("MAX_PRINCIPAL", 1e10),
		MaxContribution: getEnvFloat("MAX_CONTRIBUTION", 1e8),
		MaxYears:        getEnvInt("MAX_YEARS", 100),
		MaxRate:         getEnvFloat("MAX_RATE", 100),
		MaxBalanceCap:   getEnvFloat("MAX_BALANCE_CAP", 1e13),
		MaxEntries:      getEnvInt("MAX_ENTRIES", 500),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "finplan-server"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),

		PlanProvider:      strings.ToLower(getEnvString("PLAN_PROVIDER", PlanProviderLocal)),
		PlanFallbackLocal: getEnvBool("PLAN_FALLBACK_LOCAL", true),
		AIEndpoint:        getEnvString("AI_ENDPOINT", ""),
		AIAPIKey:          getEnvString("AI_API_KEY", ""),
		AIModel:           getEnvString("AI_MODEL", "gpt-4o-mini"),
		AITimeout:         getEnvDuration("AI_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.PlanProvider {
	case PlanProviderLocal:
	case PlanProviderAI:
		if c.AIEndpoint == "" {
			return fmt.Errorf("AI_ENDPOINT is required when PLAN_PROVIDER=%s", PlanProviderAI)
		}
	default:
		return fmt.Errorf("unknown PLAN_PROVIDER %q", c.PlanProvider)
	}
	if c.MaxYears < 1 {
		return fmt.Errorf("MAX_YEARS must be positive")
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// BalanceCap возвращает максимальный баланс для защиты от переполнения
func (c *Config) BalanceCap() float64 {
	return c.MaxBalanceCap
}
