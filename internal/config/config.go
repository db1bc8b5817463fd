package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-level settings resolved from the environment.
// Engine tuning constants live in the tuning package, not here.
type Config struct {
	Env        string // "dev" or "prod"
	ServerPort string

	DBDriver   string // "postgres" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	RedisAddr    string
	RedisChannel string

	TuningFile string // optional JSON override for engine tuning

	PlanWorkers int // parallelism for plan precomputation
}

// Load reads configuration from the environment, with .env support.
// Missing keys fall back to development defaults.
func Load() *Config {
	// Absent .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:          getEnv("APP_ENV", "dev"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "barprep"),
		SQLitePath:   getEnv("SQLITE_PATH", "barprep.db"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisChannel: getEnv("REDIS_CHANNEL", "engine.events"),
		TuningFile:   getEnv("TUNING_FILE", ""),
		PlanWorkers:  getEnvAsInt("PLAN_WORKERS", 4),
	}
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return i
}
