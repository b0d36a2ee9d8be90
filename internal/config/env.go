package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server holds the API process settings, read from the environment.
type Server struct {
	Port       string
	Env        string
	ConfigPath string
	StaticDir  string
	PlanTTL    time.Duration
	Debug      bool
}

// LoadServer reads the server settings. A .env file in the working directory
// is loaded first if present; real environment variables win over it.
func LoadServer() *Server {
	_ = godotenv.Load()

	return &Server{
		Port:       getEnv("API_PORT", "8080"),
		Env:        getEnv("API_ENV", "development"),
		ConfigPath: getEnv("SIZER_CONFIG", ""),
		StaticDir:  getEnv("STATIC_DIR", ""),
		PlanTTL:    getEnvDuration("PLAN_TTL", 24*time.Hour),
		Debug:      getEnvBool("DEBUG", false),
	}
}

func (s *Server) Production() bool {
	return s.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
