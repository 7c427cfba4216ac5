package config

import (
	"os"
	"time"

	"github.com/anonto42/scriblyn/backend/pkg/log"
	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port                    string
	Env                     string
	MongoURI                string
	MongoDB                 string
	PostgresConnStr         string
	Store                   string
	JWTSecret               string
	JWTTTL                  time.Duration
	FirebaseCredentialsPath string
	FrontendURL             string
	MetricsPort             string
	LogLevel                string
	RequestTimeout          time.Duration
}

// Load reads the configuration from the environment, after loading a .env
// file if one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Log.Debug("No .env file found, assuming environment variables are set.")
	}
	return &Config{
		Port:                    getEnv("PORT", "5000"),
		Env:                     getEnv("ENV", "development"),
		MongoURI:                getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:                 getEnv("MONGO_DB", "scriblyn"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		Store:                   getEnv("STORE", StoreMongo),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		JWTTTL:                  getDuration("JWT_TTL", 72*time.Hour),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		FrontendURL:             getEnv("FRONTEND_URL", ""),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Log.Warnf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
