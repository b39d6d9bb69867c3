package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// External HR directory the sync connector pulls employees and
	// manager assignments from.
	DirectoryDriver string // "postgresql" or "mysql"
	DirectoryDSN    map[string]string
	SyncSchedule    string // cron spec for the directory sync
	SweepSchedule   string // cron spec for the delegation expiry sweep
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:          getEnv("DB_NAME", "site-management"),
		SkipAuth:        getEnv("SKIP_AUTH", "false") == "true",
		Environment:     getEnv("ENVIRONMENT", "development"),
		AppId:           getEnv("APP_ID", "site-management"),
		DirectoryDriver: getEnv("HR_DIRECTORY_DRIVER", "postgresql"),
		DirectoryDSN: map[string]string{
			"host":     getEnv("HR_DIRECTORY_HOST", "localhost"),
			"port":     getEnv("HR_DIRECTORY_PORT", "5432"),
			"user":     getEnv("HR_DIRECTORY_USER", "hr"),
			"password": getEnv("HR_DIRECTORY_PASSWORD", ""),
			"database": getEnv("HR_DIRECTORY_DB", "hr"),
			"sslmode":  getEnv("HR_DIRECTORY_SSLMODE", "disable"),
		},
		SyncSchedule:  getEnv("SYNC_SCHEDULE", "0 */2 * * *"),
		SweepSchedule: getEnv("SWEEP_SCHEDULE", "30 1 * * *"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
