package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseDSN     string
	StorageBucket   string
	CredentialsFile string
}

// Load reads configuration from the environment, with an optional .env file
// for local development. An empty StorageBucket selects the in-memory
// object store, which only makes sense for local runs.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment only")
	}

	cfg := Config{
		Port:            getEnv("PORT", "8008"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "capstone-collab.db"),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
	}

	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
