package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr  string
	Backend     string
	APIURL      string
	BaseURL     string
	SnapshotDB  string
	HTTPTimeout time.Duration
	LogLevel    string
	LogFile     string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8000"),
		Backend:     getEnv("PAD_BACKEND", "api"),
		APIURL:      getEnv("PAD_API_URL", "https://pad.crc.nd.edu"),
		BaseURL:     getEnv("PAD_BASE_URL", "https://pad.crc.nd.edu"),
		SnapshotDB:  getEnv("SNAPSHOT_DB_PATH", "/data/padsnapshot.db"),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
