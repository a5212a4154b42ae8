package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GenerationsDir string
	LatestPath     string
	TeamsCSV       string
	DBPath         string
	OutputDir      string

	FetchTimeoutMs int
	FetchRPS       int
	UserAgent      string

	LogLevel string
	LogJSON  bool
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		GenerationsDir: getEnv("POWERRANK_GENERATIONS_DIR", filepath.Join(cwd, "Weekly_PowerRankings")),
		LatestPath:     getEnv("POWERRANK_LATEST_PATH", filepath.Join(cwd, "data", "latest_powerrankings.csv")),
		TeamsCSV:       getEnv("POWERRANK_TEAMS_CSV", ""),
		DBPath:         getEnv("POWERRANK_DB_PATH", filepath.Join(cwd, "data", "runs.db")),
		OutputDir:      getEnv("POWERRANK_OUTPUT_DIR", filepath.Join(cwd, "out")),

		FetchTimeoutMs: getEnvInt("POWERRANK_FETCH_TIMEOUT_MS", 20000),
		FetchRPS:       getEnvInt("POWERRANK_FETCH_RPS", 1),
		UserAgent:      getEnv("POWERRANK_USER_AGENT", defaultUserAgent),

		LogLevel: getEnv("POWERRANK_LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("POWERRANK_LOG_JSON", false),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
