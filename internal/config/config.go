package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIBaseURL = "http://localhost:8000/api/v1"

type Config struct {
	LogMode                  string
	ServerPort               string
	StorageDir               string
	MaxUploadSizeMB          int
	MaxFilesPerRequest       int
	MaxConcurrentExtractions int
	RateLimitRPS             float64
	CORSOrigins              []string
}

type ClientConfig struct {
	LogMode         string
	APIBaseURL      string
	MaxUploadSizeMB int
	RequestTimeout  time.Duration
	OutputDir       string
}

func checkEnv(envVars []string) error {
	var missingVars []string

	for _, envVar := range envVars {
		if value, exists := os.LookupEnv(envVar); !exists || value == "" {
			missingVars = append(missingVars, envVar)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("error: this env vars are missing: %v", missingVars)
	} else {
		return nil
	}
}

func validateEnv() error {
	err := checkEnv([]string{
		"LOG_MODE",
		"SERVER_PORT",
	})
	if err != nil {
		return err
	}

	return nil
}

// loadDotEnv loads path when it exists; a missing file is not an error since
// the variables may come from the environment directly.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load cofiguration file: %w", err)
	}

	return nil
}

func LoadConfig(path string) (*Config, error) {
	if err := loadDotEnv(path); err != nil {
		return nil, err
	}

	err := validateEnv()
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	maxUpload, err := intEnv("MAX_UPLOAD_SIZE_MB", 50)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}
	maxFiles, err := intEnv("MAX_FILES_PER_REQUEST", 10)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}
	maxConcurrent, err := intEnv("MAX_CONCURRENT_EXTRACTIONS", 10)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}
	rps, err := floatEnv("RATE_LIMIT_RPS", 20)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	return &Config{
		LogMode:                  os.Getenv("LOG_MODE"),
		ServerPort:               os.Getenv("SERVER_PORT"),
		StorageDir:               stringEnv("STORAGE_DIR", "./storage"),
		MaxUploadSizeMB:          maxUpload,
		MaxFilesPerRequest:       maxFiles,
		MaxConcurrentExtractions: maxConcurrent,
		RateLimitRPS:             rps,
		CORSOrigins:              listEnv("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:5173"}),
	}, nil
}

func LoadClientConfig(path string) (*ClientConfig, error) {
	if err := loadDotEnv(path); err != nil {
		return nil, err
	}

	maxUpload, err := intEnv("MAX_UPLOAD_SIZE_MB", 50)
	if err != nil {
		return nil, fmt.Errorf("LoadClientConfig: %w", err)
	}
	timeout, err := durationEnv("REQUEST_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("LoadClientConfig: %w", err)
	}

	return &ClientConfig{
		LogMode:         stringEnv("LOG_MODE", "release"),
		APIBaseURL:      stringEnv("API_BASE_URL", DefaultAPIBaseURL),
		MaxUploadSizeMB: maxUpload,
		RequestTimeout:  timeout,
		OutputDir:       stringEnv("OUTPUT_DIR", "."),
	}, nil
}

func stringEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, value)
	}
	return f, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, value)
	}
	return d, nil
}

func listEnv(key string, def []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
