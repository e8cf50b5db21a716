package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"LOG_MODE",
	"SERVER_PORT",
	"STORAGE_DIR",
	"MAX_UPLOAD_SIZE_MB",
	"MAX_FILES_PER_REQUEST",
	"MAX_CONCURRENT_EXTRACTIONS",
	"RATE_LIMIT_RPS",
	"CORS_ORIGINS",
	"API_BASE_URL",
	"REQUEST_TIMEOUT",
	"OUTPUT_DIR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range configKeys {
			os.Unsetenv(key)
		}
	})
}

func TestCheckEnv(t *testing.T) {
	tests := []struct {
		name      string
		envVars   []string
		setup     func()
		teardown  func()
		wantError bool
	}{
		{
			name:    "AllVariablesPresent",
			envVars: []string{"PDFX_TEST_VAR_1", "PDFX_TEST_VAR_2"},
			setup: func() {
				os.Setenv("PDFX_TEST_VAR_1", "value1")
				os.Setenv("PDFX_TEST_VAR_2", "value2")
			},
			teardown: func() {
				os.Unsetenv("PDFX_TEST_VAR_1")
				os.Unsetenv("PDFX_TEST_VAR_2")
			},
			wantError: false,
		},
		{
			name:    "OneVariableMissing",
			envVars: []string{"PDFX_TEST_VAR_1", "PDFX_TEST_VAR_2"},
			setup: func() {
				os.Setenv("PDFX_TEST_VAR_1", "value1")
			},
			teardown: func() {
				os.Unsetenv("PDFX_TEST_VAR_1")
			},
			wantError: true,
		},
		{
			name:    "VariablePresentButEmpty",
			envVars: []string{"PDFX_TEST_VAR_1"},
			setup: func() {
				os.Setenv("PDFX_TEST_VAR_1", "")
			},
			teardown: func() {
				os.Unsetenv("PDFX_TEST_VAR_1")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			defer func() {
				if tt.teardown != nil {
					tt.teardown()
				}
			}()

			err := checkEnv(tt.envVars)
			if (err != nil) != tt.wantError {
				t.Errorf("checkEnv() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	const testEnvContent = "LOG_MODE=debug\nSERVER_PORT=8000\nMAX_FILES_PER_REQUEST=4\nCORS_ORIGINS=http://a.test, http://b.test\n"

	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte(testEnvContent), 0o600); err != nil {
		t.Fatalf("Failed to write .env file: %v", err)
	}

	tests := []struct {
		name      string
		envFile   string
		setup     func()
		want      *Config
		wantError bool
	}{
		{
			name:    "successful config load",
			envFile: envPath,
			want: &Config{
				LogMode:                  "debug",
				ServerPort:               "8000",
				StorageDir:               "./storage",
				MaxUploadSizeMB:          50,
				MaxFilesPerRequest:       4,
				MaxConcurrentExtractions: 10,
				RateLimitRPS:             20,
			},
			wantError: false,
		},
		{
			name:      "missing env file and no variables",
			envFile:   "nonexistent_file",
			wantError: true,
		},
		{
			name:    "variables from environment only",
			envFile: "",
			setup: func() {
				os.Setenv("LOG_MODE", "release")
				os.Setenv("SERVER_PORT", "9000")
				os.Setenv("STORAGE_DIR", "/tmp/pdfx")
			},
			want: &Config{
				LogMode:                  "release",
				ServerPort:               "9000",
				StorageDir:               "/tmp/pdfx",
				MaxUploadSizeMB:          50,
				MaxFilesPerRequest:       10,
				MaxConcurrentExtractions: 10,
				RateLimitRPS:             20,
			},
			wantError: false,
		},
		{
			name:    "invalid number",
			envFile: "",
			setup: func() {
				os.Setenv("LOG_MODE", "release")
				os.Setenv("SERVER_PORT", "9000")
				os.Setenv("MAX_UPLOAD_SIZE_MB", "lots")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.setup != nil {
				tt.setup()
			}

			got, err := LoadConfig(tt.envFile)
			if (err != nil) != tt.wantError {
				t.Errorf("LoadConfig() error = %v, wantError %v", err, tt.wantError)
				return
			}

			if !tt.wantError {
				if got.LogMode != tt.want.LogMode {
					t.Errorf("LoadConfig() LogMode = %v, want %v", got.LogMode, tt.want.LogMode)
				}
				if got.ServerPort != tt.want.ServerPort {
					t.Errorf("LoadConfig() ServerPort = %v, want %v", got.ServerPort, tt.want.ServerPort)
				}
				if got.StorageDir != tt.want.StorageDir {
					t.Errorf("LoadConfig() StorageDir = %v, want %v", got.StorageDir, tt.want.StorageDir)
				}
				if got.MaxUploadSizeMB != tt.want.MaxUploadSizeMB {
					t.Errorf("LoadConfig() MaxUploadSizeMB = %v, want %v", got.MaxUploadSizeMB, tt.want.MaxUploadSizeMB)
				}
				if got.MaxFilesPerRequest != tt.want.MaxFilesPerRequest {
					t.Errorf("LoadConfig() MaxFilesPerRequest = %v, want %v", got.MaxFilesPerRequest, tt.want.MaxFilesPerRequest)
				}
				if got.MaxConcurrentExtractions != tt.want.MaxConcurrentExtractions {
					t.Errorf("LoadConfig() MaxConcurrentExtractions = %v, want %v", got.MaxConcurrentExtractions, tt.want.MaxConcurrentExtractions)
				}
				if got.RateLimitRPS != tt.want.RateLimitRPS {
					t.Errorf("LoadConfig() RateLimitRPS = %v, want %v", got.RateLimitRPS, tt.want.RateLimitRPS)
				}
			}
		})
	}
}

func TestLoadConfig_CORSOrigins(t *testing.T) {
	clearEnv(t)
	os.Setenv("LOG_MODE", "release")
	os.Setenv("SERVER_PORT", "9000")
	os.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	got, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(got.CORSOrigins) != 2 || got.CORSOrigins[0] != "http://a.test" || got.CORSOrigins[1] != "http://b.test" {
		t.Errorf("LoadConfig() CORSOrigins = %v", got.CORSOrigins)
	}
}

func TestLoadClientConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		got, err := LoadClientConfig("")
		if err != nil {
			t.Fatalf("LoadClientConfig() error = %v", err)
		}

		if got.APIBaseURL != DefaultAPIBaseURL {
			t.Errorf("LoadClientConfig() APIBaseURL = %v, want %v", got.APIBaseURL, DefaultAPIBaseURL)
		}
		if got.MaxUploadSizeMB != 50 {
			t.Errorf("LoadClientConfig() MaxUploadSizeMB = %v, want 50", got.MaxUploadSizeMB)
		}
		if got.RequestTimeout != 5*time.Minute {
			t.Errorf("LoadClientConfig() RequestTimeout = %v, want 5m", got.RequestTimeout)
		}
		if got.LogMode != "release" {
			t.Errorf("LoadClientConfig() LogMode = %v, want release", got.LogMode)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		clearEnv(t)
		os.Setenv("API_BASE_URL", "https://pdf.example.com/api/v1")
		os.Setenv("REQUEST_TIMEOUT", "30s")

		got, err := LoadClientConfig("")
		if err != nil {
			t.Fatalf("LoadClientConfig() error = %v", err)
		}

		if got.APIBaseURL != "https://pdf.example.com/api/v1" {
			t.Errorf("LoadClientConfig() APIBaseURL = %v", got.APIBaseURL)
		}
		if got.RequestTimeout != 30*time.Second {
			t.Errorf("LoadClientConfig() RequestTimeout = %v, want 30s", got.RequestTimeout)
		}
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		clearEnv(t)
		os.Setenv("REQUEST_TIMEOUT", "soon")

		if _, err := LoadClientConfig(""); err == nil {
			t.Errorf("LoadClientConfig() expected error")
		}
	})
}
