package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	GitHub  GitHubConfig
	Auth    AuthConfig
	Sync    SyncConfig
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Port         int
	AllowOrigins []string
}

// StorageConfig holds the local persistence configuration
type StorageConfig struct {
	DataDir string
}

// GitHubConfig holds the remote file repository configuration
type GitHubConfig struct {
	Owner    string
	Repo     string
	Branch   string
	DataFile string
	Token    string
	APIBase  string
	CacheTTL time.Duration
}

// AuthConfig holds the authentication configuration
type AuthConfig struct {
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	AdminName     string
}

// SyncConfig holds the write-coalescing intervals
type SyncConfig struct {
	Debounce     time.Duration
	AutoInterval time.Duration
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			AllowOrigins: []string{getEnv("ALLOW_ORIGINS", "*")},
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		GitHub: GitHubConfig{
			Owner:    getEnv("GITHUB_OWNER", ""),
			Repo:     getEnv("GITHUB_REPO", "khs-data"),
			Branch:   getEnv("GITHUB_BRANCH", "main"),
			DataFile: getEnv("GITHUB_DATA_FILE", "database.json"),
			Token:    getEnv("GITHUB_TOKEN", ""),
			APIBase:  getEnv("GITHUB_API_BASE", "https://api.github.com"),
			CacheTTL: getEnvAsDuration("GITHUB_CACHE_TTL", time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-here"),
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			AdminName:     getEnv("ADMIN_NAME", "অ্যাডমিন"),
		},
		Sync: SyncConfig{
			Debounce:     getEnvAsDuration("SYNC_DEBOUNCE", time.Second),
			AutoInterval: getEnvAsDuration("SYNC_AUTO_INTERVAL", 30*time.Second),
		},
	}
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
