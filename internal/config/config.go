// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Table names provisioned by the schema bootstrap.
const (
	TableMessages = "messages"
	TableCache    = "cache"
	TableUsers    = "users"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Cache    CacheConfig
	Log      LogConfig
	Messages MessagesConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host           string
	Port           int
	GinMode        string
	AllowedOrigins []string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig holds document store configuration.
// It is a value type: providers and repositories keep their own copy.
type StoreConfig struct {
	Type           string
	Host           string
	Port           int
	Database       string
	ConnectTimeout time.Duration
	Schema         Schema
}

// Address returns the store address in host:port format.
func (c StoreConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TableSchema pairs a table with its primary key field.
type TableSchema struct {
	Name       string
	PrimaryKey string
}

// Schema maps table names to their primary key field.
type Schema map[string]string

// Tables returns the schema entries. Order is unspecified.
func (s Schema) Tables() []TableSchema {
	tables := make([]TableSchema, 0, len(s))
	for name, pk := range s {
		tables = append(tables, TableSchema{Name: name, PrimaryKey: pk})
	}
	return tables
}

// PrimaryKey returns the primary key field of a table, defaulting to "id".
func (s Schema) PrimaryKey(table string) string {
	if pk, ok := s[table]; ok && pk != "" {
		return pk
	}
	return "id"
}

// DefaultSchema returns the fixed chat schema.
func DefaultSchema() Schema {
	return Schema{
		TableMessages: "id",
		TableCache:    "cid",
		TableUsers:    "id",
	}
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type     string
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// MessagesConfig holds message listing configuration.
type MessagesConfig struct {
	MaxResults int
}

// Default returns the built-in configuration without reading the environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			GinMode:        "debug",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Store: StoreConfig{
			Type:           "mongodb",
			Host:           "localhost",
			Port:           28015,
			Database:       "chat",
			ConnectTimeout: 5 * time.Second,
			Schema:         DefaultSchema(),
		},
		Cache: CacheConfig{
			Type: "none",
			Host: "localhost",
			Port: "6379",
			TTL:  180 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Messages: MessagesConfig{
			MaxResults: 50,
		},
	}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	d := Default()
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", d.Server.Host),
			Port:           getEnvAsInt("SERVER_PORT", d.Server.Port),
			GinMode:        getEnv("GIN_MODE", d.Server.GinMode),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", d.Server.AllowedOrigins),
		},
		Store: StoreConfig{
			Type:           getEnv("DOCDB_TYPE", d.Store.Type),
			Host:           getEnv("RDB_HOST", d.Store.Host),
			Port:           getEnvAsInt("RDB_PORT", d.Store.Port),
			Database:       getEnv("RDB_DB", d.Store.Database),
			ConnectTimeout: getEnvAsSeconds("DOCDB_CONNECT_TIMEOUT_SECONDS", d.Store.ConnectTimeout),
			Schema:         DefaultSchema(),
		},
		Cache: CacheConfig{
			Type:     getEnv("CACHE_TYPE", d.Cache.Type),
			Host:     getEnv("REDIS_HOST", d.Cache.Host),
			Port:     getEnv("REDIS_PORT", d.Cache.Port),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsSeconds("CACHE_TTL_SECONDS", d.Cache.TTL),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", d.Log.Level),
			Format: getEnv("LOG_FORMAT", d.Log.Format),
		},
		Messages: MessagesConfig{
			MaxResults: getEnvAsInt("MESSAGES_MAX_RESULTS", d.Messages.MaxResults),
		},
	}

	if cfg.Store.Database == "" {
		return nil, fmt.Errorf("store database name is required")
	}
	if cfg.Store.Port <= 0 {
		return nil, fmt.Errorf("invalid store port: %d", cfg.Store.Port)
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsSeconds reads a whole number of seconds.
func getEnvAsSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return time.Duration(intValue) * time.Second
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated environment variable.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
