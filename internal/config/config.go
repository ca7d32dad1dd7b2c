package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Storage backends understood by the server.
const (
	BackendDisk  = "disk"
	BackendMinIO = "minio"
)

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RateLimitConfig controls the per-client limiter on /api routes.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables and handed to the server constructor.
type AppConfig struct {
	Port           string
	PublicDir      string
	UploadDir      string
	BodyLimit      int
	LogLevel       string
	StorageBackend string
	MetricsEnabled bool
	SwaggerEnabled bool
	MinIO          MinIOConfig
	RateLimit      RateLimitConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "5000"),
		PublicDir:      getEnv("PUBLIC_DIR", "public"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		BodyLimit:      getEnvInt("BODY_LIMIT_BYTES", 32*1024*1024),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendDisk),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 0),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 10),
		},
	}
}

// Validate reports configuration that the server cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.PublicDir == "" {
		errs = append(errs, errors.New("public dir is required"))
	}
	if c.BodyLimit <= 0 {
		errs = append(errs, fmt.Errorf("body limit must be positive, got %d", c.BodyLimit))
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("rate limit rps must not be negative"))
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate limit burst must be positive when limiting is enabled"))
	}

	switch c.StorageBackend {
	case BackendDisk:
		if c.UploadDir == "" {
			errs = append(errs, errors.New("upload dir is required for disk storage"))
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" || c.MinIO.Bucket == "" {
			errs = append(errs, errors.New("minio endpoint, credentials and bucket are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}

	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
