package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

type UploadConfig struct {
	MaxSize    int64 // bytes
	AllowOther bool  // accept files that classify as "other"
}

type ThumbnailConfig struct {
	Width         int
	Height        int
	FFmpegPath    string
	FFmpegTimeout time.Duration
}

type Config struct {
	DB_URL         string
	Port           string
	Environment    string
	StorageBackend string // "local" or "s3"
	LocalRoot      string
	CorsConfig     cors.Options
	S3             S3Config
	Upload         UploadConfig
	Thumbnail      ThumbnailConfig
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DB_URL:         getEnv("DB_URL", ""),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENV", "development"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		LocalRoot:      getEnv("STORAGE_LOCAL_ROOT", "uploads"),
		CorsConfig:     CorsConfig(),
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("S3_BUCKET_NAME", ""),
			Region:          getEnv("S3_REGION", "auto"),
		},
		Upload: UploadConfig{
			MaxSize:    getEnvInt64("UPLOAD_MAX_SIZE", 512<<20), // 512 MB
			AllowOther: getEnvBool("UPLOAD_ALLOW_OTHER", false),
		},
		Thumbnail: ThumbnailConfig{
			Width:         getEnvInt("THUMBNAIL_WIDTH", 320),
			Height:        getEnvInt("THUMBNAIL_HEIGHT", 180),
			FFmpegPath:    getEnv("FFMPEG_PATH", "ffmpeg"),
			FFmpegTimeout: time.Duration(getEnvInt("FFMPEG_TIMEOUT_SECONDS", 30)) * time.Second,
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Range", "Accept-Ranges", "Content-Length"},
		AllowCredentials: true,
	}
}
