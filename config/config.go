package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                 = "8080"
	DefaultAccessTokenExpiryMin = 60
	DefaultWarrantyYears        = 2
	DefaultLogLevel             = "info"
	DefaultLoginMaxAttempts     = 5
	DefaultLoginWindowMinutes   = 15
	DefaultMaxUploadBytes       = 5 << 20
	DefaultDBMaxConns           = 10
	DefaultS3Bucket             = "receipts"
	DefaultS3Region             = "us-east-1"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	DBMaxConns         int
	RunMigrations      bool
	AccessTokenSecret  string
	AccessExpiryMin    int
	WarrantyYears      int
	LogLevel           string
	LoginMaxAttempts   int
	LoginWindowMinutes int
	RedisURL           string
	MaxUploadBytes     int
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3AccessKey        string
	S3SecretKey        string
}

// source resolves keys from the process environment first and then from
// the values read out of the env file of the current ENV.
type source struct {
	file map[string]string
}

func Load() *Config {
	env := getEnv("ENV", "development")
	src := source{file: readEnvFile(env)}

	return &Config{
		Env:                env,
		Port:               src.get("PORT", DefaultPort),
		DBURL:              src.mustGet("DB_URL"),
		DBMaxConns:         src.getInt("DB_MAX_CONNS", DefaultDBMaxConns),
		RunMigrations:      src.getBool("RUN_MIGRATIONS", true),
		AccessTokenSecret:  src.mustGet("ACCESS_TOKEN_SECRET"),
		AccessExpiryMin:    src.getInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		WarrantyYears:      src.getInt("WARRANTY_YEARS", DefaultWarrantyYears),
		LogLevel:           src.get("LOG_LEVEL", DefaultLogLevel),
		LoginMaxAttempts:   src.getInt("LOGIN_MAX_ATTEMPTS", DefaultLoginMaxAttempts),
		LoginWindowMinutes: src.getInt("LOGIN_WINDOW_MINUTES", DefaultLoginWindowMinutes),
		RedisURL:           src.get("REDIS_URL", ""),
		MaxUploadBytes:     src.getInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		S3Bucket:           src.get("S3_BUCKET", DefaultS3Bucket),
		S3Region:           src.get("S3_REGION", DefaultS3Region),
		S3Endpoint:         src.get("S3_ENDPOINT", ""),
		S3AccessKey:        src.get("S3_ACCESS_KEY", ""),
		S3SecretKey:        src.get("S3_SECRET_KEY", ""),
	}
}

func envFileName(env string) string {
	switch env {
	case "production":
		return ".env.prod"
	case "test":
		return ".env.test"
	default:
		return ".env.dev"
	}
}

func readEnvFile(env string) map[string]string {
	path := filepath.Join("config", envFileName(env))
	values, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not read %s: %v", path, err)
		}
		return map[string]string{}
	}
	return values
}

func (s source) lookup(key string) (string, bool) {
	if value := os.Getenv(key); value != "" {
		return value, true
	}
	if value, ok := s.file[key]; ok && value != "" {
		return value, true
	}
	return "", false
}

func (s source) get(key, defaultVal string) string {
	if value, ok := s.lookup(key); ok {
		return value
	}
	return defaultVal
}

func (s source) mustGet(key string) string {
	if value, ok := s.lookup(key); ok {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func (s source) getInt(key string, defaultVal int) int {
	valStr, ok := s.lookup(key)
	if !ok {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func (s source) getBool(key string, defaultVal bool) bool {
	valStr, ok := s.lookup(key)
	if !ok {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
