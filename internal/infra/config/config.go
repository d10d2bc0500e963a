package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env          string
	HTTPAddr     string
	MongoURI     string
	MongoDB      string
	ChatStore    string
	ThreadLimit  int
	JWTSecret    string
	JWTTTL       time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	ScyllaHosts  []string
	ScyllaSpace  string
	ScyllaUser   string
	ScyllaPass   string
	ScyllaWait   time.Duration
	S3Endpoint   string
	S3PublicURL  string
	S3AccessKey  string
	S3SecretKey  string
	S3Bucket     string
	S3UseSSL     bool
}

// Chat store backends selectable via CHAT_STORE.
const (
	ChatStoreMongo  = "mongo"
	ChatStoreScylla = "scylla"
	ChatStoreMemory = "memory"
)

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:         getEnv("APP_ENV", "dev"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "findmeroom"),
		ChatStore:   strings.ToLower(getEnv("CHAT_STORE", ChatStoreMongo)),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ScyllaSpace: getEnv("SCYLLA_KEYSPACE", "findmeroom_chat"),
		ScyllaUser:  strings.TrimSpace(os.Getenv("SCYLLA_USERNAME")),
		ScyllaPass:  strings.TrimSpace(os.Getenv("SCYLLA_PASSWORD")),
		KafkaTopic:  getEnv("KAFKA_CHAT_TOPIC", "chat.message-sent"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3PublicURL: getEnv("S3_PUBLIC_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:    getEnv("S3_BUCKET", "findmeroom-photos"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	cfg.ScyllaHosts = splitAndTrim(getEnv("SCYLLA_HOSTS", "localhost"))

	ttl, err := parseDurationEnv("JWT_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.JWTTTL = ttl

	wait, err := parseDurationEnv("SCYLLA_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ScyllaWait = wait

	limit, err := parseIntEnv("CHAT_THREAD_LIMIT", 100)
	if err != nil {
		return Config{}, err
	}
	cfg.ThreadLimit = limit

	useSSL, err := parseBoolEnv("S3_USE_SSL", false)
	if err != nil {
		return Config{}, err
	}
	cfg.S3UseSSL = useSSL
	if cfg.S3PublicURL == "" {
		cfg.S3PublicURL = cfg.S3Endpoint
	}

	switch cfg.ChatStore {
	case ChatStoreMongo, ChatStoreScylla, ChatStoreMemory:
	default:
		return Config{}, fmt.Errorf("unsupported CHAT_STORE: %q", cfg.ChatStore)
	}
	if cfg.ChatStore != ChatStoreMemory && cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.ChatStore == ChatStoreScylla && len(cfg.ScyllaHosts) == 0 {
		return Config{}, fmt.Errorf("SCYLLA_HOSTS is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
