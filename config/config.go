package config

import (
	"os"
	"strconv"
	"time"
)

// Verification strategies selectable via AUTH_STRATEGY. The stub strategy
// accepts any non-empty token and must never be wired in production.
const (
	StrategyJWT  = "jwt"
	StrategyStub = "stub"
)

// Session store backends selectable via SESSION_STORE. The memory store keeps
// records in process and must never be wired in production.
const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Session  SessionConfig
}

type ServerConfig struct {
	HTTPPort   string
	GraphiQL   bool
	Production bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

type AuthConfig struct {
	// Strategy selects the token verification implementation, StrategyJWT or
	// StrategyStub. Wiring happens once in main, never by environment sniffing
	// inside the auth layer.
	Strategy  string
	JWTSecret string

	// DevKey, when non-empty, lets a client obtain an admin session without
	// the verifier. Leave empty in production.
	DevKey    string
	DevKeyExp time.Duration
}

type SessionConfig struct {
	// Store selects the session backend, SessionStoreRedis or
	// SessionStoreMemory.
	Store      string
	CookieName string
	TTL        time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:   getEnv("HTTP_PORT", "8000"),
			GraphiQL:   getEnvAsBool("GRAPHIQL", true),
			Production: getEnvAsBool("PRODUCTION", false),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_APP_URL", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB_NAME", "nutella"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "redis"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", "rabbitmq"),
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			User:     getEnv("RABBITMQ_USER", "admin"),
			Password: getEnv("RABBITMQ_PASSWORD", "admin"),
		},
		Auth: AuthConfig{
			Strategy:  getEnv("AUTH_STRATEGY", StrategyJWT),
			JWTSecret: getEnv("JWT_SECRET", "test-secret-key"),
			DevKey:    getEnv("DEV_KEY", ""),
			DevKeyExp: getEnvAsDuration("DEV_KEY_EXP", 24*time.Hour),
		},
		Session: SessionConfig{
			Store:      getEnv("SESSION_STORE", SessionStoreRedis),
			CookieName: getEnv("SESSION_COOKIE", "nutella.sid"),
			TTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
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
