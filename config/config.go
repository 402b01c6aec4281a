package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Oracle    OracleConfig
	Directory DirectoryConfig
	Proctor   ProctorConfig
	Auth      AuthConfig
	Interview InterviewConfig
}

type ServerConfig struct {
	HTTPPort string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
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

type OracleConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

type DirectoryConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ProctorConfig struct {
	DetectorURL string
	Timeout     time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type InterviewConfig struct {
	AnswerTimeout time.Duration
	GraceTimeout  time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: getEnv("HTTP_PORT", "8765"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "postgres"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "fairhire"),
			Password: getEnv("DB_PASSWORD", "fairhire_password"),
			DBName:   getEnv("DB_NAME", "fairhire"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
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
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
		Oracle: OracleConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature: getEnvAsFloat("ORACLE_TEMPERATURE", 1.0),
			MaxTokens:   getEnvAsInt("ORACLE_MAX_TOKENS", 512),
		},
		Directory: DirectoryConfig{
			BaseURL: getEnv("DIRECTORY_URL", "http://localhost:8000"),
			Timeout: getEnvAsDuration("DIRECTORY_TIMEOUT", 10*time.Second),
		},
		Proctor: ProctorConfig{
			DetectorURL: getEnv("PROCTOR_DETECTOR_URL", "http://localhost:8001"),
			Timeout:     getEnvAsDuration("PROCTOR_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Interview: InterviewConfig{
			AnswerTimeout: getEnvAsDuration("ANSWER_TIMEOUT", 120*time.Second),
			GraceTimeout:  getEnvAsDuration("GRACE_TIMEOUT", 30*time.Second),
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
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
