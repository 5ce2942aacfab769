package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	S3    S3Config
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET, required"`
	// Token lifetimes in minutes; access defaults to 15, refresh to 7 days.
	AccessTokenTTLMin  int `env:"ACCESS_TOKEN_TTL_MIN,  default=15"`
	RefreshTokenTTLMin int `env:"REFRESH_TOKEN_TTL_MIN, default=10080"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=contacts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// S3Config points at the object store used for avatar images. Endpoint and
// PublicBaseURL support S3-compatible stores such as MinIO.
type S3Config struct {
	Endpoint      string `env:"S3_ENDPOINT"`
	Region        string `env:"S3_REGION,  default=us-east-1"`
	Bucket        string `env:"S3_BUCKET,  default=avatars"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
