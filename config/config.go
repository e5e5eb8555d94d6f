package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer    HttpServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	MessageStream MessageStreamConfig
	HttpClient    HttpClientConfig
	UserService   UserServiceConfig
	HotelService  HotelServiceConfig
	Stripe        StripeConfig
}

type HttpServerConfig struct {
	Port string `envconfig:"HTTP_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	Port         string `envconfig:"DB_PORT" default:"5432"`
	Username     string `envconfig:"DB_USERNAME" default:"postgres"`
	Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name         string `envconfig:"DB_NAME" default:"hotel_booking"`
	SSLMode      string `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"AMQP_HOST" default:"localhost"`
	Port     string `envconfig:"AMQP_PORT" default:"5672"`
	Username string `envconfig:"AMQP_USERNAME" default:"guest"`
	Password string `envconfig:"AMQP_PASSWORD" default:"guest"`
}

type HttpClientConfig struct {
	Type               string `envconfig:"HTTP_CLIENT_TYPE" default:"consecutive"`
	Threshold          int64  `envconfig:"HTTP_CLIENT_THRESHOLD" default:"5"`
	TimeoutSeconds     int    `envconfig:"HTTP_CLIENT_TIMEOUT_SECONDS" default:"10"`
	MaxIdleConnections int    `envconfig:"HTTP_CLIENT_MAX_IDLE_CONNECTIONS" default:"100"`
}

type UserServiceConfig struct {
	Host string `envconfig:"USER_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"USER_SERVICE_PORT" default:"8081"`
}

type HotelServiceConfig struct {
	Host        string `envconfig:"HOTEL_SERVICE_HOST" default:"localhost"`
	Port        string `envconfig:"HOTEL_SERVICE_PORT" default:"8082"`
	CacheTTLSec int    `envconfig:"HOTEL_CACHE_TTL_SECONDS" default:"300"`
}

type StripeConfig struct {
	SecretKey      string `envconfig:"STRIPE_SECRET_KEY"`
	WebhookSecret  string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	ReturnURL      string `envconfig:"STRIPE_RETURN_URL" default:"http://localhost:5173"`
	TimeoutSeconds int    `envconfig:"STRIPE_TIMEOUT_SECONDS" default:"15"`
}

func InitConfig() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return &cfg
}
