package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Cache Cache

	Redis Redis

	Gateways Gateways `validate:"required"`

	History History

	Tracing Tracing
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Kafka struct {
	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`

	// OrderRequestsTopic carries create-order requests, NotificationsTopic
	// receives lifecycle events when notifications are sent through kafka.
	OrderRequestsTopic string `validate:"required"`
	NotificationsTopic string `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

type Redis struct {
	Addr     string `validate:"required,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`
}

// Gateways toggles every collaborator between its mock and real backend.
type Gateways struct {
	Timeout time.Duration `validate:"gt=0"`

	InventoryMock bool
	InventoryURL  string `validate:"required,url"`

	PaymentMock bool
	PaymentURL  string `validate:"required,url"`

	ShippingMock bool
	ShippingURL  string `validate:"required,url"`
	// ShipmentStore selects where the mock shipping progression keeps its state.
	ShipmentStore    string `validate:"oneof=memory redis"`
	ShippingParallel int    `validate:"gte=1"`

	// Notifier is one of mock, http or kafka.
	Notifier        string `validate:"oneof=mock http kafka"`
	NotificationURL string `validate:"required,url"`
}

type History struct {
	PageSize int `validate:"gte=1"`
}

// Tracing exports spans to a jaeger collector when Endpoint is set.
type Tracing struct {
	ServiceName string `validate:"required"`
	Endpoint    string `validate:"omitempty,url"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			GroupID:            env("KAFKA_GROUP_ID", "order-orchestrator"),
			Brokers:            strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),
			OrderRequestsTopic: env("KAFKA_ORDER_REQUESTS_TOPIC", "order-requests"),
			NotificationsTopic: env("KAFKA_NOTIFICATIONS_TOPIC", "order-notifications"),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "orders"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 10*time.Minute),
		},

		Redis: Redis{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},

		Gateways: Gateways{
			Timeout: envDuration("GATEWAY_TIMEOUT", 5*time.Second),

			InventoryMock: envBool("INVENTORY_MOCK", true),
			InventoryURL:  env("INVENTORY_SERVICE_URL", "http://127.0.0.1:8002/v1/inventory"),

			PaymentMock: envBool("PAYMENT_MOCK", true),
			PaymentURL:  env("PAYMENT_SERVICE_URL", "http://127.0.0.1:8003/v1/payments"),

			ShippingMock:     envBool("SHIPPING_MOCK", true),
			ShippingURL:      env("SHIPPING_SERVICE_URL", "http://127.0.0.1:8004/v1/shipping"),
			ShipmentStore:    env("SHIPMENT_STORE", "memory"),
			ShippingParallel: envInt("SHIPPING_BATCH_PARALLEL", 8),

			Notifier:        env("NOTIFIER", "mock"),
			NotificationURL: env("NOTIFICATION_SERVICE_URL", "http://127.0.0.1:5000/v1/notifications"),
		},

		History: History{
			PageSize: envInt("HISTORY_PAGE_SIZE", 3),
		},

		Tracing: Tracing{
			ServiceName: env("SERVICE_NAME", "order-orchestrator"),
			Endpoint:    env("JAEGER_ENDPOINT", ""),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
