package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-required:"true"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-required:"true"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

// CartConfig selects where carts are persisted between restarts.
// Backend is either "bolt" (a local file) or "redis".
type CartConfig struct {
	Backend        string        `yaml:"BACKEND" env:"CART_BACKEND" env-default:"bolt"`
	BoltPath       string        `yaml:"BOLT_PATH" env:"CART_BOLT_PATH" env-default:"data/carts.db"`
	PersistTimeout time.Duration `yaml:"PERSIST_TIMEOUT" env:"CART_PERSIST_TIMEOUT" env-default:"3s"`
	TTL            time.Duration `yaml:"TTL" env:"CART_TTL" env-default:"720h"`
	CheckoutTTL    time.Duration `yaml:"CHECKOUT_TTL" env:"CHECKOUT_TTL" env-default:"2h"`
	// IdleTTL should stay above CheckoutTTL; an open checkout holds its cart.
	IdleTTL time.Duration `yaml:"IDLE_TTL" env:"CART_IDLE_TTL" env-default:"6h"`
}

// Kafka.GroupID is a prefix; each instance consumes under its own group.
type Kafka struct {
	Brokers []string `yaml:"BROKERS" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	Topic   string   `yaml:"TOPIC" env:"KAFKA_TOPIC" env-default:"orders.placed"`
	GroupID string   `yaml:"GROUP_ID" env:"KAFKA_GROUP_ID" env-default:"storefront-history"`
	Enabled bool     `yaml:"ENABLED" env:"KAFKA_ENABLED" env-default:"false"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@storefront.local"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:""`
	ExporterProtocol string  `yaml:"EXPORTER_PROTOCOL" env:"OTEL_EXPORTER_OTLP_PROTOCOL" env-default:"http/protobuf"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

// Blob holds the profile photo store. PublicBaseURL prefixes the URLs handed
// back to clients.
type Blob struct {
	BoltPath      string `yaml:"BOLT_PATH" env:"BLOB_BOLT_PATH" env-default:"data/blobs.db"`
	PublicBaseURL string `yaml:"PUBLIC_BASE_URL" env:"BLOB_PUBLIC_BASE_URL" env-default:"http://localhost:8080"`
	MaxUploadMB   int64  `yaml:"MAX_UPLOAD_MB" env:"BLOB_MAX_UPLOAD_MB" env-default:"5"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Cache        CacheConfig  `yaml:"cache"`
	Cart         CartConfig   `yaml:"cart"`
	Kafka        Kafka        `yaml:"kafka"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Otel         Otel         `yaml:"otel"`
	Blob         Blob         `yaml:"blob"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
