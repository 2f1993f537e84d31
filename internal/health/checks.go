package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Endpoints struct {
	DB          *sql.DB
	RedisClient *redis.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		},
	}

	// Broker outages degrade the report without failing it.
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		checks = append(checks, health.Config{
			Name:      "kafka",
			Timeout:   3 * time.Second,
			SkipOnErr: true,
			Check:     kafkaCheck(cfg.Kafka.Brokers[0]),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func kafkaCheck(broker string) health.CheckFunc {
	return func(ctx context.Context) error {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			return fmt.Errorf("failed to reach kafka broker %s: %w", broker, err)
		}
		defer conn.Close()

		if _, err := conn.Brokers(); err != nil {
			return fmt.Errorf("failed to list kafka brokers: %w", err)
		}

		return nil
	}
}
