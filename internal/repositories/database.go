package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB            *sql.DB
	Users         UserRepository
	Orders        OrderRepository
	Notifications NotificationRepository
}

// New opens a traced connection pool and builds every repository over it.
func New(ctx context.Context, cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewFromDB(db), nil
}

func NewFromDB(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		Users:         NewUserRepo(db),
		Orders:        NewOrderRepository(db),
		Notifications: NewNotificationRepo(db),
	}
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
