package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const uniqueViolation = "23505"

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetAddresses(ctx context.Context, id uuid.UUID) ([]models.Address, error)
	SetAddresses(ctx context.Context, id uuid.UUID, addresses []models.Address) error
	UpdateProfile(ctx context.Context, id uuid.UUID, profile models.Profile) (*models.User, error)
	SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users(email, password, display_name, addresses, created_at, updated_at)
		VALUES($1, $2, $3, '[]', NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, user.Email, user.Password, user.DisplayName).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrEmailTaken
		}

		return fmt.Errorf("failed to create user: %w", err)
	}

	user.Addresses = []models.Address{}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, email, password, display_name, phone, address, photo_url, addresses, created_at, updated_at
		FROM users
		WHERE email = $1`

	return scanUser(r.DB.QueryRowContext(dbCtx, query, email), true)
}

func (r *userRepository) GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, email, display_name, phone, address, photo_url, addresses, created_at, updated_at
		FROM users
		WHERE id = $1`

	return scanUser(r.DB.QueryRowContext(dbCtx, query, id), false)
}

func scanUser(row *sql.Row, withPassword bool) (*models.User, error) {

	user := &models.User{}
	var addresses []byte

	dest := []any{&user.ID, &user.Email}
	if withPassword {
		dest = append(dest, &user.Password)
	}
	dest = append(dest, &user.DisplayName, &user.Phone, &user.Address, &user.PhotoURL, &addresses, &user.CreatedAt, &user.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	list, err := decodeAddresses(addresses)
	if err != nil {
		return nil, err
	}
	user.Addresses = list

	return user, nil
}

func (r *userRepository) GetAddresses(ctx context.Context, id uuid.UUID) ([]models.Address, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT addresses FROM users WHERE id = $1`

	var raw []byte
	if err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to get addresses: %w", err)
	}

	return decodeAddresses(raw)
}

// SetAddresses replaces the whole address list. Concurrent writers race and
// the last one wins.
func (r *userRepository) SetAddresses(ctx context.Context, id uuid.UUID, addresses []models.Address) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if addresses == nil {
		addresses = []models.Address{}
	}

	data, err := json.Marshal(addresses)
	if err != nil {
		return fmt.Errorf("failed to marshal addresses: %w", err)
	}

	query := `UPDATE users SET addresses = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, data, id)
	if err != nil {
		return fmt.Errorf("failed to update addresses: %w", err)
	}

	return expectOneRow(result, ErrUserNotFound)
}

// UpdateProfile merges the profile fields into the user document. The
// address book, email and photo are left alone.
func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile models.Profile) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users SET display_name = $1, phone = $2, address = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, email, display_name, phone, address, photo_url, addresses, created_at, updated_at`

	return scanUser(r.DB.QueryRowContext(dbCtx, query, profile.DisplayName, profile.Phone, profile.Address, id), false)
}

func (r *userRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET photo_url = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, url, id)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}

	return expectOneRow(result, ErrUserNotFound)
}

func decodeAddresses(raw []byte) ([]models.Address, error) {

	addresses := []models.Address{}
	if len(raw) == 0 {
		return addresses, nil
	}

	if err := json.Unmarshal(raw, &addresses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal addresses: %w", err)
	}

	return addresses, nil
}

func expectOneRow(result sql.Result, notFound error) error {

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return notFound
	}

	return nil
}
