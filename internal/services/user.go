package service

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	models "github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"
)

const photoKeyPrefix = "profile_photos/"

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, claims *models.Claims) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
	UploadPhoto(ctx context.Context, id uuid.UUID, contentType string, data []byte) (string, error)
}

type userService struct {
	repo        repository.UserRepository
	rateLimiter repository.RateLimitRepository
	tokens      repository.TokenRepository
	blobs       storage.BlobStore
	jwtKey      []byte
	tokenTTL    time.Duration
	sanitizer   *bluemonday.Policy
	now         func() time.Time
}

func NewUserService(repo repository.UserRepository, rateLimiter repository.RateLimitRepository, tokens repository.TokenRepository, blobs storage.BlobStore, jwtKey []byte, tokenTTL time.Duration) UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &userService{
		repo:        repo,
		rateLimiter: rateLimiter,
		tokens:      tokens,
		blobs:       blobs,
		jwtKey:      jwtKey,
		tokenTTL:    tokenTTL,
		sanitizer:   bluemonday.StrictPolicy(),
		now:         time.Now,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	if err != nil && !stdErrors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.DatabaseError("Failed to check email").WithError(err)
	}

	displayName := s.clean(req.DisplayName)
	if displayName == "" {
		return nil, errors.AddValidationError("displayName", "must contain text")
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Email:       req.Email,
		Password:    string(hashedPassword),
		DisplayName: displayName,
		Addresses:   []models.Address{},
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		// Two registrations for the same email can both pass the lookup above.
		if stdErrors.Is(err, repository.ErrEmailTaken) {
			return nil, errors.DuplicateEntryError("Email already registered").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil

}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	// check rate limit
	limit, err := s.rateLimiter.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !limit.Allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: limit.RetryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil && !stdErrors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.DatabaseError("Failed to look up user").WithError(err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: limit.Remaining,
		}, nil
	}

	now := s.now()
	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	// Generate Token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil

}

// Logout revokes the presented token until it would have expired anyway.
func (s *userService) Logout(ctx context.Context, claims *models.Claims) error {

	if claims == nil || claims.ID == "" {
		return errors.BadRequestError("Token cannot be revoked")
	}

	until := s.now().Add(s.tokenTTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}

	if err := s.tokens.Revoke(ctx, claims.ID, until); err != nil {
		return errors.ThirdPartyError("Failed to sign out").WithError(err)
	}

	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserById(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}

	return user, nil

}

// UpdateProfile replaces the editable profile fields. The email address and
// photo are not touched.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {

	profile := models.Profile{
		DisplayName: s.clean(req.DisplayName),
		Phone:       s.clean(req.Phone),
		Address:     s.clean(req.Address),
	}

	if profile.DisplayName == "" {
		return nil, errors.AddValidationError("displayName", "must contain text")
	}

	user, err := s.repo.UpdateProfile(ctx, id, profile)
	if err != nil {
		return nil, userLookupError(err)
	}

	return user, nil
}

// UploadPhoto stores an image as the user's profile photo and returns its URL.
func (s *userService) UploadPhoto(ctx context.Context, id uuid.UUID, contentType string, data []byte) (string, error) {

	if len(data) == 0 {
		return "", errors.ValidationError("Photo is empty")
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.ValidationError("Only image uploads are allowed").WithDetail(contentType)
	}

	url, err := s.blobs.Put(ctx, photoKeyPrefix+id.String(), storage.Blob{ContentType: contentType, Data: data})
	if err != nil {
		return "", errors.ThirdPartyError("Failed to store photo").WithError(err)
	}

	if err := s.repo.SetPhotoURL(ctx, id, url); err != nil {
		return "", userLookupError(err)
	}

	return url, nil
}

func (s *userService) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(strings.TrimSpace(text)))
}

func userLookupError(err error) error {
	if stdErrors.Is(err, repository.ErrUserNotFound) {
		return errors.NotFoundError("User not found").WithError(err)
	}

	return errors.DatabaseError("Failed to access user").WithError(err)
}
