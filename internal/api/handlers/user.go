package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	models "github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const (
	defaultMaxPhotoBytes = 5 << 20
	photoFormField       = "photo"
)

type UserHandler struct {
	userService   service.UserService
	validator     *validator.Validate
	maxPhotoBytes int64
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New(), maxPhotoBytes: defaultMaxPhotoBytes}
}

// WithMaxPhotoBytes limits the size of profile photo uploads.
func (h *UserHandler) WithMaxPhotoBytes(n int64) *UserHandler {
	if n > 0 {
		h.maxPhotoBytes = n
	}

	return h
}

// Register godoc
//	@Summary		Register a new user
//	@Description	Creates an account with an email, password and display name.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.User				"Successfully registered user"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/users/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("User registration failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)

	}
}

// Login godoc
//	@Summary		Sign in
//	@Description	Exchanges credentials for a bearer token. Attempts are rate limited per email.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Login credentials"
//	@Success		200			{object}	models.LoginResponse	"Signed in"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid email or password"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			if resp.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
				logger.Warn("Login rate limited", slog.String("email", req.Email), slog.Int("retryAfter", resp.RetryAfter))
				response.Error(w, errors.TooManyRequestsError(resp.Message))
				return
			}

			logger.Warn("Invalid credentials", slog.String("email", req.Email), slog.Int("remainingTries", resp.RemainingTries))
			response.Error(w, errors.UnauthorizedError(resp.Message))
			return
		}

		logger.Info("User logged in", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)

	}
}

// Logout godoc
//	@Summary		Sign out
//	@Description	Revokes the bearer token used for this request.
//	@Tags			Users
//	@Produce		json
//	@Success		204	"Signed out"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/users/logout [post]
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		if err := h.userService.Logout(r.Context(), claims); err != nil {
			logger.Error("Logout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User logged out")
		response.NoContent(w)
	}
}

// Profile godoc
//	@Summary		Get the signed-in user's profile
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	models.User				"User profile"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"User not found"
//	@Security		BearerAuth
//	@Router			/users/profile [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("User not found", slog.String("userID", claims.UserID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User profile accessed", slog.String("userID", user.ID.String()))
		response.Success(w, http.StatusOK, user)
	}
}

// UpdateProfile godoc
//	@Summary		Update the signed-in user's profile
//	@Description	Replaces display name, phone and address. The email address cannot be changed.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		models.UpdateProfileRequest	true	"Profile fields"
//	@Success		200		{object}	models.User					"Updated profile"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"User not found"
//	@Security		BearerAuth
//	@Router			/users/profile [put]
func (h *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		var req models.UpdateProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid profile input")
			return
		}

		user, err := h.userService.UpdateProfile(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update profile", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User profile updated", slog.String("userID", user.ID.String()))
		response.Success(w, http.StatusOK, user)
	}
}

// UploadPhoto godoc
//	@Summary		Upload a profile photo
//	@Description	Stores an image sent as the multipart field "photo" and returns its URL.
//	@Tags			Users
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			photo	formData	file					true	"Image file"
//	@Success		200		{object}	map[string]string		"Photo URL"
//	@Failure		400		{object}	response.ErrorResponse	"Missing, oversized or non-image upload"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/users/profile/photo [post]
func (h *UserHandler) UploadPhoto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxPhotoBytes)

		file, _, err := r.FormFile(photoFormField)
		if err != nil {
			logger.Warn("Invalid photo upload", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("A photo file is required").WithDetail(err.Error()).WithError(err))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			response.Error(w, errors.BadRequestError("Failed to read photo").WithError(err))
			return
		}

		url, err := h.userService.UploadPhoto(r.Context(), claims.UserID, http.DetectContentType(data), data)
		if err != nil {
			logger.Error("Failed to upload photo", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Profile photo uploaded", slog.Int("bytes", len(data)))
		response.Success(w, http.StatusOK, map[string]string{"photoURL": url})
	}
}
