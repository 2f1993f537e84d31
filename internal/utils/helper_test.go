package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name         string
		body         string
		expectedOK   bool
		expectedCode string
	}{
		{name: "Success - Valid body", body: `{"name":"x","quantity":2}`, expectedOK: true},
		{name: "Failure - Empty body", body: ``, expectedCode: appErrors.ErrCodeBadRequest},
		{name: "Failure - Malformed JSON", body: `{"name":`, expectedCode: appErrors.ErrCodeBadRequest},
		{name: "Failure - Validation", body: `{"name":"","quantity":0}`, expectedCode: appErrors.ErrCodeValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			var dest payload

			// Act
			ok := utils.ParseAndValidate(req, rr, &dest, validate)

			// Assert
			assert.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				assert.Equal(t, "x", dest.Name)
				return
			}

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp response.APIResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.expectedCode, resp.Error.Code)
		})
	}
}

func TestParseAndValidate_ValidationDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":0}`))
	rr := httptest.NewRecorder()

	ok := utils.ParseAndValidate(req, rr, &payload{}, validator.New())

	require.False(t, ok)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error.Details, "Field Name is required")
	assert.Contains(t, resp.Error.Details, "Field Quantity must be at least 1")
	assert.Len(t, resp.Error.Details, 2)
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name         string
		value        string
		expectedErr  bool
		expectedCode string
	}{
		{name: "Success - Valid UUID", value: id.String()},
		{name: "Failure - Missing", value: "", expectedErr: true, expectedCode: appErrors.ErrCodeBadRequest},
		{name: "Failure - Malformed", value: "not-a-uuid", expectedErr: true, expectedCode: appErrors.ErrCodeBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tc.value)

			got, err := utils.ParseID(req, "id")

			if !tc.expectedErr {
				require.NoError(t, err)
				assert.Equal(t, id, got)
				return
			}

			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tc.expectedCode, appErr.Code)
			assert.Equal(t, uuid.Nil, got)
		})
	}
}
