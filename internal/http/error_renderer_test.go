package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
)

func TestDetermineErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"ozzo errors", validation.Errors{"email": errors.New("must be a valid email address")}, http.StatusBadRequest},
		{"validation", apperrors.Validation("bad"), http.StatusBadRequest},
		{"not found", apperrors.NotFound("missing"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("dup"), http.StatusConflict},
		{"foreign key", apperrors.New(apperrors.ErrCodeForeignKey, "fk"), http.StatusConflict},
		{"unauthenticated", apperrors.Unauthenticated("no"), http.StatusUnauthorized},
		{"session expired", apperrors.SessionExpired("old"), http.StatusUnauthorized},
		{"session revoked", apperrors.SessionRevoked("gone"), http.StatusUnauthorized},
		{"access denied", apperrors.AccessDenied("no"), http.StatusForbidden},
		{"invalid credentials is soft", apperrors.InvalidCredentials("x"), http.StatusOK},
		{"not verified is soft", apperrors.NotVerified("x"), http.StatusOK},
		{"password mismatch is soft", apperrors.PasswordMismatch("x"), http.StatusOK},
		{"timeout", apperrors.New(apperrors.ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{"canceled", apperrors.New(apperrors.ErrCodeCanceled, "gone"), http.StatusRequestTimeout},
		{"wrapped app error", fmt.Errorf("svc: %w", apperrors.NotFound("missing")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineErrorStatus(tt.err))
		})
	}
}

func TestWriteAppError(t *testing.T) {
	t.Run("field errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := validation.Errors{"email": errors.New("cannot be blank"), "password": nil}
		WriteAppError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Status)
		assert.Equal(t, ValidationErrorMessage, env.Message)
		var data errorData
		decodeData(t, env, &data)
		assert.Equal(t, map[string]string{"email": "cannot be blank"}, data.Errors)
	})

	t.Run("app error with field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: "Email already exists", Field: "email"}
		WriteAppError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Email already exists", env.Message)
		var data errorData
		decodeData(t, env, &data)
		assert.Equal(t, "Email already exists", data.Errors["email"])
	})

	t.Run("app error without field omits data", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteAppError(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.NotFound("User does not exist"))

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "User does not exist", env.Message)
		assert.Empty(t, env.Data)
	})

	t.Run("server errors are logged, not echoed", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&logs, nil))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req = req.WithContext(WithLogger(context.Background(), logger))

		rec := httptest.NewRecorder()
		WriteAppError(rec, req, fmt.Errorf("list members: %w", errors.New("pq: password authentication failed")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, GenericErrorMessage, env.Message)
		assert.NotContains(t, rec.Body.String(), "pq:")
		assert.Contains(t, logs.String(), "pq: password authentication failed")
		assert.Contains(t, logs.String(), `"path":"/api/v1/users"`)
	})
}
