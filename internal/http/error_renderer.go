package httpx

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	obserrors "github.com/Asad13/ad-campaign-builder-backend/internal/observability/errors"
)

// GenericErrorMessage is the only text clients see for server-side failures.
const GenericErrorMessage = "Something went wrong. Please try again later."

// ValidationErrorMessage accompanies field-level validation failures.
const ValidationErrorMessage = "Invalid input"

// errorData is the data member of a failed envelope.
type errorData struct {
	Errors map[string]string `json:"errors"`
}

// DetermineErrorStatus maps an error to its HTTP status. Soft credential
// failures are answered with 200 and status:false in the body.
func DetermineErrorStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}

	code := apperrors.GetCode(err)
	if code.Soft() {
		return http.StatusOK
	}
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusConflict
	case apperrors.ErrCodeUnauthenticated, apperrors.ErrCodeSessionExpired, apperrors.ErrCodeSessionRevoked:
		return http.StatusUnauthorized
	case apperrors.ErrCodeAccessDenied:
		return http.StatusForbidden
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError converts err into a failed envelope. Validation errors carry
// field messages in data.errors; 5xx causes are logged and never echoed.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := DetermineErrorStatus(err)

	var verrs validation.Errors
	if errors.As(err, &verrs) && status == http.StatusBadRequest {
		fields := make(map[string]string, len(verrs))
		for name, fe := range verrs {
			if fe != nil {
				fields[name] = fe.Error()
			}
		}
		WriteJSON(w, status, Envelope{Message: ValidationErrorMessage, Data: errorData{Errors: fields}})
		return
	}

	if status >= http.StatusInternalServerError {
		LoggerFrom(r.Context()).ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error_class", obserrors.Classify(err),
			"error", err,
		)
		WriteJSON(w, status, Envelope{Message: GenericErrorMessage})
		return
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		WriteJSON(w, status, Envelope{Message: GenericErrorMessage})
		return
	}
	env := Envelope{Message: appErr.Message}
	if appErr.Field != "" {
		env.Data = errorData{Errors: map[string]string{appErr.Field: appErr.Message}}
	}
	WriteJSON(w, status, env)
}
