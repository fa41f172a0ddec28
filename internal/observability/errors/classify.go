package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
)

// Classify returns a short error class suitable for log fields and metric labels.
// AppErrors are classified by code; anything else by the innermost concrete type
// in snake_case-ish form (e.g. "pgconn_pgerror").
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		var appErr *apperrors.AppError
		if inner := innermost(err); code == apperrors.ErrCodeInternal && !goerrors.As(inner, &appErr) {
			return string(code) + ":" + typeName(inner)
		}
		return string(code)
	}
	return typeName(innermost(err))
}

func innermost(err error) error {
	for {
		next := goerrors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	name := strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
	if name == "" {
		return "unknown"
	}
	return name
}
