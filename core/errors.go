package core

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput        = "QUARTERS_BAD_INPUT"
	ErrorUnauthorized    = "QUARTERS_UNAUTHORIZED"
	ErrorForbidden       = "QUARTERS_FORBIDDEN"
	ErrorNotFound        = "QUARTERS_NOT_FOUND"
	ErrorRateLimited     = "QUARTERS_RATE_LIMITED"
	ErrorRequestRejected = "QUARTERS_REQUEST_REJECTED"
	ErrorExternalFailure = "QUARTERS_EXTERNAL_FAILURE"
	ErrorDecodeFailed    = "QUARTERS_DECODE_FAILED"
	ErrorCallCanceled    = "QUARTERS_CALL_CANCELED"
	ErrorAlreadyExecuted = "QUARTERS_CALL_ALREADY_EXECUTED"
	ErrorInternal        = "QUARTERS_INTERNAL_ERROR"
)

func newError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return goerrors.New(message, category).
		WithCode(httpStatusForCategory(category)).
		WithTextCode(textCode)
}

func wrapError(source error, category goerrors.Category, message string, textCode string) *goerrors.Error {
	if source == nil {
		return newError(message, category, textCode)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(httpStatusForCategory(category)).
		WithTextCode(textCode)
	// Wrap keeps the category of a wrapped *goerrors.Error.
	err.Category = category
	return err
}

// statusError maps a non-2xx API response. The raw body travels in the
// metadata since server error payloads are not parsed.
func statusError(operation Operation, statusCode int, body []byte) *goerrors.Error {
	category, textCode := classifyStatus(statusCode)
	err := goerrors.New("quarters: "+string(operation)+" returned "+http.StatusText(statusCode), category).
		WithCode(statusCode).
		WithTextCode(textCode)
	err.WithMetadata(map[string]any{
		"operation":     string(operation),
		"status_code":   statusCode,
		"response_body": string(body),
	})
	return err
}

func classifyStatus(statusCode int) (goerrors.Category, string) {
	switch {
	case statusCode == http.StatusUnauthorized:
		return goerrors.CategoryAuth, ErrorUnauthorized
	case statusCode == http.StatusForbidden:
		return goerrors.CategoryAuthz, ErrorForbidden
	case statusCode == http.StatusNotFound:
		return goerrors.CategoryNotFound, ErrorNotFound
	case statusCode == http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit, ErrorRateLimited
	case statusCode >= 400 && statusCode < 500:
		return goerrors.CategoryBadInput, ErrorRequestRejected
	default:
		return goerrors.CategoryExternal, ErrorExternalFailure
	}
}

// MapError normalizes any error into the go-errors envelope used by the client.
func MapError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapError(err, goerrors.CategoryOperation, "quarters: call canceled", ErrorCallCanceled)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newError(err.Error(), goerrors.CategoryBadInput, ErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureErrorEnvelope(mapped)
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = httpStatusForCategory(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryAuth:
		return ErrorUnauthorized
	case goerrors.CategoryAuthz:
		return ErrorForbidden
	case goerrors.CategoryNotFound:
		return ErrorNotFound
	case goerrors.CategoryRateLimit:
		return ErrorRateLimited
	case goerrors.CategoryExternal:
		return ErrorExternalFailure
	case goerrors.CategoryOperation:
		return ErrorCallCanceled
	case goerrors.CategoryConflict:
		return ErrorAlreadyExecuted
	default:
		return ErrorInternal
	}
}

func httpStatusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
