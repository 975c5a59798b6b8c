// Package httpx holds the fiber glue shared by every handler package: the
// error renderer, request binding and access to the authenticated caller.
package httpx

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/validation"
	"github.com/gofiber/fiber/v2"
)

const callerKey = "caller_email"

type ErrorBody struct {
	Status           int                   `json:"status"`
	Message          string                `json:"message,omitempty"`
	Path             string                `json:"path"`
	Operation        string                `json:"operation"`
	Timestamp        time.Time             `json:"timestamp"`
	ValidationErrors []apperror.FieldError `json:"validation_errors,omitempty"`
}

// ErrorHandler renders every error returned by a handler as an ErrorBody.
// Storage and unexpected failures are logged and hidden behind a generic
// message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, message := classify(err)

	body := ErrorBody{
		Status:    status,
		Message:   message,
		Path:      c.Path(),
		Operation: c.Method() + " " + c.Route().Path,
		Timestamp: time.Now().UTC(),
	}

	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		body.ValidationErrors = verr.Fields
	}

	if status >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request failed", "path", body.Path, "status", status, "error", err)
	} else {
		slog.DebugContext(c.UserContext(), "request rejected", "path", body.Path, "status", status, "error", err)
	}

	return c.Status(status).JSON(body)
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest, apperror.ErrValidation.Error()
	case errors.Is(err, apperror.ErrNotFound),
		errors.Is(err, apperror.ErrUserNotFound),
		errors.Is(err, apperror.ErrImageNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, apperror.ErrConflict), errors.Is(err, apperror.ErrEmailAlreadyInUse):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, apperror.ErrForbidden):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, apperror.ErrUnauthenticated), errors.Is(err, apperror.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, apperror.ErrPayloadTooLarge):
		return fiber.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, apperror.ErrUnsupportedMediaType):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, apperror.ErrTooManyLoginAttempts):
		return fiber.StatusTooManyRequests, err.Error()
	case errors.Is(err, apperror.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable, "service temporarily unavailable"
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

// Bind parses the JSON body into dst and validates it.
func Bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return validation.Struct(dst)
}

// ParamID reads a positive int64 path parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &apperror.ValidationError{Fields: []apperror.FieldError{{
			Field: name,
			Error: name + " must be a positive integer",
		}}}
	}
	return id, nil
}

func SetCaller(c *fiber.Ctx, email string) {
	c.Locals(callerKey, email)
}

// CallerEmail returns the identity stored by the auth middleware.
func CallerEmail(c *fiber.Ctx) (string, error) {
	email, _ := c.Locals(callerKey).(string)
	if email == "" {
		return "", apperror.ErrUnauthenticated
	}
	return email, nil
}
