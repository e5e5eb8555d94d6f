package errors

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResp carries the HTTP status an operation failure maps to. Handlers
// never inspect the code themselves, helpers.RespError does the mapping.
type ErrorResp struct {
	Code    int
	Message string
}

func (e *ErrorResp) Error() string {
	return e.Message
}

func BadRequest(message string) error {
	return &ErrorResp{Code: fiber.StatusBadRequest, Message: message}
}

func UnauthorizedError(message string) error {
	return &ErrorResp{Code: fiber.StatusUnauthorized, Message: message}
}

func ForbiddenError(message string) error {
	return &ErrorResp{Code: fiber.StatusForbidden, Message: message}
}

func NotFoundError(message string) error {
	return &ErrorResp{Code: fiber.StatusNotFound, Message: message}
}

func Conflict(message string) error {
	return &ErrorResp{Code: fiber.StatusConflict, Message: message}
}

func InternalServerError(message string) error {
	return &ErrorResp{Code: fiber.StatusInternalServerError, Message: message}
}
