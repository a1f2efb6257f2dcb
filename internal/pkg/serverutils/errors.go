package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError carries an HTTP status through the service layer.
type AppError struct {
	Code    int
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequest(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewNotFound(resource string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: resource + " not found"}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

func NewPayloadTooLarge(message string) *AppError {
	return &AppError{Code: fiber.StatusRequestEntityTooLarge, Message: message}
}

// NewValidation is a synchronous input failure; details are rendered under "errors".
func NewValidation(message string, details any) *AppError {
	return &AppError{Code: fiber.StatusUnprocessableEntity, Message: message, Details: details}
}

// NewUpstream wraps a failed call to an external engine or service.
func NewUpstream(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
