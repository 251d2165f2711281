package response

import (
	"time"

	apperrors "artisan/pkg/errors"
	"artisan/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error writes err as an error envelope. Errors that are not AppErrors are
// reported as INTERNAL_ERROR without leaking their text.
func Error(c *fiber.Ctx, err error) error {
	appErr := apperrors.As(err)
	if appErr.Status >= fiber.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Method(), c.Path(), err)
	}

	message := appErr.Message
	if appErr.Code == "INTERNAL_ERROR" {
		message = "An unexpected error occurred"
	}
	return c.Status(appErr.Status).JSON(Response{
		Success:   false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Error: &ErrorInfo{
			Code:    appErr.Code,
			Message: message,
			Details: appErr.Details,
		},
	})
}

// ErrorHandler is a fiber.ErrorHandler producing the same envelope for
// errors raised by fiber itself, such as unknown routes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		code := "BAD_REQUEST"
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		if fiberErr.Code >= fiber.StatusInternalServerError {
			code = "INTERNAL_ERROR"
		}
		err = apperrors.New(code, fiberErr.Message, fiberErr.Code, nil)
	}
	return Error(c, err)
}
