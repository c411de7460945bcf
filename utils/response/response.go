package response

import (
	"github.com/gofiber/fiber/v2"
)

// DatatableResponse is the listing envelope
type DatatableResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
	Total int64       `json:"total"`
}

// ValidationErrorResponse carries per-field messages
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// ErrorResponse carries a plain message
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetailResponse carries a plain message for failed default lookups
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Success returns a 200 response with data as the body
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent returns a 204 No Content response
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Datatable returns a listing page
func Datatable(c *fiber.Ctx, data interface{}, count int, total int64) error {
	if data == nil {
		data = []interface{}{}
	}
	return c.Status(fiber.StatusOK).JSON(DatatableResponse{
		Data:  data,
		Count: count,
		Total: total,
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{Error: message})
}

// ValidationError returns a 400 response with the field errors
func ValidationError(c *fiber.Ctx, errors map[string][]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{Errors: errors})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden returns a 403 Forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Access forbidden"
	}
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound returns a 404 Not Found response with an error message
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message)
}

// NotFoundDetail returns a 404 Not Found response with a detail message
func NotFoundDetail(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(DetailResponse{Detail: message})
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message)
}

// ServiceUnavailable returns a 503 Service Unavailable response
func ServiceUnavailable(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	return Error(c, fiber.StatusServiceUnavailable, message)
}
