package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse - тело любого ответа с ошибкой. Field заполняется только
// для ошибок валидации формы.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Invalid answers 400 and names the offending form field.
func Invalid(c *fiber.Ctx, field, message string) error {
	return JSON(c, fiber.StatusBadRequest, ErrorResponse{Message: message, Field: field})
}
