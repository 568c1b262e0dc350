package serverutils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the uniform failure envelope: {"ok": false, "error": code}.
func ErrorResponse(code string) fiber.Map {
	return fiber.Map{
		"ok":    false,
		"error": code,
	}
}
