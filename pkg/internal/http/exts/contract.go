package exts

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

// ResolveContract picks the contract a request targets, the address query
// parameter overrides the configured default.
func ResolveContract(c *fiber.Ctx, fallback string) string {
	if address := strings.TrimSpace(c.Query("address")); len(address) > 0 {
		return address
	}
	return fallback
}

func ValidateAddress(address string) error {
	return validation.Var(address, "required,eth_addr")
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

func MissingContract(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusInternalServerError, "Missing CONTRACT_ADDRESS", nil)
}
