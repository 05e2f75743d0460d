package admin

import (
	"crypto/subtle"
	"strings"

	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// requireAdminToken rejects every request when no token is configured.
func requireAdminToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		given := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if len(token) == 0 || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			return fiber.NewError(fiber.StatusForbidden, "admin token required")
		}
		return c.Next()
	}
}

func adminTriggerChainProbe(prober *services.ChainProber) fiber.Handler {
	return func(c *fiber.Ctx) error {
		go prober.DoChainProbeTask()

		return c.SendStatus(fiber.StatusOK)
	}
}
