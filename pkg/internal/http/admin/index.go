package admin

import (
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func MapControllers(app *fiber.App, baseURL string, prober *services.ChainProber, token string) {
	admin := app.Group(baseURL, requireAdminToken(token))
	{
		admin.Post("/probe", adminTriggerChainProbe(prober))
	}
}
