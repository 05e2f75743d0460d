package api

import (
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/config"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	Reader *services.PollReader
	Prober *services.ChainProber
	Config config.Config
}

func MapAPIs(app *fiber.App, h *Handler) {
	app.Get("/health", getHealth)
	app.Get("/chain", h.getChain)
	app.Get("/contract", h.getContract)

	polls := app.Group("/polls")
	{
		polls.Get("/", h.listPolls)
		polls.Get("/:pollId", h.getPoll)
		polls.Get("/:pollId/voters/:voter", h.getPollVoter)
	}
}
