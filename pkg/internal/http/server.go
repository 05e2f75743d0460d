package http

import (
	"errors"

	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/config"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/http/admin"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

type App struct {
	app  *fiber.App
	bind string
}

func NewServer(cfg config.Config, reader *services.PollReader, prober *services.ChainProber) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Hypernet.Chainpoll",
		AppName:               "Hypernet.Chainpoll",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	api.MapAPIs(app, &api.Handler{
		Reader: reader,
		Prober: prober,
		Config: cfg,
	})
	if prober != nil {
		admin.MapControllers(app, "/admin", prober, cfg.AdminToken)
	}

	return &App{app: app, bind: cfg.Bind()}
}

// errorHandler keeps every failure in the {error} shape the API uses.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func (v *App) Listen() {
	log.Info().Str("bind", v.bind).Msg("Http server is starting...")
	if err := v.app.Listen(v.bind); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Shutdown() error {
	return v.app.Shutdown()
}
