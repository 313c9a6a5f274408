package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Auth        *AuthHandler
	Campaigns   *CampaignHandler
	Assets      *AssetHandler
	Uploads     *UploadHandler
	Generations *GenerationHandler
}

// Limits holds the rate limiting middleware per route group. Nil entries are skipped.
type Limits struct {
	Generation fiber.Handler
	Upload     fiber.Handler
}

func chain(mw fiber.Handler, h fiber.Handler) []fiber.Handler {
	if mw == nil {
		return []fiber.Handler{h}
	}
	return []fiber.Handler{mw, h}
}

// RegisterRoutes mounts the base, ForwardAuth and authenticated API routes
func RegisterRoutes(app *fiber.App, h Handlers, authenticate fiber.Handler, limits Limits) {
	// Base URL - timestamp
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"timestamp": time.Now().Unix(),
		})
	})

	// ForwardAuth verification endpoint (internal, called by Traefik)
	app.Get("/auth/verify", h.Auth.Verify)

	api := app.Group("/api", authenticate)

	campaigns := api.Group("/campaigns")
	campaigns.Get("/", h.Campaigns.List)
	campaigns.Post("/", chain(limits.Generation, h.Campaigns.Create)...)
	campaigns.Get("/:id", h.Campaigns.Get)
	campaigns.Put("/:id", h.Campaigns.Update)
	campaigns.Delete("/:id", h.Campaigns.Delete)
	campaigns.Get("/:id/await", h.Campaigns.Await)
	campaigns.Get("/:id/asset", h.Assets.ByCampaign)

	assets := api.Group("/assets")
	assets.Get("/", h.Assets.List)
	assets.Get("/:id", h.Assets.Get)
	assets.Put("/:id", h.Assets.Update)
	assets.Delete("/:id", h.Assets.Delete)
	assets.Post("/:id/creative", chain(limits.Upload, h.Uploads.Creative)...)

	generations := api.Group("/generations")
	generations.Post("/start", chain(limits.Generation, h.Generations.Start)...)
	generations.Get("/status/:jobId", h.Generations.Status)
	generations.Post("/cancel/:jobId", h.Generations.Cancel)
}
