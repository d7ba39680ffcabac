package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	History *HistoryHandler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	history := api.Group("/history")
	history.Get("/", deps.History.Query)
	history.Get("/summary", deps.History.Summary)
	history.Get("/export.csv", deps.History.Export)
	history.Get("/meta", deps.History.Meta)
	history.Post("/refresh", deps.History.Refresh)
}
