package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, index *IndexHandler, admin *AdminHandler, api *APIHandler, sessions *Sessions) {
	app.Get("/", index.HandleIndex)
	app.Post("/", index.HandleSubmit)

	requireAdmin := sessions.RequireAdmin()

	app.Get("/admin", admin.HandleDashboard)
	app.Post("/admin/login", admin.HandleLogin)
	app.Get("/admin/logout", admin.HandleLogout)
	app.Get("/admin/export", requireAdmin, admin.HandleExport)
	app.Get("/admin/application/:id", requireAdmin, admin.HandleDetail)
	app.Get("/admin/application/:id/resume", requireAdmin, admin.HandleResume)
	app.Post("/admin/application/:id/delete", requireAdmin, admin.HandleDelete)

	v1 := app.Group("/api/v1")
	v1.Get("/health", api.HandleHealth)
	v1.Get("/jobs", api.HandleJobs)
}

// NewErrorHandler answers API routes with JSON and pages with plain text.
// An oversized upload to a page is sent back to the form with a flash.
func NewErrorHandler(sessions *Sessions, maxFileSize int64) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
				"code":  code,
			})
		}

		switch code {
		case fiber.StatusNotFound:
			return c.Status(code).SendString("Page not found.")
		case fiber.StatusRequestEntityTooLarge:
			sessions.Flash(c, fileTooLargeMessage(maxFileSize))
			return c.Redirect("/")
		default:
			return c.Status(code).SendString("An internal server error occurred. Please try again later.")
		}
	}
}
