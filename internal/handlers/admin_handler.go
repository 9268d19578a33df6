package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const similarApplicationsLimit = 3

type AdminHandler struct {
	apps     services.ApplicationService
	auth     services.AuthService
	storage  services.StorageService
	sessions *Sessions
}

func NewAdminHandler(
	apps services.ApplicationService,
	auth services.AuthService,
	storage services.StorageService,
	sessions *Sessions,
) *AdminHandler {
	return &AdminHandler{
		apps:     apps,
		auth:     auth,
		storage:  storage,
		sessions: sessions,
	}
}

// HandleDashboard handles GET /admin
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	flash := h.sessions.PopFlash(c)

	if !h.sessions.IsAdmin(c) {
		return c.Render("admin_login", fiber.Map{
			"Title": "Admin Login",
			"Flash": flash,
		}, "layouts/main")
	}

	applications, err := h.apps.List()
	if err != nil {
		log.Printf("❌ Failed to list applications: %v\n", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load applications")
	}

	return c.Render("admin_dashboard", fiber.Map{
		"Title":        "Admin Dashboard",
		"Flash":        flash,
		"Applications": applications,
	}, "layouts/main")
}

// HandleLogin handles POST /admin/login
func (h *AdminHandler) HandleLogin(c *fiber.Ctx) error {
	err := h.auth.Authenticate(c.FormValue("username"), c.FormValue("password"))
	switch {
	case err == nil:
		h.sessions.Login(c)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.sessions.Flash(c, "Invalid username or password")
	default:
		log.Printf("❌ Login error: %v\n", err)
		h.sessions.Flash(c, "Error during login. Please try again.")
	}
	return c.Redirect("/admin")
}

// HandleLogout handles GET /admin/logout
func (h *AdminHandler) HandleLogout(c *fiber.Ctx) error {
	h.sessions.Logout(c)
	return c.Redirect("/admin")
}

// HandleDetail handles GET /admin/application/:id
func (h *AdminHandler) HandleDetail(c *fiber.Ctx) error {
	app, ok := h.findApplication(c)
	if !ok {
		return c.Redirect("/admin")
	}

	var similar []models.SimilarApplication
	if h.apps.SimilarityEnabled() {
		var err error
		similar, err = h.apps.Similar(c.UserContext(), app.ID, similarApplicationsLimit)
		if err != nil {
			log.Printf("⚠️  Failed to find similar applications: %v\n", err)
		}
	}

	return c.Render("application_detail", fiber.Map{
		"Title":             app.Name,
		"Flash":             h.sessions.PopFlash(c),
		"Application":       app,
		"Similar":           similar,
		"SimilarityEnabled": h.apps.SimilarityEnabled(),
	}, "layouts/main")
}

// HandleResume handles GET /admin/application/:id/resume
func (h *AdminHandler) HandleResume(c *fiber.Ctx) error {
	app, ok := h.findApplication(c)
	if !ok {
		return c.Redirect("/admin")
	}

	if !h.storage.Exists(app.ResumePath) {
		h.sessions.Flash(c, "Resume not found")
		return c.Redirect("/admin/application/" + strconv.FormatUint(uint64(app.ID), 10))
	}

	return c.SendFile(app.ResumePath)
}

// HandleDelete handles POST /admin/application/:id/delete
func (h *AdminHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		h.sessions.Flash(c, "Application not found")
		return c.Redirect("/admin")
	}

	if err := h.apps.Delete(c.UserContext(), uint(id)); err != nil && !errors.Is(err, repositories.ErrApplicationNotFound) {
		log.Printf("❌ Failed to delete application %d: %v\n", id, err)
		h.sessions.Flash(c, "Failed to delete application")
		return c.Redirect("/admin")
	}

	h.sessions.Flash(c, "Application deleted successfully")
	return c.Redirect("/admin")
}

// HandleExport handles GET /admin/export
func (h *AdminHandler) HandleExport(c *fiber.Ctx) error {
	applications, err := h.apps.List()
	if err != nil {
		log.Printf("❌ Failed to list applications: %v\n", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load applications")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment("applications.xlsx")
	return services.ExportApplications(applications, c.Response().BodyWriter())
}

// findApplication loads the :id application, flashing when it does not exist.
func (h *AdminHandler) findApplication(c *fiber.Ctx) (*models.Application, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		h.sessions.Flash(c, "Application not found")
		return nil, false
	}

	app, err := h.apps.Get(uint(id))
	if err != nil {
		if !errors.Is(err, repositories.ErrApplicationNotFound) {
			log.Printf("❌ Failed to load application %d: %v\n", id, err)
		}
		h.sessions.Flash(c, "Application not found")
		return nil, false
	}
	return app, true
}
