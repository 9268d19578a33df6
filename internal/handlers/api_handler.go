package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type APIHandler struct {
	jobs      services.JobListingService
	jobsCount int
}

func NewAPIHandler(jobs services.JobListingService, jobsCount int) *APIHandler {
	return &APIHandler{jobs: jobs, jobsCount: jobsCount}
}

// HandleHealth handles GET /api/v1/health
func (h *APIHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
	})
}

// HandleJobs handles GET /api/v1/jobs
func (h *APIHandler) HandleJobs(c *fiber.Ctx) error {
	count := c.QueryInt("count", h.jobsCount)
	if count < 1 || count > 20 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "count must be between 1 and 20",
		})
	}

	listings, err := h.jobs.Listings(c.UserContext(), count)
	if err != nil {
		log.Printf("⚠️  Error fetching job listings: %v\n", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "job listings unavailable",
		})
	}

	return c.JSON(models.JobListingsResponse{
		Jobs:  listings,
		Count: len(listings),
	})
}
