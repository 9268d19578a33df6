package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const resumeFormField = "resume_file"

type IndexHandler struct {
	submissions services.SubmissionService
	jobs        services.JobListingService
	sessions    *Sessions
	jobsCount   int
	maxFileSize int64
}

func NewIndexHandler(
	submissions services.SubmissionService,
	jobs services.JobListingService,
	sessions *Sessions,
	jobsCount int,
	maxFileSize int64,
) *IndexHandler {
	return &IndexHandler{
		submissions: submissions,
		jobs:        jobs,
		sessions:    sessions,
		jobsCount:   jobsCount,
		maxFileSize: maxFileSize,
	}
}

// HandleIndex handles GET /
func (h *IndexHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title":       "Resume Analyzer",
		"Flash":       h.sessions.PopFlash(c),
		"JobListings": h.listings(c.UserContext()),
	}, "layouts/main")
}

// HandleSubmit handles POST /
func (h *IndexHandler) HandleSubmit(c *fiber.Ctx) error {
	file, err := c.FormFile(resumeFormField)
	if err != nil {
		h.sessions.Flash(c, "No file part")
		return c.Redirect("/")
	}

	app, err := h.submissions.Submit(c.UserContext(), services.Submission{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
		File:  file,
	})

	switch {
	case err == nil:
		h.sessions.SetCurrentApplication(c, app.ID)
		return h.thankYou(c, "")
	case errors.Is(err, services.ErrNoFile):
		h.sessions.Flash(c, "No selected file")
		return c.Redirect("/")
	case errors.Is(err, services.ErrUnsupportedFileType):
		h.sessions.Flash(c, "File type not allowed. Please upload a PDF or DOCX file.")
		return c.Redirect("/")
	case errors.Is(err, services.ErrFileTooLarge):
		h.sessions.Flash(c, fileTooLargeMessage(h.maxFileSize))
		return c.Redirect("/")
	case errors.Is(err, services.ErrNoText):
		h.sessions.Flash(c, "Could not extract text from the resume. The file might be encrypted, damaged, or contain only images.")
		return c.Redirect("/")
	default:
		// The submitter never sees processing failures.
		log.Printf("❌ Error processing file: %v\n", err)
		return h.thankYou(c, "Your application has been received. Thank you!")
	}
}

func (h *IndexHandler) thankYou(c *fiber.Ctx, flash string) error {
	return c.Render("thank_you", fiber.Map{
		"Title": "Thank You",
		"Flash": flash,
	}, "layouts/main")
}

// listings never fails the page; an unavailable jobs API just hides the section.
func (h *IndexHandler) listings(ctx context.Context) []models.JobListing {
	if h.jobs == nil {
		return []models.JobListing{}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	listings, err := h.jobs.Listings(ctx, h.jobsCount)
	if err != nil {
		log.Printf("⚠️  Error fetching job listings: %v\n", err)
		return []models.JobListing{}
	}
	return listings
}

func fileTooLargeMessage(maxFileSize int64) string {
	return fmt.Sprintf("File too large. Maximum size is %dMB.", maxFileSize/(1024*1024))
}
