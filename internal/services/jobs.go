package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const maxJobDescriptionRunes = 200

var ErrJobsNotConfigured = errors.New("job listings API credentials not configured")

type JobListingService interface {
	Listings(ctx context.Context, n int) ([]models.JobListing, error)
}

type JobListingConfig struct {
	APIKey   string
	APIHost  string
	APIURL   string
	Search   string
	Location string
	Timeout  time.Duration
}

type jobListingService struct {
	cfg  JobListingConfig
	perm func(n int) []int
}

func NewJobListingService(cfg JobListingConfig) JobListingService {
	return &jobListingService{
		cfg:  cfg,
		perm: rand.Perm,
	}
}

type upworkJob struct {
	Title           string `json:"title"`
	DescriptionText string `json:"description_text"`
	URL             string `json:"url"`
	DatePosted      string `json:"date_posted"`
}

// Listings fetches the current postings and returns n of them picked at random.
func (s *jobListingService) Listings(ctx context.Context, n int) ([]models.JobListing, error) {
	if s.cfg.APIKey == "" || s.cfg.APIHost == "" {
		return nil, ErrJobsNotConfigured
	}
	if n <= 0 {
		return []models.JobListing{}, nil
	}

	jobs, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]models.JobListing, 0, min(n, len(jobs)))
	for _, i := range s.perm(len(jobs)) {
		if len(listings) == n {
			break
		}
		listings = append(listings, toJobListing(jobs[i]))
	}

	return listings, nil
}

func (s *jobListingService) fetch(ctx context.Context) ([]upworkJob, error) {
	params := url.Values{}
	params.Set("search", s.cfg.Search)
	params.Set("location_filter", s.cfg.Location)

	agent := fiber.Get(s.cfg.APIURL)
	agent.Set("x-rapidapi-key", s.cfg.APIKey)
	agent.Set("x-rapidapi-host", s.cfg.APIHost)
	agent.QueryString(params.Encode())

	timeout := s.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	if err := agent.Parse(); err != nil {
		return nil, fmt.Errorf("failed to build job listings request: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to fetch job listings: %w", errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("job listings API returned status %d", code)
	}

	var jobs []upworkJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode job listings: %w", err)
	}

	return jobs, nil
}

func toJobListing(job upworkJob) models.JobListing {
	listing := models.JobListing{
		Title:       job.Title,
		Description: truncateRunes(job.DescriptionText, maxJobDescriptionRunes),
		URL:         job.URL,
		DatePosted:  job.DatePosted,
	}
	if listing.URL == "" {
		listing.URL = "#"
	}
	if listing.DatePosted == "" {
		listing.DatePosted = "Recent"
	}
	return listing
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
