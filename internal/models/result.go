package models

type JobListing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	DatePosted  string `json:"date_posted"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type JobListingsResponse struct {
	Jobs  []JobListing `json:"jobs"`
	Count int          `json:"count"`
}

type SimilarApplication struct {
	Application *Application
	Score       float32
}
