package models

import (
	"testing"
	"time"
)

func TestApplication_SubmissionDate(t *testing.T) {
	app := Application{CreatedAt: time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC)}

	if got, want := app.SubmissionDate(), "Mar 07, 2025"; got != want {
		t.Errorf("SubmissionDate() = %q, want %q", got, want)
	}
}

func TestApplication_PointKey(t *testing.T) {
	app := Application{ID: 42}

	if got := app.PointKey(); got != "42" {
		t.Errorf("PointKey() = %q, want %q", got, "42")
	}
}
