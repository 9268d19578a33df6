package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

const wellFormedReply = `Professional Domain: Data Engineering

Key Skills:
* Python
* SQL
* Spark
* Airflow

Missing Skills:
* Kafka
* Scala
* dbt

Resume Score: 8/10

Resume Overview:
Solid pipeline experience with room to grow in streaming.`

type submissionFixture struct {
	service   SubmissionService
	repo      repositories.ApplicationRepository
	uploadDir string
	gemini    *fakeGemini
	extractor *fakeExtractor
	indexer   *fakeIndexer
}

func newSubmissionFixture(t *testing.T, maxFileSize int64) *submissionFixture {
	t.Helper()

	f := &submissionFixture{
		repo:      repositories.NewApplicationRepository(newTestDB(t)),
		uploadDir: t.TempDir(),
		gemini:    &fakeGemini{reply: wellFormedReply},
		extractor: &fakeExtractor{text: "Jane Doe\nData engineer with Python and SQL"},
		indexer:   &fakeIndexer{},
	}
	storage := NewStorageService(f.uploadDir, []string{".pdf", ".docx"})
	f.service = NewSubmissionService(f.repo, storage, f.extractor, f.gemini, f.indexer, maxFileSize, 2)
	return f
}

func (f *submissionFixture) uploads(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.uploadDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSubmissionService_Submit(t *testing.T) {
	f := newSubmissionFixture(t, 1024)

	app, err := f.service.Submit(context.Background(), Submission{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		File:  newFileHeader(t, "jane.pdf", []byte("%PDF-1.4 resume")),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if app.ID == 0 {
		t.Fatal("Submit() did not persist the application")
	}
	if app.Domain != "DATA ENGINEERING" {
		t.Errorf("Domain = %q, want DATA ENGINEERING", app.Domain)
	}
	if got := strings.Join(app.KeySkills, ","); got != "Python,SQL,Spark,Airflow" {
		t.Errorf("KeySkills = %q", got)
	}
	if got := strings.Join(app.MissingSkills, ","); got != "Kafka,Scala,dbt" {
		t.Errorf("MissingSkills = %q", got)
	}
	if app.Score != 8 {
		t.Errorf("Score = %d, want 8", app.Score)
	}
	if app.Analysis != wellFormedReply {
		t.Error("Analysis does not hold the raw reply")
	}
	if app.OriginalFilename != "jane.pdf" {
		t.Errorf("OriginalFilename = %q", app.OriginalFilename)
	}
	if _, err := os.Stat(app.ResumePath); err != nil {
		t.Errorf("stored resume missing: %v", err)
	}

	if len(f.gemini.prompts) != 1 || !strings.HasSuffix(f.gemini.prompts[0], f.extractor.text) {
		t.Errorf("prompt did not end with the resume text: %q", f.gemini.prompts)
	}
	if len(f.indexer.enqueued) != 1 || f.indexer.enqueued[0] != app.ID {
		t.Errorf("enqueued = %v, want [%d]", f.indexer.enqueued, app.ID)
	}

	stored, err := f.repo.FindByID(app.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Email != "jane@example.com" || stored.Overview == "" {
		t.Errorf("stored application = %+v", stored)
	}
}

func TestSubmissionService_SubmitAnalysisFailure(t *testing.T) {
	f := newSubmissionFixture(t, 1024)
	f.gemini.err = errors.New("quota exceeded")

	app, err := f.service.Submit(context.Background(), Submission{
		Name:  "John",
		Email: "john@example.com",
		File:  newFileHeader(t, "john.docx", []byte("PK docx")),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v, want placeholder record", err)
	}

	want := analysis.Placeholder()
	got := analysis.Result{
		Domain:        app.Domain,
		KeySkills:     app.KeySkills,
		MissingSkills: app.MissingSkills,
		Score:         app.Score,
		Overview:      app.Overview,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("application = %+v, want placeholder %+v", got, want)
	}
	if app.Analysis != analysis.PlaceholderAnalysisText {
		t.Errorf("Analysis = %q, want %q", app.Analysis, analysis.PlaceholderAnalysisText)
	}
}

func TestSubmissionService_SubmitRejected(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		content   string
		nilFile   bool
		extractor error
		wantErr   error
	}{
		{name: "no file", nilFile: true, wantErr: ErrNoFile},
		{name: "empty filename", filename: "", content: "x", wantErr: ErrNoFile},
		{name: "unsupported type", filename: "resume.txt", content: "x", wantErr: ErrUnsupportedFileType},
		{name: "too large", filename: "resume.pdf", content: strings.Repeat("x", 64), wantErr: ErrFileTooLarge},
		{name: "no text", filename: "scan.pdf", content: "img", extractor: ErrNoText, wantErr: ErrNoText},
		{name: "unreadable", filename: "broken.pdf", content: "bad", extractor: errors.New("malformed xref"), wantErr: ErrNoText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmissionFixture(t, 32)
			f.extractor.err = tt.extractor

			sub := Submission{Name: "A", Email: "a@example.com"}
			if !tt.nilFile {
				sub.File = newFileHeader(t, "placeholder.pdf", []byte(tt.content))
				sub.File.Filename = tt.filename
			}

			app, err := f.service.Submit(context.Background(), sub)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if app != nil {
				t.Errorf("Submit() app = %+v, want nil", app)
			}
			if names := f.uploads(t); len(names) != 0 {
				t.Errorf("uploads left behind: %v", names)
			}
			if len(f.gemini.prompts) != 0 {
				t.Error("analysis requested for a rejected upload")
			}

			all, err := f.repo.FindAll()
			if err != nil {
				t.Fatalf("FindAll() error = %v", err)
			}
			if len(all) != 0 {
				t.Errorf("%d applications stored, want 0", len(all))
			}
		})
	}
}

func TestSubmissionService_SubmitWithoutIndexer(t *testing.T) {
	dir := t.TempDir()
	service := NewSubmissionService(
		repositories.NewApplicationRepository(newTestDB(t)),
		NewStorageService(dir, []string{".pdf"}),
		&fakeExtractor{text: "resume"},
		&fakeGemini{reply: wellFormedReply},
		nil,
		0,
		1,
	)

	app, err := service.Submit(context.Background(), Submission{
		Name: "B",
		File: newFileHeader(t, "b.pdf", []byte("pdf")),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if filepath.Dir(app.ResumePath) != dir {
		t.Errorf("ResumePath = %q, want it under %q", app.ResumePath, dir)
	}
}

type failingCreateRepo struct {
	repositories.ApplicationRepository
}

func (failingCreateRepo) Create(*models.Application) error {
	return errors.New("disk full")
}

func TestSubmissionService_SubmitCreateFailureRemovesUpload(t *testing.T) {
	dir := t.TempDir()
	service := NewSubmissionService(
		failingCreateRepo{},
		NewStorageService(dir, []string{".pdf"}),
		&fakeExtractor{text: "resume"},
		&fakeGemini{reply: wellFormedReply},
		&fakeIndexer{},
		0,
		1,
	)

	if _, err := service.Submit(context.Background(), Submission{
		Name: "C",
		File: newFileHeader(t, "c.pdf", []byte("pdf")),
	}); err == nil {
		t.Fatal("Submit() error = nil, want the create failure")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d uploads left without a record", len(entries))
	}
}
