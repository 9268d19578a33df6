package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-analyzer/internal/config"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// newFileHeader builds a multipart file header the way fiber hands it to handlers.
func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume_file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm() error = %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["resume_file"][0]
}

type fakeGemini struct {
	mu         sync.Mutex
	reply      string
	err        error
	embedErr   error
	prompts    []string
	embedCalls []string
}

func (f *fakeGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls = append(f.embedCalls, text)
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, _ GenerationOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, opts GenerationOptions, _ int) (string, error) {
	return f.GenerateText(ctx, prompt, opts)
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(string) (string, error) {
	return f.text, f.err
}

type fakeQdrant struct {
	mu       sync.Mutex
	points   map[string][]string
	hits     []SearchResult
	deleted  []string
	failWith error
}

func newFakeQdrant() *fakeQdrant {
	return &fakeQdrant{points: make(map[string][]string)}
}

func (f *fakeQdrant) InitCollection(context.Context) error { return nil }

func (f *fakeQdrant) UpsertChunks(_ context.Context, key string, chunks []string, embeddings [][]float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if len(chunks) != len(embeddings) {
		return errors.New("mismatch")
	}
	f.points[key] = append(f.points[key], chunks...)
	return nil
}

func (f *fakeQdrant) SearchSimilar(context.Context, []float32, int) ([]SearchResult, error) {
	return f.hits, f.failWith
}

func (f *fakeQdrant) DeleteApplication(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	delete(f.points, key)
	return nil
}

type fakeIndexer struct {
	mu       sync.Mutex
	enqueued []uint
}

func (f *fakeIndexer) Start(context.Context) {}
func (f *fakeIndexer) Stop()                 {}
func (f *fakeIndexer) Enqueue(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, id)
}
func (f *fakeIndexer) IndexApplication(context.Context, uint) error { return nil }
