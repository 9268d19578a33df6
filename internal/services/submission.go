package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

var (
	ErrNoFile       = errors.New("no file uploaded")
	ErrFileTooLarge = errors.New("file too large")
)

type Submission struct {
	Name  string
	Email string
	File  *multipart.FileHeader
}

type SubmissionService interface {
	Submit(ctx context.Context, sub Submission) (*models.Application, error)
}

type submissionService struct {
	appRepo       repositories.ApplicationRepository
	storage       StorageService
	extractor     TextExtractor
	geminiService GeminiService
	indexer       Indexer
	promptBuilder *PromptBuilder
	maxFileSize   int64
	maxRetries    int
}

// NewSubmissionService wires the upload workflow. indexer may be nil when
// similarity search is disabled.
func NewSubmissionService(
	appRepo repositories.ApplicationRepository,
	storage StorageService,
	extractor TextExtractor,
	geminiService GeminiService,
	indexer Indexer,
	maxFileSize int64,
	maxRetries int,
) SubmissionService {
	return &submissionService{
		appRepo:       appRepo,
		storage:       storage,
		extractor:     extractor,
		geminiService: geminiService,
		indexer:       indexer,
		promptBuilder: NewPromptBuilder(),
		maxFileSize:   maxFileSize,
		maxRetries:    maxRetries,
	}
}

// Submit stores the résumé, analyses it and persists the application.
// A failed analysis request is not an error: the record is filled from
// analysis.Placeholder instead.
func (s *submissionService) Submit(ctx context.Context, sub Submission) (*models.Application, error) {
	if sub.File == nil || sub.File.Filename == "" {
		return nil, ErrNoFile
	}
	if !s.storage.IsAllowed(sub.File.Filename) {
		return nil, ErrUnsupportedFileType
	}
	if s.maxFileSize > 0 && sub.File.Size > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	filePath, err := s.storage.SaveFile(sub.File, "resume")
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	log.Printf("📄 Extracting text from %s...\n", sub.File.Filename)
	text, err := s.extractor.ExtractText(filePath)
	if err != nil {
		log.Printf("❌ Text extraction failed: %v\n", err)
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			log.Printf("⚠️  Failed to remove unreadable upload: %v\n", delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrNoText, err)
	}

	result, rawAnalysis := s.analyze(ctx, text)

	app := &models.Application{
		Name:             sub.Name,
		Email:            sub.Email,
		Domain:           result.Domain,
		KeySkills:        result.KeySkills,
		MissingSkills:    result.MissingSkills,
		Score:            result.Score,
		Analysis:         rawAnalysis,
		Overview:         result.Overview,
		ResumePath:       filePath,
		OriginalFilename: sub.File.Filename,
	}

	if err := s.appRepo.Create(app); err != nil {
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			log.Printf("⚠️  Failed to remove orphaned upload: %v\n", delErr)
		}
		return nil, err
	}
	log.Printf("💾 Application %d saved (domain=%s, score=%d)\n", app.ID, app.Domain, app.Score)

	if s.indexer != nil {
		s.indexer.Enqueue(app.ID)
	}

	return app, nil
}

func (s *submissionService) analyze(ctx context.Context, resumeText string) (analysis.Result, string) {
	prompt := s.promptBuilder.BuildResumeAnalysisPrompt(resumeText)

	log.Println("🤖 Requesting resume analysis...")
	reply, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, AnalysisGenerationOptions, s.maxRetries)
	if err != nil {
		log.Printf("❌ Error generating resume analysis: %v\n", err)
		return analysis.Placeholder(), analysis.PlaceholderAnalysisText
	}

	result := analysis.Parse(reply)
	result.Domain = strings.ToUpper(result.Domain)
	return result, reply
}
