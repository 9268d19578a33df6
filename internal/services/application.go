package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type ApplicationService interface {
	List() ([]models.Application, error)
	Get(id uint) (*models.Application, error)
	Delete(ctx context.Context, id uint) error
	Similar(ctx context.Context, id uint, limit int) ([]models.SimilarApplication, error)
	SimilarityEnabled() bool
}

type applicationService struct {
	appRepo       repositories.ApplicationRepository
	storage       StorageService
	geminiService GeminiService
	qdrantService QdrantService
}

// NewApplicationService builds the admin-facing service. qdrantService may
// be nil, which disables Similar.
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	storage StorageService,
	geminiService GeminiService,
	qdrantService QdrantService,
) ApplicationService {
	return &applicationService{
		appRepo:       appRepo,
		storage:       storage,
		geminiService: geminiService,
		qdrantService: qdrantService,
	}
}

func (s *applicationService) List() ([]models.Application, error) {
	return s.appRepo.FindAll()
}

func (s *applicationService) Get(id uint) (*models.Application, error) {
	return s.appRepo.FindByID(id)
}

// Delete removes the record, then its stored résumé and vector points.
// Cleanup failures after the row is gone are logged, not returned.
func (s *applicationService) Delete(ctx context.Context, id uint) error {
	app, err := s.appRepo.Delete(id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFile(app.ResumePath); err != nil {
		log.Printf("❌ Error deleting resume file: %v\n", err)
	}

	if s.qdrantService != nil {
		if err := s.qdrantService.DeleteApplication(ctx, app.PointKey()); err != nil {
			log.Printf("⚠️  Failed to remove application %d from index: %v\n", app.ID, err)
		}
	}

	log.Printf("🗑️  Application %d deleted\n", app.ID)
	return nil
}

func (s *applicationService) SimilarityEnabled() bool {
	return s.qdrantService != nil
}

// Similar returns up to limit other applications whose résumé chunks are
// closest to the overview of application id, best match first.
func (s *applicationService) Similar(ctx context.Context, id uint, limit int) ([]models.SimilarApplication, error) {
	if s.qdrantService == nil || limit <= 0 {
		return nil, nil
	}

	app, err := s.appRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if app.Overview == "" {
		return nil, nil
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, app.Overview)
	if err != nil {
		return nil, fmt.Errorf("failed to embed overview: %w", err)
	}

	// Several chunks of one résumé can match, so over-fetch before deduplicating.
	hits, err := s.qdrantService.SearchSimilar(ctx, embedding, limit*5+5)
	if err != nil {
		return nil, err
	}

	var (
		order  []uint
		scores = make(map[uint]float32)
	)
	for _, hit := range hits {
		parsed, err := strconv.ParseUint(hit.ApplicationKey, 10, 64)
		if err != nil {
			continue
		}
		otherID := uint(parsed)
		if otherID == app.ID {
			continue
		}
		if _, seen := scores[otherID]; seen {
			continue
		}
		scores[otherID] = hit.Score
		order = append(order, otherID)
		if len(order) == limit {
			break
		}
	}

	others, err := s.appRepo.FindByIDs(order)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Application, len(others))
	for i := range others {
		byID[others[i].ID] = &others[i]
	}

	similar := make([]models.SimilarApplication, 0, len(order))
	for _, otherID := range order {
		// Points can outlive a deleted row until the next cleanup.
		other, ok := byID[otherID]
		if !ok {
			continue
		}
		similar = append(similar, models.SimilarApplication{
			Application: other,
			Score:       scores[otherID],
		})
	}

	return similar, nil
}
