package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"alfredoptarigan/resume-analyzer/internal/repositories"
)

// Indexer feeds stored résumés into the vector index in the background.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(applicationID uint)
	IndexApplication(ctx context.Context, applicationID uint) error
}

type indexer struct {
	appRepo       repositories.ApplicationRepository
	extractor     TextExtractor
	chunker       TextChunker
	geminiService GeminiService
	qdrantService QdrantService
	jobQueue      chan uint
	concurrency   int
	pollInterval  time.Duration
	wg            sync.WaitGroup
	stopChan      chan struct{}
	stopOnce      sync.Once
	// IDs queued or being indexed; the poller must not hand them out twice.
	inFlight      sync.Map
}

func NewIndexer(
	appRepo repositories.ApplicationRepository,
	extractor TextExtractor,
	chunker TextChunker,
	geminiService GeminiService,
	qdrantService QdrantService,
	concurrency int,
	pollInterval time.Duration,
) Indexer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &indexer{
		appRepo:       appRepo,
		extractor:     extractor,
		chunker:       chunker,
		geminiService: geminiService,
		qdrantService: qdrantService,
		jobQueue:      make(chan uint, 100),
		concurrency:   concurrency,
		pollInterval:  pollInterval,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting indexer with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	if w.pollInterval > 0 {
		w.wg.Add(1)
		go w.pollUnindexed(ctx)
	}
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping indexer...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Indexer stopped")
	})
}

// Enqueue never blocks the caller; a full queue is drained later by the poller.
// An application already queued or being indexed is skipped.
func (w *indexer) Enqueue(applicationID uint) {
	if _, busy := w.inFlight.LoadOrStore(applicationID, struct{}{}); busy {
		return
	}

	select {
	case <-w.stopChan:
		w.inFlight.Delete(applicationID)
		log.Printf("⚠️  Indexer stopped, cannot enqueue application %d\n", applicationID)
		return
	default:
	}

	select {
	case w.jobQueue <- applicationID:
		log.Printf("📥 Application %d enqueued for indexing\n", applicationID)
	default:
		w.inFlight.Delete(applicationID)
		log.Printf("⚠️  Index queue full, application %d left for the poller\n", applicationID)
	}
}

// IndexApplication extracts, chunks, embeds and stores one résumé, then marks it indexed.
func (w *indexer) IndexApplication(ctx context.Context, applicationID uint) error {
	app, err := w.appRepo.FindByID(applicationID)
	if err != nil {
		return fmt.Errorf("failed to load application: %w", err)
	}

	text, err := w.extractor.ExtractText(app.ResumePath)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	chunks := w.chunker.ChunkText(text, defaultChunkSize, defaultChunkOverlap)
	embeddings := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := w.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i+1, err)
		}
		embeddings = append(embeddings, embedding)
	}

	// Replace any points left from an earlier partial run.
	if err := w.qdrantService.DeleteApplication(ctx, app.PointKey()); err != nil {
		return err
	}
	if err := w.qdrantService.UpsertChunks(ctx, app.PointKey(), chunks, embeddings); err != nil {
		return err
	}

	return w.appRepo.MarkIndexed(app.ID)
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Indexer #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case applicationID := <-w.jobQueue:
			if err := w.IndexApplication(ctx, applicationID); err != nil {
				log.Printf("❌ Indexer #%d failed on application %d: %v\n", workerID, applicationID, err)
			} else {
				log.Printf("✅ Indexer #%d indexed application %d\n", workerID, applicationID)
			}
			w.inFlight.Delete(applicationID)
		}
	}
}

func (w *indexer) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.appRepo.FindUnindexed(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unindexed applications: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d unindexed applications\n", len(pending))
			}

			for _, app := range pending {
				w.Enqueue(app.ID)
			}
		}
	}
}
