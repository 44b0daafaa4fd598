package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(datasetID uuid.UUID)
}

// worker moves CSV parsing and index rebuilds off the upload request path.
// A poller re-enqueues any dataset that stayed queued, e.g. when the queue
// was full at upload time.
type worker struct {
	datasetRepo repositories.DatasetRepository
	ingester    IngestService
	jobQueue    chan uuid.UUID
	concurrency int
	log         *zap.Logger
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	datasetRepo repositories.DatasetRepository,
	ingester IngestService,
	concurrency int,
	log *zap.Logger,
) Worker {
	return &worker{
		datasetRepo: datasetRepo,
		ingester:    ingester,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		log:         log,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting ingest worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	w.log.Info("ingest worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(datasetID uuid.UUID) {
	select {
	case w.jobQueue <- datasetID:
		w.log.Debug("dataset enqueued", zap.String("dataset_id", datasetID.String()))
	case <-w.stopChan:
		w.log.Warn("worker stopped, cannot enqueue dataset", zap.String("dataset_id", datasetID.String()))
	default:
		// Queue full; the poller will pick it up.
		w.log.Warn("ingest queue full, deferring dataset", zap.String("dataset_id", datasetID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case datasetID := <-w.jobQueue:
			if err := w.ingester.IngestDataset(ctx, datasetID); err != nil {
				w.log.Error("dataset ingest failed",
					zap.Int("worker", workerID),
					zap.String("dataset_id", datasetID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.datasetRepo.FindPending(10)
			if err != nil {
				w.log.Warn("failed to fetch pending datasets", zap.Error(err))
				continue
			}

			for _, dataset := range pending {
				w.EnqueueJob(dataset.ID)
			}
		}
	}
}
