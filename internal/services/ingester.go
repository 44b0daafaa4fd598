package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
)

// IngestService parses an uploaded dataset file and feeds the records into
// the matcher, which rebuilds the similarity index once both datasets are in.
type IngestService interface {
	IngestDataset(ctx context.Context, datasetID uuid.UUID) error
}

type ingestService struct {
	datasetRepo repositories.DatasetRepository
	csvLoader   CSVLoaderService
	matcher     MatcherService
	log         *zap.Logger
}

func NewIngestService(
	datasetRepo repositories.DatasetRepository,
	csvLoader CSVLoaderService,
	matcher MatcherService,
	log *zap.Logger,
) IngestService {
	return &ingestService{
		datasetRepo: datasetRepo,
		csvLoader:   csvLoader,
		matcher:     matcher,
		log:         log,
	}
}

// IngestDataset implements IngestService.
func (s *ingestService) IngestDataset(ctx context.Context, datasetID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dataset, err := s.datasetRepo.FindByID(datasetID)
	if err != nil {
		return fmt.Errorf("failed to get dataset: %w", err)
	}

	// Another worker may already be on it; the parse is idempotent either way.
	if dataset.Status != models.StatusQueued {
		return nil
	}

	if err := s.datasetRepo.UpdateStatus(datasetID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	s.log.Info("ingesting dataset",
		zap.String("dataset_id", datasetID.String()),
		zap.String("kind", string(dataset.Kind)),
		zap.String("file", dataset.OriginalFileName),
	)

	var rowCount int
	switch dataset.Kind {
	case models.KindResumes:
		records, err := s.csvLoader.LoadResumes(dataset.FilePath)
		if err != nil {
			s.datasetRepo.MarkFailed(datasetID, err.Error())
			return fmt.Errorf("failed to parse resume dataset: %w", err)
		}
		s.matcher.SetResumes(records)
		rowCount = len(records)
	case models.KindJobs:
		records, err := s.csvLoader.LoadJobs(dataset.FilePath)
		if err != nil {
			s.datasetRepo.MarkFailed(datasetID, err.Error())
			return fmt.Errorf("failed to parse job dataset: %w", err)
		}
		s.matcher.SetJobs(records)
		rowCount = len(records)
	default:
		msg := fmt.Sprintf("unknown dataset kind: %s", dataset.Kind)
		s.datasetRepo.MarkFailed(datasetID, msg)
		return fmt.Errorf("%s", msg)
	}

	if err := s.datasetRepo.MarkReady(datasetID, rowCount); err != nil {
		return fmt.Errorf("failed to mark dataset ready: %w", err)
	}

	s.log.Info("dataset ready",
		zap.String("dataset_id", datasetID.String()),
		zap.String("kind", string(dataset.Kind)),
		zap.Int("rows", rowCount),
		zap.Bool("index_ready", s.matcher.Ready()),
	)

	return nil
}
