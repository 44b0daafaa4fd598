package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

func createDataset(t *testing.T, repo repositories.DatasetRepository, kind models.DatasetKind, csv string) uuid.UUID {
	t.Helper()

	dataset := &models.Dataset{
		ID:        uuid.New(),
		Kind:      kind,
		FilePath:  writeTempCSV(t, csv),
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(dataset))
	return dataset.ID
}

func TestIngestDataset(t *testing.T) {
	repo := repositories.NewDatasetRepository()
	matcher := services.NewMatcherService()
	ingester := services.NewIngestService(repo, services.NewCSVLoaderService(), matcher, zap.NewNop())

	resumesID := createDataset(t, repo, models.KindResumes, `Resume_ID,Name,Skills
R1,Alice,"python, sql"
R2,Bob,"java"
`)
	jobsID := createDataset(t, repo, models.KindJobs, `Job Title,Required Skills
Data Engineer,"python, sql"
`)

	ctx := context.Background()
	require.NoError(t, ingester.IngestDataset(ctx, resumesID))
	assert.False(t, matcher.Ready())

	require.NoError(t, ingester.IngestDataset(ctx, jobsID))
	assert.True(t, matcher.Ready())

	resumes, err := repo.FindByID(resumesID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, resumes.Status)
	assert.Equal(t, 2, resumes.RowCount)

	ranking, err := matcher.Ranking(0, 10)
	require.NoError(t, err)
	require.Len(t, ranking.Entries, 2)
	assert.Equal(t, "R1", ranking.Entries[0].ResumeID)
}

func TestIngestDatasetBadCSV(t *testing.T) {
	repo := repositories.NewDatasetRepository()
	matcher := services.NewMatcherService()
	ingester := services.NewIngestService(repo, services.NewCSVLoaderService(), matcher, zap.NewNop())

	datasetID := createDataset(t, repo, models.KindResumes, "Wrong,Header\nfoo,bar\n")

	err := ingester.IngestDataset(context.Background(), datasetID)
	require.Error(t, err)

	dataset, err := repo.FindByID(datasetID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, dataset.Status)
	assert.Contains(t, dataset.ErrorMessage, "missing required column")
}

func TestIngestDatasetSkipsNonQueued(t *testing.T) {
	repo := repositories.NewDatasetRepository()
	matcher := services.NewMatcherService()
	ingester := services.NewIngestService(repo, services.NewCSVLoaderService(), matcher, zap.NewNop())

	datasetID := createDataset(t, repo, models.KindResumes, `Resume_ID,Name,Skills
R1,Alice,python
`)
	require.NoError(t, repo.MarkReady(datasetID, 1))

	// Already-processed datasets are left alone, e.g. when the pending
	// poller re-enqueues one the queue already delivered.
	require.NoError(t, ingester.IngestDataset(context.Background(), datasetID))
	assert.False(t, matcher.Ready())
}

func TestIngestDatasetNotFound(t *testing.T) {
	repo := repositories.NewDatasetRepository()
	ingester := services.NewIngestService(repo, services.NewCSVLoaderService(), services.NewMatcherService(), zap.NewNop())

	err := ingester.IngestDataset(context.Background(), uuid.New())
	require.Error(t, err)
}
