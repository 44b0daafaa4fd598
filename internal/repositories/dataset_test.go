package repositories_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
)

func newDataset(kind models.DatasetKind) *models.Dataset {
	return &models.Dataset{
		ID:        uuid.New(),
		Kind:      kind,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestDatasetLifecycle(t *testing.T) {
	repo := repositories.NewDatasetRepository()
	dataset := newDataset(models.KindResumes)

	require.NoError(t, repo.Create(dataset))

	found, err := repo.FindByID(dataset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusQueued, found.Status)

	require.NoError(t, repo.UpdateStatus(dataset.ID, models.StatusProcessing))
	require.NoError(t, repo.MarkReady(dataset.ID, 42))

	found, err = repo.FindByID(dataset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, found.Status)
	assert.Equal(t, 42, found.RowCount)
	assert.Empty(t, found.ErrorMessage)
}

func TestDatasetMarkFailed(t *testing.T) {
	repo := repositories.NewDatasetRepository()
	dataset := newDataset(models.KindJobs)
	require.NoError(t, repo.Create(dataset))

	require.NoError(t, repo.MarkFailed(dataset.ID, `missing required column "Job Title"`))

	found, err := repo.FindByID(dataset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, found.Status)
	assert.Contains(t, found.ErrorMessage, "Job Title")
}

func TestDatasetNotFound(t *testing.T) {
	repo := repositories.NewDatasetRepository()

	_, err := repo.FindByID(uuid.New())
	assert.Error(t, err)

	assert.Error(t, repo.UpdateStatus(uuid.New(), models.StatusReady))
	assert.Error(t, repo.MarkReady(uuid.New(), 1))
	assert.Error(t, repo.MarkFailed(uuid.New(), "boom"))
}

func TestDatasetDuplicateCreate(t *testing.T) {
	repo := repositories.NewDatasetRepository()
	dataset := newDataset(models.KindResumes)

	require.NoError(t, repo.Create(dataset))
	assert.Error(t, repo.Create(dataset))
}

func TestFindPending(t *testing.T) {
	repo := repositories.NewDatasetRepository()

	first := newDataset(models.KindResumes)
	second := newDataset(models.KindJobs)
	third := newDataset(models.KindJobs)
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))
	require.NoError(t, repo.Create(third))

	require.NoError(t, repo.MarkReady(second.ID, 10))

	pending, err := repo.FindPending(10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, third.ID, pending[1].ID)

	pending, err = repo.FindPending(1)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestFindByIDReturnsCopy(t *testing.T) {
	repo := repositories.NewDatasetRepository()
	dataset := newDataset(models.KindResumes)
	require.NoError(t, repo.Create(dataset))

	found, err := repo.FindByID(dataset.ID)
	require.NoError(t, err)

	// Mutating the returned record must not leak into the store.
	found.Status = models.StatusFailed

	again, err := repo.FindByID(dataset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusQueued, again.Status)
}
