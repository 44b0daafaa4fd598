package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

type DatasetRepository interface {
	Create(dataset *models.Dataset) error
	FindByID(id uuid.UUID) (*models.Dataset, error)
	UpdateStatus(id uuid.UUID, status models.DatasetStatus) error
	MarkReady(id uuid.UUID, rowCount int) error
	MarkFailed(id uuid.UUID, errorMsg string) error
	FindPending(limit int) ([]models.Dataset, error)
}

// datasetRepository keeps dataset records in memory. Screening sessions are
// intentionally ephemeral: there is nothing to migrate or reconnect to, and
// a restart starts from a clean slate.
type datasetRepository struct {
	mu       sync.RWMutex
	datasets map[uuid.UUID]*models.Dataset
	order    []uuid.UUID
}

func NewDatasetRepository() DatasetRepository {
	return &datasetRepository{
		datasets: make(map[uuid.UUID]*models.Dataset),
	}
}

// Create implements DatasetRepository.
func (r *datasetRepository) Create(dataset *models.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.datasets[dataset.ID]; exists {
		return fmt.Errorf("dataset %s already exists", dataset.ID)
	}

	stored := *dataset
	r.datasets[dataset.ID] = &stored
	r.order = append(r.order, dataset.ID)
	return nil
}

// FindByID implements DatasetRepository.
func (r *datasetRepository) FindByID(id uuid.UUID) (*models.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dataset, exists := r.datasets[id]
	if !exists {
		return nil, fmt.Errorf("dataset not found")
	}

	copied := *dataset
	return &copied, nil
}

// UpdateStatus implements DatasetRepository.
func (r *datasetRepository) UpdateStatus(id uuid.UUID, status models.DatasetStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dataset, exists := r.datasets[id]
	if !exists {
		return fmt.Errorf("dataset not found")
	}

	dataset.Status = status
	dataset.UpdatedAt = time.Now()
	return nil
}

// MarkReady implements DatasetRepository.
func (r *datasetRepository) MarkReady(id uuid.UUID, rowCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dataset, exists := r.datasets[id]
	if !exists {
		return fmt.Errorf("dataset not found")
	}

	dataset.Status = models.StatusReady
	dataset.RowCount = rowCount
	dataset.ErrorMessage = ""
	dataset.UpdatedAt = time.Now()
	return nil
}

// MarkFailed implements DatasetRepository.
func (r *datasetRepository) MarkFailed(id uuid.UUID, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dataset, exists := r.datasets[id]
	if !exists {
		return fmt.Errorf("dataset not found")
	}

	dataset.Status = models.StatusFailed
	dataset.ErrorMessage = errorMsg
	dataset.UpdatedAt = time.Now()
	return nil
}

// FindPending implements DatasetRepository: queued datasets in creation
// order, up to limit.
func (r *datasetRepository) FindPending(limit int) ([]models.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pending []models.Dataset
	for _, id := range r.order {
		if len(pending) >= limit {
			break
		}
		if r.datasets[id].Status == models.StatusQueued {
			pending = append(pending, *r.datasets[id])
		}
	}
	return pending, nil
}
