package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

type DatasetHandler struct {
	datasetRepo    repositories.DatasetRepository
	storageService services.StorageService
	worker         services.Worker
	maxFileSize    int64
}

func NewDatasetHandler(
	datasetRepo repositories.DatasetRepository,
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *DatasetHandler {
	return &DatasetHandler{
		datasetRepo:    datasetRepo,
		storageService: storageService,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadResumes handles POST /datasets/resumes
func (h *DatasetHandler) HandleUploadResumes(c *fiber.Ctx) error {
	return h.handleUpload(c, models.KindResumes)
}

// HandleUploadJobs handles POST /datasets/jobs
func (h *DatasetHandler) HandleUploadJobs(c *fiber.Ctx) error {
	return h.handleUpload(c, models.KindJobs)
}

func (h *DatasetHandler) handleUpload(c *fiber.Ctx, kind models.DatasetKind) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no CSV file uploaded. Please send the dataset as the 'file' form field",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, string(kind), ".csv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save dataset file: %v", err),
		})
	}

	dataset := models.Dataset{
		ID:               uuid.New(),
		Kind:             kind,
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.datasetRepo.Create(&dataset); err != nil {
		// Cleanup saved file if the record cannot be stored
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to register dataset: %v", err),
		})
	}

	h.worker.EnqueueJob(dataset.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.UploadResponse{
		ID:           dataset.ID.String(),
		Kind:         string(dataset.Kind),
		Filename:     dataset.Filename,
		OriginalName: dataset.OriginalFileName,
		Status:       string(dataset.Status),
	})
}

// HandleGetDataset handles GET /datasets/:id
func (h *DatasetHandler) HandleGetDataset(c *fiber.Ctx) error {
	idParam := c.Params("id")
	datasetID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid dataset ID format",
		})
	}

	dataset, err := h.datasetRepo.FindByID(datasetID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "dataset not found",
		})
	}

	return c.JSON(models.DatasetResponse{
		ID:           dataset.ID.String(),
		Kind:         string(dataset.Kind),
		Status:       string(dataset.Status),
		RowCount:     dataset.RowCount,
		ErrorMessage: dataset.ErrorMessage,
	})
}
