package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/services"
)

// MatchHandler scores a single uploaded PDF resume against one job from the
// current jobs dataset.
type MatchHandler struct {
	matcher        services.MatcherService
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewMatchHandler(
	matcher services.MatcherService,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *MatchHandler {
	return &MatchHandler{
		matcher:        matcher,
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	jobIndexValue := c.FormValue("job_index")
	if jobIndexValue == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_index form field is required",
		})
	}

	jobIndex, err := strconv.Atoi(jobIndexValue)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job_index format",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no resume uploaded. Please send a PDF as the 'resume' form field",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, "resume", ".pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}
	// The file is only needed for text extraction
	defer h.storageService.DeleteFile(filename)

	text, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text from resume: %v", err),
		})
	}

	match, err := h.matcher.MatchText(jobIndex, text)
	if err != nil {
		return matcherError(c, err)
	}

	return c.JSON(match)
}
