package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/services"
)

type RankingHandler struct {
	matcher   services.MatcherService
	screening config.ScreeningConfig
}

func NewRankingHandler(matcher services.MatcherService, screening config.ScreeningConfig) *RankingHandler {
	return &RankingHandler{
		matcher:   matcher,
		screening: screening,
	}
}

// HandleListJobs handles GET /jobs
func (h *RankingHandler) HandleListJobs(c *fiber.Ctx) error {
	if !h.matcher.Ready() {
		return matcherError(c, services.ErrIndexNotReady)
	}

	return c.JSON(fiber.Map{
		"jobs":          h.matcher.Jobs(),
		"total_resumes": h.matcher.ResumeCount(),
	})
}

// HandleRanking handles GET /jobs/:index/ranking
func (h *RankingHandler) HandleRanking(c *fiber.Ctx) error {
	jobIndex, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job index",
		})
	}

	topN := h.clampTopN(c.QueryInt("top_n", h.screening.TopNDefault))

	ranking, err := h.matcher.Ranking(jobIndex, topN)
	if err != nil {
		return matcherError(c, err)
	}

	return c.JSON(ranking)
}

// HandleExport handles GET /jobs/:index/ranking/export — the same top-N
// ranking as a CSV download.
func (h *RankingHandler) HandleExport(c *fiber.Ctx) error {
	jobIndex, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job index",
		})
	}

	topN := h.clampTopN(c.QueryInt("top_n", h.screening.TopNDefault))

	ranking, err := h.matcher.Ranking(jobIndex, topN)
	if err != nil {
		return matcherError(c, err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write([]string{"Name", "Resume_ID", "Skills", "Score"})
	for _, entry := range ranking.Entries {
		writer.Write([]string{
			entry.Name,
			entry.ResumeID,
			entry.Skills,
			strconv.FormatFloat(entry.Score, 'f', 3, 64),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to build CSV: %v", err),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="top_matches.csv"`)
	return c.Send(buf.Bytes())
}

// HandleCandidateSearch handles GET /jobs/:index/candidates?query=
func (h *RankingHandler) HandleCandidateSearch(c *fiber.Ctx) error {
	jobIndex, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job index",
		})
	}

	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameter is required",
		})
	}

	candidate, err := h.matcher.SearchCandidate(jobIndex, query)
	if err != nil {
		return matcherError(c, err)
	}

	return c.JSON(candidate)
}

func (h *RankingHandler) clampTopN(topN int) int {
	if topN < h.screening.TopNMin {
		return h.screening.TopNMin
	}
	if topN > h.screening.TopNMax {
		return h.screening.TopNMax
	}
	return topN
}

// matcherError maps ranker errors onto HTTP statuses.
func matcherError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrIndexNotReady):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrJobIndexOutOfRange),
		errors.Is(err, services.ErrCandidateNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
