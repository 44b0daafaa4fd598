package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

// ChartHandler serves chart-ready data series; rendering happens in the
// dashboard frontend.
type ChartHandler struct {
	matcher   services.MatcherService
	screening config.ScreeningConfig
}

func NewChartHandler(matcher services.MatcherService, screening config.ScreeningConfig) *ChartHandler {
	return &ChartHandler{
		matcher:   matcher,
		screening: screening,
	}
}

// HandleHistogram handles GET /jobs/:index/charts/histogram — top-N scores
// as percentages, labeled "Name (ID:x)".
func (h *ChartHandler) HandleHistogram(c *fiber.Ctx) error {
	jobIndex, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job index",
		})
	}

	topN := c.QueryInt("top_n", h.screening.TopNDefault)
	if topN < h.screening.TopNMin {
		topN = h.screening.TopNMin
	}
	if topN > h.screening.TopNMax {
		topN = h.screening.TopNMax
	}

	ranking, err := h.matcher.Ranking(jobIndex, topN)
	if err != nil {
		return matcherError(c, err)
	}

	bars := make([]models.HistogramBar, len(ranking.Entries))
	for i, entry := range ranking.Entries {
		bars[i] = models.HistogramBar{
			Label:        entry.Name + " (ID:" + entry.ResumeID + ")",
			ResumeID:     entry.ResumeID,
			Name:         entry.Name,
			ScorePercent: entry.Score * 100,
		}
	}

	return c.JSON(fiber.Map{
		"job":  ranking.Job,
		"bars": bars,
	})
}

// HandleLine handles GET /jobs/:index/charts/line — raw scores for every
// resume in dataset order.
func (h *ChartHandler) HandleLine(c *fiber.Ctx) error {
	jobIndex, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job index",
		})
	}

	points, err := h.matcher.Scores(jobIndex)
	if err != nil {
		return matcherError(c, err)
	}

	return c.JSON(fiber.Map{
		"points": points,
	})
}

// HandleBubble handles GET /charts/bubble — resume×job score matrix.
func (h *ChartHandler) HandleBubble(c *fiber.Ctx) error {
	numResumes := c.QueryInt("resumes", 20)
	numJobs := c.QueryInt("jobs", 10)

	points, err := h.matcher.BubbleMatrix(numResumes, numJobs)
	if err != nil {
		return matcherError(c, err)
	}

	return c.JSON(fiber.Map{
		"points": points,
	})
}

// HandleBar handles GET /charts/bar — clustered bar rows, one per
// resume/job pair.
func (h *ChartHandler) HandleBar(c *fiber.Ctx) error {
	numResumes := c.QueryInt("resumes", 10)
	numJobs := c.QueryInt("jobs", 5)

	points, err := h.matcher.BarMatrix(numResumes, numJobs)
	if err != nil {
		return matcherError(c, err)
	}

	return c.JSON(fiber.Map{
		"points": points,
	})
}
