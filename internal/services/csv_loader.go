package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

// Expected column headers, matched case-insensitively.
const (
	columnResumeID       = "Resume_ID"
	columnName           = "Name"
	columnSkills         = "Skills"
	columnJobTitle       = "Job Title"
	columnRequiredSkills = "Required Skills"
)

type CSVLoaderService interface {
	LoadResumes(filePath string) ([]models.ResumeRecord, error)
	LoadJobs(filePath string) ([]models.JobRecord, error)
}

type csvLoaderService struct{}

func NewCSVLoaderService() CSVLoaderService {
	return &csvLoaderService{}
}

// LoadResumes implements CSVLoaderService.
func (s *csvLoaderService) LoadResumes(filePath string) ([]models.ResumeRecord, error) {
	rows, header, err := readCSV(filePath)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(header, columnResumeID, columnName, columnSkills)
	if err != nil {
		return nil, err
	}

	records := make([]models.ResumeRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.ResumeRecord{
			ResumeID: cell(row, cols[0]),
			Name:     cell(row, cols[1]),
			Skills:   cell(row, cols[2]),
		})
	}
	return records, nil
}

// LoadJobs implements CSVLoaderService.
func (s *csvLoaderService) LoadJobs(filePath string) ([]models.JobRecord, error) {
	rows, header, err := readCSV(filePath)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(header, columnJobTitle, columnRequiredSkills)
	if err != nil {
		return nil, err
	}

	records := make([]models.JobRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.JobRecord{
			Title:          cell(row, cols[0]),
			RequiredSkills: cell(row, cols[1]),
		})
	}
	return records, nil
}

func readCSV(filePath string) (rows [][]string, header []string, err error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Rows may be ragged; short rows are padded with empty strings later.
	reader.FieldsPerRecord = -1

	header, err = reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, header, nil
}

// resolveColumns maps the wanted column names to their indices in the
// header. A missing column is a user error surfaced as-is.
func resolveColumns(header []string, wanted ...string) ([]int, error) {
	indices := make([]int, len(wanted))
	for i, want := range wanted {
		indices[i] = -1
		for j, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				indices[i] = j
				break
			}
		}
		if indices[i] == -1 {
			return nil, fmt.Errorf("missing required column %q", want)
		}
	}
	return indices, nil
}

// cell returns the value at idx, or an empty string when the row is short.
// Missing values must never fail vectorization.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
