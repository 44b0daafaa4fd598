package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/services"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadResumes(t *testing.T) {
	path := writeTempCSV(t, `Resume_ID,Name,Skills
R1,Alice Johnson,"python, sql, machine learning"
R2,Bob Smith,
R3,Carol White,"java, spring"
`)

	loader := services.NewCSVLoaderService()
	records, err := loader.LoadResumes(path)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "R1", records[0].ResumeID)
	assert.Equal(t, "Alice Johnson", records[0].Name)
	assert.Equal(t, "python, sql, machine learning", records[0].Skills)

	// Empty skill cells are coerced to empty strings, never an error.
	assert.Equal(t, "", records[1].Skills)
}

func TestLoadResumesHeaderIsCaseInsensitive(t *testing.T) {
	path := writeTempCSV(t, `resume_id, name , SKILLS
R1,Alice,python
`)

	loader := services.NewCSVLoaderService()
	records, err := loader.LoadResumes(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "python", records[0].Skills)
}

func TestLoadResumesShortRow(t *testing.T) {
	path := writeTempCSV(t, `Resume_ID,Name,Skills
R1,Alice
`)

	loader := services.NewCSVLoaderService()
	records, err := loader.LoadResumes(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Skills)
}

func TestLoadResumesMissingColumn(t *testing.T) {
	path := writeTempCSV(t, `Resume_ID,Name
R1,Alice
`)

	loader := services.NewCSVLoaderService()
	_, err := loader.LoadResumes(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "Skills"`)
}

func TestLoadJobs(t *testing.T) {
	path := writeTempCSV(t, `Job Title,Required Skills
Data Scientist,"python, statistics"
Backend Engineer,"go, postgres"
`)

	loader := services.NewCSVLoaderService()
	records, err := loader.LoadJobs(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Data Scientist", records[0].Title)
	assert.Equal(t, "go, postgres", records[1].RequiredSkills)
}

func TestLoadJobsEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	loader := services.NewCSVLoaderService()
	_, err := loader.LoadJobs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoadJobsHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "Job Title,Required Skills\n")

	loader := services.NewCSVLoaderService()
	records, err := loader.LoadJobs(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadResumesFileNotFound(t *testing.T) {
	loader := services.NewCSVLoaderService()
	_, err := loader.LoadResumes(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
