package models

import (
	"time"

	"github.com/google/uuid"
)

type DatasetKind string

const (
	KindResumes DatasetKind = "resumes"
	KindJobs    DatasetKind = "jobs"
)

type DatasetStatus string

const (
	StatusQueued     DatasetStatus = "queued"
	StatusProcessing DatasetStatus = "processing"
	StatusReady      DatasetStatus = "ready"
	StatusFailed     DatasetStatus = "failed"
)

// Dataset is the record kept for one uploaded CSV file. Datasets live in
// memory only; a restart clears everything and the user uploads again.
type Dataset struct {
	ID               uuid.UUID     `json:"id"`
	Kind             DatasetKind   `json:"kind"`
	Filename         string        `json:"filename"`
	OriginalFileName string        `json:"original_filename"`
	FilePath         string        `json:"file_path"`
	Status           DatasetStatus `json:"status"`
	RowCount         int           `json:"row_count"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// ResumeRecord is one row of the resume dataset.
type ResumeRecord struct {
	ResumeID string `json:"resume_id"`
	Name     string `json:"name"`
	Skills   string `json:"skills"`
}

// JobRecord is one row of the job dataset.
type JobRecord struct {
	Title          string `json:"job_title"`
	RequiredSkills string `json:"required_skills"`
}
