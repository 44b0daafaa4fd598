package models

type UploadResponse struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Status       string `json:"status"`
}

type DatasetResponse struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Status       string `json:"status"`
	RowCount     int    `json:"row_count"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// JobInfo describes the job a ranking was computed for.
type JobInfo struct {
	Index          int    `json:"index"`
	Title          string `json:"job_title"`
	RequiredSkills string `json:"required_skills"`
}

// RankEntry is one row of a ranking: a resume and its similarity score
// against the selected job. Scores are rounded to three decimals.
type RankEntry struct {
	Rank     int     `json:"rank"`
	ResumeID string  `json:"resume_id"`
	Name     string  `json:"name"`
	Skills   string  `json:"skills"`
	Score    float64 `json:"score"`
}

type RankingResponse struct {
	Job     JobInfo     `json:"job"`
	TopN    int         `json:"top_n"`
	Total   int         `json:"total_resumes"`
	Entries []RankEntry `json:"entries"`
}

type CandidateMatchResponse struct {
	ResumeID     string  `json:"resume_id"`
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	ScorePercent float64 `json:"score_percent"`
}

type MatchResponse struct {
	Job          JobInfo `json:"job"`
	Score        float64 `json:"score"`
	ScorePercent float64 `json:"score_percent"`
	// WouldRank is the 1-based position the uploaded resume would take in
	// the current resume dataset's ranking for this job.
	WouldRank    int `json:"would_rank"`
	TotalResumes int `json:"total_resumes"`
}

type HistogramBar struct {
	Label        string  `json:"label"`
	ResumeID     string  `json:"resume_id"`
	Name         string  `json:"name"`
	ScorePercent float64 `json:"score_percent"`
}

type LinePoint struct {
	Index    int     `json:"index"`
	ResumeID string  `json:"resume_id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
}

// MatrixPoint is one resume/job cell of the score matrix. Bubble and
// clustered-bar charts both render from these rows.
type MatrixPoint struct {
	Resume string  `json:"resume"`
	Job    string  `json:"job"`
	Score  float64 `json:"score"`
}
