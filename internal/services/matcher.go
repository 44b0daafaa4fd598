package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"alfredoptarigan/resume-screener/internal/models"
)

var (
	ErrIndexNotReady      = errors.New("both resume and job datasets must be uploaded first")
	ErrJobIndexOutOfRange = errors.New("job index out of range")
	ErrCandidateNotFound  = errors.New("no candidate found")
)

// MatcherService holds the current screening session: the parsed datasets
// and the TF-IDF vectors derived from them. The index is rebuilt from
// scratch whenever either dataset is replaced; nothing is persisted.
type MatcherService interface {
	SetResumes(records []models.ResumeRecord)
	SetJobs(records []models.JobRecord)
	Ready() bool
	ResumeCount() int
	Jobs() []models.JobInfo
	Ranking(jobIndex, topN int) (*models.RankingResponse, error)
	Scores(jobIndex int) ([]models.LinePoint, error)
	BubbleMatrix(numResumes, numJobs int) ([]models.MatrixPoint, error)
	BarMatrix(numResumes, numJobs int) ([]models.MatrixPoint, error)
	SearchCandidate(jobIndex int, query string) (*models.CandidateMatchResponse, error)
	MatchText(jobIndex int, text string) (*models.MatchResponse, error)
}

type matcherService struct {
	mu sync.RWMutex

	resumes    []models.ResumeRecord
	jobs       []models.JobRecord
	hasResumes bool
	hasJobs    bool

	vectorizer *TFIDFVectorizer
	resumeVecs []TermVector
	jobVecs    []TermVector
}

func NewMatcherService() MatcherService {
	return &matcherService{}
}

// SetResumes implements MatcherService.
func (m *matcherService) SetResumes(records []models.ResumeRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resumes = records
	m.hasResumes = true
	m.rebuild()
}

// SetJobs implements MatcherService.
func (m *matcherService) SetJobs(records []models.JobRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs = records
	m.hasJobs = true
	m.rebuild()
}

// rebuild refits the vectorizer on the resume corpus and transforms both
// corpora against the shared vocabulary. Caller must hold the write lock.
func (m *matcherService) rebuild() {
	if !m.hasResumes || !m.hasJobs {
		return
	}

	corpus := make([]string, len(m.resumes))
	for i, r := range m.resumes {
		corpus[i] = r.Skills
	}

	m.vectorizer = NewTFIDFVectorizer()
	m.vectorizer.Fit(corpus)

	m.resumeVecs = make([]TermVector, len(m.resumes))
	for i, r := range m.resumes {
		m.resumeVecs[i] = m.vectorizer.Transform(r.Skills)
	}

	m.jobVecs = make([]TermVector, len(m.jobs))
	for i, j := range m.jobs {
		m.jobVecs[i] = m.vectorizer.Transform(j.RequiredSkills)
	}
}

// Ready implements MatcherService.
func (m *matcherService) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasResumes && m.hasJobs
}

// ResumeCount implements MatcherService.
func (m *matcherService) ResumeCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.resumes)
}

// Jobs implements MatcherService.
func (m *matcherService) Jobs() []models.JobInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]models.JobInfo, len(m.jobs))
	for i, j := range m.jobs {
		infos[i] = models.JobInfo{Index: i, Title: j.Title, RequiredSkills: j.RequiredSkills}
	}
	return infos
}

func (m *matcherService) jobInfo(jobIndex int) models.JobInfo {
	j := m.jobs[jobIndex]
	return models.JobInfo{Index: jobIndex, Title: j.Title, RequiredSkills: j.RequiredSkills}
}

func (m *matcherService) checkJobIndex(jobIndex int) error {
	if !m.hasResumes || !m.hasJobs {
		return ErrIndexNotReady
	}
	if jobIndex < 0 || jobIndex >= len(m.jobs) {
		return fmt.Errorf("%w: %d (have %d jobs)", ErrJobIndexOutOfRange, jobIndex, len(m.jobs))
	}
	return nil
}

// scoreAll computes the similarity of every resume against one job vector,
// in dataset order. Caller must hold at least the read lock.
func (m *matcherService) scoreAll(jobVec TermVector) []float64 {
	scores := make([]float64, len(m.resumeVecs))
	for i, rv := range m.resumeVecs {
		scores[i] = CosineSimilarity(jobVec, rv)
	}
	return scores
}

// rankIndices sorts resume indices descending by score. The sort is stable,
// so ties keep their original dataset order.
func rankIndices(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// Ranking implements MatcherService. An empty resume dataset produces an
// empty ranking, not an error.
func (m *matcherService) Ranking(jobIndex, topN int) (*models.RankingResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkJobIndex(jobIndex); err != nil {
		return nil, err
	}

	scores := m.scoreAll(m.jobVecs[jobIndex])
	order := rankIndices(scores)

	if topN < 0 {
		topN = 0
	}
	if topN > len(order) {
		topN = len(order)
	}

	entries := make([]models.RankEntry, 0, topN)
	for rank, idx := range order[:topN] {
		r := m.resumes[idx]
		entries = append(entries, models.RankEntry{
			Rank:     rank + 1,
			ResumeID: r.ResumeID,
			Name:     r.Name,
			Skills:   r.Skills,
			Score:    round3(scores[idx]),
		})
	}

	return &models.RankingResponse{
		Job:     m.jobInfo(jobIndex),
		TopN:    topN,
		Total:   len(m.resumes),
		Entries: entries,
	}, nil
}

// Scores implements MatcherService: raw scores for every resume in dataset
// order, for the line chart.
func (m *matcherService) Scores(jobIndex int) ([]models.LinePoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkJobIndex(jobIndex); err != nil {
		return nil, err
	}

	scores := m.scoreAll(m.jobVecs[jobIndex])
	points := make([]models.LinePoint, len(scores))
	for i, s := range scores {
		points[i] = models.LinePoint{
			Index:    i,
			ResumeID: m.resumes[i].ResumeID,
			Name:     m.resumes[i].Name,
			Score:    s,
		}
	}
	return points, nil
}

// BubbleMatrix implements MatcherService.
func (m *matcherService) BubbleMatrix(numResumes, numJobs int) ([]models.MatrixPoint, error) {
	return m.matrix(numResumes, numJobs, func(r models.ResumeRecord) string {
		return fmt.Sprintf("Resume_%s", r.ResumeID)
	})
}

// BarMatrix implements MatcherService.
func (m *matcherService) BarMatrix(numResumes, numJobs int) ([]models.MatrixPoint, error) {
	return m.matrix(numResumes, numJobs, func(r models.ResumeRecord) string {
		return fmt.Sprintf("%s (ID:%s)", r.Name, r.ResumeID)
	})
}

func (m *matcherService) matrix(numResumes, numJobs int, label func(models.ResumeRecord) string) ([]models.MatrixPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasResumes || !m.hasJobs {
		return nil, ErrIndexNotReady
	}

	if numResumes < 0 || numResumes > len(m.resumes) {
		numResumes = len(m.resumes)
	}
	if numJobs < 0 || numJobs > len(m.jobs) {
		numJobs = len(m.jobs)
	}

	points := make([]models.MatrixPoint, 0, numResumes*numJobs)
	for i := 0; i < numResumes; i++ {
		for j := 0; j < numJobs; j++ {
			points = append(points, models.MatrixPoint{
				Resume: label(m.resumes[i]),
				Job:    m.jobs[j].Title,
				Score:  round3(CosineSimilarity(m.resumeVecs[i], m.jobVecs[j])),
			})
		}
	}
	return points, nil
}

// SearchCandidate implements MatcherService: finds the first resume whose
// name or ID contains the query (case-insensitive) and reports its score
// against the selected job.
func (m *matcherService) SearchCandidate(jobIndex int, query string) (*models.CandidateMatchResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkJobIndex(jobIndex); err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrCandidateNotFound
	}

	jobVec := m.jobVecs[jobIndex]
	for i, r := range m.resumes {
		if strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(r.ResumeID), query) {
			score := CosineSimilarity(jobVec, m.resumeVecs[i])
			return &models.CandidateMatchResponse{
				ResumeID:     r.ResumeID,
				Name:         r.Name,
				Score:        round3(score),
				ScorePercent: round2(score * 100),
			}, nil
		}
	}

	return nil, ErrCandidateNotFound
}

// MatchText implements MatcherService: scores an ad-hoc resume text against
// the selected job and reports where it would land in the current ranking.
func (m *matcherService) MatchText(jobIndex int, text string) (*models.MatchResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkJobIndex(jobIndex); err != nil {
		return nil, err
	}

	score := CosineSimilarity(m.jobVecs[jobIndex], m.vectorizer.Transform(text))

	wouldRank := 1
	for _, s := range m.scoreAll(m.jobVecs[jobIndex]) {
		if s > score {
			wouldRank++
		}
	}

	return &models.MatchResponse{
		Job:          m.jobInfo(jobIndex),
		Score:        round3(score),
		ScorePercent: round2(score * 100),
		WouldRank:    wouldRank,
		TotalResumes: len(m.resumes),
	}, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
