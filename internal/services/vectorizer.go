package services

import (
	"math"
)

// TermVector is a sparse TF-IDF vector keyed by vocabulary index.
type TermVector map[int]float64

// TFIDFVectorizer learns a vocabulary and inverse document frequencies from
// a corpus, then turns any text into an L2-normalized TF-IDF vector over that
// vocabulary. Resume and job vectors must come from the same fitted
// vectorizer for cosine similarity between them to be meaningful.
type TFIDFVectorizer struct {
	vocabulary map[string]int
	idf        []float64
	numDocs    int
}

func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		vocabulary: make(map[string]int),
	}
}

// Fit builds the vocabulary and IDF table from the corpus. Each term counts
// once per document for its document frequency. IDF uses the smoothed form
// ln((1+n)/(1+df)) + 1 so terms present in every document still carry weight
// and unseen corpora cannot divide by zero.
func (v *TFIDFVectorizer) Fit(docs []string) {
	v.vocabulary = make(map[string]int)
	v.numDocs = len(docs)

	docFrequencies := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, token := range Tokenize(doc) {
			if _, exists := v.vocabulary[token]; !exists {
				v.vocabulary[token] = len(v.vocabulary)
			}
			if !seen[token] {
				docFrequencies[token]++
				seen[token] = true
			}
		}
	}

	v.idf = make([]float64, len(v.vocabulary))
	for token, idx := range v.vocabulary {
		df := float64(docFrequencies[token])
		v.idf[idx] = math.Log((1+float64(v.numDocs))/(1+df)) + 1
	}
}

// Transform converts text into an L2-normalized TF-IDF vector. Terms outside
// the fitted vocabulary are ignored. An empty or out-of-vocabulary text
// yields an empty vector, which scores 0 against everything.
func (v *TFIDFVectorizer) Transform(text string) TermVector {
	vec := make(TermVector)

	for _, token := range Tokenize(text) {
		if idx, exists := v.vocabulary[token]; exists {
			vec[idx] += v.idf[idx]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx, w := range vec {
			vec[idx] = w / norm
		}
	}

	return vec
}

// VocabularySize reports how many distinct terms were learned by Fit.
func (v *TFIDFVectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// CosineSimilarity computes the cosine of the angle between two sparse
// vectors. Returns 0 when either vector is zero.
func CosineSimilarity(a, b TermVector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	var dot, normA, normB float64
	for idx, x := range a {
		normA += x * x
		if y, ok := b[idx]; ok {
			dot += x * y
		}
	}
	for _, y := range b {
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
