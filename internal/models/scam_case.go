package models

import "time"

// ScamCase is a knowledge-base record describing one known scam narrative.
// The embedding is derived from "category: summary description" and is
// rewritten together with the text fields on every upsert, never patched
// separately.
type ScamCase struct {
	ID          string    `db:"id"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	Summary     string    `db:"summary"`
	Embedding   []float32 `db:"embedding"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// RetrievedCandidate is one k-NN hit. Similarity is cosine similarity in
// [0,1], higher is more similar; candidates are exposed in descending
// similarity order.
type RetrievedCandidate struct {
	Category    string
	Description string
	Summary     string
	Similarity  float64
}

// AnalysisResult is the outcome of one pipeline run. It is fully derived from
// the query and never persisted.
type AnalysisResult struct {
	ScamDetected    bool
	RiskScore       int
	Pattern         string
	MatchedKeywords []string
	Explanation     string
	ContextUsed     string
}
