package service

import (
	"fmt"
	"strings"

	"callguard/internal/models"
)

// ContextReason says why a context is empty.
type ContextReason string

const (
	ReasonMatched        ContextReason = "matched"
	ReasonNoCandidates   ContextReason = "no_candidates"
	ReasonBelowThreshold ContextReason = "below_threshold"
)

// NoMatchContext is the sentinel rendered when nothing survived the threshold.
const NoMatchContext = "No similar scam cases found above the similarity threshold."

// ContextResult is the assembled evidence for one query. When Matched,
// Candidates holds the surviving hits in descending similarity order with
// their unrounded scores; Blocks holds the formatted presentation text. The
// two empty reasons behave identically downstream and exist for diagnostics.
type ContextResult struct {
	Matched    bool
	Reason     ContextReason
	Candidates []models.RetrievedCandidate
	Blocks     []string
}

// Top returns the highest-similarity surviving candidate.
func (r ContextResult) Top() (models.RetrievedCandidate, bool) {
	if len(r.Candidates) == 0 {
		return models.RetrievedCandidate{}, false
	}
	return r.Candidates[0], true
}

// Context renders the evidence as a single text block for the response
// payload and the explanation templates.
func (r ContextResult) Context() string {
	if !r.Matched {
		return NoMatchContext
	}
	return strings.Join(r.Blocks, "\n\n---\n\n")
}

// ContextAssembler filters ranked candidates by a similarity threshold and
// formats the survivors.
type ContextAssembler struct {
	threshold float64
}

func NewContextAssembler(threshold float64) *ContextAssembler {
	return &ContextAssembler{threshold: threshold}
}

// Assemble keeps every candidate with similarity >= threshold (inclusive),
// preserving the input ranking. Scores are rounded to two decimals in the
// formatted blocks only; Candidates keeps the exact values for the scorer.
func (a *ContextAssembler) Assemble(candidates []models.RetrievedCandidate) ContextResult {
	if len(candidates) == 0 {
		return ContextResult{Matched: false, Reason: ReasonNoCandidates}
	}

	var kept []models.RetrievedCandidate
	var blocks []string
	for _, c := range candidates {
		if c.Similarity < a.threshold {
			continue
		}
		kept = append(kept, c)
		blocks = append(blocks, formatCandidate(c))
	}

	if len(kept) == 0 {
		return ContextResult{Matched: false, Reason: ReasonBelowThreshold}
	}

	return ContextResult{
		Matched:    true,
		Reason:     ReasonMatched,
		Candidates: kept,
		Blocks:     blocks,
	}
}

func formatCandidate(c models.RetrievedCandidate) string {
	return fmt.Sprintf(
		"Scam Type: %s\nSummary: %s\nDescription: %s\nSimilarity Score: %.2f",
		c.Category, c.Summary, c.Description, c.Similarity,
	)
}
