package service

import (
	"strings"
	"testing"

	"callguard/internal/models"
)

func TestAssembleNoCandidates(t *testing.T) {
	a := NewContextAssembler(0.5)
	result := a.Assemble(nil)
	if result.Matched {
		t.Error("empty input should not match")
	}
	if result.Reason != ReasonNoCandidates {
		t.Errorf("expected reason %q, got %q", ReasonNoCandidates, result.Reason)
	}
	if result.Context() != NoMatchContext {
		t.Errorf("unexpected context %q", result.Context())
	}
}

func TestAssembleBelowThreshold(t *testing.T) {
	a := NewContextAssembler(0.5)
	result := a.Assemble([]models.RetrievedCandidate{
		{Category: "Tech Support Scam", Similarity: 0.31},
		{Category: "IRS Impersonation", Similarity: 0.12},
	})
	if result.Matched {
		t.Error("candidates below threshold should not match")
	}
	if result.Reason != ReasonBelowThreshold {
		t.Errorf("expected reason %q, got %q", ReasonBelowThreshold, result.Reason)
	}
}

func TestAssembleThresholdInclusive(t *testing.T) {
	a := NewContextAssembler(0.5)
	result := a.Assemble([]models.RetrievedCandidate{
		{Category: "Grandparent Scam", Similarity: 0.5},
	})
	if !result.Matched {
		t.Fatal("similarity exactly at threshold must be included")
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(result.Candidates))
	}
}

func TestAssemblePreservesRankingAndScores(t *testing.T) {
	a := NewContextAssembler(0.5)
	result := a.Assemble([]models.RetrievedCandidate{
		{Category: "Grandparent Scam", Similarity: 0.912345},
		{Category: "Emergency Scam", Similarity: 0.7},
		{Category: "Tech Support Scam", Similarity: 0.4},
	})
	if !result.Matched {
		t.Fatal("expected a match")
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 surviving candidates, got %d", len(result.Candidates))
	}
	if result.Candidates[0].Category != "Grandparent Scam" || result.Candidates[1].Category != "Emergency Scam" {
		t.Errorf("ranking not preserved: %+v", result.Candidates)
	}
	// Unrounded score stays available for the scorer.
	if result.Candidates[0].Similarity != 0.912345 {
		t.Errorf("similarity was mutated: %v", result.Candidates[0].Similarity)
	}
	// Rounding is presentation-only.
	if !strings.Contains(result.Blocks[0], "Similarity Score: 0.91") {
		t.Errorf("block should carry two-decimal score: %q", result.Blocks[0])
	}
}

func TestContextFormatting(t *testing.T) {
	a := NewContextAssembler(0.5)
	result := a.Assemble([]models.RetrievedCandidate{
		{Category: "Grandparent Scam", Summary: "sum1", Description: "desc1", Similarity: 0.9},
		{Category: "IRS Impersonation", Summary: "sum2", Description: "desc2", Similarity: 0.6},
	})
	ctx := result.Context()
	if !strings.Contains(ctx, "Scam Type: Grandparent Scam\nSummary: sum1\nDescription: desc1\nSimilarity Score: 0.90") {
		t.Errorf("unexpected first block in %q", ctx)
	}
	if !strings.Contains(ctx, "\n\n---\n\n") {
		t.Error("blocks should be separated by ---")
	}
}

func TestTopOnEmptyResult(t *testing.T) {
	var result ContextResult
	if _, ok := result.Top(); ok {
		t.Error("Top on empty result should report no candidate")
	}
}
