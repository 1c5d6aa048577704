package service

import (
	"testing"

	"callguard/internal/models"
)

func matchedContext(c ...models.RetrievedCandidate) ContextResult {
	return ContextResult{Matched: true, Reason: ReasonMatched, Candidates: c}
}

func TestScoreUnmatched(t *testing.T) {
	s := NewRiskScorer(75)
	got := s.Score(ContextResult{Matched: false, Reason: ReasonNoCandidates}, "urgent wire transfer")
	if got.ScamDetected {
		t.Error("unmatched context must not detect a scam")
	}
	if got.RiskScore != 0 {
		t.Errorf("unmatched risk score must be 0, got %d", got.RiskScore)
	}
	if got.Pattern != UnknownPattern {
		t.Errorf("expected pattern %q, got %q", UnknownPattern, got.Pattern)
	}
	// Keyword scan is annotation only; it never runs without a pattern.
	if len(got.MatchedKeywords) != 0 {
		t.Errorf("no keywords expected without a match, got %v", got.MatchedKeywords)
	}
}

func TestScoreFromSimilarity(t *testing.T) {
	s := NewRiskScorer(75)
	got := s.Score(matchedContext(
		models.RetrievedCandidate{Category: "Grandparent Scam", Similarity: 0.874},
		models.RetrievedCandidate{Category: "IRS Impersonation", Similarity: 0.61},
	), "")
	if !got.ScamDetected {
		t.Fatal("matched context must detect a scam")
	}
	if got.Pattern != "Grandparent Scam" {
		t.Errorf("pattern must come from the top candidate, got %q", got.Pattern)
	}
	if got.RiskScore != 87 {
		t.Errorf("expected round(0.874*100) = 87, got %d", got.RiskScore)
	}
}

func TestScoreClamped(t *testing.T) {
	s := NewRiskScorer(75)
	got := s.Score(matchedContext(
		models.RetrievedCandidate{Category: "Grandparent Scam", Similarity: 1.004},
	), "")
	if got.RiskScore != 100 {
		t.Errorf("risk score must clamp to 100, got %d", got.RiskScore)
	}
}

func TestScoreFallbackDefault(t *testing.T) {
	s := NewRiskScorer(75)
	// Matched evidence with no recoverable candidate score: known pattern,
	// lost the number. Must not collapse to zero.
	got := s.Score(ContextResult{Matched: true, Reason: ReasonMatched}, "")
	if !got.ScamDetected {
		t.Fatal("matched context must detect a scam")
	}
	if got.RiskScore != 75 {
		t.Errorf("expected fallback default 75, got %d", got.RiskScore)
	}
}

func TestScoreKeywordAnnotation(t *testing.T) {
	s := NewRiskScorer(75)
	text := "Grandson says he's in JAIL and needs bail money via gift cards, please send payment"
	got := s.Score(matchedContext(
		models.RetrievedCandidate{Category: "Grandparent Scam", Similarity: 0.9},
	), text)
	want := []string{"gift card", "jail", "bail", "payment"}
	for _, kw := range want {
		if !contains(got.MatchedKeywords, kw) {
			t.Errorf("expected keyword %q in %v", kw, got.MatchedKeywords)
		}
	}
	if contains(got.MatchedKeywords, "virus") {
		t.Errorf("unexpected keyword in %v", got.MatchedKeywords)
	}
}

func TestScoreRangeInvariant(t *testing.T) {
	s := NewRiskScorer(75)
	for _, sim := range []float64{0, 0.004, 0.5, 0.995, 1} {
		got := s.Score(matchedContext(
			models.RetrievedCandidate{Category: "X", Similarity: sim},
		), "")
		if got.RiskScore < 0 || got.RiskScore > 100 {
			t.Errorf("risk score out of range for similarity %v: %d", sim, got.RiskScore)
		}
	}
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func TestScoreEmptyCategoryKeepsUnknown(t *testing.T) {
	s := NewRiskScorer(75)
	got := s.Score(matchedContext(
		models.RetrievedCandidate{Category: "", Similarity: 0.8},
	), "urgent payment")
	if got.Pattern != UnknownPattern {
		t.Errorf("expected %q, got %q", UnknownPattern, got.Pattern)
	}
	if len(got.MatchedKeywords) != 0 {
		t.Errorf("keywords must stay empty without a named pattern, got %v", got.MatchedKeywords)
	}
	if got.RiskScore != 80 {
		t.Errorf("risk still follows similarity, got %d", got.RiskScore)
	}
}
