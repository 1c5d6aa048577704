package service

import (
	"math"
	"strings"
)

// UnknownPattern is reported when no scam pattern matched.
const UnknownPattern = "Unknown"

// fraudKeywords is the fixed vocabulary of payment-pressure and urgency terms
// scanned for evidentiary annotation.
var fraudKeywords = []string{
	"urgent", "immediately", "verify", "password", "gift card",
	"wire transfer", "jail", "bail", "irs", "tax", "arrest",
	"virus", "computer", "remote access", "payment", "account",
}

// RiskAssessment is the scorer's verdict for one query.
type RiskAssessment struct {
	ScamDetected    bool
	RiskScore       int
	Pattern         string
	MatchedKeywords []string
}

// RiskScorer maps assembled context into a discrete risk score and a named
// scam pattern.
type RiskScorer struct {
	// defaultRiskScore is used when a pattern matched but no numeric
	// similarity is recoverable for it. "Known pattern, lost the score" is
	// not "no evidence of fraud", so it must not collapse to zero.
	defaultRiskScore int
}

func NewRiskScorer(defaultRiskScore int) *RiskScorer {
	return &RiskScorer{defaultRiskScore: defaultRiskScore}
}

// Score derives the verdict from the context evidence. The keyword pass over
// the raw conversation annotates a match with supporting phrases; it never
// upgrades an unmatched conversation to a detection.
func (s *RiskScorer) Score(contextResult ContextResult, conversationText string) RiskAssessment {
	if !contextResult.Matched {
		return RiskAssessment{
			ScamDetected: false,
			RiskScore:    0,
			Pattern:      UnknownPattern,
		}
	}

	assessment := RiskAssessment{
		ScamDetected: true,
		Pattern:      UnknownPattern,
		RiskScore:    s.defaultRiskScore,
	}

	if top, ok := contextResult.Top(); ok {
		if top.Category != "" {
			assessment.Pattern = top.Category
		}
		assessment.RiskScore = clampScore(int(math.Round(top.Similarity * 100)))
	}

	if assessment.Pattern != UnknownPattern {
		assessment.MatchedKeywords = matchKeywords(conversationText)
	}

	return assessment
}

func matchKeywords(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range fraudKeywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
