package service

import (
	"context"
	"fmt"
	"strings"

	"callguard/internal/models"
	"callguard/pkg/config"

	"go.uber.org/zap"
)

// DetectionService runs the full pipeline: encode the conversation, retrieve
// similar scam cases, assemble thresholded context, score the risk and compose
// the warning. Each run is stateless and safe to invoke concurrently; the
// case store is the only shared state.
type DetectionService struct {
	retrieval *RetrievalService
	assembler *ContextAssembler
	scorer    *RiskScorer
	composer  *ExplanationComposer
	encoder   Encoder
	store     CaseStore
	config    *config.RAGConfig
	logger    *zap.Logger
}

func NewDetectionService(
	encoder Encoder,
	store CaseStore,
	cfg *config.RAGConfig,
	logger *zap.Logger,
) *DetectionService {
	return &DetectionService{
		retrieval: NewRetrievalService(encoder, store, cfg, logger),
		assembler: NewContextAssembler(cfg.SimilarityThreshold),
		scorer:    NewRiskScorer(cfg.DefaultRiskScore),
		composer:  NewExplanationComposer(),
		encoder:   encoder,
		store:     store,
		config:    cfg,
		logger:    logger,
	}
}

// Bootstrap makes sure the similarity index exists. Idempotent; called on
// every process start.
func (s *DetectionService) Bootstrap(ctx context.Context) error {
	return s.store.EnsureIndex(ctx, s.encoder.Dimensions())
}

// Analyze classifies one conversation. Dependency failures propagate as
// errors; a clean run with no similar case yields a non-detection, never the
// other way around.
func (s *DetectionService) Analyze(ctx context.Context, conversationText string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(conversationText) == "" {
		return nil, ErrEmptyInput
	}

	candidates, err := s.retrieval.Retrieve(ctx, conversationText, s.config.TopK)
	if err != nil {
		return nil, err
	}

	contextResult := s.assembler.Assemble(candidates)
	assessment := s.scorer.Score(contextResult, conversationText)
	explanation := s.composer.Compose(contextResult)

	s.logger.Info("Conversation analyzed",
		zap.Bool("scam_detected", assessment.ScamDetected),
		zap.Int("risk_score", assessment.RiskScore),
		zap.String("pattern", assessment.Pattern),
		zap.String("reason", string(contextResult.Reason)),
	)

	return &models.AnalysisResult{
		ScamDetected:    assessment.ScamDetected,
		RiskScore:       assessment.RiskScore,
		Pattern:         assessment.Pattern,
		MatchedKeywords: assessment.MatchedKeywords,
		Explanation:     explanation,
		ContextUsed:     contextResult.Context(),
	}, nil
}

// Explain runs the same retrieval path and returns only the composed warning
// and the context it was built from, for downstream speech synthesis.
func (s *DetectionService) Explain(ctx context.Context, conversationText string) (explanation, contextUsed string, err error) {
	result, err := s.Analyze(ctx, conversationText)
	if err != nil {
		return "", "", err
	}
	return result.Explanation, result.ContextUsed, nil
}

// AddCase ingests one known scam case: the embedding is derived from the
// concatenated text fields and written atomically with them. Re-adding an id
// overwrites the whole record.
func (s *DetectionService) AddCase(ctx context.Context, id, category, description, summary string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: case id is required", ErrEmptyInput)
	}

	textToEmbed := fmt.Sprintf("%s: %s %s", category, summary, description)
	embedding, err := s.encoder.Encode(ctx, textToEmbed)
	if err != nil {
		return err
	}

	scamCase := &models.ScamCase{
		ID:          id,
		Category:    category,
		Description: description,
		Summary:     summary,
		Embedding:   embedding,
	}

	if err := s.store.UpsertCase(ctx, scamCase); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}
