package service

import (
	"context"
	"errors"
	"fmt"

	"callguard/internal/models"
	"callguard/pkg/config"

	"go.uber.org/zap"
)

// CaseStore is the similarity-store capability the pipeline needs: idempotent
// index bootstrap, atomic per-record upsert, and cosine k-NN.
type CaseStore interface {
	EnsureIndex(ctx context.Context, dimensions int) error
	UpsertCase(ctx context.Context, c *models.ScamCase) error
	SearchSimilar(ctx context.Context, embedding []float32, topK int) ([]models.RetrievedCandidate, error)
}

// RetrievalService encodes query text and runs a k-NN search against the case
// store. It returns raw ranked candidates without filtering; thresholding is
// the context assembler's job. No retries here, retry policy belongs to the
// caller.
type RetrievalService struct {
	encoder Encoder
	store   CaseStore
	config  *config.RAGConfig
	logger  *zap.Logger
}

func NewRetrievalService(encoder Encoder, store CaseStore, cfg *config.RAGConfig, logger *zap.Logger) *RetrievalService {
	return &RetrievalService{
		encoder: encoder,
		store:   store,
		config:  cfg,
		logger:  logger,
	}
}

func (s *RetrievalService) Retrieve(ctx context.Context, queryText string, topK int) ([]models.RetrievedCandidate, error) {
	embedding, err := s.encoder.Encode(ctx, queryText)
	if err != nil {
		return nil, err
	}

	searchCtx, cancel := context.WithTimeout(ctx, s.config.SearchTimeout)
	defer cancel()

	candidates, err := s.store.SearchSimilar(searchCtx, embedding, topK)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: case search exceeded %s", ErrTimeout, s.config.SearchTimeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.logger.Debug("Similarity search completed",
		zap.Int("top_k", topK),
		zap.Int("candidates", len(candidates)),
	)

	return candidates, nil
}
