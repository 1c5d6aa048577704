package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"callguard/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const casesTable = "scam_cases"

// CaseRepository stores scam cases in Postgres with a pgvector embedding
// column. One client handles both the text fields and the vector field; the
// embedding travels in the same row write as the rest of the record.
type CaseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCaseRepository(db *pgxpool.Pool, logger *zap.Logger) *CaseRepository {
	return &CaseRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureIndex creates the case table and its HNSW cosine index if they do not
// exist yet. Safe to call on every process start.
func (r *CaseRepository) EnsureIndex(ctx context.Context, dimensions int) error {
	var existing *string
	if err := r.db.QueryRow(ctx, "SELECT to_regclass($1)::text", casesTable).Scan(&existing); err != nil {
		return fmt.Errorf("failed to check case table: %w", err)
	}
	if existing != nil {
		r.logger.Info("Scam case index already exists", zap.String("table", casesTable))
		return nil
	}

	r.logger.Info("Creating scam case index",
		zap.String("table", casesTable),
		zap.Int("dimensions", dimensions),
	)

	// IF NOT EXISTS keeps concurrent startups from racing each other.
	statements := []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			summary TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`, casesTable, dimensions),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_embedding_idx
			ON %s USING hnsw (embedding vector_cosine_ops)`, casesTable, casesTable),
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create case index: %w", err)
		}
	}

	r.logger.Info("Scam case index created", zap.String("table", casesTable))
	return nil
}

// UpsertCase writes or overwrites the full record, embedding included, in a
// single statement so a concurrent reader never sees a half-updated case.
func (r *CaseRepository) UpsertCase(ctx context.Context, c *models.ScamCase) error {
	now := time.Now().UTC()

	query := squirrel.Insert(casesTable).
		Columns("id", "category", "description", "summary", "embedding", "created_at", "updated_at").
		Values(c.ID, c.Category, c.Description, c.Summary, vectorLiteral(c.Embedding), now, now).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			summary = EXCLUDED.summary,
			embedding = EXCLUDED.embedding,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to upsert scam case %q: %w", c.ID, err)
	}

	r.logger.Info("Scam case stored",
		zap.String("id", c.ID),
		zap.String("category", c.Category),
	)
	return nil
}

// SearchSimilar runs a cosine k-NN query and returns candidates in descending
// similarity order. An empty store yields an empty slice, not an error. Ties
// keep whatever stable order the index enumerates for the current store state.
func (r *CaseRepository) SearchSimilar(ctx context.Context, embedding []float32, topK int) ([]models.RetrievedCandidate, error) {
	if topK < 1 {
		return nil, fmt.Errorf("topK must be >= 1, got %d", topK)
	}

	query := squirrel.Select("category", "description", "summary").
		Column(squirrel.Expr("embedding <=> ?::vector AS distance", vectorLiteral(embedding))).
		From(casesTable).
		OrderBy("distance ASC").
		Limit(uint64(topK)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search scam cases: %w", err)
	}
	defer rows.Close()

	var candidates []models.RetrievedCandidate
	for rows.Next() {
		var c models.RetrievedCandidate
		var distance float64
		if err := rows.Scan(&c.Category, &c.Description, &c.Summary, &distance); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Similarity = similarityFromDistance(distance)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	return candidates, nil
}

// similarityFromDistance converts pgvector cosine distance (0 = identical) to
// similarity in [0,1].
func similarityFromDistance(distance float64) float64 {
	s := 1 - distance
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// vectorLiteral renders a float32 slice in pgvector's text input format,
// e.g. "[0.1,0.2,0.3]".
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
