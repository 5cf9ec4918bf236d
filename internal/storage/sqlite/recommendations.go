package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hetulpatel/betsizer/internal/models"
)

// InsertRecommendation journals one sizing decision (bet or skip).
func (s *Store) InsertRecommendation(ctx context.Context, rec models.Recommendation) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}

	rawJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	query := `
INSERT INTO recommendations (
	market_id, question, side, amount, expected_prob, impact, edge,
	true_prob, confidence, market_prob, maker, rationale,
	clamped_by, reason, iterations, converged, decided_at, raw_json
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	converged := 0
	if rec.Converged {
		converged = 1
	}
	_, err = s.db.ExecContext(
		ctx,
		query,
		rec.MarketID,
		rec.Question,
		string(rec.Side),
		rec.Amount,
		rec.ExpectedProb,
		rec.Impact,
		rec.Edge,
		rec.TrueProb,
		rec.Confidence,
		rec.MarketProb,
		rec.Maker,
		rec.Rationale,
		string(rec.ClampedBy),
		string(rec.Reason),
		rec.Iterations,
		converged,
		rec.DecidedAt.UTC().Format(time.RFC3339Nano),
		string(rawJSON),
	)
	return err
}

// RecentRecommendations returns the newest journal entries, latest first.
func (s *Store) RecentRecommendations(ctx context.Context, limit int) ([]models.Recommendation, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT raw_json FROM recommendations ORDER BY decided_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Recommendation
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec models.Recommendation
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode journal row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
