package services

import (
	"context"
	"fmt"
	"log"

	"fake-news-detector/database"
	"fake-news-detector/models"
)

// VerdictStat is the aggregate count of one verdict for one model.
type VerdictStat struct {
	Model         models.ModelID `json:"model"`
	Verdict       models.Verdict `json:"verdict"`
	Total         int            `json:"total"`
	AvgConfidence float64        `json:"avg_confidence"`
	LastSeenAt    string         `json:"last_seen_at"`
}

// RecordVerdict bumps the counters for a finished classification. It is a
// ResultObserver and does nothing without a database.
func RecordVerdict(ctx context.Context, r models.ClassificationResult) {
	if database.DB == nil {
		return
	}
	_, err := database.DB.ExecContext(ctx, `
		INSERT INTO verdict_stats (model, verdict, total, confidence_sum, last_seen_at)
		VALUES ($1, $2, 1, $3, NOW())
		ON CONFLICT (model, verdict) DO UPDATE SET
			total          = verdict_stats.total + 1,
			confidence_sum = verdict_stats.confidence_sum + EXCLUDED.confidence_sum,
			last_seen_at   = NOW()
	`, string(r.ModelUsed), string(r.Verdict), r.Confidence)
	if err != nil {
		log.Printf("[DB] ⚠ failed to record verdict for %s: %v", r.ModelUsed, err)
	}
}

// VerdictStats lists all counters, most used model first.
func VerdictStats(ctx context.Context) ([]VerdictStat, error) {
	if database.DB == nil {
		return []VerdictStat{}, nil
	}
	rows, err := database.DB.QueryContext(ctx, `
		SELECT model, verdict, total, confidence_sum / GREATEST(total, 1), last_seen_at
		FROM verdict_stats
		ORDER BY total DESC, model, verdict
	`)
	if err != nil {
		return nil, fmt.Errorf("query verdict_stats: %w", err)
	}
	defer rows.Close()

	list := []VerdictStat{}
	for rows.Next() {
		var s VerdictStat
		var model, verdict string
		if err := rows.Scan(&model, &verdict, &s.Total, &s.AvgConfidence, &s.LastSeenAt); err != nil {
			return nil, fmt.Errorf("scan verdict_stats: %w", err)
		}
		s.Model = models.ModelID(model)
		s.Verdict = models.Verdict(verdict)
		list = append(list, s)
	}
	return list, rows.Err()
}
