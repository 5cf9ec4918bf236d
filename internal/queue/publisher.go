package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hetulpatel/betsizer/internal/models"
)

// PublishSnapshots places market snapshots on the intake topic, one message
// per market, keyed for per-market partition affinity.
func PublishSnapshots(ctx context.Context, writer *kafka.Writer, markets []models.Market) error {
	if writer == nil || len(markets) == 0 {
		return nil
	}

	captured := time.Now().UTC()
	msgs := make([]kafka.Message, 0, len(markets))
	for _, m := range markets {
		snapshot := models.NewSnapshot(m, captured)
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("marshal snapshot %s: %w", m.MarketID, err)
		}
		key := fmt.Sprintf("%s-%d", m.MarketID, captured.UnixNano())
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: payload})
	}
	return writer.WriteMessages(ctx, msgs...)
}

// PublishRecommendation places a sizing recommendation on the outbound topic
// for the order-placement service. The key is the bare market ID so the
// hash-balanced writer keeps one market's advice in order on one partition.
func PublishRecommendation(ctx context.Context, writer *kafka.Writer, rec models.Recommendation) error {
	if writer == nil {
		return nil
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation %s: %w", rec.MarketID, err)
	}
	return writer.WriteMessages(ctx, kafka.Message{Key: []byte(rec.MarketID), Value: payload})
}
