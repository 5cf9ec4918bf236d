package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hetulpatel/betsizer/internal/models"
	"github.com/hetulpatel/betsizer/internal/sizing"
)

// RecommendationRecord is the last published advice for a market, kept so the
// pipeline can suppress duplicate recommendations while the inputs are
// unchanged.
type RecommendationRecord struct {
	Side        sizing.Side `json:"side"`
	Amount      float64     `json:"amount"`
	ContentHash string      `json:"content_hash"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// RecordFor summarizes a recommendation for dedupe purposes. Amounts are
// bucketed to cents so float noise does not defeat the hash.
func RecordFor(rec models.Recommendation) RecommendationRecord {
	return RecommendationRecord{
		Side:   rec.Side,
		Amount: rec.Amount,
		ContentHash: hashStrings(
			rec.MarketID,
			string(rec.Side),
			strconv.FormatFloat(rec.Amount, 'f', 2, 64),
			string(rec.Reason),
		),
		UpdatedAt: rec.DecidedAt,
	}
}

// RecommendationCache stores the latest record per market.
type RecommendationCache interface {
	Get(ctx context.Context, marketID string) (*RecommendationRecord, bool, error)
	Set(ctx context.Context, marketID string, record RecommendationRecord) error
	Close() error
}

type redisRecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisRecommendationCache builds a cache keyed by market ID.
func NewRedisRecommendationCache(addr, password string, db int, ttl time.Duration, prefix string) (RecommendationCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if prefix == "" {
		prefix = "sizing_rec"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisRecommendationCache{client: client, ttl: ttl, prefix: prefix}, nil
}

func (c *redisRecommendationCache) key(marketID string) string {
	return fmt.Sprintf("%s:%s", c.prefix, marketID)
}

func (c *redisRecommendationCache) Get(ctx context.Context, marketID string) (*RecommendationRecord, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, c.key(marketID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var record RecommendationRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, false, fmt.Errorf("decode cached record: %w", err)
	}
	return &record, true, nil
}

func (c *redisRecommendationCache) Set(ctx context.Context, marketID string, record RecommendationRecord) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return c.client.Set(ctx, c.key(marketID), payload, c.ttl).Err()
}

func (c *redisRecommendationCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// hashStrings returns a SHA256 hash of the provided strings with newline
// separators.
func hashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
