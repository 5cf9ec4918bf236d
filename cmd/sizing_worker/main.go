package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/hetulpatel/betsizer/internal/cache"
	"github.com/hetulpatel/betsizer/internal/config"
	"github.com/hetulpatel/betsizer/internal/decision"
	"github.com/hetulpatel/betsizer/internal/kafka"
	"github.com/hetulpatel/betsizer/internal/logging"
	"github.com/hetulpatel/betsizer/internal/models"
	"github.com/hetulpatel/betsizer/internal/queue"
	"github.com/hetulpatel/betsizer/internal/storage/sqlite"
	"github.com/hetulpatel/betsizer/internal/workers"
)

func main() {
	godotenv.Load()
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()
	brokers := kafka.Brokers()
	snapshotTopic := kafka.TopicFromEnv("SNAPSHOTS_KAFKA_TOPIC", kafka.DefaultSnapshotTopic)
	recTopic := kafka.TopicFromEnv("RECOMMENDATIONS_KAFKA_TOPIC", kafka.DefaultRecommendationsTopic)

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
		log.Fatalf("[sizing-worker] wait for broker: %v", err)
	}
	cancel()

	ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
	for _, topic := range []string{snapshotTopic, recTopic} {
		if err := kafka.EnsureTopic(ensureCtx, brokers, topic); err != nil {
			log.Printf("[sizing-worker] ensure topic %s warning: %v", topic, err)
		}
	}
	cancelEnsure()

	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[sizing-worker] open sqlite: %v", err)
	}
	defer store.Close()
	if err := store.CreateTables(ctx); err != nil {
		log.Fatalf("[sizing-worker] create tables: %v", err)
	}
	if config.EnvBool("SIZING_RESET_JOURNAL", false) {
		if err := store.ClearTables(ctx); err != nil {
			log.Fatalf("[sizing-worker] reset journal: %v", err)
		}
		log.Printf("[sizing-worker] journal cleared at %s", store.Path())
	}

	recCache, err := cache.NewRedisRecommendationCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL, cfg.RedisPrefix)
	if err != nil {
		log.Fatalf("[sizing-worker] redis cache: %v", err)
	}
	defer recCache.Close()

	writer := kafka.NewRecommendationWriter(brokers, recTopic)
	defer writer.Close()
	publish := func(ctx context.Context, rec models.Recommendation) error {
		return queue.PublishRecommendation(ctx, writer, rec)
	}

	maker := decision.NewEnsemble(decision.NewRuleBased())
	processor, err := workers.NewProcessor(maker, cfg.SizingConfig(), recCache, store, publish)
	if err != nil {
		log.Fatalf("[sizing-worker] processor: %v", err)
	}

	log.Printf("[sizing-worker] consuming %s with group %s (%d workers, bankroll=%.2f, kf=%.2f)",
		snapshotTopic, cfg.WorkerGroup, cfg.WorkerCount, cfg.Bankroll, cfg.KellyFraction)
	workers.Run(ctx, brokers, snapshotTopic, cfg.WorkerGroup, cfg.WorkerCount, processor.Handle)
}
