package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hetulpatel/betsizer/internal/kafka"
	"github.com/hetulpatel/betsizer/internal/models"
	"github.com/hetulpatel/betsizer/internal/queue"
)

// snapshot_replay reads a JSON file of markets and feeds them onto the
// snapshots topic, useful for exercising the sizing worker without a live
// collector.
func main() {
	godotenv.Load()

	file := flag.String("file", "", "path to a JSON array of markets")
	flag.Parse()
	if *file == "" {
		log.Fatalf("[snapshot-replay] -file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("[snapshot-replay] read %s: %v", *file, err)
	}
	var markets []models.Market
	if err := json.Unmarshal(data, &markets); err != nil {
		log.Fatalf("[snapshot-replay] decode %s: %v", *file, err)
	}
	if len(markets) == 0 {
		log.Printf("[snapshot-replay] no markets in %s", *file)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	brokers := kafka.Brokers()
	topic := kafka.TopicFromEnv("SNAPSHOTS_KAFKA_TOPIC", kafka.DefaultSnapshotTopic)

	if err := kafka.WaitForBroker(ctx, brokers); err != nil {
		log.Fatalf("[snapshot-replay] wait for broker: %v", err)
	}
	if err := kafka.EnsureTopic(ctx, brokers, topic); err != nil {
		log.Printf("[snapshot-replay] ensure topic warning: %v", err)
	}

	writer := kafka.NewSnapshotWriter(brokers, topic)
	defer writer.Close()

	if err := queue.PublishSnapshots(ctx, writer, markets); err != nil {
		log.Fatalf("[snapshot-replay] publish: %v", err)
	}
	log.Printf("[snapshot-replay] published %d snapshots to %s", len(markets), topic)
}
