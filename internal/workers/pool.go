package workers

import (
	"context"
	"encoding/json"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hetulpatel/betsizer/internal/kafka"
	"github.com/hetulpatel/betsizer/internal/logging"
	"github.com/hetulpatel/betsizer/internal/models"
)

// Handler consumes one market snapshot pulled off the intake topic.
type Handler func(context.Context, *models.MarketSnapshot) error

// Run starts workerCount consumers in the same consumer group and blocks
// until ctx is cancelled. Each worker owns its reader so a slow rebalance on
// one connection does not stall the others.
func Run(ctx context.Context, brokers []string, topic, group string, workerCount int, handler Handler) {
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			reader := kafka.NewReader(brokers, topic, group)
			defer reader.Close()
			logging.Debugf("sizing worker %d consuming %s", id, topic)
			consume(ctx, reader, handler)
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
}

func consume(ctx context.Context, reader *kafkago.Reader, handler Handler) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.Errorf("worker read error: %v", err)
			continue
		}

		var snapshot models.MarketSnapshot
		if err := json.Unmarshal(msg.Value, &snapshot); err != nil {
			logging.Errorf("worker unmarshal error: %v", err)
			continue
		}

		if handler == nil {
			continue
		}
		if err := handler(ctx, &snapshot); err != nil {
			logging.Errorf("worker handler error (market %s): %v", snapshot.Market.MarketID, err)
		}
	}
}
