package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/hetulpatel/betsizer/internal/cache"
	"github.com/hetulpatel/betsizer/internal/decision"
	"github.com/hetulpatel/betsizer/internal/logging"
	"github.com/hetulpatel/betsizer/internal/models"
	"github.com/hetulpatel/betsizer/internal/sizing"
)

// Journal persists recommendations for later review.
type Journal interface {
	InsertRecommendation(ctx context.Context, rec models.Recommendation) error
}

// PublishFunc forwards an actionable recommendation downstream.
type PublishFunc func(ctx context.Context, rec models.Recommendation) error

// Processor turns a market snapshot into a sizing recommendation: estimate
// the true probability, size the bet, dedupe against the cache, journal the
// decision, and publish anything actionable.
type Processor struct {
	maker   decision.Maker
	base    sizing.Config
	cache   cache.RecommendationCache
	journal Journal
	publish PublishFunc
}

func NewProcessor(maker decision.Maker, base sizing.Config, recCache cache.RecommendationCache, journal Journal, publish PublishFunc) (*Processor, error) {
	if maker == nil {
		return nil, fmt.Errorf("decision maker is required")
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("sizing config: %w", err)
	}
	return &Processor{maker: maker, base: base, cache: recCache, journal: journal, publish: publish}, nil
}

func (p *Processor) Handle(ctx context.Context, snap *models.MarketSnapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	market := snap.Market
	if market.MarketID == "" {
		return fmt.Errorf("snapshot missing market id")
	}

	cfg := p.base
	if market.Subsidy > 0 {
		cfg.MarketSubsidy = market.Subsidy
	}

	est, ok, err := p.maker.Estimate(ctx, market)
	if err != nil {
		return fmt.Errorf("estimate %s: %w", market.MarketID, err)
	}
	if !ok {
		logging.Debugf("market %s: maker %s abstained", market.MarketID, p.maker.Name())
		return nil
	}

	result, err := sizing.SizeBet(est.TrueProb, market.Probability, est.Confidence, cfg)
	if err != nil {
		return fmt.Errorf("size bet %s: %w", market.MarketID, err)
	}

	rec := models.Recommendation{
		MarketID:     market.MarketID,
		Question:     market.Question,
		Side:         result.Side,
		Amount:       result.Amount,
		ExpectedProb: result.ExpectedProb,
		Impact:       result.Impact,
		Edge:         result.Edge,
		TrueProb:     est.TrueProb,
		Confidence:   est.Confidence,
		MarketProb:   market.Probability,
		Maker:        p.maker.Name(),
		Rationale:    est.Rationale,
		ClampedBy:    result.ClampedBy,
		Reason:       result.Reason,
		Iterations:   result.Iterations,
		Converged:    result.Converged,
		DecidedAt:    time.Now().UTC(),
	}

	record := cache.RecordFor(rec)
	if p.cache != nil {
		prev, found, err := p.cache.Get(ctx, market.MarketID)
		if err != nil {
			logging.Errorf("cache get %s: %v", market.MarketID, err)
		} else if found && prev.ContentHash == record.ContentHash {
			logging.Debugf("market %s: recommendation unchanged, skipping", market.MarketID)
			return nil
		}
	}

	if p.journal != nil {
		if err := p.journal.InsertRecommendation(ctx, rec); err != nil {
			return fmt.Errorf("journal %s: %w", market.MarketID, err)
		}
	}
	if p.cache != nil {
		if err := p.cache.Set(ctx, market.MarketID, record); err != nil {
			logging.Errorf("cache set %s: %v", market.MarketID, err)
		}
	}

	if rec.Actionable() {
		logging.Infof("market %s: %s $%.2f (edge %.4f, impact %.4f, clamp=%s)",
			market.MarketID, rec.Side, rec.Amount, rec.Edge, rec.Impact, rec.ClampedBy)
		if p.publish != nil {
			if err := p.publish(ctx, rec); err != nil {
				return fmt.Errorf("publish %s: %w", market.MarketID, err)
			}
		}
	} else {
		logging.Debugf("market %s: no bet (%s)", market.MarketID, rec.Reason)
	}
	return nil
}
