package quote

import (
	"context"
	"errors"

	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
	"github.com/angelmondragon/rflink-backend/pkg/metrics"
)

const (
	warningUnresolvedPrice = "unresolved_price"
	warningMalformedOption = "malformed_option"
	warningOther           = "other"
)

// observer logs and counts what the engine reports.
type observer struct {
	logg    *logger.Logger
	metrics *metrics.PricingMetrics
}

var _ pricing.Observer = (*observer)(nil)

func newObserver(logg *logger.Logger, m *metrics.PricingMetrics) *observer {
	return &observer{logg: logg, metrics: m}
}

func (o *observer) StrategySelected(ctx context.Context, productID string, strategy enums.PricingStrategy) {
	o.metrics.IncStrategy(strategy.String())
	if o.logg != nil {
		o.logg.Debug(o.logg.WithFields(ctx, map[string]any{
			"product_id": productID,
			"strategy":   strategy.String(),
		}), "pricing strategy selected")
	}
}

func (o *observer) ConnectorMatched(ctx context.Context, productID string, tier enums.MatchTier) {
	o.metrics.IncMatch(tier.String())
	if o.logg == nil || !tier.IsFallback() {
		return
	}
	o.logg.Warn(o.logg.WithFields(ctx, map[string]any{
		"product_id": productID,
		"match_tier": tier.String(),
	}), "connector price matched by substring")
}

func (o *observer) Warning(ctx context.Context, productID string, warning error) {
	o.metrics.IncWarning(warningKind(warning))
	if o.logg == nil {
		return
	}
	o.logg.Warn(o.logg.WithFields(ctx, map[string]any{
		"product_id": productID,
		"warning":    warning.Error(),
	}), "pricing warning")
}

func warningKind(err error) string {
	var unresolved *pricing.UnresolvedPriceWarning
	if errors.As(err, &unresolved) {
		return warningUnresolvedPrice
	}
	var malformed *pricing.MalformedOptionWarning
	if errors.As(err, &malformed) {
		return warningMalformedOption
	}
	return warningOther
}
