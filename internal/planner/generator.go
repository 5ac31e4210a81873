package planner

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/finplan-go/internal/config"
	"github.com/cloud-ru/finplan-go/internal/household"
	"github.com/cloud-ru/finplan-go/internal/metrics"
)

// FallbackGenerator обращается к основному генератору и при любой ошибке
// возвращает план резервного
type FallbackGenerator struct {
	Primary   PlanGenerator
	Secondary PlanGenerator
	Log       logrus.FieldLogger
}

// Generate реализует PlanGenerator
func (g *FallbackGenerator) Generate(ctx context.Context, profile *household.Profile, opts household.Options) (*Plan, error) {
	plan, err := g.Primary.Generate(ctx, profile, opts)
	if err == nil {
		return plan, nil
	}

	g.Log.WithError(err).Warn("primary plan generator failed, using fallback")
	return g.Secondary.Generate(ctx, profile, opts)
}

// observed учитывает генерации плана в метриках
type observed struct {
	source string
	inner  PlanGenerator
}

func (o *observed) Generate(ctx context.Context, profile *household.Profile, opts household.Options) (*Plan, error) {
	start := time.Now()
	plan, err := o.inner.Generate(ctx, profile, opts)
	metrics.PlanLatency.WithLabelValues(o.source).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PlanGenerations.WithLabelValues(o.source, "error").Inc()
		return nil, err
	}
	metrics.PlanGenerations.WithLabelValues(o.source, "success").Inc()
	return plan, nil
}

// NewGenerator выбирает реализацию по PLAN_PROVIDER
func NewGenerator(cfg *config.Config, tracer trace.Tracer, log logrus.FieldLogger) PlanGenerator {
	local := &observed{source: SourceLocal, inner: NewLocalGenerator()}

	if cfg.PlanProvider != config.PlanProviderAI {
		return local
	}

	ai := &observed{
		source: SourceAI,
		inner:  NewAIGenerator(cfg.AIEndpoint, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout, tracer, log),
	}
	if !cfg.PlanFallbackLocal {
		return ai
	}

	return &FallbackGenerator{Primary: ai, Secondary: local, Log: log}
}
