package service

import (
	"context"
	"fmt"

	"candlecast/internal/advisor"
	"candlecast/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type KlineFetcher interface {
	FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error)
}

type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AnalysisService runs the fetch → build → complete pipeline for one
// commentary request. Nothing is cached; every call builds a fresh window
// and prompt.
type AnalysisService struct {
	tracer    trace.Tracer
	fetcher   KlineFetcher
	completer Completer
}

func NewAnalysisService(tracer trace.Tracer, fetcher KlineFetcher, completer Completer) *AnalysisService {
	return &AnalysisService{
		tracer:    tracer,
		fetcher:   fetcher,
		completer: completer,
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, variant advisor.Variant, symbol string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("symbol", symbol),
		attribute.String("variant", variant.Name),
	)

	candles, err := s.fetcher.FetchKlines(ctx, symbol, variant.Interval, variant.Limit)
	if err != nil {
		return "", fmt.Errorf("fetch klines for %s: %w", symbol, err)
	}

	userPrompt, err := advisor.BuildUserPrompt(variant, symbol, candles)
	if err != nil {
		return "", err
	}

	text, err := s.completer.Complete(ctx, variant.SystemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("%s completion for %s: %w", variant.Name, symbol, err)
	}
	return text, nil
}
