package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"candlecast/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultBaseURL = "https://api.binance.com"

// BinanceProvider fetches OHLCV candles from the public klines endpoint.
// Each call is a single best-effort request: no retries, no caching.
type BinanceProvider struct {
	tracer  trace.Tracer
	baseURL string
	client  *http.Client
}

func NewBinanceProvider(tracer trace.Tracer) *BinanceProvider {
	return NewBinanceProviderWithBaseURL(tracer, defaultBaseURL)
}

func NewBinanceProviderWithBaseURL(tracer trace.Tracer, baseURL string) *BinanceProvider {
	return &BinanceProvider{
		tracer:  tracer,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchKlines returns up to limit candles for the given pair and interval,
// ordered as the exchange returns them (most recent last).
func (p *BinanceProvider) FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	ctx, span := p.tracer.Start(ctx, "binance.fetch-klines")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if !domain.IsSupportedInterval(interval) {
		return nil, fmt.Errorf("unsupported interval: %q", interval)
	}
	if limit <= 0 || limit > domain.MaxKlineLimit {
		return nil, fmt.Errorf("limit must be between 1 and %d, got %d", domain.MaxKlineLimit, limit)
	}

	span.SetAttributes(
		attribute.String("symbol", symbol),
		attribute.String("interval", interval),
		attribute.Int("limit", limit),
	)

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/v3/klines?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build klines request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read klines response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("klines API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var rows [][]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode klines response: %w", err)
	}

	candles := make([]domain.Candle, 0, len(rows))
	for i, row := range rows {
		candle, err := parseKlineRow(row)
		if err != nil {
			return nil, fmt.Errorf("kline row %d: %w", i, err)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// parseKlineRow maps one upstream row into a Candle. Rows carry the open
// time first, then o/h/l/c/v; trailing fields are ignored.
func parseKlineRow(row []any) (domain.Candle, error) {
	if len(row) < 6 {
		return domain.Candle{}, fmt.Errorf("expected at least 6 fields, got %d", len(row))
	}

	openTime, err := asInt64(row[0])
	if err != nil {
		return domain.Candle{}, fmt.Errorf("open time: %w", err)
	}

	fields := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := asFloat(row[i+1])
		if err != nil {
			return domain.Candle{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		fields[i] = v
	}

	return domain.Candle{
		OpenTime: openTime,
		Open:     fields[0],
		High:     fields[1],
		Low:      fields[2],
		Close:    fields[3],
		Volume:   fields[4],
	}, nil
}

func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("unexpected value %v (%T)", v, v)
	}
}

func asInt64(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Int64()
	case string:
		return strconv.ParseInt(x, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected value %v (%T)", v, v)
	}
}
