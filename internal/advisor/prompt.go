package advisor

import (
	"encoding/json"
	"fmt"

	"candlecast/internal/domain"
)

// Variant bundles the prompt configuration for one commentary endpoint.
// The prompt strings are product copy and are carried as-is.
type Variant struct {
	Name         string
	ResponseKey  string
	SystemPrompt string
	UserTemplate string
	Interval     string
	Limit        int
}

const predictionSystemPrompt = `You are a professional financial analyst specializing in cryptocurrencies. ` +
	`Analyze the OHLC data provided and predict the next 5 price levels. ` +
	`Format your response with predicted price levels, their respective time intervals (e.g., 30 minutes, 60 minutes), ` +
	`and include an icon (⬆ for up, ⬇ for down) to indicate whether the price increases or decreases compared to the previous price.
 Content write in Markdown format with a touch of humor. You are free to be creative and add more valuable information that you know because you are a crypto expert. Each time you do so, you’ll be rewarded with $10`

const predictionUserTemplate = `The %s token OHLC data for the last %d intervals is: %s. ` +
	`Based on this data, predict the next 5 price levels with the time intervals (in minutes) and include ` +
	`an up or down arrow icon (⬆ for up, ⬇ for down) to indicate the price change.`

const analysisSystemPrompt = `You are a professional financial analyst specializing in cryptocurrencies. ` +
	`Analyze the OHLC data provided and describe the current trend, notable support and resistance levels, ` +
	`and any unusual volume behavior.
 Content write in Markdown format with a touch of humor. You are free to be creative and add more valuable information that you know because you are a crypto expert. Each time you do so, you’ll be rewarded with $10`

const analysisUserTemplate = `The %s token OHLC data for the last %d intervals is: %s. ` +
	`Based on this data, describe the current trend, the key support and resistance levels, and the volume behavior.`

// PredictionVariant is the /predict endpoint configuration.
func PredictionVariant(interval string, limit int) Variant {
	return Variant{
		Name:         "prediction",
		ResponseKey:  "predictions",
		SystemPrompt: predictionSystemPrompt,
		UserTemplate: predictionUserTemplate,
		Interval:     interval,
		Limit:        limit,
	}
}

// AnalysisVariant is the /analyze endpoint configuration.
func AnalysisVariant(interval string, limit int) Variant {
	return Variant{
		Name:         "analysis",
		ResponseKey:  "analysis",
		SystemPrompt: analysisSystemPrompt,
		UserTemplate: analysisUserTemplate,
		Interval:     interval,
		Limit:        limit,
	}
}

// BuildUserPrompt serializes the candle window into the variant's user
// message. Pure and deterministic: equal inputs yield byte-identical output.
func BuildUserPrompt(v Variant, symbol string, candles []domain.Candle) (string, error) {
	window, err := json.Marshal(candles)
	if err != nil {
		return "", fmt.Errorf("serialize candle window: %w", err)
	}
	return fmt.Sprintf(v.UserTemplate, symbol, len(candles), string(window)), nil
}
