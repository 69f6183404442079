package domain

// Candle is one OHLCV record for a fixed time interval. The JSON tags are
// the compact shape serialized into model prompts.
type Candle struct {
	OpenTime int64   `json:"t"`
	Open     float64 `json:"o"`
	High     float64 `json:"h"`
	Low      float64 `json:"l"`
	Close    float64 `json:"c"`
	Volume   float64 `json:"v"`
}

// MaxKlineLimit is the largest window the upstream klines API serves.
const MaxKlineLimit = 1000

// SupportedIntervals are the kline interval codes the exchange accepts.
var SupportedIntervals = []string{
	"1m", "3m", "5m", "15m", "30m",
	"1h", "2h", "4h", "6h", "8h", "12h",
	"1d", "3d", "1w", "1M",
}

func IsSupportedInterval(interval string) bool {
	for _, code := range SupportedIntervals {
		if code == interval {
			return true
		}
	}
	return false
}

// TradingPairs is the fixed registry the notifier picks a symbol from.
var TradingPairs = []string{
	"BTCUSDT", "ETHUSDT", "BNBUSDT", "ADAUSDT", "XRPUSDT",
	"DOGEUSDT", "DOTUSDT", "SOLUSDT", "MATICUSDT", "LTCUSDT",
	"SHIBUSDT", "AVAXUSDT", "ALGOUSDT",
}
