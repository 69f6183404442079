package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"candlecast/internal/domain"
)

type Config struct {
	APIPort         int
	OpenAIAPIKey    string
	OpenAIModel     string
	AnalyzeInterval string
	AnalyzeLimit    int
	PredictInterval string
	PredictLimit    int

	APIURL             string
	TelegramBotToken   string
	TelegramChatID     int64
	NotifyIntervalSecs int

	S3Bucket          string
	S3ReadHost        string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	InferenceURL      string
	JobPort           int
}

func Load() *Config {
	cfg := &Config{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		S3Bucket:          os.Getenv("AWS_S3_BUCKET_NAME"),
		S3ReadHost:        os.Getenv("AWS_S3_READ_URL"),
		S3Region:          os.Getenv("AWS_REGION_NAME"),
		S3Endpoint:        os.Getenv("AWS_S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		InferenceURL:      strings.TrimSpace(os.Getenv("INFERENCE_URL")),
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, commentary endpoints will fail")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.APIPort = 8288
	if v := strings.TrimSpace(os.Getenv("API_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIPort = n
		}
	}

	cfg.AnalyzeInterval = parseInterval(os.Getenv("ANALYZE_INTERVAL"))
	cfg.AnalyzeLimit = parseLimit(os.Getenv("ANALYZE_LIMIT"))
	cfg.PredictInterval = parseInterval(os.Getenv("PREDICT_INTERVAL"))
	cfg.PredictLimit = parseLimit(os.Getenv("PREDICT_LIMIT"))

	cfg.APIURL = strings.TrimSpace(os.Getenv("API_URL"))
	if cfg.APIURL == "" {
		cfg.APIURL = "http://127.0.0.1:8288/analyze"
	}

	if v := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = n
		} else {
			log.Printf("Warning: invalid TELEGRAM_CHAT_ID %q", v)
		}
	}

	cfg.NotifyIntervalSecs = 7200
	if v := strings.TrimSpace(os.Getenv("NOTIFY_INTERVAL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.NotifyIntervalSecs = n
		}
	}

	cfg.JobPort = 8189
	if v := strings.TrimSpace(os.Getenv("JOB_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.JobPort = n
		}
	}

	return cfg
}

func parseInterval(raw string) string {
	interval := strings.TrimSpace(raw)
	if interval == "" {
		return "1h"
	}
	if !domain.IsSupportedInterval(interval) {
		log.Printf("Warning: unsupported interval %q, defaulting to 1h", interval)
		return "1h"
	}
	return interval
}

func parseLimit(raw string) int {
	limit := 500
	if v := strings.TrimSpace(raw); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= domain.MaxKlineLimit {
			limit = n
		} else {
			log.Printf("Warning: invalid kline limit %q, defaulting to %d", v, limit)
		}
	}
	return limit
}
