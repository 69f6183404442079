package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL",
		"API_PORT", "ANALYZE_INTERVAL", "ANALYZE_LIMIT",
		"PREDICT_INTERVAL", "PREDICT_LIMIT",
		"API_URL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "NOTIFY_INTERVAL_SECS",
		"AWS_S3_BUCKET_NAME", "AWS_S3_READ_URL", "AWS_REGION_NAME",
		"AWS_S3_ENDPOINT", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"INFERENCE_URL", "JOB_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %s", cfg.OpenAIModel)
	}
	if cfg.APIPort != 8288 {
		t.Fatalf("expected default API port 8288, got %d", cfg.APIPort)
	}
	if cfg.AnalyzeInterval != "1h" || cfg.AnalyzeLimit != 500 {
		t.Fatalf("unexpected analyze defaults: %s/%d", cfg.AnalyzeInterval, cfg.AnalyzeLimit)
	}
	if cfg.PredictInterval != "1h" || cfg.PredictLimit != 500 {
		t.Fatalf("unexpected predict defaults: %s/%d", cfg.PredictInterval, cfg.PredictLimit)
	}
	if cfg.APIURL != "http://127.0.0.1:8288/analyze" {
		t.Fatalf("unexpected default API URL: %s", cfg.APIURL)
	}
	if cfg.NotifyIntervalSecs != 7200 {
		t.Fatalf("expected default notify interval 7200, got %d", cfg.NotifyIntervalSecs)
	}
	if cfg.JobPort != 8189 {
		t.Fatalf("expected default job port 8189, got %d", cfg.JobPort)
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("API_PORT", "9000")
	t.Setenv("ANALYZE_INTERVAL", "4h")
	t.Setenv("ANALYZE_LIMIT", "100")
	t.Setenv("API_URL", "http://api.internal/analyze")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("NOTIFY_INTERVAL_SECS", "60")
	t.Setenv("AWS_S3_BUCKET_NAME", "imgs")
	t.Setenv("AWS_S3_READ_URL", "sgp1.cdn.example.com")
	t.Setenv("INFERENCE_URL", "http://model:9090/infer")
	t.Setenv("JOB_PORT", "8200")

	cfg := Load()
	if cfg.OpenAIAPIKey != "sk-test" || cfg.OpenAIModel != "gpt-4o" {
		t.Fatalf("unexpected openai config: %+v", cfg)
	}
	if cfg.APIPort != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.APIPort)
	}
	if cfg.AnalyzeInterval != "4h" || cfg.AnalyzeLimit != 100 {
		t.Fatalf("unexpected analyze config: %s/%d", cfg.AnalyzeInterval, cfg.AnalyzeLimit)
	}
	if cfg.APIURL != "http://api.internal/analyze" {
		t.Fatalf("unexpected API URL: %s", cfg.APIURL)
	}
	if cfg.TelegramChatID != -100123 {
		t.Fatalf("expected chat id -100123, got %d", cfg.TelegramChatID)
	}
	if cfg.NotifyIntervalSecs != 60 {
		t.Fatalf("expected notify interval 60, got %d", cfg.NotifyIntervalSecs)
	}
	if cfg.S3Bucket != "imgs" || cfg.S3ReadHost != "sgp1.cdn.example.com" {
		t.Fatalf("unexpected s3 config: %+v", cfg)
	}
	if cfg.InferenceURL != "http://model:9090/infer" || cfg.JobPort != 8200 {
		t.Fatalf("unexpected job config: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANALYZE_INTERVAL", "2m")
	t.Setenv("ANALYZE_LIMIT", "5000")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	t.Setenv("API_PORT", "-1")

	cfg := Load()
	if cfg.AnalyzeInterval != "1h" {
		t.Fatalf("expected fallback interval, got %s", cfg.AnalyzeInterval)
	}
	if cfg.AnalyzeLimit != 500 {
		t.Fatalf("expected fallback limit, got %d", cfg.AnalyzeLimit)
	}
	if cfg.TelegramChatID != 0 {
		t.Fatalf("expected zero chat id, got %d", cfg.TelegramChatID)
	}
	if cfg.APIPort != 8288 {
		t.Fatalf("expected fallback port, got %d", cfg.APIPort)
	}
}
