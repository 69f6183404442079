package main

import (
	"context"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"candlecast/internal/config"
	"candlecast/internal/domain"
	"candlecast/internal/notifier"

	"github.com/joho/godotenv"
)

var (
	loadEnvFunc       = godotenv.Load
	loadConfigFunc    = config.Load
	newSenderFunc     = notifier.NewTelegramSender
	setupSignalNotify = ossignal.Notify
)

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.TelegramChatID == 0 {
		log.Fatal("TELEGRAM_CHAT_ID is required")
	}

	sender, err := newSenderFunc(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("failed to create Telegram sender: %v", err)
	}

	apiClient := notifier.NewAPIClient(cfg.APIURL)
	n := notifier.New(
		domain.TradingPairs,
		apiClient,
		sender,
		time.Duration(cfg.NotifyIntervalSecs)*time.Second,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go n.Run(ctx)

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down notifier...")

	cancel()
	log.Println("Notifier exiting")
}
