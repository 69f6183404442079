package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"candlecast/internal/bridge"
	"candlecast/internal/config"
	"candlecast/internal/inference"
	"candlecast/internal/storage"
	"candlecast/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	newStoreFunc           = storage.NewS3Store
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	port, err := parsePort(os.Args[1:], cfg.JobPort)
	if err != nil {
		log.Fatalf("parse options: %v", err)
	}

	if cfg.S3Bucket == "" || cfg.S3ReadHost == "" {
		log.Fatal("AWS_S3_BUCKET_NAME and AWS_S3_READ_URL are required")
	}
	if cfg.InferenceURL == "" {
		log.Fatal("INFERENCE_URL is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, "candlecast-imagejob")
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	store, err := newStoreFunc(ctx, storage.S3Config{
		Bucket:          cfg.S3Bucket,
		ReadHost:        cfg.S3ReadHost,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		log.Fatalf("failed to create object store: %v", err)
	}

	b := bridge.New(tracer, storage.NewDownloader(), inference.NewHTTPRunner(cfg.InferenceURL), store)
	h := bridge.NewJobHandler(tracer, b)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("candlecast-imagejob"))
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Printf("image job handler listening on :%d", port)

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down job handler...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Job handler exiting")
}

func parsePort(args []string, fallback int) (int, error) {
	fs := flag.NewFlagSet("imagejob", flag.ContinueOnError)
	port := fs.Int("port", fallback, "port to listen on")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *port <= 0 || *port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", *port)
	}
	return *port, nil
}
