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

	"candlecast/internal/advisor"
	"candlecast/internal/config"
	"candlecast/internal/handler"
	"candlecast/internal/provider"
	"candlecast/internal/service"
	"candlecast/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "candlecast/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Candlecast API
// @version         1.0
// @description     OHLC market commentary backed by a hosted completion model.

// @host      localhost:8288
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	port, err := parsePort(os.Args[1:], cfg.APIPort)
	if err != nil {
		log.Fatalf("parse options: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, "candlecast-server")
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	binance := provider.NewBinanceProvider(tracer)
	completer := advisor.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	analysisService := service.NewAnalysisService(tracer, binance, completer)

	h := handler.New(
		tracer,
		analysisService,
		advisor.AnalysisVariant(cfg.AnalyzeInterval, cfg.AnalyzeLimit),
		advisor.PredictionVariant(cfg.PredictInterval, cfg.PredictLimit),
	)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("candlecast"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Printf("commentary API listening on :%d", port)

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func parsePort(args []string, fallback int) (int, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	port := fs.Int("port", fallback, "port to listen on")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *port <= 0 || *port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", *port)
	}
	return *port, nil
}
