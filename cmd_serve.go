package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fake-news-detector/cache"
	"fake-news-detector/config"
	"fake-news-detector/database"
	"fake-news-detector/handlers"
	"fake-news-detector/logger"
	"fake-news-detector/services"
)

var serveFlags struct {
	port    string
	offline bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the session HTTP API",
	Long: `Start the HTTP API that creates analysis sessions and forwards
submissions to the classifier service.

Configuration comes from the environment (or a .env file):
  CLASSIFIER_URL, CLASSIFIER_URL_<MODEL>, CLASSIFIER_TIMEOUT, DEFAULT_MODEL,
  REDIS_URL, CACHE_TTL, DB_URL, ADMIN_TOKEN, SESSION_IDLE_TTL, PORT.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.port, "port", "", "Listen port (default: $PORT or 8080)")
	f.BoolVar(&serveFlags.offline, "offline", false, "Use the built-in heuristic classifier instead of the model service")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Setup()
	log.Println("🚀 Starting Fake News Detector...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveFlags.port != "" {
		cfg.Port = serveFlags.port
	}
	if serveFlags.offline {
		cfg.Offline = true
	}
	log.Printf("✓ Config loaded")
	log.Printf("  - Port: %s", cfg.Port)
	log.Printf("  - Default model: %s", cfg.DefaultModel)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache.InitRedis(ctx, cfg.RedisURL)
	defer cache.Close()

	if err := database.InitDB(cfg.DbURL); err != nil {
		log.Printf("[DB] ⚠ %v, running without verdict statistics", err)
	}
	defer database.Close()

	classifier := services.NewClassifierFromConfig(cfg)
	store := services.NewSessionStore(
		services.NewSessionFactory(classifier, cfg.DefaultModel, services.RecordVerdict),
		cfg.SessionIdleTTL,
	)
	if cfg.SessionIdleTTL > 0 {
		go store.RunJanitor(ctx, time.Minute)
	}
	fetcher := services.NewContentFetcher(cfg.ClassifierTimeout)
	log.Println("✓ Services initialized")

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handlers.NewRouter(cfg, store, fetcher),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("🎯 Server listening on http://localhost%s\n", addr)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("\n📝 Example:")
	fmt.Printf(`   curl -X POST http://localhost%s/api/sessions`+"\n", addr)
	fmt.Printf(`   curl -X PUT http://localhost%s/api/sessions/<id>/text -d '{"text": "..."}'`+"\n", addr)
	fmt.Printf(`   curl -X POST http://localhost%s/api/sessions/<id>/submit`+"\n", addr)
	fmt.Println("\n" + strings.Repeat("=", 50) + "\n")

	errCh := make(chan error, 1)
	go func() {
		log.Println("✓ Ready to accept requests...")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("⏹ Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ClassifierTimeout+5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
