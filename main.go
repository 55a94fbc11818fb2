package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	"codecraftgo/internal/api"
	"codecraftgo/internal/auth"
	"codecraftgo/internal/config"
	"codecraftgo/internal/logger"
	"codecraftgo/internal/service/ai"
	"codecraftgo/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logg.Sync()

	ctx := context.Background()

	// Process-wide clients, constructed once and shared by all requests.
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.ServiceAccountPath))
	if err != nil {
		logg.Fatal("init firebase app", "error", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		logg.Fatal("init firebase auth client", "error", err)
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		logg.Fatal("init firestore client", "error", err)
	}
	defer firestoreClient.Close()

	aiService, err := ai.NewService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logg)
	if err != nil {
		logg.Fatal("init gemini service", "error", err)
	}

	verifier := auth.NewFirebaseVerifier(authClient, logg)
	logStore := store.NewLogStore(firestoreClient, logg)
	handler := api.NewHandler(verifier, logStore, aiService, logg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logg), api.CORS())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:        cfg.ServerAddress,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 120 * time.Second,
		// No WriteTimeout: /generate-code streams for as long as the
		// model produces chunks.
	}

	go func() {
		logg.Info("server starting", "addr", cfg.ServerAddress, "model", cfg.GeminiModel)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Fatal("forced shutdown", "error", err)
	}
	logg.Info("server exited")
}
