package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "auction-engine/internal/auctionService"
	"auction-engine/internal/auth"
	"auction-engine/internal/broadcast"
	"auction-engine/internal/config"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		utils.Warn("failed to load .env file", map[string]any{"error": err.Error()})
	}

	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("invalid configuration", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		utils.Fatal("failed to open repository", map[string]any{"backend": cfg.StorageBackend, "error": err.Error()})
	}
	defer closeRepo()

	hub := broadcast.NewHub(broadcast.Options{SendBuffer: cfg.WSSendBuffer, EventBuffer: cfg.WSEventBuffer})

	auctionSvc, err := auction.NewAuctionService(repo, hub, auction.Options{
		MinIncrement:  cfg.MinIncrement,
		TimerDuration: cfg.TimerDuration,
		LockTimeout:   cfg.LockTimeout,
	})
	if err != nil {
		utils.Fatal("failed to start auction engine", map[string]any{"error": err.Error()})
	}

	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx, auctionSvc)
		close(hubDone)
	}()

	if cfg.WatchdogEnabled {
		go auction.NewWatchdog(auctionSvc, cfg.WatchdogInterval).Run(ctx)
	}

	router := server.SetupRouter(auctionSvc, hub, auth.NewIssuer(cfg.JWTSecret, 0))
	srv := newHTTPServer(cfg, router)

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr, "storage": cfg.StorageBackend})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
	<-hubDone
	hub.Wait()
}

// openRepository selects the storage backend and seeds the demo catalog
func openRepository(ctx context.Context, cfg config.Config) (repository.AuctionDB, func(), error) {
	teams, players := repository.SampleCatalog()

	switch cfg.StorageBackend {
	case config.StorageMongo:
		repo, err := repository.NewMongoRepo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.Seed(ctx, teams, players); err != nil {
			return nil, nil, err
		}
		return repo, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := repo.Close(closeCtx); err != nil {
				utils.Warn("failed to close mongo client", map[string]any{"error": err.Error()})
			}
		}, nil
	default:
		repo := repository.NewMemoryRepo()
		for _, t := range teams {
			repo.AddTeam(t)
		}
		for _, p := range players {
			repo.AddPlayer(p)
		}
		return repo, func() {}, nil
	}
}

// newHTTPServer binds the router to the configured listen address (":port").
func newHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
