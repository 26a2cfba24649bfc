package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"auction-engine/client/auctionclient"
	"auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
)

// summary is the part of a frame payload worth printing
type summary struct {
	Transition string `json:"transition"`
	State      struct {
		Phase         models.Phase   `json:"phase"`
		CurrentPlayer *models.Player `json:"current_player"`
		HighestBid    *models.Bid    `json:"highest_bid"`
		NextMinBid    int64          `json:"next_min_bid"`
	} `json:"state"`
}

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", envOr("AUCTION_URL", "http://localhost:8080"), "auction server base url")
	token := flag.String("token", os.Getenv("AUCTION_TOKEN"), "bearer token; empty follows the public channel")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "log level")
	flag.Parse()

	utils.SetLevel(*logLevel)

	client, err := auctionclient.New(auctionclient.Options{BaseURL: *baseURL, Token: *token}, printFrame)
	if err != nil {
		utils.Fatal("invalid client options", map[string]any{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a tripped breaker is re-armed on SIGHUP
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				utils.Info("manual reconnect requested", nil)
				client.Reconnect()
			}
		}
	}()

	if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		utils.Fatal("spectator stopped", map[string]any{"error": err.Error()})
	}
}

func printFrame(f auctionclient.Frame) {
	fields := map[string]any{"event": f.Event, "seq": f.Seq}

	var s summary
	if err := sonic.Unmarshal(f.Data, &s); err == nil {
		fields["transition"] = s.Transition
		fields["phase"] = s.State.Phase
		if p := s.State.CurrentPlayer; p != nil {
			fields["player"] = p.Name
		}
		if b := s.State.HighestBid; b != nil {
			fields["highest_team"] = b.TeamID
			fields["highest_amount"] = b.Amount
		}
		fields["next_min_bid"] = s.State.NextMinBid
	}
	utils.Info("auction update", fields)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
