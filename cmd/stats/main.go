package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lk16/reversi/internal/client"
	"github.com/lk16/reversi/internal/config"
)

const (
	statsTimeout = 10 * time.Second
)

func main() {
	config.SetLogLevel()

	cfg := config.LoadClientConfig()
	apiClient := client.NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()

	stats, err := apiClient.Stats(ctx)
	if err != nil {
		slog.Error("Failed to get stats", "error", err)
		os.Exit(1)
	}

	fmt.Printf("games played: %d\n", stats.GamesPlayed)
	fmt.Printf("%-6s %-10s %-8s %s\n", "tier", "cpu", "winner", "count")

	for _, stat := range stats.Stats {
		fmt.Printf("%-6d %-10s %-8s %d\n", stat.Tier, stat.CPUColor, stat.Winner, stat.Count)
	}
}
