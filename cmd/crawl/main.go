// Package main scrapes LE and GR cards from the I-Chu wiki into a JSON file
// that cmd/seed can import.
//
// Usage:
//
//	go run ./cmd/crawl -out ichu_cards.json
//	go run ./cmd/crawl -workers 4 -rps 2
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ryuseikaiz/Ichu-Database/internal/crawler"
	"github.com/Ryuseikaiz/Ichu-Database/internal/logger"
)

var (
	out     = flag.String("out", "ichu_cards.json", "Output file")
	baseURL = flag.String("base-url", crawler.DefaultBaseURL, "Wiki base URL")
	workers = flag.Int("workers", crawler.DefaultWorkers, "Concurrent card page fetches")
	rps     = flag.Float64("rps", 5, "Requests per second against the wiki")
	level   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	log := logger.New(logger.Config{Level: logger.ParseLevel(*level), Environment: "development"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := crawler.New(crawler.Options{
		BaseURL: *baseURL,
		Workers: *workers,
		RPS:     *rps,
		Logger:  log.Logger,
	})
	defer c.Close()

	cards, err := c.Crawl(ctx)
	if err != nil {
		log.Fatal("Crawl failed", "error", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal("Failed to create output file", "path", *out, "error", err)
	}
	if err := crawler.WriteJSON(f, cards); err != nil {
		_ = f.Close()
		log.Fatal("Failed to write cards", "error", err)
	}
	if err := f.Close(); err != nil {
		log.Fatal("Failed to close output file", "error", err)
	}

	fmt.Printf("Done. Saved %d cards to %s\n", len(cards), *out)
}
