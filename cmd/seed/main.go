// Package main imports the crawler's card file into the catalog database.
//
// The existing collection is replaced. Card ids are derived from wiki URLs,
// so running the import twice keeps ids stable.
//
// Usage:
//
//	go run ./cmd/seed -file ichu_cards.json
//	DATA_PATH=~/.ichu go run ./cmd/seed -file ichu_cards.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ryuseikaiz/Ichu-Database/internal/importer"
	"github.com/Ryuseikaiz/Ichu-Database/internal/logger"
	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
	"github.com/Ryuseikaiz/Ichu-Database/internal/validation"
)

var (
	file     = flag.String("file", "ichu_cards.json", "Card file written by the crawler")
	dataPath = flag.String("data-path", "", "Data directory (default: $DATA_PATH or ~/.ichu)")
	level    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	log := logger.New(logger.Config{Level: logger.ParseLevel(*level), Environment: "development"})

	dir := *dataPath
	if dir == "" {
		dir = os.Getenv("DATA_PATH")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal("Failed to resolve home directory", "error", err)
		}
		dir = filepath.Join(home, ".ichu")
	}
	dbPath := filepath.Join(dir, "db")

	src, err := importer.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read card file", "file", *file, "error", err)
	}
	log.Info("Found cards in source", "count", len(src), "file", *file)

	s, err := store.New(dbPath, log.Logger)
	if err != nil {
		log.Fatal("Failed to open store", "path", dbPath, "error", err)
	}
	defer s.Close()

	cards := importer.ConvertAll(src, log.Logger)
	svc := service.NewCardService(s, validation.New(), log.Logger)

	result, err := svc.Import(context.Background(), filepath.Base(*file), cards)
	if err != nil {
		_ = s.Close()
		log.Fatal("Import failed", "error", err)
	}

	for _, skipped := range result.Skipped {
		log.Warn("Skipped card", "index", skipped.Index, "name", skipped.Name, "reason", skipped.Reason)
	}
	fmt.Printf("Imported %d cards (%d skipped) into %s\n", result.Imported, len(result.Skipped), dbPath)
}
