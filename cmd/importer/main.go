package main

import (
	"context"
	"flag"
	"log"
	"os"

	"maqha/internal/config"
	"maqha/internal/db"
	"maqha/internal/importer"
	catalogrepo "maqha/internal/repository/catalog"
)

func main() {
	path := flag.String("file", "", "path to a JSON menu export")
	flag.Parse()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if *path == "" {
		logger.Fatal("usage: importer -file menu.json")
	}

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatalf("open export: %v", err)
	}
	defer f.Close()

	cfg := config.FromEnv()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := catalogrepo.NewPostgres(pool, logger)
	count, err := importer.NewMenuImporter(f, repo).Run(ctx)
	if err != nil {
		logger.Fatalf("import after %d items: %v", count, err)
	}

	logger.Printf("imported %d items", count)
}
