package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/craigderington/m3data-api/config"
	"github.com/craigderington/m3data-api/internal/database"
	"github.com/craigderington/m3data-api/internal/importer"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "", "path to the CSV or XLSX feed file")
	flag.Parse()

	if file == "" {
		log.Fatal("Usage: importer -file <path>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.CreateSchema(ctx, db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	log.Println("Starting up the data import engine...")

	im := importer.New(db)

	var count int
	if strings.EqualFold(filepath.Ext(file), ".xlsx") {
		count, err = im.ImportXLSX(ctx, file)
	} else {
		count, err = im.ImportCSV(ctx, file)
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Imported %d records successfully", count)
}
