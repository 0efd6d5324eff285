package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tally/internal/domain/category"
	"tally/internal/infrastructure/postgres"
	"tally/internal/shared/config"
)

const usage = `Tally Admin CLI - Management commands for the Tally API

Usage:
  admin <command> [options]

Commands:
  seed-categories   Replace the default category set with the built-in seeds
  migrate           Apply pending database migrations

Examples:
  # Apply migrations, then install the default categories
  admin migrate
  admin seed-categories

  # Seed with a custom timeout
  admin seed-categories --timeout=1m
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "seed-categories":
		runSeedCategories(os.Args[2:])
	case "migrate":
		runMigrate(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runSeedCategories(args []string) {
	fs := flag.NewFlagSet("seed-categories", flag.ExitOnError)
	timeoutStr := fs.String("timeout", "30s", "Timeout for the operation (e.g., 30s, 1m)")
	fs.Parse(args)

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout: %v", err)
	}

	db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	service := category.NewService(postgres.NewCategoryRepository(db))

	seeded, err := service.ReseedDefaults(ctx, category.DefaultSeeds())
	if err != nil {
		log.Fatalf("Failed to seed default categories: %v", err)
	}

	fmt.Printf("Seeded %d default categories:\n", len(seeded))
	for _, c := range seeded {
		fmt.Printf("  %-14s %s\n", c.Type, c.Name)
	}
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	fs.Parse(args)

	db := connect()
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("Migrations applied")
}

func connect() *postgres.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}
