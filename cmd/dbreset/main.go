package main

import (
	"flag"
	"log"

	"github.com/customchess/chessdb/data"
	"github.com/customchess/chessdb/internal/config"
	"github.com/customchess/chessdb/internal/database"
	"github.com/customchess/chessdb/internal/services"
	"github.com/joho/godotenv"
)

// One-shot schema reset and seed. Drops both tables, recreates them, and
// loads the embedded catalog seed set.
func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to a .env file to load")
	flag.Parse()

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load env file %s: %v", envFilename, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Reset(db); err != nil {
		log.Fatalf("Failed to reset schema: %v", err)
	}
	log.Println("Tables created/reset successfully")

	count, err := services.SeedCatalog(db, data.SeedChessJSON)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Database reset & seeded (%d pieces)", count)
}
