package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/customchess/chessdb/internal/config"
	"github.com/customchess/chessdb/internal/database"
	"github.com/customchess/chessdb/internal/services"
	"github.com/customchess/chessdb/internal/utils"
	"github.com/joho/godotenv"
)

func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to a .env file to load")
	flag.Parse()

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load env file %s: %v", envFilename, err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db)

	// Optionally verify the HTTP server itself is listening
	if serverURL := os.Getenv("SERVER_URL"); serverURL != "" {
		if err := utils.PingServer(serverURL); err != nil {
			result.Status = "unhealthy"
			result.Details["server_ping_error"] = err.Error()
		} else {
			result.Details["server_url"] = serverURL
		}
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
