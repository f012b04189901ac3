package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gcbaptista/go-dedupe-engine/api"
	"github.com/gcbaptista/go-dedupe-engine/internal/analytics"
	"github.com/gcbaptista/go-dedupe-engine/internal/engine"
	"github.com/gin-gonic/gin"
)

const maxRequestBodySize = 32 << 20 // 32 MiB, name batches can be large

func main() {
	// Define command-line flags
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "8080", "Port to run the server on")
		dataDir = flag.String("data-dir", "./dedupe_data", "Directory to store dataset data")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Dedupe Engine - A parallel pairwise name matching engine\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                          # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000              # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /tmp/dedupe   # Use custom data directory\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Dedupe Engine v1.0.0\n")
		fmt.Printf("Synonym-aware name matching with parallel scans, async jobs, and analytics\n")
		return
	}

	// Initialize the dedupe engine
	log.Printf("Using data directory: %s", *dataDir)
	dedupeEngine := engine.NewEngine(*dataDir)
	analyticsService := analytics.NewService(*dataDir)

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodySize))
	router.Use(api.CORSMiddleware())

	// Setup API routes
	api.SetupRoutes(router, dedupeEngine, analyticsService)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
