package main

import (
	"flag"
	"log"
	"os"

	"SignalLog/internal/di"
	"SignalLog/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	example := flag.Bool("example", false, "log the sample signals and exit")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if *example {
		if err := app.RunExample(os.Stdout); err != nil {
			log.Printf("example error: %v", err)
			os.Exit(1)
		}
		return
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
