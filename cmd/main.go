// Package main is the entry point for the stagehand player core.
//
// Stagehand is the playback backend for the 3rd Harmonik fan site: the
// song catalog, playlists, queue, history, and the gig-mode setlist all
// live here, behind an event bus a presentation layer subscribes to.
//
// Build:
//
//	go build -o build/stagehand ./cmd
//
// Run:
//
//	./build/stagehand -config stagehand.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/harmonikfm/stagehand/internal/app"
	"github.com/harmonikfm/stagehand/internal/config"
)

func main() {
	configPath := flag.String("config", "stagehand.yaml", "path to the configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.New(app.Options{Config: cfg})
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	// Block until interrupted; the services run on their own goroutines
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	fmt.Println("\nShutting down...")
}
