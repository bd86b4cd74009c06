// Package main starts the director's live event loop against a running
// game server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	directorcmd "github.com/eris/director/internal/cmd/director"
	"github.com/eris/director/internal/director/bridge"
	"github.com/eris/director/internal/platform/config"
	"github.com/eris/director/internal/platform/otel"
)

func main() {
	cfg, err := directorcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "eris-director")
	if err != nil {
		log.Printf("otel setup: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	gameBridge := bridge.NewHTTPBridge(cfg.GameCommandURL, cfg.GameEventsURL)
	roster := directorcmd.ParseRoster(cfg.Roster)

	if err := directorcmd.Run(ctx, cfg, gameBridge, roster); err != nil {
		config.Exitf("Error: %v", err)
	}
}
