// Package main replays a scripted scenario through the director pipeline
// and the synthetic world, printing the resulting trace as JSON.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	scenariorun "github.com/eris/director/internal/cmd/scenario-run"
	"github.com/eris/director/internal/platform/config"
)

func main() {
	cfg, err := scenariorun.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scenariorun.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
