package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kennarddh-mindustry/plague/internal/cmd/plagueserver"
)

func main() {
	fs := flag.NewFlagSet("plague-server", flag.ExitOnError)
	cfg, err := plagueserver.ParseConfig(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("failed to parse configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := plagueserver.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server exited: %v", err)
	}
}
