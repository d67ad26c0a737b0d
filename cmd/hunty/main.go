package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	huntycmd "github.com/hunty/huntcore/internal/cmd/hunty"
	"github.com/hunty/huntcore/internal/platform/config"
)

func main() {
	// Local .env is optional; environment variables win when both are set.
	_ = godotenv.Load()

	cfg, args, err := huntycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[HUNTY] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := huntycmd.Run(ctx, cfg, args, os.Stdout); err != nil {
		config.Exitf("hunty: %v", err)
	}
}
