// Package main is the entry point for the mawaqit JSON API server.
package main

import (
	"fmt"
	"os"

	"github.com/mawaqit-dev/mawaqit/internal/server"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := server.SetupLogger(cfg)

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}
