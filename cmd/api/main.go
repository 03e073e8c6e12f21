package main

import (
	"context"
	"os"

	"github.com/hogwarts/school/internal/config"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/hogwarts/school/internal/server"
)

// @title Hogwarts School API
// @version 1.0
// @description Student and faculty records with lookups by age, color and name.
// @BasePath /

func main() {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")

	srv, err := server.NewServer(context.Background(), configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
