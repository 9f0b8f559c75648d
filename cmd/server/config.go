package main

import (
	"fmt"

	"github.com/trilhaapi/tarefa-api/internal/config"
)

// loadAppConfig loads the application configuration from the config file at
// path (or ./config.yaml) and TAREFA_ environment variables.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
