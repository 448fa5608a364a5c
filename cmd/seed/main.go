package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/config"
	"github.com/m04kA/SMC-CarWashService/internal/infra/storage"
	"github.com/m04kA/SMC-CarWashService/internal/seed"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	timeout := flag.Duration("timeout", time.Minute, "overall seed timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewWithWriter(os.Stdout, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.Storage.Driver == config.DriverMemory {
		log.Fatal("Seeding the in-memory driver is a no-op: the server seeds it on start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	stores, err := storage.Open(ctx, cfg, nil, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer stores.Close(context.Background())

	res, err := seed.Run(ctx, stores.Services, stores.Companies, log)
	if err != nil {
		log.Fatal("Seed failed: %v", err)
	}

	log.Info("Seed finished (driver=%s, services created=%d, companies created=%d, companies verified=%d)",
		stores.Driver, res.ServicesCreated, res.CompaniesCreated, res.CompaniesUpdated)
}
