package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"geosight/internal/api"
	"geosight/internal/config"
	"geosight/internal/core"
	"geosight/internal/domain/repository"
	"geosight/internal/infrastructure/weather"
	"geosight/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	geocoder := repository.NewNominatimClient(
		cfg.Nominatim.BaseURL,
		cfg.Nominatim.UserAgent,
		time.Duration(cfg.Nominatim.Timeout)*time.Second,
	)
	poiSource := repository.NewOverpassRepository(
		cfg.Overpass.Endpoint,
		time.Duration(cfg.Overpass.Timeout)*time.Second,
	)

	var weatherProvider core.WeatherProvider
	if cfg.Weather.Enabled {
		weatherProvider = weather.NewClient(
			cfg.Weather.BaseURL,
			time.Duration(cfg.Weather.Timeout)*time.Second,
		)
	}

	var archive core.ReportArchive
	if cfg.Archive.Enabled {
		db, err := repository.OpenPostgres(cfg.Database.DSN())
		if err != nil {
			slog.Error("archive database unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		archive = repository.NewPostgresArchive(db)
	}

	service := core.NewAnalysisService(geocoder, poiSource, weatherProvider, archive)
	handler := api.NewHandler(service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	slog.Info("starting server", "addr", addr, "archive", cfg.Archive.Enabled, "weather", cfg.Weather.Enabled)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
