package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"edgar_sections/pkg/api/filings"
	"edgar_sections/pkg/config"
	"edgar_sections/pkg/core/edgar"
	"edgar_sections/pkg/core/pipeline"
	"edgar_sections/pkg/logger"
)

func main() {
	godotenv.Load()

	log := logger.New("edgar-sections-api")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	client := edgar.NewClientWith(cfg.HTTPTimeout, cfg.SECUserAgent)
	pipe := pipeline.New(client, log)
	handler := filings.NewHandler(pipe, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Mount("/api/filings", handler.Routes())

	log.Info("API server starting",
		"addr", cfg.ListenAddr,
		"routes", "/api/filings/{section,sections,compare,section-stream}")

	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}
