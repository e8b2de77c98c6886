package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/adapters/extract"
	httpadapter "github.com/Lakshya-Patwari/Search-O-Bar/internal/adapters/http"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/adapters/llm"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/adapters/search"
	memstore "github.com/Lakshya-Patwari/Search-O-Bar/internal/adapters/storage/memory"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/answer"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/sources"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/config"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/observability"
)

func main() {
	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var generator domain.Generator
	if cfg.LLM.UseMock {
		log.Info("using mock LLM generator")
		generator = llm.NewMock()
	} else {
		log.Info("using OpenAI-compatible LLM generator",
			"base_url", cfg.LLM.BaseURL, "model", cfg.LLM.Model)
		generator = llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout.Std())
	}

	if cfg.Search.SerpAPIKey == "" {
		log.Warn("SERPAPI_API_KEY not set, search provider serves mock results")
	}
	searchProvider := search.NewSerpAPI(cfg.Search.SerpAPIKey, cfg.Search.Timeout.Std())

	extractor := extract.NewClient(cfg.Fetch.Timeout.Std())
	fetcher := sources.NewFetcher(extractor, cfg.Fetch.Concurrency)

	store := memstore.NewSessionStore(cfg.Session.TTL.Std())
	defer store.Close()

	svc := answer.NewService(searchProvider, fetcher, generator, store, cfg.Search.Count)
	handler := httpadapter.NewServer(svc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Search-O-Bar API listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server shut down")
}
