package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"offerwall-sdk/internal/api"
	"offerwall-sdk/internal/config"
	"offerwall-sdk/internal/listener"
	"offerwall-sdk/internal/registry"
	"offerwall-sdk/internal/storage"
	"offerwall-sdk/props"
)

func Run(cfg config.Config) {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	var store *storage.Store
	if cfg.UsePostgres() {
		var err error
		store, err = storage.New(rootCtx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("init storage")
		}
		defer store.Close()
	}

	// Publishers
	reg := registry.New()
	loader := publisherLoader(cfg, store)
	if err := reg.BuildSnapshot(rootCtx, loader); err != nil {
		log.Fatal().Err(err).Msg("initial publisher snapshot")
	}
	if reg.Len() == 0 {
		log.Warn().Msg("no publisher configured; every offer request will 404")
	}

	// HTTP
	upstream := &http.Client{Timeout: cfg.UpstreamTimeout()}
	h := api.NewOffersHandler(reg, upstream, cfg.UpstreamTimeout(), cfg.Server.SanitizeHTML)
	r := api.Router(h, cfg.RequestTimeout())

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Listener (LISTEN/NOTIFY)
	if store != nil {
		go listener.ListenAndRefresh(rootCtx, store, reg, loader, cfg.Listener.Channel, cfg.Backoff())
	}

	// Server goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Int("publishers", reg.Len()).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	// Wait for signal
	waitForSignal()
	log.Info().Msg("shutdown...")

	// Graceful shutdown
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	cancel() // stop background goroutines
	_ = srv.Shutdown(shCtx)
}

// publisherLoader combines the publisher from the offerwall config section
// with the database or the publishers file. Database and file entries
// override the config one for the same id.
func publisherLoader(cfg config.Config, store *storage.Store) registry.Loader {
	var loaders []registry.Loader
	if pub, ok := cfg.DefaultPublisher(); ok {
		loaders = append(loaders, registry.Static{{
			ID:              pub.PublisherID,
			APIKey:          pub.APIKey,
			APIDomain:       pub.APIDomain,
			OfferwallDomain: pub.OfferwallDomain,
		}})
	}
	switch {
	case store != nil:
		loaders = append(loaders, store)
	case cfg.Offerwall.PublishersFile != "":
		loaders = append(loaders, props.FileLoader{Path: cfg.Offerwall.PublishersFile})
	}
	return registry.Merge(loaders...)
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
