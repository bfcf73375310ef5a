package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventHub/internal/access"
	"eventHub/internal/clock"
	"eventHub/internal/config"
	"eventHub/internal/http-server/handlers/event/createEvent"
	"eventHub/internal/http-server/handlers/event/deleteEvent"
	"eventHub/internal/http-server/handlers/event/getAllEvents"
	"eventHub/internal/http-server/handlers/event/getEvent"
	"eventHub/internal/http-server/handlers/event/getMyEvents"
	"eventHub/internal/http-server/handlers/event/registerEvent"
	"eventHub/internal/http-server/handlers/event/unregisterEvent"
	"eventHub/internal/http-server/handlers/event/updateEvent"
	"eventHub/internal/http-server/middleware/mwauth"
	"eventHub/internal/http-server/middleware/mwlogger"
	"eventHub/internal/lib/logger/handlers/slogpretty"
	"eventHub/internal/lib/logger/sl"
	"eventHub/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting event hub", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	clk := clock.NewSystem()
	resolver := access.New(storage)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mwauth.New())

	router.Post("/events", createEvent.New(log, storage, clk))
	router.Get("/events", getAllEvents.New(log, storage, clk))
	router.Get("/events/{ref}", getEvent.New(log, resolver, clk))
	router.Post("/events/{ref}/register", registerEvent.New(log, resolver, storage, clk))
	router.Post("/events/{ref}/unregister", unregisterEvent.New(log, resolver, storage, clk))
	router.Put("/events/{ref}", updateEvent.New(log, storage, clk))
	router.Delete("/events/{ref}", deleteEvent.New(log, storage))
	router.Get("/my/registered", getMyEvents.NewRegistered(log, storage, clk))
	router.Get("/my/organized", getMyEvents.NewOrganized(log, storage, clk))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
