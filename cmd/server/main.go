package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cloud-ru/finplan-go/internal/config"
	"github.com/cloud-ru/finplan-go/internal/logging"
	"github.com/cloud-ru/finplan-go/internal/planner"
	"github.com/cloud-ru/finplan-go/internal/server"
	"github.com/cloud-ru/finplan-go/internal/tools"
	"github.com/cloud-ru/finplan-go/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)

	tracer, shutdownTracing, err := tracing.InitTracing(cfg.OTELServiceName, cfg.OTELEndpoint, log)
	if err != nil {
		log.WithError(err).Fatal("failed to init tracing")
	}

	gen := planner.NewGenerator(cfg, tracer, log)
	registry := tools.Registry(cfg, tracer, gen)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(registry, log).Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.AITimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":          httpServer.Addr,
			"plan_provider": cfg.PlanProvider,
			"tools":         len(registry),
		}).Info("finplan server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	waitForShutdown(httpServer, shutdownTracing, log)
}

// waitForShutdown ждет SIGTERM или SIGINT и корректно останавливает сервер
func waitForShutdown(httpServer *http.Server, shutdownTracing tracing.ShutdownFunc, log *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.WithField("signal", sig.String()).Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http server shutdown failed")
	}
	if err := shutdownTracing(ctx); err != nil {
		log.WithError(err).Error("tracer shutdown failed")
	}
	log.Info("server stopped")
}
