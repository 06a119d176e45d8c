package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"agentdesk/internal/config"
	"agentdesk/internal/infrastructure/crontab"
	"agentdesk/internal/infrastructure/logger"
	"agentdesk/internal/infrastructure/observability"
	"agentdesk/internal/interfaces/httpserver"
)

type Application struct {
	HTTPServer *httpserver.HTTPServer
	Crontab    *crontab.Crontab
	Config     *config.Config
}

func init() {
	logger.GetLogger()
}

// @title AgentDesk GPT API
// @version 1.0
// @description Multi-tenant management API for custom GPT assistants, conversations, and team membership.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func (application *Application) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := application.runMetricsServer()
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.Crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.HTTPServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func (application *Application) runMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", application.Config.MetricsPort), mux)
}

func main() {
	ctx := context.Background()
	log := logger.GetLogger()

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	dataInitializer, err := CreateDataInitializer()
	if err != nil {
		log.Fatal().Err(err).Msg("create data initializer")
	}

	cfg := config.GetGlobal()
	if cfg == nil {
		log.Fatal().Msg("config not loaded")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := dataInitializer.Install(ctx); err != nil {
		log.Fatal().Err(err).Msg("install data")
	}

	application.Start()
}
