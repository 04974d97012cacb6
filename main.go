package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_analysis/config"
	"github.com/mww/fantasy_analysis/controller"
	"github.com/mww/fantasy_analysis/db"
	"github.com/mww/fantasy_analysis/scheduler"
	"github.com/mww/fantasy_analysis/sleeper"
	"github.com/mww/fantasy_analysis/store"
	"github.com/mww/fantasy_analysis/web"
	"github.com/rs/zerolog"
)

func main() {
	bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("error loading config")
	}

	logger, err := config.NewLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("error creating logger")
	}

	params, err := cfg.AnalysisParams()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid analysis params")
	}
	leagues, err := cfg.Leagues()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid scheduled leagues")
	}

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.DBConnStr, clock, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to DB")
	}
	defer db.Close()

	sleeperClient, err := sleeper.New(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating sleeper client")
	}

	artifacts, err := store.New(cfg.ArtifactDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating artifact store")
	}

	ctrl, err := controller.New(clock, sleeperClient, db, artifacts, controller.Config{Params: params, MaxWeek: cfg.MaxWeek}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating a new controller")
	}

	sched, err := scheduler.New(ctrl, cfg.Schedule, leagues, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating scheduler")
	}

	server, err := web.NewServer(web.Options{
		Port:          cfg.Port,
		AdminUser:     cfg.AdminUser,
		AdminPassword: cfg.AdminPassword,
	}, ctrl, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating new web server")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 15*time.Second); err != nil {
			logger.Error().Msg("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// The scheduler refreshes players and re-analyzes the configured leagues
	// until shutdown. Running analysis jobs are cancelled on the way out.
	if err := sched.Start(); err != nil {
		logger.Fatal().Err(err).Msg("error starting scheduler")
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-shutdown

		if err := sched.Stop(); err != nil {
			logger.Error().Err(err).Msg("error stopping scheduler")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ctrl.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("error waiting for analysis jobs")
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	logger.Info().Msg("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
