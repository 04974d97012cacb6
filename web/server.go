package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mww/fantasy_analysis/controller"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type Options struct {
	Port          int
	AdminUser     string
	AdminPassword string
}

type Server struct {
	server *http.Server
	logger zerolog.Logger
}

func NewServer(opts Options, ctrl controller.C, logger zerolog.Logger) (*Server, error) {
	if opts.Port <= 0 {
		return nil, fmt.Errorf("invalid port: %d", opts.Port)
	}

	logger = logger.With().Str("component", "web").Logger()
	router := getRouter(ctrl, newRender(), opts, logger)

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("error shutting down server")
		}
	}()

	s.logger.Info().Str("addr", s.server.Addr).Msg("web server is listening")
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Fatal().Err(err).Msg("fatal error with server")
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		IndentJSON: true,
	})
}
