package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mww/fantasy_analysis/controller"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, opts Options, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: zerologWriter{logger}, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/health", healthHandler(render))

	// Synchronous runs fetch a whole season from sleeper so they get more
	// time than the other requests.
	r.With(middleware.Timeout(2*time.Minute)).Post("/analysis/run", runAnalysisHandler(ctrl, render))

	r.Group(func(r chi.Router) {
		// Set a timeout value on the request context (ctx), that will signal
		// through ctx.Done() that the request has timed out and further
		// processing should be stopped.
		r.Use(middleware.Timeout(10 * time.Second))

		r.Route("/analysis", func(r chi.Router) {
			r.Get("/", listJobsHandler(ctrl, render))
			r.Post("/", startAnalysisHandler(ctrl, render))
			r.Get("/{jobID}", getJobHandler(ctrl, render))
			r.Delete("/{jobID}", cancelJobHandler(ctrl, render))
		})

		r.Route("/leagues/{leagueID:\\d+}/{season:\\d{4}}", func(r chi.Router) {
			r.Get("/results", resultsHandler(ctrl, render))
			r.Get("/results/{category}", artifactHandler(ctrl, render))
		})

		r.Get("/users/{username}/leagues/{season}", userLeaguesHandler(ctrl, render))

		r.Get("/players/{playerID:[A-Za-z0-9]+}", getPlayerHandler(ctrl, render))

		r.Route("/rankings", func(r chi.Router) {
			r.Get("/", listRankingsHandler(ctrl, render))
			r.Post("/", rankingsUploadHandler(ctrl, render))
			r.Get("/{rankingID:\\d+}", rankingHandler(ctrl, render))
			r.Delete("/{rankingID:\\d+}", deleteRankingHandler(ctrl, render))
		})
	})

	if opts.AdminPassword != "" {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.BasicAuth("fantasy_analysis", map[string]string{opts.AdminUser: opts.AdminPassword}))
			r.Use(middleware.Timeout(2 * time.Minute)) // the player dump from sleeper is large

			r.Post("/players", forceUpdatePlayers(ctrl, render))
		})
	}

	return r
}

// zerologWriter lets the chi request logger write through zerolog.
type zerologWriter struct {
	logger zerolog.Logger
}

func (w zerologWriter) Print(v ...any) {
	w.logger.Info().Msg(fmt.Sprint(v...))
}
