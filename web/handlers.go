package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mww/fantasy_analysis/analysis"
	"github.com/mww/fantasy_analysis/controller"
	"github.com/mww/fantasy_analysis/db"
	"github.com/mww/fantasy_analysis/jobs"
	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/rankings"
	"github.com/mww/fantasy_analysis/sleeper"
	"github.com/mww/fantasy_analysis/store"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps controller errors to http status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, controller.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, jobs.ErrJobNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, db.ErrRankingNotFound),
		errors.Is(err, db.ErrPlayerNotFound),
		errors.Is(err, sleeper.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, jobs.ErrJobFinished):
		return http.StatusConflict
	case errors.Is(err, model.ErrDataUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrExternalFetch):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func renderError(render *render.Render, w http.ResponseWriter, err error) {
	render.JSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func badRequest(render *render.Render, w http.ResponseWriter, msg string) {
	render.JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type analysisRequest struct {
	LeagueID string `json:"leagueId"`
	Season   string `json:"season"`
}

func parseAnalysisRequest(w http.ResponseWriter, r *http.Request) (analysisRequest, error) {
	var req analysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		return req, fmt.Errorf("error parsing request body: %v", err)
	}
	return req, nil
}

func runAnalysisHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseAnalysisRequest(w, r)
		if err != nil {
			badRequest(render, w, err.Error())
			return
		}

		result, err := ctrl.RunAnalysis(r.Context(), req.LeagueID, req.Season)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, result)
	}
}

func startAnalysisHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseAnalysisRequest(w, r)
		if err != nil {
			badRequest(render, w, err.Error())
			return
		}

		job, err := ctrl.StartAnalysis(r.Context(), req.LeagueID, req.Season)
		if err != nil {
			renderError(render, w, err)
			return
		}
		w.Header().Set("Location", fmt.Sprintf("/analysis/%s", job.ID))
		render.JSON(w, http.StatusAccepted, job)
	}
}

func listJobsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, ctrl.ListJobs(r.Context()))
	}
}

func getJobHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := ctrl.GetJob(r.Context(), chi.URLParam(r, "jobID"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, job)
	}
}

func cancelJobHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := ctrl.CancelJob(r.Context(), chi.URLParam(r, "jobID"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, job)
	}
}

type resultsResponse struct {
	Summary *store.Summary   `json:"summary"`
	Result  *analysis.Result `json:"result"`
}

func resultsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, summary, err := ctrl.GetResults(r.Context(), chi.URLParam(r, "leagueID"), chi.URLParam(r, "season"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, resultsResponse{Summary: summary, Result: result})
	}
}

// artifactHandler serves one artifact file as it was saved.
func artifactHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := store.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			render.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}

		b, err := ctrl.GetArtifact(r.Context(), chi.URLParam(r, "leagueID"), chi.URLParam(r, "season"), category)
		if err != nil {
			renderError(render, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		render.Data(w, http.StatusOK, b)
	}
}

func userLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.GetLeaguesForUser(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "season"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

type playerResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Position model.Position `json:"position"`
	Team     string         `json:"team,omitempty"`
	Active   bool           `json:"active"`
	Updated  string         `json:"updated"`
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := ctrl.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			renderError(render, w, err)
			return
		}

		render.JSON(w, http.StatusOK, playerResponse{
			ID:       p.ID,
			Name:     p.FullName(),
			Position: p.Position,
			Team:     p.Team,
			Active:   p.Active,
			Updated:  p.FormattedUpdatedTime(),
		})
	}
}

type rankingResponse struct {
	ID      int32                  `json:"id"`
	Date    string                 `json:"date"`
	Players []rankedPlayerResponse `json:"players,omitempty"`
}

type rankedPlayerResponse struct {
	Rank     int32          `json:"rank"`
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Position model.Position `json:"position"`
	Team     string         `json:"team,omitempty"`
	Value    float64        `json:"value"`
}

func toRankingResponse(r *model.Ranking, withPlayers bool) rankingResponse {
	resp := rankingResponse{
		ID:   r.ID,
		Date: r.Date.Format(time.DateOnly),
	}
	if !withPlayers {
		return resp
	}

	resp.Players = make([]rankedPlayerResponse, 0, len(r.Players))
	for _, p := range r.Players {
		resp.Players = append(resp.Players, rankedPlayerResponse{
			Rank:     p.Rank,
			ID:       p.ID,
			Name:     fmt.Sprintf("%s %s", p.FirstName, p.LastName),
			Position: p.Position,
			Team:     p.Team,
			Value:    rankings.PlayerValue(p.Rank),
		})
	}
	slices.SortFunc(resp.Players, func(a, b rankedPlayerResponse) int {
		if a.Rank != b.Rank {
			return int(a.Rank - b.Rank)
		}
		return model.CompareIDs(a.ID, b.ID)
	})
	return resp
}

func listRankingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := ctrl.ListRankings(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}

		resp := make([]rankingResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toRankingResponse(&list[i], false))
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func parseRankingID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "rankingID"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("error parsing ranking id: %v", err)
	}
	return int32(id), nil
}

func rankingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseRankingID(r)
		if err != nil {
			badRequest(render, w, err.Error())
			return
		}

		ranking, err := ctrl.GetRanking(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, toRankingResponse(ranking, true))
	}
}

func deleteRankingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseRankingID(r)
		if err != nil {
			badRequest(render, w, err.Error())
			return
		}

		if err := ctrl.DeleteRanking(r.Context(), id); err != nil {
			renderError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func rankingsUploadHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Parse the multipart form. 5 << 20 specifices a maximum upload of 5 MB files.
		r.ParseMultipartForm(5 << 20)

		file, handler, err := r.FormFile("rankings-file")
		if err != nil {
			badRequest(render, w, err.Error())
			return
		}
		defer file.Close()

		if handler.Header.Get("Content-Type") != "text/csv" {
			badRequest(render, w, fmt.Sprintf("Only CSV files are supported. Got %s", handler.Header.Get("Content-Type")))
			return
		}

		d := r.FormValue("rankings-date")
		t, err := time.Parse(time.DateOnly, d)
		if err != nil {
			badRequest(render, w, fmt.Sprintf("Unable to parse rankings date. Expected format is YYYY-MM-DD: %v", err))
			return
		}

		id, err := ctrl.AddRanking(r.Context(), file, t)
		if err != nil {
			renderError(render, w, err)
			return
		}
		w.Header().Set("Location", fmt.Sprintf("/rankings/%d", id))
		render.JSON(w, http.StatusCreated, rankingResponse{ID: id, Date: t.Format(time.DateOnly)})
	}
}

func forceUpdatePlayers(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		changed, err := ctrl.UpdatePlayers(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{"changed": changed})
	}
}
