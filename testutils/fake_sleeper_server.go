package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// The league served by the fake sleeper server.
const (
	FakeLeagueID = "1000"
	FakeSeason   = "2024"
)

type FakeSleeperServer struct {
	s        *httptest.Server
	failures atomic.Int32
	requests atomic.Int32
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{}

	r := chi.NewRouter()
	r.Use(f.countAndFail)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", nflPlayersHandler)
		r.Get("/state/nfl", nflStateHandler)

		r.Route("/user", func(r chi.Router) {
			r.Get("/{userID}/leagues/nfl/{year}", userLeaguesHandler)
			r.Get("/{username}", sleeperUserHandler)
		})

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueHandler)
			r.Get("/users", leagueFileHandler("league_users.json"))
			r.Get("/rosters", leagueFileHandler("league_rosters.json"))
			r.Get("/matchups/{week}", weeklyFileHandler("matchups"))
			r.Get("/transactions/{week}", weeklyFileHandler("transactions"))
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// FailNext makes the next n requests return a 503.
func (f *FakeSleeperServer) FailNext(n int) {
	f.failures.Store(int32(n))
}

// Requests is the number of requests the server has received.
func (f *FakeSleeperServer) Requests() int {
	return int(f.requests.Load())
}

func (f *FakeSleeperServer) countAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		if f.failures.Load() > 0 {
			f.failures.Add(-1)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "players.json")
}

func nflStateHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "nfl_state.json")
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	year := chi.URLParam(r, "year")

	if userID == "u1" && year == FakeSeason {
		serveFile(w, "user_leagues.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func sleeperUserHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "alice" {
		serveFile(w, "sleeperuser.json")
	} else {
		// requesting a user that doesn't exist returns a 200 with "null" as the response body
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}
}

func leagueHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") != FakeLeagueID {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
		return
	}
	serveFile(w, "league.json")
}

func leagueFileHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") != FakeLeagueID {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("[]"))
			return
		}
		serveFile(w, name)
	}
}

func weeklyFileHandler(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := strconv.Atoi(chi.URLParam(r, "week"))
		if err != nil || chi.URLParam(r, "leagueID") != FakeLeagueID || week < 1 || week > 4 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("[]"))
			return
		}
		serveFile(w, fmt.Sprintf("%s_%d.json", prefix, week))
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
