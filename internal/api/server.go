// Package api exposes the trajectory planning service over HTTP. The
// handlers are thin: they decode plain-data requests, call the planner
// synchronously, persist results through internal/db and marshal the
// stored record back out. No planning internals leak past this boundary.
package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mural-robotics/wallplan/internal/config"
	"github.com/mural-robotics/wallplan/internal/db"
	"github.com/mural-robotics/wallplan/internal/httputil"
	"github.com/mural-robotics/wallplan/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db       *db.DB
	defaults *config.PlannerDefaults
}

// NewServer builds a Server. defaults may be nil, in which case requests
// must carry complete planner parameters.
func NewServer(database *db.DB, defaults *config.PlannerDefaults) *Server {
	return &Server{db: database, defaults: defaults}
}

// ServeMux returns the API routes. Callers mount it under /api via
// http.StripPrefix.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/trajectories", s.handleTrajectories)
	mux.HandleFunc("/trajectories/", s.handleTrajectoryByID)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

func (s *Server) handleTrajectories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createTrajectory(w, r)
	case http.MethodGet:
		s.listTrajectories(w, r)
	default:
		httputil.MethodNotAllowed(w)
	}
}

// handleTrajectoryByID routes /trajectories/{id} and
// /trajectories/{id}/plot.
func (s *Server) handleTrajectoryByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/trajectories/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		httputil.BadRequest(w, "missing trajectory id")
		return
	}

	switch sub {
	case "":
		s.getTrajectory(w, r, id)
	case "plot":
		s.plotTrajectory(w, r, id)
	default:
		httputil.NotFound(w, "unknown trajectory resource")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"status":          "ok",
		"version":         version.Version,
		"planner_version": version.Planner,
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// CORSMiddleware allows cross-origin access from any origin. The
// planning UI is served from the same process in production but dev
// frontends run on their own port.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
