package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	placererr "github.com/fpgakit/placer/pkg/errors"
	"github.com/fpgakit/placer/pkg/observability"
	"github.com/fpgakit/placer/pkg/render/board"
	"github.com/fpgakit/placer/pkg/runs"
	"github.com/fpgakit/placer/pkg/search"
)

// defaultServeAddr is the default listen address for the serve command.
const defaultServeAddr = ":8080"

// serveCommand creates the serve command exposing archived runs over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		backend  string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve archived runs over HTTP",
		Long: `Serve archived runs over HTTP.

Endpoints:
  GET /healthz                    liveness probe
  GET /api/runs                   run summaries, newest first
  GET /api/runs/{id}              full run record
  GET /api/runs/{id}/board.svg    rendered final placement
  GET /api/runs/{id}/series.csv   per-step cost series`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(cmd.Context(), backend, mongoURI)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer store.Close()
			return c.serve(cmd.Context(), addr, store)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().StringVar(&backend, "store", storeFile, "archive backend: file (default), mongo")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "mongo connection string (with --store mongo)")

	return cmd
}

// serve runs the HTTP server until the context is cancelled, then shuts
// down gracefully.
func (c *CLI) serve(ctx context.Context, addr string, store runs.Store) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newServeMux(store, c.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeMux builds the HTTP routes over the run store.
func newServeMux(store runs.Store, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/runs", func(r chi.Router) {
		r.Get("/", listRunsHandler(store))
		r.Route("/{id}", func(r chi.Router) {
			r.Use(runIDValidator)
			r.Get("/", getRunHandler(store))
			r.Get("/board.svg", runBoardHandler(store))
			r.Get("/series.csv", runSeriesHandler(store))
		})
	})

	return r
}

// requestLogger logs each request and feeds the HTTP observability hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			observability.HTTP().OnRequest(req.Context(), req.Method, req.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)

			duration := time.Since(start)
			observability.HTTP().OnResponse(req.Context(), req.Method, req.URL.Path, ww.Status(), duration)
			logger.Info("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"duration", duration)
		})
	}
}

// runIDValidator rejects malformed run IDs before they reach a store.
func runIDValidator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := placererr.ValidateRunID(chi.URLParam(req, "id")); err != nil {
			writeError(w, req, http.StatusBadRequest, err)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func listRunsHandler(store runs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		summaries, err := store.List(req.Context())
		if err != nil {
			writeError(w, req, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}

func getRunHandler(store runs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		run, err := store.Get(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeStoreError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

func runBoardHandler(store runs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		run, err := store.Get(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeStoreError(w, req, err)
			return
		}
		p, err := run.Placement()
		if err != nil {
			writeError(w, req, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(board.RenderSVG(p))
	}
}

func runSeriesHandler(store runs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		run, err := store.Get(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeStoreError(w, req, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		_ = search.WriteSeriesCSV(w, run.Series)
	}
}

// writeStoreError maps store errors to HTTP status codes.
func writeStoreError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, runs.ErrNotFound) {
		writeError(w, req, http.StatusNotFound, err)
		return
	}
	writeError(w, req, http.StatusInternalServerError, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, req *http.Request, status int, err error) {
	observability.HTTP().OnError(req.Context(), req.Method, req.URL.Path, err)
	writeJSON(w, status, map[string]string{"error": placererr.UserMessage(err)})
}
