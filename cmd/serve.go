package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tripgen-cli/internal/engine"
	"github.com/sells-group/tripgen-cli/internal/model"
	"github.com/sells-group/tripgen-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for calculations and saved analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		calc, err := buildCalculator()
		if err != nil {
			return err
		}
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(calc, st),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Error("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// calculateRequest is the POST /api/calculate body.
type calculateRequest struct {
	Code    string   `json:"code"`
	Size    float64  `json:"size"`
	Modes   []string `json:"modes,omitempty"`
	Weekend bool     `json:"weekend,omitempty"`
	Save    bool     `json:"save,omitempty"`
	Label   string   `json:"label,omitempty"`
}

func newRouter(calc *engine.Calculator, st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/calculate", func(w http.ResponseWriter, req *http.Request) {
		var body calculateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.Code == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "code is required"})
			return
		}

		opts := engine.Options{IncludeWeekend: body.Weekend}
		for _, m := range body.Modes {
			opts.Modes = append(opts.Modes, model.Mode(m))
		}

		result := calc.Calculate(body.Code, body.Size, opts)
		if body.Save && result.Success {
			if _, err := st.SaveAnalysis(req.Context(), body.Label, result); err != nil {
				zap.L().Error("save analysis failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save analysis"})
				return
			}
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/api/search", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, calc.Search(req.URL.Query().Get("q")))
	})

	r.Get("/api/codes", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, calc.ByCategory())
	})

	r.Get("/api/codes/{code}", func(w http.ResponseWriter, req *http.Request) {
		code := chi.URLParam(req, "code")
		rec, ok := calc.Details(code)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("ITE Code %s not found in database", code)})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})

	r.Get("/api/analyses", func(w http.ResponseWriter, req *http.Request) {
		analyses, err := st.ListAnalyses(req.Context(), store.AnalysisFilter{
			Code: req.URL.Query().Get("code"),
		})
		if err != nil {
			zap.L().Error("list analyses failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list analyses"})
			return
		}
		writeJSON(w, http.StatusOK, analyses)
	})

	r.Get("/api/analyses/{id}", func(w http.ResponseWriter, req *http.Request) {
		a, err := st.GetAnalysis(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "analysis not found"})
			return
		}
		writeJSON(w, http.StatusOK, a)
	})

	r.Delete("/api/analyses/{id}", func(w http.ResponseWriter, req *http.Request) {
		if err := st.DeleteAnalysis(req.Context(), chi.URLParam(req, "id")); err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "analysis not found"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
