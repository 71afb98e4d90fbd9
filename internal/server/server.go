package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/Tushar7436/Explaino-frontend-v1-sub000/docs/swagger" // generated API docs
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/app"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/session"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/store"
)

// Server is the HTTP + WebSocket API surface of the editor engine.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
}

// NewServer assembles a server with its own orchestrator.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	sessionStore := cfg.Store
	if sessionStore == nil {
		if root := cfg.AppConfig.StorageRoot; root != "" {
			if err := os.MkdirAll(root, 0o755); err != nil {
				return nil, fmt.Errorf("creating storage root: %w", err)
			}
			st, err := store.NewSQLiteStore(root, logger)
			if err != nil {
				return nil, fmt.Errorf("opening backup store: %w", err)
			}
			sessionStore = st
		} else {
			sessionStore = store.NewMemoryStore()
		}
	}

	client := cfg.Client
	if client == nil {
		client = session.NewClient(cfg.AppConfig.SessionCfg, logger, nil)
	}

	s := &Server{
		cfg:          cfg,
		orchestrator: app.NewOrchestrator(cfg.AppConfig, sessionStore, client, logger),
		router:       chi.NewRouter(),
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}
	s.routes()
	return s, nil
}

// Orchestrator exposes the underlying orchestrator (tests, embedding).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/sessions/{session}", s.optionsHandler("GET, POST, DELETE"))
	r.Options("/sessions/{session}/changes", s.optionsHandler("GET, POST"))
	r.Options("/sessions/{session}/save", s.optionsHandler("POST"))
	r.Options("/sessions/{session}/transport", s.optionsHandler("POST"))
	r.Options("/sessions/{session}/frame", s.optionsHandler("GET"))
	r.Options("/jobs/{jobID}", s.optionsHandler("GET, DELETE"))
	r.Options("/ws/sessions/{session}/progress", s.optionsHandler("GET"))

	// Sessions
	r.Get("/sessions/{session}", s.handleGetSession)
	r.Post("/sessions/{session}", s.handleStartSessionLoad)
	r.Delete("/sessions/{session}", s.handleCloseSession)

	// Changes
	r.Post("/sessions/{session}/changes", s.handleTrackChange)
	r.Get("/sessions/{session}/changes", s.handleListChanges)
	r.Post("/sessions/{session}/save", s.handleSave)

	// Playback
	r.Post("/sessions/{session}/transport", s.handleTransport)
	r.Get("/sessions/{session}/frame", s.handleFrame)

	// Jobs over REST
	r.Get("/jobs/{jobID}", s.handleGetJob)
	r.Delete("/jobs/{jobID}", s.handleCancelJob)

	// WebSocket for load progress
	r.Get("/ws/sessions/{session}/progress", s.handleProgressWS)

	// Interactive API docs
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}
	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}
	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}
	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the orchestrator and its engines.
func (s *Server) Close() {
	if s.orchestrator != nil {
		s.orchestrator.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	addr := s.cfg.ListenAddr
	if addr == "" {
		addr = s.cfg.AppConfig.ListenAddr
	}
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- HTTP handlers ---

// Sessions

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	engine, err := s.orchestrator.OpenSession(r.Context(), sessionID)
	if err != nil {
		s.logger.Warn("opening session", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.logger.Info("got session", logging.Field{Key: "session", Value: sessionID})
	writeJSON(w, http.StatusOK, SessionStateResponse{
		SessionID:      sessionID,
		Results:        engine.Tracker.Results(),
		PendingChanges: len(engine.Tracker.PendingChanges()),
		Frame:          engine.Frame(),
	})
}

func (s *Server) handleStartSessionLoad(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	// Deliberately not the request context: the load outlives the request.
	job := s.orchestrator.StartLoadJob(context.Background(), sessionID)
	s.logger.Info("started session load job",
		logging.Field{Key: "session", Value: sessionID},
		logging.Field{Key: "job_id", Value: job.ID})
	// Encode a snapshot; the load goroutine mutates the live job.
	writeJSON(w, http.StatusAccepted, s.orchestrator.GetJob(job.ID))
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	s.orchestrator.CloseSession(sessionID)
	s.logger.Info("closed session", logging.Field{Key: "session", Value: sessionID})
	writeJSON(w, http.StatusNoContent, nil)
}

// Changes

func (s *Server) handleTrackChange(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	engine := s.orchestrator.Engine(sessionID)
	if engine == nil {
		writeError(w, http.StatusNotFound, "session not open")
		return
	}

	var body TrackChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("decoding change body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	tracked := engine.ApplyChange(r.Context(), model.Change{
		Type:     model.ChangeType(body.Type),
		ClipName: body.ClipName,
		Path:     body.Path,
		OldValue: body.OldValue,
		NewValue: body.NewValue,
	})
	s.logger.Info("tracked change",
		logging.Field{Key: "session", Value: sessionID},
		logging.Field{Key: "id", Value: tracked.ID},
		logging.Field{Key: "path", Value: tracked.Path})
	writeJSON(w, http.StatusCreated, tracked)
}

func (s *Server) handleListChanges(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	engine := s.orchestrator.Engine(sessionID)
	if engine == nil {
		writeError(w, http.StatusNotFound, "session not open")
		return
	}

	pending := engine.Tracker.PendingChanges()
	if r.URL.Query().Get("compact") == "1" {
		pending = engine.CompactChanges()
	}
	writeJSON(w, http.StatusOK, ChangesResponse{
		SessionID: sessionID,
		Changes:   pending,
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	engine := s.orchestrator.Engine(sessionID)
	if engine == nil {
		writeError(w, http.StatusNotFound, "session not open")
		return
	}

	if err := engine.Tracker.Save(r.Context()); err != nil {
		// The stack survives a failed save; the client may retry.
		s.logger.Warn("saving session",
			logging.Field{Key: "session", Value: sessionID},
			logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.logger.Info("saved session", logging.Field{Key: "session", Value: sessionID})
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Playback

func (s *Server) handleTransport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	engine := s.orchestrator.Engine(sessionID)
	if engine == nil {
		writeError(w, http.StatusNotFound, "session not open")
		return
	}

	var body TransportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	switch body.Action {
	case "play":
		engine.Sync.Play()
	case "pause":
		engine.Sync.Pause()
	case "seek":
		if body.Time == nil {
			writeError(w, http.StatusBadRequest, "seek requires time")
			return
		}
		engine.Sync.SeekTo(*body.Time)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown action %q", body.Action))
		return
	}

	s.logger.Info("transport command",
		logging.Field{Key: "session", Value: sessionID},
		logging.Field{Key: "action", Value: body.Action})
	writeJSON(w, http.StatusOK, engine.Frame())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	engine := s.orchestrator.Engine(sessionID)
	if engine == nil {
		writeError(w, http.StatusNotFound, "session not open")
		return
	}

	ts := r.URL.Query().Get("t")
	if ts == "" {
		writeJSON(w, http.StatusOK, engine.Frame())
		return
	}
	t, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid t")
		return
	}
	writeJSON(w, http.StatusOK, engine.FrameAt(t))
}

// Jobs

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	s.orchestrator.CancelJob(jobID)
	s.logger.Info("canceled job", logging.Field{Key: "job_id", Value: jobID})
	writeJSON(w, http.StatusNoContent, nil)
}

// WebSocket

func (s *Server) handleProgressWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	job := s.orchestrator.StartLoadJob(r.Context(), sessionID)
	s.logger.Info("started session load job over websocket",
		logging.Field{Key: "session", Value: sessionID},
		logging.Field{Key: "job_id", Value: job.ID})
	_ = conn.WriteJSON(s.orchestrator.GetJob(job.ID))

	for ev := range job.Events {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected; cancel job
			s.orchestrator.CancelJob(job.ID)
			return
		}
	}
}
