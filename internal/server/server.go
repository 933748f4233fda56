package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/mindwise/internal/config"
	"github.com/jonathan/mindwise/internal/db"
	"github.com/jonathan/mindwise/internal/pipeline"
	"github.com/jonathan/mindwise/internal/server/middleware"
	"github.com/jonathan/mindwise/internal/types"
)

// Store is the persistence the HTTP handlers need. *db.DB implements it.
type Store interface {
	UserStore
	CreateJobApplication(ctx context.Context, job db.NewJobApplication) (*db.JobApplication, error)
	GetJobApplication(ctx context.Context, userID, jobID uuid.UUID) (*db.JobApplication, error)
	ListJobApplications(ctx context.Context, userID uuid.UUID, filters db.JobFilters) (*db.JobPage, error)
	UpdateJobApplication(ctx context.Context, userID, jobID uuid.UUID, update db.JobUpdate) (*db.JobApplication, error)
	SaveAnalysis(ctx context.Context, userID, jobID uuid.UUID, result *types.AIAnalysisResult, status string) (*db.JobApplication, error)
	DeleteJobApplication(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	CreateNote(ctx context.Context, userID, jobID uuid.UUID, content string) (*db.Note, error)
	ListNotes(ctx context.Context, userID, jobID uuid.UUID) ([]db.Note, error)
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) (bool, error)
	Close()
}

// Pipeline runs extraction and analysis. *pipeline.Runner implements it.
type Pipeline interface {
	Run(ctx context.Context, in pipeline.Input) (*pipeline.Result, error)
}

// Dependencies are the collaborators constructed once at startup and shared by all requests.
type Dependencies struct {
	Store    Store
	Pipeline Pipeline
	Jobs     pipeline.JobExtractor
	JWT      *config.JWTConfig
	Password *config.PasswordConfig
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	store       Store
	pipeline    Pipeline
	jobs        pipeline.JobExtractor
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Store == nil || deps.Pipeline == nil || deps.Jobs == nil {
		return nil, errors.New("server requires a store, a pipeline and a job extractor")
	}
	if deps.JWT == nil || deps.Password == nil {
		return nil, errors.New("server requires JWT and password configuration")
	}

	s := &Server{
		cfg:      cfg,
		store:    deps.Store,
		pipeline: deps.Pipeline,
		jobs:     deps.Jobs,
	}
	s.jwtService = NewJWTService(deps.JWT)
	s.userService = NewUserService(deps.Store, deps.Password)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Analysis waits on the resume download and the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with logging and CORS applied
func (s *Server) Handler() http.Handler {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /auth/me", protected(s.authHandler.Me))

	// Analysis
	mux.Handle("POST /ai/analyze-job", protected(s.handleAnalyzeJob))
	mux.Handle("POST /ai/extract-job", protected(s.handleExtractJob))

	// Job applications
	mux.Handle("GET /jobs", protected(s.handleListJobs))
	mux.Handle("POST /jobs", protected(s.handleCreateJob))
	mux.Handle("GET /jobs/{job_id}", protected(s.handleGetJob))
	mux.Handle("PATCH /jobs/{job_id}", protected(s.handleUpdateJob))
	mux.Handle("DELETE /jobs/{job_id}", protected(s.handleDeleteJob))
	mux.Handle("POST /jobs/{job_id}/analyze", protected(s.handleAnalyzeExistingJob))

	// Notes
	mux.Handle("POST /jobs/{job_id}/notes", protected(s.handleCreateNote))
	mux.Handle("GET /jobs/{job_id}/notes", protected(s.handleListNotes))
	mux.Handle("DELETE /jobs/notes/{note_id}", protected(s.handleDeleteNote))

	return s.withLogging(s.withCORS(mux))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] %s %s starting on %s", s.cfg.AppName, s.cfg.AppVersion, s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.store.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("[SERVER] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.store.Close()
	log.Println("[SERVER] Server stopped")
	return nil
}

// withCORS allows the configured origins. Credentials are allowed, so the origin is echoed rather than "*".
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && slices.Contains(s.cfg.AllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleRoot is the liveness message
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"message": s.cfg.AppName + " Backend is running",
		"version": s.cfg.AppVersion,
		"status":  "healthy",
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.cfg.AppName,
		"version": s.cfg.AppVersion,
	})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[SERVER] Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to its status and writes it. Unexpected failures are logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[SERVER] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	errorResponse(w, status, err.Error())
}

// decodeJSON decodes the request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Message: "invalid request body"}
	}
	return nil
}

// pathUUID parses a UUID path value. A malformed ID cannot name an existing resource.
func pathUUID(r *http.Request, name string, missing error) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, missing
	}
	return id, nil
}
