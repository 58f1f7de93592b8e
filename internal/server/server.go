package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/outreach-assistant/internal/config"
	"github.com/jonathan/outreach-assistant/internal/db"
	"github.com/jonathan/outreach-assistant/internal/llm"
	"github.com/jonathan/outreach-assistant/internal/scrape"
)

// Server represents the HTTP server and its wired services
type Server struct {
	httpServer *http.Server
	db         *db.DB
	store      Store
	llmClient  llm.Client
	cfg        *config.Config

	targets  *TargetService
	scrapes  *ScrapeService
	messages *MessageService
}

// New creates a server instance: connects to the database, ensures the
// schema, and wires the scraper and drafting capabilities per configuration.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	var scraper scrape.Scraper
	if cfg.ScraperMode == config.ScraperModeBrowser {
		scraper = scrape.NewBrowserScraper()
	} else {
		scraper = scrape.NewDemoScraper()
	}

	llmClient, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create drafting client: %w", err)
	}

	s := &Server{
		db:        database,
		store:     database,
		llmClient: llmClient,
		cfg:       cfg,
	}
	s.targets = NewTargetService(database, cfg.PageSize)
	s.scrapes = NewScrapeService(scraper, database)
	s.messages = NewMessageService(llmClient, database)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // scrape and draft calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Targets
	mux.HandleFunc("POST /targets/import", s.handleImportTargets)
	mux.HandleFunc("GET /targets", s.handleListTargets)
	mux.HandleFunc("GET /targets/{id}", s.handleGetTarget)
	mux.HandleFunc("POST /targets/{id}/scrape", s.handleScrapeTarget)
	mux.HandleFunc("POST /targets/{id}/generate", s.handleGenerateMessages)
	mux.HandleFunc("POST /targets/{id}/regenerate", s.handleRegenerateMessages)
	mux.HandleFunc("POST /targets/{id}/discard", s.handleDiscardAll)
	mux.HandleFunc("GET /targets/{id}/messages", s.handleListMessages)

	// Messages
	mux.HandleFunc("PATCH /messages/{id}", s.handlePatchMessage)
	mux.HandleFunc("DELETE /messages/{id}", s.handleDeleteMessage)

	// Export accounting
	mux.HandleFunc("GET /export/new-approved", s.handleListNewApproved)
	mux.HandleFunc("GET /export/approved.csv", s.handleExportApproved)

	// Per-session settings
	mux.HandleFunc("GET /config/{key}", s.handleGetConfig)
	mux.HandleFunc("PUT /config/{key}", s.handleSetConfig)

	// Demo/test environments only
	mux.HandleFunc("POST /reset", s.handleReset)

	return mux
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s (scraper=%s)", s.httpServer.Addr, s.cfg.ScraperMode)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing drafting client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-Id")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a short per-request ID
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()[:8]
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"scraperMode": s.cfg.ScraperMode,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service-layer error to its HTTP response
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}
