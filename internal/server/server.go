package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"wine-trip-planner/internal/catalog"
	"wine-trip-planner/internal/config"
	"wine-trip-planner/internal/database"
	"wine-trip-planner/internal/distance"
	"wine-trip-planner/internal/handlers"
	"wine-trip-planner/internal/itinerary"
	"wine-trip-planner/internal/sqlite"
	"wine-trip-planner/web"
)

// Server wraps the HTTP server and all dependencies
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	db         database.DataStore
	listener   net.Listener
	addr       string

	autosaveInterval time.Duration
	stopAutosave     chan struct{}
	autosaveDone     chan struct{}
	stopOnce         sync.Once
}

// Config holds server configuration
type Config struct {
	Addr string // e.g., "127.0.0.1:8080" or "127.0.0.1:0" for random port

	StorageBackend string
	DataDir        string
	DatabasePath   string
	CatalogPath    string

	GenerationDelay  time.Duration
	AutosaveInterval time.Duration
}

// ConfigFrom maps the application configuration onto server settings
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Addr:             cfg.ServerAddr,
		StorageBackend:   cfg.StorageBackend,
		DataDir:          cfg.DataDir,
		DatabasePath:     cfg.DatabasePath,
		CatalogPath:      cfg.CatalogPath,
		GenerationDelay:  cfg.GenerationDelay,
		AutosaveInterval: cfg.AutosaveInterval,
	}
}

// OpenStore opens the profile store selected by cfg.StorageBackend
func OpenStore(cfg Config) (database.DataStore, error) {
	dataDir, err := database.ResolveDataDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	switch cfg.StorageBackend {
	case config.BackendSQLite:
		dbPath := cfg.DatabasePath
		if dbPath == "" {
			if dbPath, err = database.GetDefaultDBPath(dataDir); err != nil {
				return nil, err
			}
		}
		return sqlite.New(dbPath)
	case config.BackendJSON, "":
		path, err := database.GetProfilesFilePath(dataDir)
		if err != nil {
			return nil, err
		}
		return database.NewJSONStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// LoadCatalog reads the catalog from path, or the bundled catalog when path is empty
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// New creates and initializes a new server (does not start it)
func New(cfg Config) (*Server, error) {
	log.Printf("Loading catalog...")
	cat, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	log.Printf("Initializing data store...")
	db, err := OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data store: %w", err)
	}

	return NewWithStore(cfg, db, cat), nil
}

// NewWithStore builds a server around an already opened store and catalog.
// The server owns db and closes it on Shutdown.
func NewWithStore(cfg Config, db database.DataStore, cat *catalog.Catalog) *Server {
	handler := &handlers.Handler{
		DB:              db,
		Catalog:         cat,
		Builder:         itinerary.NewRegionBuilder(),
		Estimator:       distance.NewHaversineEstimator(),
		Sessions:        handlers.NewSessionStore(),
		GenerationDelay: cfg.GenerationDelay,
	}

	mux := setupRoutes(handler, web.Static)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingMiddleware(corsMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	interval := cfg.AutosaveInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &Server{
		httpServer:       httpServer,
		handler:          handler,
		db:               db,
		addr:             cfg.Addr,
		autosaveInterval: interval,
		stopAutosave:     make(chan struct{}),
		autosaveDone:     make(chan struct{}),
	}
}

// Handler exposes the routed HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server and returns the actual address (useful for random port)
func (s *Server) Start() (string, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = listener
	actualAddr := listener.Addr().String()
	log.Printf("Starting server on %s", actualAddr)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	go s.autosaveLoop()

	return actualAddr, nil
}

// autosaveLoop periodically persists sessions changed since the previous tick
func (s *Server) autosaveLoop() {
	defer close(s.autosaveDone)

	ticker := time.NewTicker(s.autosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.autosaveInterval)
			s.handler.SaveDirtySessions(ctx)
			cancel()
		case <-s.stopAutosave:
			return
		}
	}
}

// Shutdown gracefully shuts down the server, flushing unsaved sessions first
func (s *Server) Shutdown(ctx context.Context) error {
	started := s.listener != nil
	s.stopOnce.Do(func() { close(s.stopAutosave) })
	if started {
		<-s.autosaveDone
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	if _, err := s.handler.SaveDirtySessions(ctx); err != nil {
		log.Printf("[ERROR] Final save failed: %v", err)
	}
	return s.db.Close()
}

// setupRoutes configures all HTTP routes
func setupRoutes(handler *handlers.Handler, staticFS fs.FS) *http.ServeMux {
	mux := http.NewServeMux()

	// Serve static files from embedded filesystem
	staticSubFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-filesystem: %v", err)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSubFS))))

	mux.HandleFunc("/api/v1/health", handler.HandleHealthCheck)

	mux.HandleFunc("/api/v1/open-url", handleOpenURL)

	mux.HandleFunc("/api/v1/quiz/questions", getOnly(handler.HandleQuizQuestions))
	mux.HandleFunc("/api/v1/catalog/wineries", getOnly(handler.HandleListWineries))
	mux.HandleFunc("/api/v1/catalog/wineries/{wineryID}", getOnly(handler.HandleGetWinery))
	mux.HandleFunc("/api/v1/catalog/regions", getOnly(handler.HandleListRegions))

	mux.HandleFunc("/api/v1/sessions", postOnly(handler.HandleCreateSession))

	mux.HandleFunc("/api/v1/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.HandleGetSession(w, r)
		case http.MethodDelete:
			handler.HandleDeleteSession(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/v1/sessions/{id}/answers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.HandleSetAnswers(w, r)
	})

	mux.HandleFunc("/api/v1/sessions/{id}/answers/select", postOnly(handler.HandleSelectAnswer))

	mux.HandleFunc("/api/v1/sessions/{id}/itinerary", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.HandleGetItinerary(w, r)
		case http.MethodPost:
			handler.HandleGenerateItinerary(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/v1/sessions/{id}/recommendations", getOnly(handler.HandleRecommendations))
	mux.HandleFunc("/api/v1/sessions/{id}/save", postOnly(handler.HandleSaveSession))
	mux.HandleFunc("/api/v1/sessions/{id}/export", getOnly(handler.HandleExport))

	mux.HandleFunc("/api/v1/sessions/{id}/replacements", postOnly(handler.HandleBeginReplacement))
	mux.HandleFunc("/api/v1/sessions/{id}/replacements/select", postOnly(handler.HandleSelectReplacement))
	mux.HandleFunc("/api/v1/sessions/{id}/replacements/confirm", postOnly(handler.HandleConfirmReplacement))
	mux.HandleFunc("/api/v1/sessions/{id}/replacements/cancel", postOnly(handler.HandleCancelReplacement))

	mux.HandleFunc("/api/v1/profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.HandleGetProfile(w, r)
		case http.MethodDelete:
			handler.HandleResetProfile(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/v1/profiles/{id}/stats", getOnly(handler.HandleProfileStats))
	mux.HandleFunc("/api/v1/profiles/{id}/favorites/{wineryID}", postOnly(handler.HandleToggleFavorite))

	mux.HandleFunc("/api/v1/profiles/{id}/notes/{wineryID}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.HandleSetNote(w, r)
	})

	// Page routes
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, staticSubFS, "index.html")
	})

	return mux
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

// handleOpenURL opens a winery website in the system's default browser
func handleOpenURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	// Only allow http/https URLs for security
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		http.Error(w, "Only HTTP/HTTPS URLs are allowed", http.StatusBadRequest)
		return
	}

	if err := OpenBrowser(req.URL); err != nil {
		log.Printf("Failed to open URL: %v", err)
		http.Error(w, "Failed to open URL", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// OpenBrowser opens url with the platform's default handler
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default: // linux, freebsd, etc.
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		log.Printf("[HTTP] %s %s %d %v", r.Method, r.URL.Path, lrw.statusCode, duration)
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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Only allow localhost origins (Wails webview and local development)
		if origin == "" ||
			strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:") ||
			strings.HasPrefix(origin, "wails://") {
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
