// Package web provides an HTTP server exposing a budget snapshot as a
// read-only JSON API. The snapshot file is watched for changes and reloaded
// in place, so the API always reflects the latest export without restarting
// the server.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/envelope/backup"
	"github.com/robinvdvleuten/envelope/budget"
	"github.com/robinvdvleuten/envelope/telemetry"
)

type Server struct {
	Port      int
	Host      string
	Version   string
	CommitSHA string
	Currency  string

	mu       sync.RWMutex
	ledger   *budget.Ledger
	warnings []backup.Warning

	// snapshotFile is the absolute path of the snapshot being served.
	snapshotFile string

	logger *slog.Logger
}

func New(port int, snapshotFile string) *Server {
	return NewWithVersion(port, snapshotFile, "", "")
}

func NewWithVersion(port int, snapshotFile, version, commitSHA string) *Server {
	return &Server{
		Port:         port,
		Host:         "127.0.0.1",
		Version:      version,
		CommitSHA:    commitSHA,
		Currency:     "USD",
		snapshotFile: snapshotFile,
		logger:       slog.Default(),
	}
}

func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.snapshotFile == "" {
		return fmt.Errorf("snapshot file is required")
	}

	loadTimer := timer.Child(fmt.Sprintf("web.load %s", filepath.Base(s.snapshotFile)))
	err := s.reloadSnapshot(ctx)
	loadTimer.End()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := s.startWatcher(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, s.logRequests(s.router()))
}

func (s *Server) router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/accounts", s.handleGetAccounts)
	mux.HandleFunc("GET /api/budget", s.handleGetBudget)
	mux.HandleFunc("GET /api/averages", s.handleGetAverages)
	return mux
}

// logRequests logs method, path and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}

// reloadSnapshot loads or reloads the snapshot from disk.
// Caller must NOT hold the mutex; this method acquires it internally.
func (s *Server) reloadSnapshot(ctx context.Context) error {
	l, warnings, err := backup.LoadFile(ctx, s.snapshotFile)
	if err != nil {
		return err
	}

	for _, warning := range warnings {
		s.logger.Warn("snapshot warning", slog.String("detail", warning.String()))
	}

	s.mu.Lock()
	s.ledger = l
	s.warnings = warnings
	s.mu.Unlock()

	return nil
}

// startWatcher watches the snapshot file and reloads it on change.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(s.snapshotFile); err != nil {
		s.logger.Warn("failed to watch snapshot", slog.String("file", s.snapshotFile), slog.Any("error", err))
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors and exporters often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove/Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("file watcher error", slog.Any("error", err))
		}
	}
}

// handleFileChange reloads the snapshot and re-arms the watch, which is
// needed when the file was replaced by an atomic save.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	if err := s.reloadSnapshot(ctx); err != nil {
		s.logger.Error("failed to reload snapshot", slog.Any("error", err))
		return
	}

	if err := watcher.Add(s.snapshotFile); err != nil {
		s.logger.Warn("failed to re-watch snapshot", slog.String("file", s.snapshotFile), slog.Any("error", err))
	}

	s.logger.Info("snapshot reloaded", slog.String("file", s.snapshotFile))
}
