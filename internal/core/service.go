package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// ErrNotConfigured is returned by operations that need a database before a
// connection has been configured.
var ErrNotConfigured = errors.New("no database connection configured")

// statusLabel is the fixed label reported by Status once a connection is
// live.
const statusLabel = "operational"

// Service owns the shared store handle and exposes the four tool
// operations. The handle is established lazily by Configure, replaced
// wholesale on reconfiguration, and closed on shutdown; every exit path
// through Close releases it.
type Service struct {
	source  RowSource
	connect ConnectFunc

	mu        sync.Mutex
	store     Store
	countryID int
}

// NewService creates a Service. No connection is made until Configure is
// called.
func NewService(source RowSource, connect ConnectFunc) *Service {
	return &Service{source: source, connect: connect}
}

// ConnectionAck acknowledges a configured connection.
type ConnectionAck struct {
	Server    string `json:"server"`
	Database  string `json:"database"`
	Port      int    `json:"port"`
	CountryID int    `json:"countryId"`
}

// ScriptResult reports a licensing-script run.
type ScriptResult struct {
	Success bool `json:"success"`
	Batches int  `json:"batches"`
}

// StatusReport carries the table counts and the service status label.
type StatusReport struct {
	TableCounts
	Status string `json:"status"`
}

// Configure dials the target database, applying the port and country
// defaults, and swaps it in as the shared handle. A previously configured
// handle is closed first so at most one connection is live.
func (s *Service) Configure(ctx context.Context, p ConnectionParams) (ConnectionAck, error) {
	if p.Port == 0 {
		p.Port = 1433
	}
	if p.CountryID == 0 {
		p.CountryID = 1
	}

	st, err := s.connect(ctx, p)
	if err != nil {
		return ConnectionAck{}, fmt.Errorf("configure connection: %w", err)
	}
	if err := st.Ping(ctx); err != nil {
		st.Close()
		return ConnectionAck{}, fmt.Errorf("verify connection: %w", err)
	}

	s.mu.Lock()
	if s.store != nil {
		s.store.Close()
	}
	s.store = st
	s.countryID = p.CountryID
	s.mu.Unlock()

	slog.Info("database connection configured",
		"server", p.Server, "database", p.Database, "port", p.Port, "country_id", p.CountryID)

	return ConnectionAck{
		Server:    p.Server,
		Database:  p.Database,
		Port:      p.Port,
		CountryID: p.CountryID,
	}, nil
}

// Configured reports whether a connection is live.
func (s *Service) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store != nil
}

// handle returns the shared store and session country id.
func (s *Service) handle() (Store, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, 0, ErrNotConfigured
	}
	return s.store, s.countryID, nil
}

// ImportOffices runs the full import pipeline for one spreadsheet. The
// result is always structured; a missing connection surfaces as a single
// "general" error, matching the pipeline's infrastructure-fault handling.
func (s *Service) ImportOffices(ctx context.Context, sourcePath string) ImportResult {
	st, countryID, err := s.handle()
	if err != nil {
		return generalFailure(err)
	}
	return NewImporter(s.source, st, countryID).Import(ctx, sourcePath)
}

// RunLicensingScript reads a T-SQL script, splits it on GO separators and
// executes the batches in order. The first failing batch aborts the run.
func (s *Service) RunLicensingScript(ctx context.Context, scriptPath string) (ScriptResult, error) {
	st, _, err := s.handle()
	if err != nil {
		return ScriptResult{}, err
	}

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return ScriptResult{}, fmt.Errorf("read script: %w", err)
	}

	batches := SplitBatches(string(data))
	for i, batch := range batches {
		if err := st.ExecBatch(ctx, batch); err != nil {
			return ScriptResult{Batches: i}, fmt.Errorf("execute batch %d of %d: %w", i+1, len(batches), err)
		}
	}

	slog.Info("licensing script executed", "path", scriptPath, "batches", len(batches))
	return ScriptResult{Success: true, Batches: len(batches)}, nil
}

// Status returns the row counts for the office, employee and client tables.
func (s *Service) Status(ctx context.Context) (StatusReport, error) {
	st, _, err := s.handle()
	if err != nil {
		return StatusReport{}, err
	}

	counts, err := st.TableCounts(ctx)
	if err != nil {
		return StatusReport{}, fmt.Errorf("query table counts: %w", err)
	}
	return StatusReport{TableCounts: counts, Status: statusLabel}, nil
}

// Close releases the shared store handle if one is live.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}
