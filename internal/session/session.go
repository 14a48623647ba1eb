// Package session holds the canonical host state of one loaded view and is
// the boundary where scan file failures become user-facing messages.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/anstrom/scanview/internal/classify"
	"github.com/anstrom/scanview/internal/config"
	"github.com/anstrom/scanview/internal/errors"
	"github.com/anstrom/scanview/internal/ingest"
	"github.com/anstrom/scanview/internal/logging"
	"github.com/anstrom/scanview/internal/metrics"
	"github.com/anstrom/scanview/internal/scandata"
	"github.com/anstrom/scanview/internal/view"
)

// FileReport is the outcome of loading one scan file.
type FileReport struct {
	Name    string
	Hosts   int
	Skipped []scandata.SkippedHost
	Err     error
	// Message is the text shown to the user when Err is set.
	Message string
}

// OK reports whether the file contributed to the session.
func (f FileReport) OK() bool {
	return f.Err == nil
}

// LoadReport summarizes one Load call.
type LoadReport struct {
	Files []FileReport
	Stats scandata.MergeStats
}

// Loaded returns how many files were merged.
func (r LoadReport) Loaded() int {
	n := 0
	for _, f := range r.Files {
		if f.OK() {
			n++
		}
	}
	return n
}

// Failed returns the reports of files that could not be loaded.
func (r LoadReport) Failed() []FileReport {
	var failed []FileReport
	for _, f := range r.Files {
		if !f.OK() {
			failed = append(failed, f)
		}
	}
	return failed
}

// Session is the in-memory state for one view.
type Session struct {
	id       string
	cfg      *config.Config
	logger   *logging.Logger
	recorder metrics.Recorder

	mu    sync.RWMutex
	hosts []scandata.Host
}

// New creates an empty session. A nil cfg, logger or recorder is replaced by
// the defaults.
func New(cfg *config.Config, logger *logging.Logger, recorder metrics.Recorder) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}

	id := uuid.NewString()
	return &Session{
		id:       id,
		cfg:      cfg,
		logger:   logger.WithComponent("session").WithSession(id),
		recorder: recorder,
		hosts:    []scandata.Host{},
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Load parses paths concurrently, then merges every successfully parsed
// file into the session in the order given. Failed files are reported and
// leave the session untouched.
func (s *Session) Load(ctx context.Context, paths ...string) LoadReport {
	results := ingest.ParseFiles(ctx, paths, s.cfg.IngestOptions())
	return s.apply(results)
}

// LoadSources is Load for in-memory documents.
func (s *Session) LoadSources(ctx context.Context, sources ...ingest.Source) LoadReport {
	results := ingest.ParseSources(ctx, sources, s.cfg.IngestOptions())
	return s.apply(results)
}

// LoadBytes loads a single in-memory document.
func (s *Session) LoadBytes(ctx context.Context, name string, data []byte) LoadReport {
	return s.LoadSources(ctx, ingest.Source{Name: name, Data: data})
}

func (s *Session) apply(results []ingest.FileResult) LoadReport {
	report := LoadReport{Files: make([]FileReport, len(results))}
	batches := make([][]scandata.Host, 0, len(results))

	for i, r := range results {
		fr := FileReport{Name: r.Name}
		s.recorder.FileParsed(metrics.StatusFor(r.Err), r.Duration)

		if r.Err != nil {
			fr.Err = r.Err
			fr.Message = errors.UserMessage(r.Err)
			s.logger.ErrorFile("Failed to load scan file", r.Name, r.Err)
			report.Files[i] = fr
			continue
		}

		batch := scandata.Normalize(r.Run)
		fr.Hosts = len(batch.Hosts)
		fr.Skipped = batch.Skipped
		if len(batch.Skipped) > 0 {
			s.recorder.HostsSkipped(len(batch.Skipped))
			for _, sk := range batch.Skipped {
				s.logger.WithFile(r.Name).Warn("Skipped host without IPv4 address",
					"index", sk.Index, "addresses", sk.Addresses)
			}
		}
		s.logger.InfoFile("Scan file parsed", r.Name,
			"hosts", fr.Hosts, "duration", r.Duration)

		batches = append(batches, batch.Hosts)
		report.Files[i] = fr
	}

	if len(batches) == 0 {
		return report
	}

	s.mu.Lock()
	merged, stats := scandata.MergeWithStats(s.hosts, batches...)
	s.hosts = merged
	total := len(merged)
	s.mu.Unlock()

	report.Stats = stats
	s.recorder.HostsMerged(stats.Added, stats.Updated)
	s.recorder.SetSessionHosts(total)
	s.logger.Info("Merged scan files", "added", stats.Added, "updated", stats.Updated, "hosts", total)

	return report
}

// Hosts returns a copy of the canonical host list.
func (s *Session) Hosts() []scandata.Host {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scandata.CloneHosts(s.hosts)
}

// Tags returns the filter categories present in the session.
func (s *Session) Tags() []classify.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.DiscoverTags(s.hosts)
}

// Derive returns the hosts to display for state.
func (s *Session) Derive(state view.State) []scandata.Host {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Derive(s.hosts, state)
}

// RecordExport logs and counts a finished export.
func (s *Session) RecordExport(kind string, err error) {
	s.recorder.ExportCompleted(kind, metrics.StatusFor(err))
	if err != nil {
		s.logger.ErrorExport("Export failed", kind, err)
		return
	}
	s.logger.Info("Export completed", "kind", kind)
}
