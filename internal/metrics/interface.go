// Package metrics records what a session did with its scan files.
package metrics

import "time"

//go:generate mockgen -source=interface.go -destination=mocks/mock_recorder.go -package=mocks

// Status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder is notified by the session as files are loaded and merged.
// This interface allows the session to be tested without a registry.
type Recorder interface {
	// FileParsed records the outcome of parsing one scan file.
	FileParsed(status string, duration time.Duration)

	// HostsSkipped counts hosts dropped by normalization.
	HostsSkipped(count int)

	// HostsMerged counts hosts added to or updated in the session.
	HostsMerged(added, updated int)

	// SetSessionHosts sets the number of hosts held by the session.
	SetSessionHosts(count int)

	// ExportCompleted records an export by kind (hosts, commands, report).
	ExportCompleted(kind, status string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) FileParsed(string, time.Duration) {}
func (NopRecorder) HostsSkipped(int)                 {}
func (NopRecorder) HostsMerged(int, int)             {}
func (NopRecorder) SetSessionHosts(int)              {}
func (NopRecorder) ExportCompleted(string, string)   {}

// StatusFor maps an error to a status label.
func StatusFor(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

var (
	_ Recorder = NopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
