package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// LogSink writes audit records as structured log entries.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger falls back to slog.Default.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Record logs the record at Info level with one attribute per field.
func (s *LogSink) Record(ctx context.Context, rec Record) error {
	s.logger.InfoContext(ctx, "access audit",
		"audit_id", rec.ID,
		"user", rec.User,
		"groups", rec.Groups,
		"resource", rec.Resource,
		"access", rec.Access,
		"allowed", rec.Allowed,
		"reasons", rec.Reasons,
		"error", rec.Error,
	)
	return nil
}

// FileSink appends audit records to a file as JSON lines.
type FileSink struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// NewFileSink opens (or creates) the file at path for appending.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}
	return &FileSink{f: f, enc: json.NewEncoder(f)}, nil
}

// Record appends the record as one JSON line.
func (s *FileSink) Record(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// MultiSink fans each record out to every member sink. All sinks receive the
// record even when earlier ones fail; failures are joined.
type MultiSink []Sink

// Record delivers the record to every sink.
func (s MultiSink) Record(ctx context.Context, rec Record) error {
	var errs []error
	for _, sink := range s {
		if err := sink.Record(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NopSink discards all records.
type NopSink struct{}

// Record discards the record.
func (NopSink) Record(context.Context, Record) error {
	return nil
}
