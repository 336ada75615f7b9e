package audit

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordStampsIdentityAndTime(t *testing.T) {
	t.Parallel()

	rec := NewRecord("alice", []string{"finance"}, map[string]string{"catalog": "sales"}, "select", true, []string{"policy0"})

	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Time.IsZero())
	assert.Equal(t, "alice", rec.User)
	assert.True(t, rec.Allowed)

	other := NewRecord("alice", nil, nil, "select", true, nil)
	assert.NotEqual(t, rec.ID, other.ID)
}

func TestLogSinkRecord(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	rec := NewRecord("alice", []string{"finance"}, map[string]string{"catalog": "sales"}, "select", false, nil)
	require.NoError(t, sink.Record(context.Background(), rec))

	out := buf.String()
	assert.Contains(t, out, "access audit")
	assert.Contains(t, out, rec.ID)
	assert.Contains(t, out, `"allowed":false`)
}

func TestFileSinkWritesJSONLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audit.log")
	sink, err := NewFileSink(path)
	require.NoError(t, err)
	defer sink.Close()

	first := NewRecord("alice", []string{"finance"}, map[string]string{"catalog": "sales"}, "select", true, nil)
	second := NewRecord("bob", []string{}, map[string]string{"catalog": "hr"}, "drop", false, nil)
	require.NoError(t, sink.Record(context.Background(), first))
	require.NoError(t, sink.Record(context.Background(), second))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, "bob", records[1].User)
	assert.False(t, records[1].Allowed)
}

type recordingSink struct {
	records []Record
	err     error
}

func (s *recordingSink) Record(_ context.Context, rec Record) error {
	s.records = append(s.records, rec)
	return s.err
}

func TestMultiSinkDeliversToAllMembers(t *testing.T) {
	t.Parallel()

	failure := errors.New("sink down")
	failing := &recordingSink{err: failure}
	healthy := &recordingSink{}

	sink := MultiSink{failing, healthy}
	err := sink.Record(context.Background(), NewRecord("alice", nil, nil, "select", true, nil))

	assert.ErrorIs(t, err, failure)
	assert.Len(t, failing.records, 1)
	assert.Len(t, healthy.records, 1, "later sinks still receive the record after a failure")
}

func TestNopSink(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NopSink{}.Record(context.Background(), Record{}))
}
