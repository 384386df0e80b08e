package sched

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// CSVRecorder writes the event trace of one or more runs as CSV rows.
type CSVRecorder struct {
	mu     sync.Mutex
	closer io.Closer
	w      *csv.Writer
}

var csvHeader = []string{"run_id", "policy", "tick", "event", "pid", "burst", "executed", "waiting", "switches"}

// NewCSVRecorder creates (or truncates) path and writes the header row.
func NewCSVRecorder(path string) (*CSVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewCSVRecorderWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewCSVRecorderWriter records to an arbitrary writer.
func NewCSVRecorderWriter(w io.Writer) (*CSVRecorder, error) {
	r := &CSVRecorder{w: csv.NewWriter(w)}
	if err := r.w.Write(csvHeader); err != nil {
		return nil, err
	}
	r.w.Flush()
	return r, r.w.Error()
}

// Record appends one event row.
func (r *CSVRecorder) Record(runID uuid.UUID, policy string, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := []string{
		runID.String(),
		policy,
		strconv.FormatInt(ev.Tick, 10),
		ev.Kind.String(),
		strconv.FormatUint(uint64(ev.PID), 10),
		strconv.FormatInt(ev.Burst, 10),
		strconv.FormatInt(ev.Executed, 10),
		strconv.FormatInt(ev.Waiting, 10),
		strconv.Itoa(ev.Switches),
	}
	if err := r.w.Write(rec); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}

// Close flushes pending rows and closes the underlying file, if any.
func (r *CSVRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.w.Flush()
	if r.closer != nil {
		return r.closer.Close()
	}
	return r.w.Error()
}
