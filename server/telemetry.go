package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/lab1702/fleetcommand/game"
)

// TransitionRecord is one AI state change in transitions.csv.
type TransitionRecord struct {
	Time    float64 `csv:"time"`
	Agent   string  `csv:"agent"`
	Faction string  `csv:"faction"`
	Profile string  `csv:"profile"`
	From    string  `csv:"from"`
	To      string  `csv:"to"`
	Target  string  `csv:"target"`
	Reason  string  `csv:"reason"`
}

// Telemetry buffers AI transitions and writes them as CSV.
// A nil *Telemetry is valid and records nothing.
type Telemetry struct {
	mu            sync.Mutex
	file          *os.File
	pending       []*TransitionRecord
	headerWritten bool
}

// NewTelemetry creates dir and opens transitions.csv in it.
// Returns nil if dir is empty (output disabled).
func NewTelemetry(dir string) (*Telemetry, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "transitions.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating transitions.csv: %w", err)
	}
	return &Telemetry{file: f}, nil
}

// Record queues a transition. Safe to call from the simulation loop.
func (t *Telemetry) Record(now float64, a *game.Ship, from, to game.AIState, reason string) {
	if t == nil {
		return
	}
	rec := &TransitionRecord{
		Time:    now,
		Agent:   a.Name,
		Faction: a.Faction,
		Profile: a.Profile,
		From:    from.String(),
		To:      to.String(),
		Target:  shipName(a.Target),
		Reason:  reason,
	}
	t.mu.Lock()
	t.pending = append(t.pending, rec)
	t.mu.Unlock()
}

// Flush writes queued transitions to disk.
func (t *Telemetry) Flush() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	batch := t.pending
	t.pending = nil

	if len(batch) == 0 {
		return nil
	}

	var err error
	if !t.headerWritten {
		err = gocsv.Marshal(batch, t.file)
		t.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(batch, t.file)
	}
	if err != nil {
		return fmt.Errorf("writing transitions: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (t *Telemetry) Close() error {
	if t == nil {
		return nil
	}
	err := t.Flush()
	t.mu.Lock()
	defer t.mu.Unlock()
	if cerr := t.file.Close(); err == nil {
		err = cerr
	}
	return err
}
