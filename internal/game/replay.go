package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Replay is a bounded, in-memory sequence of snapshots, one per committed
// command. When the limit is reached the oldest snapshot is dropped.
type Replay struct {
	GameID       string
	States       []*Snapshot
	CurrentIndex int
	Limit        int // 0 means unbounded
	mu           sync.RWMutex
}

// NewReplay creates a replay for a game.
func NewReplay(gameID string, limit int) *Replay {
	return &Replay{
		GameID: gameID,
		States: make([]*Snapshot, 0),
		Limit:  limit,
	}
}

// RecordState appends a snapshot, evicting the oldest when full.
func (r *Replay) RecordState(snapshot *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.States = append(r.States, snapshot)
	if r.Limit > 0 && len(r.States) > r.Limit {
		drop := len(r.States) - r.Limit
		r.States = append(r.States[:0:0], r.States[drop:]...)
		r.CurrentIndex -= drop
		if r.CurrentIndex < 0 {
			r.CurrentIndex = 0
		}
	}
}

// Start rewinds to the first recorded state.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the state at the cursor and advances it.
func (r *Replay) Next() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.States) {
		state := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return state
	}
	return nil
}

// Previous steps the cursor back and returns that state.
func (r *Replay) Previous() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Skip moves the cursor by count states, clamped to the recorded range, and
// returns the state there.
func (r *Replay) Skip(count int) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	newIndex := r.CurrentIndex + count
	if newIndex >= len(r.States) {
		newIndex = len(r.States) - 1
	}
	if newIndex < 0 {
		newIndex = 0
	}

	r.CurrentIndex = newIndex
	if r.CurrentIndex < len(r.States) {
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Latest returns the most recent state, or nil when nothing was recorded.
func (r *Replay) Latest() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Size returns the number of recorded states.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.States)
}

// GetStateAt returns the state at a specific index.
func (r *Replay) GetStateAt(index int) *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.States) {
		return r.States[index]
	}
	return nil
}

type replayMetadata struct {
	GameID     string
	StateCount int
	Limit      int
}

// WriteTo streams the replay as gzip-compressed gob. Where the bytes go is the
// caller's business.
func (r *Replay) WriteTo(w io.Writer) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cw := &countingWriter{w: w}
	gz := gzip.NewWriter(cw)
	enc := gob.NewEncoder(gz)

	if err := enc.Encode(replayMetadata{GameID: r.GameID, StateCount: len(r.States), Limit: r.Limit}); err != nil {
		return cw.n, fmt.Errorf("failed to encode replay metadata: %w", err)
	}
	for i, state := range r.States {
		if err := enc.Encode(state); err != nil {
			return cw.n, fmt.Errorf("failed to encode state %d: %w", i, err)
		}
	}
	if err := gz.Close(); err != nil {
		return cw.n, fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return cw.n, nil
}

// ReadReplay parses a stream produced by WriteTo.
func ReadReplay(rd io.Reader) (*Replay, error) {
	gz, err := gzip.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip reader: %w", err)
	}
	defer gz.Close()

	dec := gob.NewDecoder(gz)
	var meta replayMetadata
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode replay metadata: %w", err)
	}

	replay := NewReplay(meta.GameID, meta.Limit)
	for i := 0; i < meta.StateCount; i++ {
		var state Snapshot
		if err := dec.Decode(&state); err != nil {
			return nil, fmt.Errorf("failed to decode state %d: %w", i, err)
		}
		replay.States = append(replay.States, &state)
	}
	return replay, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// ReplayRecorder owns the replay of the running game and swaps it out on
// restart.
type ReplayRecorder struct {
	limit  int
	replay *Replay
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewReplayRecorder returns a recorder. A limit of zero or less disables
// recording.
func NewReplayRecorder(limit int, logger *zap.Logger) *ReplayRecorder {
	return &ReplayRecorder{limit: limit, logger: logger}
}

// Enabled reports whether snapshots are kept.
func (rr *ReplayRecorder) Enabled() bool {
	return rr.limit > 0
}

// Begin starts a fresh replay for gameID.
func (rr *ReplayRecorder) Begin(gameID string) {
	if !rr.Enabled() {
		return
	}
	rr.mu.Lock()
	rr.replay = NewReplay(gameID, rr.limit)
	rr.mu.Unlock()

	if rr.logger != nil {
		rr.logger.Debug("started replay recording",
			zap.String("game_id", gameID),
			zap.Int("limit", rr.limit),
		)
	}
}

// Record appends a snapshot to the current replay.
func (rr *ReplayRecorder) Record(snapshot *Snapshot) {
	rr.mu.RLock()
	replay := rr.replay
	rr.mu.RUnlock()
	if replay == nil {
		return
	}
	replay.RecordState(snapshot)

	if rr.logger != nil {
		rr.logger.Debug("recorded replay state",
			zap.String("game_id", snapshot.GameID),
			zap.Int("state_count", replay.Size()),
		)
	}
}

// Replay returns the current replay, or nil when recording is disabled.
func (rr *ReplayRecorder) Replay() *Replay {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	return rr.replay
}
