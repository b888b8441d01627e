// Package watchers observes engine events and keeps running tallies.
package watchers

import (
	"sync"

	"github.com/outsidenote/Cradle-card-game/internal/game/rules"
)

// PlayerStats is what a StatsWatcher has counted for one seat.
type PlayerStats struct {
	Attacks            int
	SuccessfulAttacks  int
	AutoSkippedAttacks int
	CardsWeakened      int
	Purchases          int
	Upgrades           int
	Spent              int // sum of payment totals
	Rests              int
	AutoRests          int
	CardsRecovered     int
}

// StatsWatcher tallies per-player statistics for the current game. It resets
// itself whenever a new game starts or one is restored.
type StatsWatcher struct {
	mu      sync.Mutex
	gameID  string
	players [rules.PlayerCount]PlayerStats
	turns   int
}

// NewStatsWatcher creates an empty watcher.
func NewStatsWatcher() *StatsWatcher {
	return &StatsWatcher{}
}

// Attach subscribes the watcher to every event on the bus and returns the
// subscription handle.
func (w *StatsWatcher) Attach(bus *rules.EventBus) int {
	return bus.Subscribe(w.Watch)
}

// Watch implements rules.Listener.
func (w *StatsWatcher) Watch(event rules.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch event.Type {
	case rules.EventGameStarted, rules.EventGameRestored:
		w.reset(event.GameID)
		return
	}
	if w.gameID == "" {
		// attached mid-game
		w.gameID = event.GameID
	}
	if event.GameID != w.gameID {
		return
	}
	if event.Player < 0 || event.Player >= rules.PlayerCount {
		return
	}

	stats := &w.players[event.Player]
	switch event.Type {
	case rules.EventTurnStarted:
		w.turns++
	case rules.EventAttackResolved:
		stats.Attacks++
		if event.Flag {
			stats.SuccessfulAttacks++
		}
	case rules.EventAttackAutoSkipped:
		stats.AutoSkippedAttacks++
	case rules.EventCardWeakened:
		stats.CardsWeakened++
	case rules.EventCardPurchased:
		stats.Purchases++
		stats.Spent += event.Amount
		if event.Data == "upgrade" {
			stats.Upgrades++
		}
	case rules.EventPlayerRested:
		stats.Rests++
		if event.Flag {
			stats.AutoRests++
		}
	case rules.EventCardRecovered:
		stats.CardsRecovered++
	}
}

func (w *StatsWatcher) reset(gameID string) {
	w.gameID = gameID
	w.players = [rules.PlayerCount]PlayerStats{}
	w.turns = 0
}

// GameID returns the game being counted.
func (w *StatsWatcher) GameID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gameID
}

// Player returns a copy of one player's tallies.
func (w *StatsWatcher) Player(index int) PlayerStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= rules.PlayerCount {
		return PlayerStats{}
	}
	return w.players[index]
}

// TurnsStarted counts player turns begun since the game started.
func (w *StatsWatcher) TurnsStarted() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.turns
}
