package rules

import (
	"fmt"
)

// Phase is the stage of a Cradle turn.
type Phase int

const (
	PhaseAttack Phase = iota
	PhaseWeakenOpponent
	PhasePurchase
	PhaseHeartBonus
)

var phaseNames = map[Phase]string{
	PhaseAttack:         "attack",
	PhaseWeakenOpponent: "weaken_opponent",
	PhasePurchase:       "purchase",
	PhaseHeartBonus:     "heart_bonus",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// PlayerCount is fixed: Cradle is a two-player game.
const PlayerCount = 2

// transitions lists the phase changes allowed within a single turn.
// Ending the turn is handled separately by EndTurn.
var transitions = map[Phase][]Phase{
	PhaseAttack:         {PhaseWeakenOpponent, PhasePurchase},
	PhaseWeakenOpponent: {PhasePurchase},
	PhasePurchase:       {PhaseHeartBonus},
	PhaseHeartBonus:     {},
}

// turnEnders are the phases from which a turn may end.
var turnEnders = map[Phase]bool{
	PhaseAttack:     true, // rest
	PhasePurchase:   true,
	PhaseHeartBonus: true,
}

// CanTransition reports whether from → to is a legal in-turn move.
func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanEndTurn reports whether a turn may end while in phase p.
func CanEndTurn(p Phase) bool {
	return turnEnders[p]
}

// TurnManager tracks the current player, the turn counter and the phase.
type TurnManager struct {
	currentPlayer int
	turnNumber    int
	phase         Phase
}

// NewTurnManager starts turn 1 in the attack phase for firstPlayer.
func NewTurnManager(firstPlayer int) *TurnManager {
	return &TurnManager{
		currentPlayer: firstPlayer % PlayerCount,
		turnNumber:    1,
		phase:         PhaseAttack,
	}
}

// RestoreTurnManager rebuilds a manager from persisted values.
func RestoreTurnManager(currentPlayer, turnNumber int, phase Phase) (*TurnManager, error) {
	if currentPlayer < 0 || currentPlayer >= PlayerCount {
		return nil, fmt.Errorf("current player index %d out of range", currentPlayer)
	}
	if turnNumber < 1 {
		return nil, fmt.Errorf("turn number must be at least 1, got %d", turnNumber)
	}
	if _, ok := phaseNames[phase]; !ok {
		return nil, fmt.Errorf("unknown phase %d", int(phase))
	}
	return &TurnManager{currentPlayer: currentPlayer, turnNumber: turnNumber, phase: phase}, nil
}

// CurrentPlayer returns the index of the player whose turn it is.
func (tm *TurnManager) CurrentPlayer() int {
	return tm.currentPlayer
}

// Opponent returns the index of the player waiting.
func (tm *TurnManager) Opponent() int {
	return (tm.currentPlayer + 1) % PlayerCount
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// Phase returns the active phase.
func (tm *TurnManager) Phase() Phase {
	return tm.phase
}

// Transition moves to another phase of the same turn.
func (tm *TurnManager) Transition(to Phase) error {
	if !CanTransition(tm.phase, to) {
		return fmt.Errorf("cannot move from %s to %s", tm.phase, to)
	}
	tm.phase = to
	return nil
}

// EndTurn passes control to the other player and re-enters the attack phase.
// The turn number increments when control wraps back to player 0.
func (tm *TurnManager) EndTurn() (int, error) {
	if !CanEndTurn(tm.phase) {
		return tm.currentPlayer, fmt.Errorf("cannot end turn during %s", tm.phase)
	}
	tm.currentPlayer = (tm.currentPlayer + 1) % PlayerCount
	if tm.currentPlayer == 0 {
		tm.turnNumber++
	}
	tm.phase = PhaseAttack
	return tm.currentPlayer, nil
}
