package rules

import "testing"

func TestTurnManagerStartsInAttack(t *testing.T) {
	tm := NewTurnManager(1)

	if tm.CurrentPlayer() != 1 {
		t.Fatalf("expected player 1 to start, got %d", tm.CurrentPlayer())
	}
	if tm.Opponent() != 0 {
		t.Fatalf("expected opponent 0, got %d", tm.Opponent())
	}
	if tm.TurnNumber() != 1 {
		t.Fatalf("expected turn 1, got %d", tm.TurnNumber())
	}
	if tm.Phase() != PhaseAttack {
		t.Fatalf("expected attack phase, got %s", tm.Phase())
	}
}

func TestTurnManagerEndTurnWrapsToPlayerZero(t *testing.T) {
	tm := NewTurnManager(0)

	expected := []struct {
		player int
		turn   int
	}{
		{1, 1},
		{0, 2},
		{1, 2},
		{0, 3},
	}

	for i, exp := range expected {
		if err := tm.Transition(PhasePurchase); err != nil {
			t.Fatalf("step %d: transition failed: %v", i, err)
		}
		next, err := tm.EndTurn()
		if err != nil {
			t.Fatalf("step %d: end turn failed: %v", i, err)
		}
		if next != exp.player || tm.CurrentPlayer() != exp.player {
			t.Fatalf("step %d: expected player %d, got %d", i, exp.player, tm.CurrentPlayer())
		}
		if tm.TurnNumber() != exp.turn {
			t.Fatalf("step %d: expected turn %d, got %d", i, exp.turn, tm.TurnNumber())
		}
		if tm.Phase() != PhaseAttack {
			t.Fatalf("step %d: expected new turn to start in attack, got %s", i, tm.Phase())
		}
	}
}

func TestTurnManagerSecondPlayerStartDoesNotSkipTurnIncrement(t *testing.T) {
	tm := NewTurnManager(1)

	if _, err := tm.EndTurn(); err != nil {
		t.Fatalf("end turn failed: %v", err)
	}
	if tm.CurrentPlayer() != 0 || tm.TurnNumber() != 2 {
		t.Fatalf("expected player 0 on turn 2, got player %d on turn %d", tm.CurrentPlayer(), tm.TurnNumber())
	}
}

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		allowed  bool
	}{
		{PhaseAttack, PhaseWeakenOpponent, true},
		{PhaseAttack, PhasePurchase, true},
		{PhaseAttack, PhaseHeartBonus, false},
		{PhaseWeakenOpponent, PhasePurchase, true},
		{PhaseWeakenOpponent, PhaseAttack, false},
		{PhasePurchase, PhaseHeartBonus, true},
		{PhasePurchase, PhaseAttack, false},
		{PhaseHeartBonus, PhasePurchase, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestEndTurnRejectedDuringWeaken(t *testing.T) {
	tm := NewTurnManager(0)
	if err := tm.Transition(PhaseWeakenOpponent); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if _, err := tm.EndTurn(); err == nil {
		t.Fatal("expected weaken phase to refuse ending the turn")
	}
	if tm.CurrentPlayer() != 0 || tm.Phase() != PhaseWeakenOpponent {
		t.Fatalf("rejected end turn must not change state")
	}
}

func TestRestoreTurnManager(t *testing.T) {
	tm, err := RestoreTurnManager(1, 4, PhasePurchase)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if tm.CurrentPlayer() != 1 || tm.TurnNumber() != 4 || tm.Phase() != PhasePurchase {
		t.Fatalf("unexpected restored state: %d/%d/%s", tm.CurrentPlayer(), tm.TurnNumber(), tm.Phase())
	}

	if _, err := RestoreTurnManager(2, 1, PhaseAttack); err == nil {
		t.Fatal("expected out-of-range player to fail")
	}
	if _, err := RestoreTurnManager(0, 0, PhaseAttack); err == nil {
		t.Fatal("expected turn 0 to fail")
	}
}

func TestPhaseNames(t *testing.T) {
	want := map[Phase]string{
		PhaseAttack:         "attack",
		PhaseWeakenOpponent: "weaken_opponent",
		PhasePurchase:       "purchase",
		PhaseHeartBonus:     "heart_bonus",
		Phase(9):            "PHASE_9",
	}
	for p, name := range want {
		if got := p.String(); got != name {
			t.Fatalf("expected %s, got %s", name, got)
		}
	}
}
