package game

import (
	"testing"

	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/outsidenote/Cradle-card-game/internal/game/rules"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSeed = 42

func card(t *testing.T, id string, faceUp bool) cards.Card {
	t.Helper()
	suit, rank, err := cards.ParseID(id)
	require.NoError(t, err)
	c := cards.New(suit, rank)
	c.FaceUp = faceUp
	return c
}

func up(t *testing.T, ids ...string) []cards.Card {
	t.Helper()
	out := make([]cards.Card, len(ids))
	for i, id := range ids {
		out[i] = card(t, id, true)
	}
	return out
}

func down(t *testing.T, ids ...string) []cards.Card {
	t.Helper()
	out := make([]cards.Card, len(ids))
	for i, id := range ids {
		out[i] = card(t, id, false)
	}
	return out
}

func concat(groups ...[]cards.Card) []cards.Card {
	var out []cards.Card
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// board describes a hand-built position. Every card not placed explicitly
// goes face-down into the central deck, aces into the display pile.
type board struct {
	villages    [rules.PlayerCount][]cards.Card
	row         []cards.Card
	deck        []cards.Card // draw end last; nil means "everything left over"
	current     int
	turn        int
	phase       rules.Phase
	options     []string
	optionOwner int
	bonus       *cards.Card
	autoSkipped bool
	selected    []string
}

func (b board) snapshot(t *testing.T) *Snapshot {
	t.Helper()

	placed := make(map[string]bool)
	mark := func(cs []cards.Card) {
		for _, c := range cs {
			require.False(t, placed[c.ID()], "card %s placed twice", c.ID())
			placed[c.ID()] = true
		}
	}
	mark(b.villages[0])
	mark(b.villages[1])
	mark(b.row)
	mark(b.deck)

	var aces, rest []cards.Card
	for _, c := range cards.FullDeck() {
		if placed[c.ID()] {
			continue
		}
		if c.Rank == cards.RankAce {
			c.FaceUp = true
			aces = append(aces, c)
			continue
		}
		rest = append(rest, c)
	}

	snap := &Snapshot{
		Version:              SnapshotVersion,
		GameID:               "test-game",
		PurchaseRow:          b.row,
		Aces:                 aces,
		CurrentPlayerIndex:   b.current,
		Turn:                 b.turn,
		Phase:                b.phase,
		SelectedCardIDs:      b.selected,
		BonusOptions:         b.options,
		BonusTargetPlayer:    b.optionOwner,
		PurchaseBonus:        b.bonus,
		WasAttackAutoSkipped: b.autoSkipped,
	}
	if b.deck != nil {
		snap.CentralDeck = b.deck
		snap.Discarded = rest
	} else {
		snap.CentralDeck = rest
	}
	if snap.Turn == 0 {
		snap.Turn = 1
	}
	if len(b.options) == 0 {
		snap.BonusTargetPlayer = (b.current + 1) % rules.PlayerCount
	}
	for i := range snap.Players {
		snap.Players[i] = PlayerSnapshot{ID: i + 1, Name: DefaultPlayerNames[i], Village: b.villages[i]}
	}
	require.NoError(t, snap.Validate())
	return snap
}

func newTestEngine(t *testing.T, gw DecisionGateway) *Engine {
	t.Helper()
	e, err := NewEngine(EngineConfig{Seed: testSeed, ReplayLimit: 100}, gw, zaptest.NewLogger(t))
	require.NoError(t, err)
	return e
}

// engineAt returns an engine restored to b, with the gateway's history cleared.
func engineAt(t *testing.T, b board, gw *RecordingGateway) *Engine {
	t.Helper()
	e := newTestEngine(t, gw)
	require.NoError(t, e.Restore(b.snapshot(t)))
	gw.Reset()
	return e
}

func villageOf(s *Snapshot, player int) map[string]cards.Card {
	out := make(map[string]cards.Card)
	for _, c := range s.Players[player].Village {
		out[c.ID()] = c
	}
	return out
}

func requireIntegrity(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.Snapshot().VerifyDeckIntegrity())
}

// weakenBoard is player 1 choosing which of player 2's face-up cards to weaken.
func weakenBoard(t *testing.T) board {
	return board{
		villages: [2][]cards.Card{
			concat(up(t, "5-of-Clubs"), down(t, "6-of-Spades")),
			concat(up(t, "3-of-Spades", "2-of-Hearts"), down(t, "4-of-Diamonds")),
		},
		row:         up(t, openRow...),
		phase:       rules.PhaseWeakenOpponent,
		options:     []string{"3-of-Spades", "2-of-Hearts"},
		optionOwner: 1,
	}
}

// heartBoard is player 1 picking a face-down card to recover after buying 4♥.
func heartBoard(t *testing.T) board {
	return board{
		villages: [2][]cards.Card{
			concat(up(t, "5-of-Clubs"), down(t, "6-of-Spades", "4-of-Hearts")),
			concat(up(t, "3-of-Spades"), down(t, "2-of-Clubs")),
		},
		row:         up(t, "6-of-Clubs", "9-of-Diamonds", "10-of-Spades", "K-of-Spades"),
		phase:       rules.PhaseHeartBonus,
		options:     []string{"6-of-Spades"},
		optionOwner: 0,
	}
}
