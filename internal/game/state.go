package game

import (
	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/outsidenote/Cradle-card-game/internal/game/rules"
)

// Player is one of the two seats.
type Player struct {
	ID      int // 1-based
	Name    string
	Village *cards.Pile
}

// GameState is the authoritative board. Every card of the deck is in exactly
// one of its piles.
type GameState struct {
	GameID      string
	Players     [rules.PlayerCount]*Player
	PurchaseRow *cards.Pile
	CentralDeck *cards.Pile
	Aces        *cards.Pile
	// Discarded holds cards that left the game through an upgrade.
	Discarded *cards.Pile

	CurrentPlayerIndex int
	Turn               int
}

// piles returns every container in a fixed order.
func (s *GameState) piles() []*cards.Pile {
	return []*cards.Pile{
		s.Players[0].Village,
		s.Players[1].Village,
		s.PurchaseRow,
		s.CentralDeck,
		s.Aces,
		s.Discarded,
	}
}

// Current returns the player whose turn it is.
func (s *GameState) Current() *Player {
	return s.Players[s.CurrentPlayerIndex]
}

// Opponent returns the waiting player.
func (s *GameState) Opponent() *Player {
	return s.Players[(s.CurrentPlayerIndex+1)%rules.PlayerCount]
}

// TurnState is the turn-local state. It is replaced wholesale at every turn
// start so nothing leaks from one turn into the next.
type TurnState struct {
	SelectedCardIDs []string
	// BonusOptions are the ids offered in weaken_opponent or heart_bonus.
	BonusOptions []string
	// BonusTargetPlayer is the index of the player whose village holds the
	// offered cards.
	BonusTargetPlayer int
	// PurchaseBonus is the weakened opponent card, if any.
	PurchaseBonus        *cards.Card
	WasAttackAutoSkipped bool
}

func (t *TurnState) isSelected(id string) bool {
	for _, sel := range t.SelectedCardIDs {
		if sel == id {
			return true
		}
	}
	return false
}

func (t *TurnState) toggle(id string) bool {
	if !t.isSelected(id) {
		t.SelectedCardIDs = append(t.SelectedCardIDs, id)
		return true
	}
	for i, sel := range t.SelectedCardIDs {
		if sel == id {
			t.SelectedCardIDs = append(t.SelectedCardIDs[:i], t.SelectedCardIDs[i+1:]...)
			break
		}
	}
	return false
}

func (t *TurnState) clone() TurnState {
	out := TurnState{
		SelectedCardIDs:      append([]string(nil), t.SelectedCardIDs...),
		BonusOptions:         append([]string(nil), t.BonusOptions...),
		BonusTargetPlayer:    t.BonusTargetPlayer,
		WasAttackAutoSkipped: t.WasAttackAutoSkipped,
	}
	if t.PurchaseBonus != nil {
		b := *t.PurchaseBonus
		out.PurchaseBonus = &b
	}
	return out
}
