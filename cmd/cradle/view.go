package main

import (
	"github.com/outsidenote/Cradle-card-game/internal/game"
	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
)

// CardView is the JSON form of a card.
type CardView struct {
	ID     string `json:"id"`
	Suit   string `json:"suit"`
	Rank   string `json:"rank"`
	Value  int    `json:"value"`
	FaceUp bool   `json:"faceUp"`
}

// PlayerView is the JSON form of a player.
type PlayerView struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Village []CardView `json:"village"`
}

// BoardView is the JSON form of a snapshot.
type BoardView struct {
	GameID               string       `json:"gameId"`
	Turn                 int          `json:"turn"`
	Phase                string       `json:"phase"`
	CurrentPlayer        int          `json:"currentPlayer"`
	Players              []PlayerView `json:"players"`
	PurchaseRow          []CardView   `json:"purchaseRow"`
	DeckSize             int          `json:"deckSize"`
	Aces                 []CardView   `json:"aces"`
	Discarded            []CardView   `json:"discarded"`
	SelectedCardIDs      []string     `json:"selectedCardIds"`
	BonusOptions         []string     `json:"bonusOptions"`
	PurchaseBonus        *CardView    `json:"purchaseBonus,omitempty"`
	WasAttackAutoSkipped bool         `json:"wasAttackAutoSkipped"`
	Checksum             string       `json:"checksum"`
}

func newCardView(c cards.Card) CardView {
	return CardView{
		ID:     c.ID(),
		Suit:   c.Suit.String(),
		Rank:   c.Rank.String(),
		Value:  c.Value(),
		FaceUp: c.FaceUp,
	}
}

func newCardViews(cs []cards.Card) []CardView {
	views := make([]CardView, len(cs))
	for i, c := range cs {
		views[i] = newCardView(c)
	}
	return views
}

// The central deck is hidden; only its size is shown.
func newBoardView(snap *game.Snapshot) BoardView {
	view := BoardView{
		GameID:               snap.GameID,
		Turn:                 snap.Turn,
		Phase:                snap.Phase.String(),
		CurrentPlayer:        snap.CurrentPlayerIndex,
		PurchaseRow:          newCardViews(snap.PurchaseRow),
		DeckSize:             len(snap.CentralDeck),
		Aces:                 newCardViews(snap.Aces),
		Discarded:            newCardViews(snap.Discarded),
		SelectedCardIDs:      append([]string{}, snap.SelectedCardIDs...),
		BonusOptions:         append([]string{}, snap.BonusOptions...),
		WasAttackAutoSkipped: snap.WasAttackAutoSkipped,
		Checksum:             snap.Checksum(),
	}
	for _, p := range snap.Players {
		view.Players = append(view.Players, PlayerView{
			ID:      p.ID,
			Name:    p.Name,
			Village: newCardViews(p.Village),
		})
	}
	if snap.PurchaseBonus != nil {
		bonus := newCardView(*snap.PurchaseBonus)
		view.PurchaseBonus = &bonus
	}
	return view
}
