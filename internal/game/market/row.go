package market

import (
	"fmt"

	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
)

// RowSize is the number of slots in a full purchase row.
const RowSize = 4

// Refill is the outcome of taking a card from the row.
type Refill struct {
	Taken cards.Card
	Drawn *cards.Card // nil when the central deck was empty
}

// TakeAndRefill removes the card in slot i (later slots shift down) and, if
// the deck is not empty, appends its draw-end card face-up to the row end.
func TakeAndRefill(row, deck *cards.Pile, i int) (Refill, error) {
	taken, ok := row.RemoveAt(i)
	if !ok {
		return Refill{}, fmt.Errorf("row index %d out of range", i)
	}
	res := Refill{Taken: taken}
	if next, ok := deck.PopEnd(); ok {
		next.FaceUp = true
		row.Push(next)
		res.Drawn = &next
	}
	return res, nil
}

// Deal moves up to RowSize cards face-up from the deck's draw end into the row.
func Deal(row, deck *cards.Pile) int {
	dealt := 0
	for row.Len() < RowSize {
		c, ok := deck.PopEnd()
		if !ok {
			break
		}
		c.FaceUp = true
		row.Push(c)
		dealt++
	}
	return dealt
}
