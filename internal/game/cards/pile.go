package cards

import (
	"fmt"
	"sort"
)

// Pile is an ordered container of cards. A card belongs to exactly one pile;
// moving it means removing it from one pile and pushing it onto another.
// The draw end of a pile is its last element.
type Pile struct {
	cards []Card
}

// NewPile builds a pile that takes ownership of the given cards.
func NewPile(cs ...Card) *Pile {
	p := &Pile{cards: make([]Card, 0, len(cs))}
	p.cards = append(p.cards, cs...)
	return p
}

// Len returns the number of cards in the pile.
func (p *Pile) Len() int {
	return len(p.cards)
}

// Cards returns a copy of the pile contents in order.
func (p *Pile) Cards() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// At returns the card in slot i.
func (p *Pile) At(i int) (Card, bool) {
	if i < 0 || i >= len(p.cards) {
		return Card{}, false
	}
	return p.cards[i], true
}

// IDs returns the card identifiers in order.
func (p *Pile) IDs() []string {
	ids := make([]string, len(p.cards))
	for i, c := range p.cards {
		ids[i] = c.ID()
	}
	return ids
}

// Push appends cards at the draw end.
func (p *Pile) Push(cs ...Card) {
	p.cards = append(p.cards, cs...)
}

// PopEnd removes and returns the card at the draw end.
func (p *Pile) PopEnd() (Card, bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	last := len(p.cards) - 1
	c := p.cards[last]
	p.cards = p.cards[:last]
	return c, true
}

// Index returns the slot of the card with the given id, or -1.
func (p *Pile) Index(id string) int {
	for i, c := range p.cards {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

// Find returns the card with the given id.
func (p *Pile) Find(id string) (Card, bool) {
	if i := p.Index(id); i >= 0 {
		return p.cards[i], true
	}
	return Card{}, false
}

// Contains reports whether the pile holds the card.
func (p *Pile) Contains(id string) bool {
	return p.Index(id) >= 0
}

// RemoveAt removes the card in slot i; later slots shift down by one.
func (p *Pile) RemoveAt(i int) (Card, bool) {
	if i < 0 || i >= len(p.cards) {
		return Card{}, false
	}
	c := p.cards[i]
	p.cards = append(p.cards[:i], p.cards[i+1:]...)
	return c, true
}

// Remove removes the card with the given id.
func (p *Pile) Remove(id string) (Card, bool) {
	return p.RemoveAt(p.Index(id))
}

// MustRemove removes the card with the given id and panics when the pile does
// not hold it. Callers use it only for cards they have already located.
func (p *Pile) MustRemove(id string) Card {
	c, ok := p.Remove(id)
	if !ok {
		panic(fmt.Sprintf("cards: card %s not in pile", id))
	}
	return c
}

// SetFaceUp sets the face of the card with the given id.
func (p *Pile) SetFaceUp(id string, faceUp bool) bool {
	i := p.Index(id)
	if i < 0 {
		return false
	}
	p.cards[i].FaceUp = faceUp
	return true
}

// SetAllFaceUp sets the face of every card in the pile.
func (p *Pile) SetAllFaceUp(faceUp bool) {
	for i := range p.cards {
		p.cards[i].FaceUp = faceUp
	}
}

// Filter returns copies of the cards matching keep, in pile order.
func (p *Pile) Filter(keep func(Card) bool) []Card {
	var out []Card
	for _, c := range p.cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// FaceUp returns the face-up cards.
func (p *Pile) FaceUp() []Card {
	return p.Filter(func(c Card) bool { return c.FaceUp })
}

// SortForDisplay orders cards by suit (Clubs, Diamonds, Hearts, Spades) and
// then by descending rank. It sorts in place.
func SortForDisplay(cs []Card) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Suit != cs[j].Suit {
			return cs[i].Suit < cs[j].Suit
		}
		return cs[i].Rank > cs[j].Rank
	})
}
