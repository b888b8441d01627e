package cards

import (
	"fmt"
	"strings"
)

// Suit is one of the four French suits.
type Suit int

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

var suitNames = map[Suit]string{
	SuitClubs:    "Clubs",
	SuitDiamonds: "Diamonds",
	SuitHearts:   "Hearts",
	SuitSpades:   "Spades",
}

var suitSymbols = map[Suit]string{
	SuitClubs:    "♣",
	SuitDiamonds: "♦",
	SuitHearts:   "♥",
	SuitSpades:   "♠",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SUIT_%d", int(s))
}

// Symbol returns the single-glyph suit symbol.
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// Color returns the suit colour.
func (s Suit) Color() Color {
	switch s {
	case SuitDiamonds, SuitHearts:
		return ColorRed
	default:
		return ColorBlack
	}
}

// Suits lists every suit in display order.
func Suits() []Suit {
	return []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}
}

// Color is the colour of a suit.
type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

// Rank is a card rank. The declaration order is the display order, so ranks
// compare with < for sorting (2 lowest, Ace highest).
type Rank int

const (
	RankTwo Rank = iota
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

var rankNames = map[Rank]string{
	RankTwo:   "2",
	RankThree: "3",
	RankFour:  "4",
	RankFive:  "5",
	RankSix:   "6",
	RankSeven: "7",
	RankEight: "8",
	RankNine:  "9",
	RankTen:   "10",
	RankJack:  "J",
	RankQueen: "Q",
	RankKing:  "K",
	RankAce:   "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RANK_%d", int(r))
}

// Ranks lists every rank from 2 to Ace.
func Ranks() []Rank {
	return []Rank{
		RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight,
		RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
	}
}

// Value returns the rank's point value: Ace is 1, number cards are literal
// and face cards are 10.
func (r Rank) Value() int {
	switch r {
	case RankAce:
		return 1
	case RankTwo:
		return 2
	case RankThree:
		return 3
	case RankFour:
		return 4
	case RankFive:
		return 5
	case RankSix:
		return 6
	case RankSeven:
		return 7
	case RankEight:
		return 8
	case RankNine:
		return 9
	case RankTen, RankJack, RankQueen, RankKing:
		return 10
	default:
		panic(fmt.Sprintf("cards: unknown rank %d", int(r)))
	}
}

// Card is a single playing card. Suit and Rank never change after the deck
// is built; only FaceUp does.
type Card struct {
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

// New returns a face-down card.
func New(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// ID is the stable identifier of the card, e.g. "5-of-Diamonds".
func (c Card) ID() string {
	return IDFor(c.Suit, c.Rank)
}

// IDFor builds the identifier for a suit and rank.
func IDFor(suit Suit, rank Rank) string {
	return rank.String() + "-of-" + suit.String()
}

// Value is the card's rank value.
func (c Card) Value() int {
	return c.Rank.Value()
}

// Color is the card's suit colour.
func (c Card) Color() Color {
	return c.Suit.Color()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Value returns the rank value of c, or 0 when c is nil.
func Value(c *Card) int {
	if c == nil {
		return 0
	}
	return c.Value()
}

// ParseID parses an identifier produced by Card.ID.
func ParseID(id string) (Suit, Rank, error) {
	rankPart, suitPart, ok := strings.Cut(id, "-of-")
	if !ok {
		return 0, 0, fmt.Errorf("malformed card id %q", id)
	}

	var (
		suit      Suit
		rank      Rank
		foundSuit bool
		foundRank bool
	)
	for s, name := range suitNames {
		if name == suitPart {
			suit, foundSuit = s, true
			break
		}
	}
	for r, name := range rankNames {
		if name == rankPart {
			rank, foundRank = r, true
			break
		}
	}
	if !foundSuit || !foundRank {
		return 0, 0, fmt.Errorf("unknown card id %q", id)
	}
	return suit, rank, nil
}

// Sum adds the rank values of the given cards.
func Sum(cs []Card) int {
	total := 0
	for _, c := range cs {
		total += c.Value()
	}
	return total
}
