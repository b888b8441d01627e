package cards

import "math/rand/v2"

// DeckSize is the number of distinct cards in play.
const DeckSize = 52

// Tier identifies one of the rank-tier piles the deck is split into.
type Tier int

const (
	TierTwosThrees Tier = iota
	TierFoursSixes
	TierSevensTens
	TierFaceCards
	TierAces
)

// TierOf returns the tier a rank belongs to.
func TierOf(r Rank) Tier {
	switch r {
	case RankTwo, RankThree:
		return TierTwosThrees
	case RankFour, RankFive, RankSix:
		return TierFoursSixes
	case RankSeven, RankEight, RankNine, RankTen:
		return TierSevensTens
	case RankJack, RankQueen, RankKing:
		return TierFaceCards
	default:
		return TierAces
	}
}

// Piles is the full deck partitioned by rank tier.
type Piles struct {
	TwosThrees *Pile
	FoursSixes *Pile
	SevensTens *Pile
	FaceCards  *Pile
	Aces       *Pile
}

// Pile returns the pile for a tier.
func (p *Piles) Pile(t Tier) *Pile {
	switch t {
	case TierTwosThrees:
		return p.TwosThrees
	case TierFoursSixes:
		return p.FoursSixes
	case TierSevensTens:
		return p.SevensTens
	case TierFaceCards:
		return p.FaceCards
	default:
		return p.Aces
	}
}

// FullDeck returns all 52 cards, face-down, ordered by suit then rank.
func FullDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits() {
		for _, r := range Ranks() {
			deck = append(deck, New(s, r))
		}
	}
	return deck
}

// BuildDeck creates the 52-card deck split into its five tiers, each shuffled
// independently with rng.
func BuildDeck(rng *rand.Rand) *Piles {
	piles := &Piles{
		TwosThrees: NewPile(),
		FoursSixes: NewPile(),
		SevensTens: NewPile(),
		FaceCards:  NewPile(),
		Aces:       NewPile(),
	}
	for _, c := range FullDeck() {
		piles.Pile(TierOf(c.Rank)).Push(c)
	}
	for _, t := range []Tier{TierTwosThrees, TierFoursSixes, TierSevensTens, TierFaceCards, TierAces} {
		Shuffle(piles.Pile(t), rng)
	}
	return piles
}

// Shuffle permutes the pile uniformly at random.
func Shuffle(p *Pile, rng *rand.Rand) {
	rng.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}
