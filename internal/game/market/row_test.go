package market

import (
	"testing"

	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeAndRefillAppendsToEnd(t *testing.T) {
	row := cards.NewPile(
		c(cards.SuitClubs, cards.RankFive),
		c(cards.SuitHearts, cards.RankSix),
		c(cards.SuitSpades, cards.RankSeven),
		c(cards.SuitDiamonds, cards.RankEight),
	)
	deck := cards.NewPile(cards.New(cards.SuitClubs, cards.RankKing), cards.New(cards.SuitClubs, cards.RankQueen))

	res, err := TakeAndRefill(row, deck, 1)
	require.NoError(t, err)

	assert.Equal(t, "6-of-Hearts", res.Taken.ID())
	require.NotNil(t, res.Drawn)
	assert.Equal(t, "Q-of-Clubs", res.Drawn.ID())
	assert.Equal(t, []string{"5-of-Clubs", "7-of-Spades", "8-of-Diamonds", "Q-of-Clubs"}, row.IDs())
	assert.Equal(t, 1, deck.Len())

	last, _ := row.At(3)
	assert.True(t, last.FaceUp)
}

func TestTakeAndRefillEmptyDeck(t *testing.T) {
	row := cards.NewPile(c(cards.SuitClubs, cards.RankFive), c(cards.SuitHearts, cards.RankSix))
	deck := cards.NewPile()

	res, err := TakeAndRefill(row, deck, 0)
	require.NoError(t, err)
	assert.Nil(t, res.Drawn)
	assert.Equal(t, []string{"6-of-Hearts"}, row.IDs())

	_, err = TakeAndRefill(row, deck, 4)
	assert.Error(t, err)
}

func TestDeal(t *testing.T) {
	row := cards.NewPile()
	deck := cards.NewPile(
		cards.New(cards.SuitClubs, cards.RankFour),
		cards.New(cards.SuitClubs, cards.RankFive),
		cards.New(cards.SuitClubs, cards.RankSix),
		cards.New(cards.SuitClubs, cards.RankSeven),
		cards.New(cards.SuitClubs, cards.RankEight),
	)

	assert.Equal(t, RowSize, Deal(row, deck))
	assert.Equal(t, []string{"8-of-Clubs", "7-of-Clubs", "6-of-Clubs", "5-of-Clubs"}, row.IDs())
	assert.Len(t, row.FaceUp(), RowSize)
	assert.Equal(t, 1, deck.Len())
}
