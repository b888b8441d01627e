package market

import (
	"testing"

	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func c(s cards.Suit, r cards.Rank) cards.Card {
	card := cards.New(s, r)
	card.FaceUp = true
	return card
}

func TestSurcharge(t *testing.T) {
	tests := []struct {
		name     string
		payment  cards.Suit
		target   cards.Card
		expected int
	}{
		{"diamonds toward red", cards.SuitDiamonds, c(cards.SuitHearts, cards.RankFive), 2},
		{"diamonds toward black", cards.SuitDiamonds, c(cards.SuitSpades, cards.RankFive), 0},
		{"clubs toward black", cards.SuitClubs, c(cards.SuitSpades, cards.RankFive), 2},
		{"clubs toward red", cards.SuitClubs, c(cards.SuitDiamonds, cards.RankFive), 0},
		{"hearts never", cards.SuitHearts, c(cards.SuitHearts, cards.RankFive), 0},
		{"spades never", cards.SuitSpades, c(cards.SuitClubs, cards.RankFive), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Surcharge(tt.payment, tt.target))
		})
	}
}

func TestIsSuitAdjacent(t *testing.T) {
	row := []cards.Card{
		c(cards.SuitClubs, cards.RankFive),
		c(cards.SuitClubs, cards.RankSix),
		c(cards.SuitHearts, cards.RankFour),
		c(cards.SuitSpades, cards.RankSeven),
	}

	assert.True(t, IsSuitAdjacent(row, 0))
	assert.True(t, IsSuitAdjacent(row, 1))
	assert.False(t, IsSuitAdjacent(row, 2))
	assert.False(t, IsSuitAdjacent(row, 3), "last slot has no right neighbour")
	assert.False(t, IsSuitAdjacent(row, 9))
}

func TestMinCost(t *testing.T) {
	_, ok := MinCost(nil)
	assert.False(t, ok)

	minCost, ok := MinCost([]cards.Card{
		c(cards.SuitClubs, cards.RankKing),
		c(cards.SuitClubs, cards.RankFour),
		c(cards.SuitHearts, cards.RankSeven),
	})
	require.True(t, ok)
	assert.Equal(t, 4, minCost)
}

func TestCalculateQuoteUpgrade(t *testing.T) {
	row := []cards.Card{
		c(cards.SuitHearts, cards.RankSeven),
		c(cards.SuitClubs, cards.RankFive),
		c(cards.SuitSpades, cards.RankNine),
	}

	t.Run("lone matching card upgrades at its value", func(t *testing.T) {
		q, err := CalculateQuote(Request{
			Target:   row[1],
			RowIndex: 1,
			Row:      row,
			Payment:  []cards.Card{c(cards.SuitClubs, cards.RankSix)},
		})
		require.NoError(t, err)
		assert.Equal(t, ModeUpgrade, q.Mode)
		assert.Equal(t, "6-of-Clubs", q.UpgradeCardID)
		assert.Equal(t, 6, q.Total)
		assert.True(t, q.Sufficient)
		assert.Empty(t, q.FlipCardIDs)
		assert.Empty(t, q.ForcedStandardReason)
	})

	t.Run("rank two upgrades as three and others are surcharged", func(t *testing.T) {
		q, err := CalculateQuote(Request{
			Target:   row[1],
			RowIndex: 1,
			Row:      row,
			Payment: []cards.Card{
				c(cards.SuitClubs, cards.RankTwo),
				c(cards.SuitDiamonds, cards.RankThree),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, ModeUpgrade, q.Mode)
		// 3 (boosted two) + 3 (diamond toward black, no surcharge)
		assert.Equal(t, 6, q.Total)
		assert.Equal(t, []string{"3-of-Diamonds"}, q.FlipCardIDs)
	})

	t.Run("bonus counts toward upgrades", func(t *testing.T) {
		q, err := CalculateQuote(Request{
			Target:     row[0],
			RowIndex:   0,
			Row:        row,
			Payment:    []cards.Card{c(cards.SuitHearts, cards.RankThree)},
			BonusValue: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, ModeUpgrade, q.Mode)
		assert.Equal(t, 7, q.Total)
		assert.True(t, q.Sufficient)
	})

	t.Run("insufficient upgrade", func(t *testing.T) {
		q, err := CalculateQuote(Request{
			Target:   row[2],
			RowIndex: 2,
			Row:      row,
			Payment:  []cards.Card{c(cards.SuitSpades, cards.RankTwo)},
		})
		require.NoError(t, err)
		assert.Equal(t, ModeUpgrade, q.Mode)
		assert.False(t, q.Sufficient)
		assert.Equal(t, 6, q.Shortfall())
	})
}

func TestCalculateQuoteForcedStandard(t *testing.T) {
	row := []cards.Card{
		c(cards.SuitClubs, cards.RankFive),
		c(cards.SuitClubs, cards.RankSix),
		c(cards.SuitHearts, cards.RankFour),
	}

	t.Run("adjacent same suit forces standard", func(t *testing.T) {
		q, err := CalculateQuote(Request{
			Target:   row[0],
			RowIndex: 0,
			Row:      row,
			Payment:  []cards.Card{c(cards.SuitClubs, cards.RankThree)},
		})
		require.NoError(t, err)
		assert.Equal(t, ModeStandard, q.Mode)
		assert.Contains(t, q.ForcedStandardReason, "adjacent")
		// 3 + 2 clubs surcharge toward black
		assert.Equal(t, 5, q.Total)
		assert.True(t, q.Sufficient)
		assert.Equal(t, []string{"3-of-Clubs"}, q.FlipCardIDs)
	})

	t.Run("two matching cards force standard", func(t *testing.T) {
		q, err := CalculateQuote(Request{
			Target:   row[2],
			RowIndex: 2,
			Row:      row,
			Payment: []cards.Card{
				c(cards.SuitHearts, cards.RankTwo),
				c(cards.SuitHearts, cards.RankThree),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, ModeStandard, q.Mode)
		assert.Contains(t, q.ForcedStandardReason, "more than one")
		assert.Equal(t, 5, q.Total)
		assert.Empty(t, q.UpgradeCardID)
	})

	t.Run("no matching cards needs no notice", func(t *testing.T) {
		q, err := CalculateQuote(Request{
			Target:   row[2],
			RowIndex: 2,
			Row:      row,
			Payment:  []cards.Card{c(cards.SuitDiamonds, cards.RankTwo)},
		})
		require.NoError(t, err)
		assert.Equal(t, ModeStandard, q.Mode)
		assert.Empty(t, q.ForcedStandardReason)
		// 2 + 2 diamonds surcharge toward red
		assert.Equal(t, 4, q.Total)
		assert.True(t, q.Sufficient)
	})
}

func TestCalculateQuoteRejectsBadRequests(t *testing.T) {
	row := []cards.Card{c(cards.SuitClubs, cards.RankFive)}

	_, err := CalculateQuote(Request{Target: row[0], RowIndex: 0, Row: row})
	assert.Error(t, err, "empty payment")

	_, err = CalculateQuote(Request{Target: row[0], RowIndex: 3, Row: row, Payment: row})
	assert.Error(t, err, "index out of range")

	_, err = CalculateQuote(Request{Target: c(cards.SuitHearts, cards.RankFive), RowIndex: 0, Row: row, Payment: row})
	assert.Error(t, err, "target not in slot")
}
