package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPileMoveOnly(t *testing.T) {
	src := NewPile(New(SuitClubs, RankTwo), New(SuitHearts, RankFive), New(SuitSpades, RankKing))
	dst := NewPile()

	c, ok := src.Remove("5-of-Hearts")
	require.True(t, ok)
	dst.Push(c)

	assert.Equal(t, []string{"2-of-Clubs", "K-of-Spades"}, src.IDs())
	assert.Equal(t, []string{"5-of-Hearts"}, dst.IDs())

	_, ok = src.Remove("5-of-Hearts")
	assert.False(t, ok)
}

func TestPilePopEndIsDrawEnd(t *testing.T) {
	p := NewPile(New(SuitClubs, RankFour), New(SuitClubs, RankFive))

	c, ok := p.PopEnd()
	require.True(t, ok)
	assert.Equal(t, "5-of-Clubs", c.ID())

	c, ok = p.PopEnd()
	require.True(t, ok)
	assert.Equal(t, "4-of-Clubs", c.ID())

	_, ok = p.PopEnd()
	assert.False(t, ok)
}

func TestPileRemoveAtShiftsSlots(t *testing.T) {
	p := NewPile(New(SuitClubs, RankFour), New(SuitClubs, RankFive), New(SuitClubs, RankSix))

	_, ok := p.RemoveAt(0)
	require.True(t, ok)
	first, _ := p.At(0)
	assert.Equal(t, "5-of-Clubs", first.ID())

	_, ok = p.RemoveAt(5)
	assert.False(t, ok)
	_, ok = p.RemoveAt(-1)
	assert.False(t, ok)
}

func TestPileCardsReturnsCopy(t *testing.T) {
	p := NewPile(New(SuitClubs, RankFour))
	out := p.Cards()
	out[0].FaceUp = true

	c, _ := p.At(0)
	assert.False(t, c.FaceUp)
}

func TestPileFaces(t *testing.T) {
	p := NewPile(New(SuitClubs, RankFour), New(SuitClubs, RankFive))
	require.True(t, p.SetFaceUp("4-of-Clubs", true))
	assert.False(t, p.SetFaceUp("4-of-Hearts", true))

	assert.Len(t, p.FaceUp(), 1)
	assert.Len(t, p.Filter(func(c Card) bool { return !c.FaceUp }), 1)

	p.SetAllFaceUp(true)
	assert.Len(t, p.FaceUp(), 2)
}

func TestPileMustRemovePanics(t *testing.T) {
	p := NewPile()
	assert.Panics(t, func() { p.MustRemove("4-of-Clubs") })
}
