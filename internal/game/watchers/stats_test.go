package watchers

import (
	"testing"

	"github.com/outsidenote/Cradle-card-game/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsWatcherCountsEvents(t *testing.T) {
	bus := rules.NewEventBus()
	w := NewStatsWatcher()
	handle := w.Attach(bus)
	require.GreaterOrEqual(t, handle, 0)

	attack := rules.NewEventWithAmount(rules.EventAttackResolved, "g1", 0, 9)
	attack.Flag = true
	upgrade := rules.NewCardEvent(rules.EventCardPurchased, "g1", 0, "5-of-Clubs")
	upgrade.Amount = 6
	upgrade.Data = "upgrade"
	standard := rules.NewCardEvent(rules.EventCardPurchased, "g1", 1, "K-of-Hearts")
	standard.Amount = 11
	standard.Data = "standard"
	autoRest := rules.NewEvent(rules.EventPlayerRested, "g1", 1)
	autoRest.Flag = true

	bus.PublishBatch([]rules.Event{
		rules.NewEvent(rules.EventGameStarted, "g1", 0),
		rules.NewEventWithAmount(rules.EventTurnStarted, "g1", 0, 1),
		attack,
		rules.NewCardEvent(rules.EventCardWeakened, "g1", 0, "3-of-Spades"),
		upgrade,
		rules.NewEventWithAmount(rules.EventTurnStarted, "g1", 1, 1),
		rules.NewEvent(rules.EventAttackAutoSkipped, "g1", 1),
		standard,
		rules.NewCardEvent(rules.EventCardRecovered, "g1", 1, "2-of-Clubs"),
		autoRest,
	})

	assert.Equal(t, "g1", w.GameID())
	assert.Equal(t, 2, w.TurnsStarted())
	assert.Equal(t, PlayerStats{
		Attacks:           1,
		SuccessfulAttacks: 1,
		CardsWeakened:     1,
		Purchases:         1,
		Upgrades:          1,
		Spent:             6,
	}, w.Player(0))
	assert.Equal(t, PlayerStats{
		AutoSkippedAttacks: 1,
		Purchases:          1,
		Spent:              11,
		Rests:              1,
		AutoRests:          1,
		CardsRecovered:     1,
	}, w.Player(1))
	assert.Equal(t, PlayerStats{}, w.Player(5))
}

func TestStatsWatcherResetsOnNewGame(t *testing.T) {
	w := NewStatsWatcher()
	w.Watch(rules.NewEventWithAmount(rules.EventAttackResolved, "g1", 0, 4))
	assert.Equal(t, "g1", w.GameID(), "adopts the first game it sees")
	assert.Equal(t, 1, w.Player(0).Attacks)

	w.Watch(rules.NewEvent(rules.EventGameStarted, "g2", 0))
	assert.Equal(t, "g2", w.GameID())
	assert.Equal(t, 0, w.Player(0).Attacks)

	w.Watch(rules.NewEventWithAmount(rules.EventAttackResolved, "g1", 0, 4))
	assert.Equal(t, 0, w.Player(0).Attacks, "events from other games are ignored")
}
