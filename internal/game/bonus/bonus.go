// Package bonus implements the weaken-opponent and hearts-recovery bonuses.
package bonus

import (
	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/outsidenote/Cradle-card-game/internal/game/market"
)

// RecoverySuit is the suit whose purchase triggers a recovery.
const RecoverySuit = cards.SuitHearts

// WeakenTargets returns the ids of the defender's face-up cards.
func WeakenTargets(defenderVillage []cards.Card) []string {
	var ids []string
	for _, c := range defenderVillage {
		if c.FaceUp {
			ids = append(ids, c.ID())
		}
	}
	return ids
}

// PurchaseBonusValue is what the weakened card adds to a purchase of target,
// including the same suit surcharge ordinary payment cards get.
func PurchaseBonusValue(bonus *cards.Card, target cards.Card) int {
	if bonus == nil {
		return 0
	}
	return market.PaymentValue(*bonus, target)
}

// MaxPayment is the most a player could offer this turn: every face-up
// village card plus the bonus card's rank value.
func MaxPayment(village []cards.Card, bonus *cards.Card) int {
	total := cards.Value(bonus)
	for _, c := range village {
		if c.FaceUp {
			total += c.Value()
		}
	}
	return total
}

// TriggersRecovery reports whether acquiring c starts a hearts recovery.
func TriggersRecovery(c cards.Card) bool {
	return c.Suit == RecoverySuit
}

// HeartRecoveryTargets lists face-down village cards eligible to be flipped
// back up, excluding the card just acquired and the cards used to pay for it.
func HeartRecoveryTargets(village []cards.Card, acquiredID string, paymentIDs []string) []string {
	excluded := make(map[string]bool, len(paymentIDs)+1)
	excluded[acquiredID] = true
	for _, id := range paymentIDs {
		excluded[id] = true
	}

	var ids []string
	for _, c := range village {
		if !c.FaceUp && !excluded[c.ID()] {
			ids = append(ids, c.ID())
		}
	}
	return ids
}

// Contains reports whether id is one of the offered options.
func Contains(options []string, id string) bool {
	for _, opt := range options {
		if opt == id {
			return true
		}
	}
	return false
}
