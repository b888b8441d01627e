// Package combat computes attack and defense power and decides attack outcomes.
package combat

import (
	"github.com/outsidenote/Cradle-card-game/internal/game/bonus"
	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
)

// AttackSuit is the only suit that may attack or defend.
const AttackSuit = cards.SuitSpades

// Result is the outcome of one attack.
type Result struct {
	AttackPower  int
	DefensePower int
	Success      bool
	// WeakenTargets are the defender's face-up card ids, offered to the
	// attacker after a successful attack.
	WeakenTargets []string
}

// CanAttackWith reports whether a village card may be nominated as an attacker.
func CanAttackWith(c cards.Card) bool {
	return c.FaceUp && c.Suit == AttackSuit
}

// Power sums the rank values of the attacking cards.
func Power(attacking []cards.Card) int {
	return cards.Sum(attacking)
}

// DefensePower sums the face-up Spades in a village.
func DefensePower(village []cards.Card) int {
	total := 0
	for _, c := range village {
		if CanAttackWith(c) {
			total += c.Value()
		}
	}
	return total
}

// Resolve compares attack against the defender's face-up Spades.
// Equal power is a failed attack.
func Resolve(attacking []cards.Card, defenderVillage []cards.Card) Result {
	res := Result{
		AttackPower:  Power(attacking),
		DefensePower: DefensePower(defenderVillage),
	}
	res.Success = res.AttackPower > res.DefensePower
	if res.Success {
		res.WeakenTargets = bonus.WeakenTargets(defenderVillage)
	}
	return res
}

// ShouldAutoSkip reports whether the attacker's face-up Spades fail to exceed
// the defender's, in which case the attack phase is not offered.
func ShouldAutoSkip(attackerVillage, defenderVillage []cards.Card) bool {
	return DefensePower(attackerVillage) <= DefensePower(defenderVillage)
}
