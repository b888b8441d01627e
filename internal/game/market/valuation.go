// Package market values purchases from the shared purchase row.
package market

import (
	"fmt"

	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
)

const (
	// SurchargeBonus is added per payment card whose suit matches the
	// purchased card's colour rule.
	SurchargeBonus = 2
	// UpgradeTwoValue is what a rank-2 card is worth when used to upgrade.
	UpgradeTwoValue = 3
)

// Mode is the kind of purchase the selection resolves to.
type Mode int

const (
	ModeStandard Mode = iota
	ModeUpgrade
)

func (m Mode) String() string {
	switch m {
	case ModeUpgrade:
		return "upgrade"
	default:
		return "standard"
	}
}

// Request describes one purchase attempt.
type Request struct {
	Target     cards.Card
	RowIndex   int
	Row        []cards.Card
	Payment    []cards.Card
	BonusValue int // value of the active purchase bonus for this target, 0 if none
}

// Quote is the outcome of valuing a Request. It never mutates anything.
type Quote struct {
	Mode       Mode
	Cost       int
	Total      int
	BonusValue int
	// UpgradeCardID is the matching-suit card discarded by an upgrade.
	UpgradeCardID string
	// FlipCardIDs are the payment cards turned face-down on commit.
	FlipCardIDs []string
	// PaymentIDs are all selected payment cards.
	PaymentIDs []string
	// ForcedStandardReason explains why a selection with matching-suit cards
	// could not be an upgrade. Empty when no notice is needed.
	ForcedStandardReason string
	Sufficient           bool
}

// Shortfall returns how much value is missing, or 0.
func (q *Quote) Shortfall() int {
	if q.Total >= q.Cost {
		return 0
	}
	return q.Cost - q.Total
}

// Surcharge returns the extra value a card contributes toward target:
// Diamonds toward a red card and Clubs toward a black card.
func Surcharge(payment cards.Suit, target cards.Card) int {
	switch {
	case payment == cards.SuitDiamonds && target.Color() == cards.ColorRed:
		return SurchargeBonus
	case payment == cards.SuitClubs && target.Color() == cards.ColorBlack:
		return SurchargeBonus
	default:
		return 0
	}
}

// PaymentValue is a payment card's contribution toward target, surcharge included.
func PaymentValue(payment cards.Card, target cards.Card) int {
	return payment.Value() + Surcharge(payment.Suit, target)
}

// IsSuitAdjacent reports whether a row neighbour of slot i shares the suit of
// the card in slot i.
func IsSuitAdjacent(row []cards.Card, i int) bool {
	if i < 0 || i >= len(row) {
		return false
	}
	suit := row[i].Suit
	if i > 0 && row[i-1].Suit == suit {
		return true
	}
	if i+1 < len(row) && row[i+1].Suit == suit {
		return true
	}
	return false
}

// MinCost returns the cheapest card in the row. ok is false for an empty row.
func MinCost(row []cards.Card) (minCost int, ok bool) {
	for i, c := range row {
		if i == 0 || c.Value() < minCost {
			minCost = c.Value()
		}
	}
	return minCost, len(row) > 0
}

// CalculateQuote values a purchase request, choosing between an upgrade and a
// standard purchase.
func CalculateQuote(req Request) (*Quote, error) {
	if len(req.Payment) == 0 {
		return nil, fmt.Errorf("no payment cards selected")
	}
	if req.RowIndex < 0 || req.RowIndex >= len(req.Row) {
		return nil, fmt.Errorf("row index %d out of range", req.RowIndex)
	}
	if req.Row[req.RowIndex].ID() != req.Target.ID() {
		return nil, fmt.Errorf("row slot %d holds %s, not %s", req.RowIndex, req.Row[req.RowIndex].ID(), req.Target.ID())
	}

	quote := &Quote{
		Cost:       req.Target.Value(),
		BonusValue: req.BonusValue,
		PaymentIDs: make([]string, 0, len(req.Payment)),
	}

	var matching []cards.Card
	for _, pc := range req.Payment {
		quote.PaymentIDs = append(quote.PaymentIDs, pc.ID())
		if pc.Suit == req.Target.Suit {
			matching = append(matching, pc)
		}
	}

	adjacent := IsSuitAdjacent(req.Row, req.RowIndex)

	if len(matching) == 1 && !adjacent {
		upgrade := matching[0]
		quote.Mode = ModeUpgrade
		quote.UpgradeCardID = upgrade.ID()

		total := upgrade.Value()
		if upgrade.Rank == cards.RankTwo {
			total = UpgradeTwoValue
		}
		for _, pc := range req.Payment {
			if pc.ID() == upgrade.ID() {
				continue
			}
			total += PaymentValue(pc, req.Target)
			quote.FlipCardIDs = append(quote.FlipCardIDs, pc.ID())
		}
		quote.Total = total + req.BonusValue
	} else {
		quote.Mode = ModeStandard
		switch {
		case len(matching) > 1:
			quote.ForcedStandardReason = "You cannot upgrade with more than one card of the matching suit. This will be a standard purchase."
		case len(matching) == 1 && adjacent:
			quote.ForcedStandardReason = fmt.Sprintf("You cannot upgrade a %s when it is adjacent to another %s. This will be a standard purchase.",
				req.Target.Suit, req.Target.Suit)
		}

		total := 0
		for _, pc := range req.Payment {
			total += PaymentValue(pc, req.Target)
			quote.FlipCardIDs = append(quote.FlipCardIDs, pc.ID())
		}
		quote.Total = total + req.BonusValue
	}

	quote.Sufficient = quote.Total >= quote.Cost
	return quote, nil
}
