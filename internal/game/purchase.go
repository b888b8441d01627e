package game

import (
	"fmt"

	"github.com/outsidenote/Cradle-card-game/internal/game/bonus"
	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/outsidenote/Cradle-card-game/internal/game/market"
	"github.com/outsidenote/Cradle-card-game/internal/game/rules"
	"go.uber.org/zap"
)

// PurchaseProposal is a validated, affordable purchase that has not been
// applied yet. While one is pending the engine accepts only CommitPurchase,
// AbandonPurchase and Restart.
type PurchaseProposal struct {
	GameID   string
	Player   int
	RowIndex int
	Target   cards.Card
	Quote    market.Quote
	// RequiresConfirmation is set for upgrades, which discard a card.
	RequiresConfirmation bool
}

// ConfirmMessage is the question put to the gateway for an upgrade.
func (p *PurchaseProposal) ConfirmMessage() string {
	return fmt.Sprintf("Upgrade with %s and pay with %d other card(s)?\n\nThe %s will be discarded.",
		idName(p.Quote.UpgradeCardID), len(p.Quote.FlipCardIDs), idName(p.Quote.UpgradeCardID))
}

func idName(id string) string {
	suit, rank, err := cards.ParseID(id)
	if err != nil {
		return id
	}
	return cardName(cards.New(suit, rank))
}

// PurchaseResult describes what a purchase did.
type PurchaseResult struct {
	Quote     market.Quote
	Committed bool
	Acquired  cards.Card
	// Drawn is the card that refilled the row, nil if the deck was empty.
	Drawn *cards.Card
	// HeartBonus is set when the purchase opened the heart_bonus phase.
	HeartBonus bool
}

// ProposePurchase values a purchase of the card in rowIndex paid with the
// current selection. It changes nothing on the board. An affordable proposal
// becomes pending and must be committed or abandoned.
func (e *Engine) ProposePurchase(rowIndex int) (*PurchaseProposal, error) {
	var proposal *PurchaseProposal
	err := e.exec("propose_purchase", false, func(out *outbox) error {
		if err := e.requireLocked("purchase", rules.PhasePurchase); err != nil {
			return err
		}
		if len(e.turn.SelectedCardIDs) == 0 {
			return newRuleError(CodeNoSelection, "Please select card(s) from your village to pay or a single card to upgrade.")
		}
		target, ok := e.state.PurchaseRow.At(rowIndex)
		if !ok {
			return newRuleError(CodeInvalidSelection, "row slot %d is empty", rowIndex)
		}
		payment, err := e.selectedCardsLocked(func(c cards.Card) bool { return c.FaceUp }, "cannot be used as payment")
		if err != nil {
			return err
		}

		quote, err := market.CalculateQuote(market.Request{
			Target:     target,
			RowIndex:   rowIndex,
			Row:        e.state.PurchaseRow.Cards(),
			Payment:    payment,
			BonusValue: bonus.PurchaseBonusValue(e.turn.PurchaseBonus, target),
		})
		if err != nil {
			return newRuleError(CodeInvalidSelection, "%v", err)
		}

		fields := append(e.logFields(),
			zap.String("card_id", target.ID()),
			zap.Int("row_index", rowIndex),
			zap.Int("cost", quote.Cost),
			zap.Int("total", quote.Total),
			zap.String("mode", quote.Mode.String()),
			zap.Int("shortfall", quote.Shortfall()),
		)
		e.logger.Debug("purchase quoted", fields...)

		if !quote.Sufficient {
			msg := fmt.Sprintf("Cost is %d, but you only offered %d (including bonus).", quote.Cost, quote.Total)
			if quote.ForcedStandardReason != "" {
				msg = quote.ForcedStandardReason + " " + msg
			}
			return newRuleError(CodeInsufficientValue, "%s", msg)
		}

		proposal = &PurchaseProposal{
			GameID:               e.state.GameID,
			Player:               e.state.CurrentPlayerIndex,
			RowIndex:             rowIndex,
			Target:               target,
			Quote:                *quote,
			RequiresConfirmation: quote.Mode == market.ModeUpgrade,
		}
		e.pending = proposal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// CommitPurchase applies a pending proposal.
func (e *Engine) CommitPurchase(p *PurchaseProposal) (*PurchaseResult, error) {
	var result *PurchaseResult
	err := e.exec("commit_purchase", true, func(out *outbox) error {
		if p == nil || p != e.pending {
			return newRuleError(CodeIllegalTransition, "no such pending purchase")
		}
		result = e.applyPurchaseLocked(p, out)
		return nil
	})
	return result, err
}

// AbandonPurchase drops a pending proposal. The board, selection and phase
// are left exactly as they were before ProposePurchase.
func (e *Engine) AbandonPurchase(p *PurchaseProposal) error {
	return e.exec("abandon_purchase", false, func(out *outbox) error {
		if p == nil || p != e.pending {
			return newRuleError(CodeIllegalTransition, "no such pending purchase")
		}
		e.pending = nil
		e.logger.Info("purchase abandoned", append(e.logFields(), zap.String("card_id", p.Target.ID()))...)
		return nil
	})
}

// Purchase runs the whole purchase flow: propose, announce a forced standard
// purchase, ask the gateway to confirm an upgrade, then commit or abandon.
// A declined upgrade returns a result with Committed unset and no error.
func (e *Engine) Purchase(rowIndex int) (*PurchaseResult, error) {
	p, err := e.ProposePurchase(rowIndex)
	if err != nil {
		return nil, err
	}

	if reason := p.Quote.ForcedStandardReason; reason != "" {
		e.gateway.Notify("Standard Purchase", reason)
	}
	if p.RequiresConfirmation && !e.gateway.Confirm("Confirm Upgrade", p.ConfirmMessage()) {
		if err := e.AbandonPurchase(p); err != nil {
			return nil, err
		}
		return &PurchaseResult{Quote: p.Quote}, nil
	}
	return e.CommitPurchase(p)
}

func (e *Engine) applyPurchaseLocked(p *PurchaseProposal, out *outbox) *PurchaseResult {
	village := e.state.Current().Village
	q := p.Quote

	if q.Mode == market.ModeUpgrade {
		discarded := village.MustRemove(q.UpgradeCardID)
		discarded.FaceUp = false
		e.state.Discarded.Push(discarded)
		out.emit(rules.NewCardEvent(rules.EventCardDiscarded, e.state.GameID, e.state.CurrentPlayerIndex, discarded.ID()))
	}
	for _, id := range q.FlipCardIDs {
		if !village.SetFaceUp(id, false) {
			panic(fmt.Sprintf("game: payment card %s not in village", id))
		}
	}

	refill, err := market.TakeAndRefill(e.state.PurchaseRow, e.state.CentralDeck, p.RowIndex)
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	acquired := refill.Taken
	acquired.FaceUp = false
	village.Push(acquired)

	e.turn.SelectedCardIDs = nil
	e.pending = nil

	evt := e.event(rules.EventCardPurchased)
	evt.CardID = acquired.ID()
	evt.Amount = q.Total
	evt.Data = q.Mode.String()
	out.emit(evt)
	if refill.Drawn != nil {
		out.emit(rules.NewCardEvent(rules.EventRowRefilled, e.state.GameID, e.state.CurrentPlayerIndex, refill.Drawn.ID()))
	}
	e.logger.Info("card purchased", append(e.logFields(),
		zap.String("card_id", acquired.ID()),
		zap.Int("row_index", p.RowIndex),
		zap.Int("cost", q.Cost),
		zap.Int("total", q.Total),
		zap.String("mode", q.Mode.String()),
	)...)

	result := &PurchaseResult{Quote: q, Committed: true, Acquired: acquired, Drawn: refill.Drawn}

	if bonus.TriggersRecovery(acquired) {
		targets := bonus.HeartRecoveryTargets(village.Cards(), acquired.ID(), q.PaymentIDs)
		if len(targets) > 0 {
			e.turn.BonusOptions = targets
			e.turn.BonusTargetPlayer = e.state.CurrentPlayerIndex
			e.turn.PurchaseBonus = nil
			out.notify("Hearts Bonus", "Select a face-down card to recover.")
			e.transitionLocked(rules.PhaseHeartBonus, out)
			result.HeartBonus = true
			return result
		}
	}

	e.endTurnLocked(out)
	return result
}
