package game

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/outsidenote/Cradle-card-game/internal/game/bonus"
	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/outsidenote/Cradle-card-game/internal/game/combat"
	"github.com/outsidenote/Cradle-card-game/internal/game/market"
	"github.com/outsidenote/Cradle-card-game/internal/game/rules"
	"github.com/outsidenote/Cradle-card-game/internal/random"
	"go.uber.org/zap"
)

// StartingVillageSize is how many {2,3} cards each player starts with.
const StartingVillageSize = 4

// DefaultPlayerNames are used when EngineConfig leaves a name empty.
var DefaultPlayerNames = [rules.PlayerCount]string{"Player 1", "Player 2"}

// EngineConfig configures a new Engine.
type EngineConfig struct {
	// Seed drives every shuffle. Zero picks a random seed.
	Seed        uint64
	PlayerNames [rules.PlayerCount]string
	// ReplayLimit bounds the in-memory replay. Zero disables recording.
	ReplayLimit int
}

// Engine is the Cradle turn/phase state machine. It owns the game state and
// is the only thing that mutates it. All methods are safe for concurrent use;
// the gateway and event listeners are always called with the engine unlocked.
type Engine struct {
	mu sync.Mutex

	cfg      EngineConfig
	seed     uint64
	rng      *rand.Rand
	gateway  DecisionGateway
	logger   *zap.Logger
	events   *rules.EventBus
	recorder *ReplayRecorder

	state   *GameState
	turns   *rules.TurnManager
	turn    TurnState
	pending *PurchaseProposal
}

// outbox collects the side effects of a command. They are delivered after
// the engine lock is released, and only if the command succeeded.
type outbox struct {
	notices []Notice
	events  []rules.Event
}

func (o *outbox) notify(title, format string, args ...any) {
	o.notices = append(o.notices, Notice{Title: title, Message: fmt.Sprintf(format, args...)})
}

func (o *outbox) emit(evt rules.Event) {
	o.events = append(o.events, evt)
}

// NewEngine builds an engine and starts the first game. A nil gateway behaves
// like NopGateway; a nil logger discards output.
func NewEngine(cfg EngineConfig, gateway DecisionGateway, logger *zap.Logger) (*Engine, error) {
	if gateway == nil {
		gateway = NopGateway{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	for i, name := range cfg.PlayerNames {
		if name == "" {
			cfg.PlayerNames[i] = DefaultPlayerNames[i]
		}
	}

	if cfg.ReplayLimit < 0 {
		return nil, fmt.Errorf("replay limit must not be negative, got %d", cfg.ReplayLimit)
	}

	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return nil, fmt.Errorf("failed to seed engine: %w", err)
		}
	}

	e := &Engine{
		cfg:      cfg,
		seed:     seed,
		rng:      rand.New(rand.NewPCG(seed, seed)),
		gateway:  gateway,
		logger:   logger,
		events:   rules.NewEventBus(),
		recorder: NewReplayRecorder(cfg.ReplayLimit, logger),
	}
	e.Restart()
	return e, nil
}

// Events returns the bus the engine publishes to.
func (e *Engine) Events() *rules.EventBus {
	return e.events
}

// Replay returns the history of the current game, or nil when recording is
// disabled.
func (e *Engine) Replay() *Replay {
	return e.recorder.Replay()
}

// Seed returns the seed the engine shuffles with.
func (e *Engine) Seed() uint64 {
	return e.seed
}

// exec runs one command under the lock. On success the snapshot is recorded
// and the outbox is delivered; on failure nothing is delivered.
func (e *Engine) exec(command string, record bool, fn func(out *outbox) error) error {
	out := &outbox{}
	var fields []zap.Field

	err := func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		if err := fn(out); err != nil {
			fields = e.logFields()
			return err
		}
		if record && e.recorder.Enabled() {
			e.recorder.Record(e.snapshotLocked())
		}
		return nil
	}()
	if err != nil {
		fields = append(fields, zap.String("command", command), zap.String("code", string(CodeOf(err))), zap.Error(err))
		if CodeOf(err) == CodeEmptyTarget {
			e.logger.Error("bonus choice without options", fields...)
		} else {
			e.logger.Warn("command rejected", fields...)
		}
		return err
	}

	e.events.PublishBatch(out.events)
	for _, n := range out.notices {
		e.gateway.Notify(n.Title, n.Message)
	}
	return nil
}

func (e *Engine) logFields() []zap.Field {
	if e.state == nil {
		return nil
	}
	return []zap.Field{
		zap.String("game_id", e.state.GameID),
		zap.Int("player", e.state.CurrentPlayerIndex),
		zap.Int("turn", e.state.Turn),
		zap.String("phase", e.turns.Phase().String()),
	}
}

func (e *Engine) event(t rules.EventType) rules.Event {
	return rules.NewEvent(t, e.state.GameID, e.state.CurrentPlayerIndex)
}

// Restart discards the current game and deals a new one.
func (e *Engine) Restart() {
	_ = e.exec("restart", true, func(out *outbox) error {
		e.setupLocked(out)
		return nil
	})
}

func (e *Engine) setupLocked(out *outbox) {
	piles := cards.BuildDeck(e.rng)

	state := &GameState{
		GameID:      uuid.NewString(),
		PurchaseRow: cards.NewPile(),
		CentralDeck: cards.NewPile(),
		Aces:        piles.Aces,
		Discarded:   cards.NewPile(),
		Turn:        1,
	}
	state.Aces.SetAllFaceUp(true)

	for i := range state.Players {
		village := cards.NewPile()
		for n := 0; n < StartingVillageSize; n++ {
			c, ok := piles.TwosThrees.PopEnd()
			if !ok {
				panic("game: not enough twos and threes to deal")
			}
			c.FaceUp = true
			village.Push(c)
		}
		state.Players[i] = &Player{ID: i + 1, Name: e.cfg.PlayerNames[i], Village: village}
	}

	state.CentralDeck.Push(piles.TwosThrees.Cards()...)
	state.CentralDeck.Push(piles.FoursSixes.Cards()...)
	state.CentralDeck.Push(piles.SevensTens.Cards()...)
	state.CentralDeck.Push(piles.FaceCards.Cards()...)
	market.Deal(state.PurchaseRow, state.CentralDeck)

	first := firstPlayer(state.Players[0].Village, state.Players[1].Village)
	state.CurrentPlayerIndex = first

	e.state = state
	e.turns = rules.NewTurnManager(first)
	e.pending = nil
	e.recorder.Begin(state.GameID)

	e.logger.Info("game started",
		zap.String("game_id", state.GameID),
		zap.Int("first_player", first),
		zap.Uint64("seed", e.seed),
	)
	evt := e.event(rules.EventGameStarted)
	evt.Data = fmt.Sprintf("%s vs %s", state.Players[0].Name, state.Players[1].Name)
	out.emit(evt)

	e.beginTurnLocked(out)
}

// firstPlayer picks the village with more twos. Player 0 wins ties.
func firstPlayer(first, second *cards.Pile) int {
	if countTwos(second) > countTwos(first) {
		return 1
	}
	return 0
}

func countTwos(p *cards.Pile) int {
	return len(p.Filter(func(c cards.Card) bool { return c.Rank == cards.RankTwo }))
}

// beginTurnLocked resets the turn-local state and runs the auto-skip check.
func (e *Engine) beginTurnLocked(out *outbox) {
	e.turn = TurnState{BonusTargetPlayer: e.turns.Opponent()}

	e.logger.Info("turn started", e.logFields()...)
	out.emit(rules.NewEventWithAmount(rules.EventTurnStarted, e.state.GameID, e.state.CurrentPlayerIndex, e.state.Turn))

	cur, opp := e.state.Current(), e.state.Opponent()
	if !combat.ShouldAutoSkip(cur.Village.Cards(), opp.Village.Cards()) {
		return
	}

	own := combat.DefensePower(cur.Village.Cards())
	theirs := combat.DefensePower(opp.Village.Cards())
	e.turn.WasAttackAutoSkipped = true
	e.logger.Info("attack auto-skipped", append(e.logFields(), zap.Int("attack", own), zap.Int("defense", theirs))...)
	out.notify("Attack Skipped", "%s's total Spades rank (%d) is not greater than the opponent's (%d).", cur.Name, own, theirs)
	evt := e.event(rules.EventAttackAutoSkipped)
	evt.Amount = own
	out.emit(evt)

	e.enterPurchaseLocked(out)
}

func (e *Engine) transitionLocked(to rules.Phase, out *outbox) {
	from := e.turns.Phase()
	if err := e.turns.Transition(to); err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	evt := e.event(rules.EventPhaseChanged)
	evt.Data = to.String()
	out.emit(evt)
	e.logger.Debug("phase changed", append(e.logFields(), zap.String("from", from.String()))...)
}

// enterPurchaseLocked moves to the purchase phase and runs the auto-rest check.
func (e *Engine) enterPurchaseLocked(out *outbox) {
	e.transitionLocked(rules.PhasePurchase, out)

	if e.turn.WasAttackAutoSkipped {
		return
	}
	minCost, ok := market.MinCost(e.state.PurchaseRow.Cards())
	if !ok {
		e.logger.Warn("purchase row is empty; game cannot progress until restart", e.logFields()...)
		return
	}
	cur := e.state.Current()
	maxPayment := bonus.MaxPayment(cur.Village.Cards(), e.turn.PurchaseBonus)
	if maxPayment >= minCost {
		return
	}

	e.logger.Info("auto-rest", append(e.logFields(), zap.Int("max_payment", maxPayment), zap.Int("min_cost", minCost))...)
	out.notify("Auto-Rest", "%s has no available moves and automatically rests.", cur.Name)
	e.restLocked(out, true)
}

func (e *Engine) restLocked(out *outbox, auto bool) {
	cur := e.state.Current()
	cur.Village.SetAllFaceUp(true)

	evt := e.event(rules.EventPlayerRested)
	evt.Flag = auto
	out.emit(evt)
	if !auto {
		e.logger.Info("player rested", e.logFields()...)
	}
	e.endTurnLocked(out)
}

func (e *Engine) endTurnLocked(out *outbox) {
	next, err := e.turns.EndTurn()
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	e.state.CurrentPlayerIndex = next
	e.state.Turn = e.turns.TurnNumber()
	e.beginTurnLocked(out)
}

// requireLocked fails unless the phase is one of allowed and no purchase is
// awaiting confirmation.
func (e *Engine) requireLocked(command string, allowed ...rules.Phase) error {
	if e.pending != nil {
		return newRuleError(CodeIllegalTransition, "%s: a purchase is awaiting confirmation", command)
	}
	phase := e.turns.Phase()
	for _, p := range allowed {
		if p == phase {
			return nil
		}
	}
	return newRuleError(CodeIllegalTransition, "%s is not allowed during %s", command, phase)
}

// ToggleCardSelection selects or deselects one of the current player's
// face-up cards. During the attack phase only Spades may be selected.
// It reports whether the card is selected afterwards.
func (e *Engine) ToggleCardSelection(cardID string) (bool, error) {
	var selected bool
	err := e.exec("toggle_selection", true, func(out *outbox) error {
		if err := e.requireLocked("select", rules.PhaseAttack, rules.PhasePurchase); err != nil {
			return err
		}
		c, ok := e.state.Current().Village.Find(cardID)
		if !ok {
			return newRuleError(CodeInvalidSelection, "%s is not in your village", cardID)
		}
		if !c.FaceUp {
			return newRuleError(CodeInvalidSelection, "%s is face-down", cardID)
		}
		if e.turns.Phase() == rules.PhaseAttack && c.Suit != combat.AttackSuit {
			return newRuleError(CodeInvalidSelection, "only %s can attack", combat.AttackSuit)
		}
		selected = e.turn.toggle(cardID)
		e.logger.Debug("selection toggled", append(e.logFields(), zap.String("card_id", cardID), zap.Bool("selected", selected))...)
		return nil
	})
	return selected, err
}

// selectedCardsLocked resolves the selection against the current village.
func (e *Engine) selectedCardsLocked(keep func(cards.Card) bool, why string) ([]cards.Card, error) {
	village := e.state.Current().Village
	selected := make([]cards.Card, 0, len(e.turn.SelectedCardIDs))
	for _, id := range e.turn.SelectedCardIDs {
		c, ok := village.Find(id)
		if !ok || !keep(c) {
			return nil, newRuleError(CodeInvalidSelection, "%s %s", id, why)
		}
		selected = append(selected, c)
	}
	return selected, nil
}

// Attack resolves an attack with the selected Spades.
func (e *Engine) Attack() (*combat.Result, error) {
	var result combat.Result
	err := e.exec("attack", true, func(out *outbox) error {
		if err := e.requireLocked("attack", rules.PhaseAttack); err != nil {
			return err
		}
		if len(e.turn.SelectedCardIDs) == 0 {
			return newRuleError(CodeNoSelection, "select at least one face-up %s to attack", combat.AttackSuit)
		}
		attacking, err := e.selectedCardsLocked(combat.CanAttackWith, "cannot attack")
		if err != nil {
			return err
		}

		cur, opp := e.state.Current(), e.state.Opponent()
		result = combat.Resolve(attacking, opp.Village.Cards())
		e.turn.SelectedCardIDs = nil

		evt := e.event(rules.EventAttackResolved)
		evt.Amount = result.AttackPower
		evt.Flag = result.Success
		out.emit(evt)
		e.logger.Info("attack resolved", append(e.logFields(),
			zap.Int("attack", result.AttackPower),
			zap.Int("defense", result.DefensePower),
			zap.Bool("success", result.Success),
		)...)

		if !result.Success {
			out.notify("Attack Failed", "The opponent's defense was too strong. Moving to purchase phase.")
			e.enterPurchaseLocked(out)
			return nil
		}

		for _, c := range attacking {
			cur.Village.SetFaceUp(c.ID(), false)
		}
		if len(result.WeakenTargets) == 0 {
			out.notify("Attack Succeeded!", "The opponent has no face-up cards to weaken. Moving to purchase phase.")
			e.enterPurchaseLocked(out)
			return nil
		}

		e.turn.BonusOptions = append([]string(nil), result.WeakenTargets...)
		e.turn.BonusTargetPlayer = e.turns.Opponent()
		out.notify("Attack Succeeded!", "Select an opponent's face-up card to weaken and gain its power for your purchase.")
		e.transitionLocked(rules.PhaseWeakenOpponent, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SkipAttack moves straight to the purchase phase.
func (e *Engine) SkipAttack() error {
	return e.exec("skip_attack", true, func(out *outbox) error {
		if err := e.requireLocked("skip attack", rules.PhaseAttack); err != nil {
			return err
		}
		e.turn.SelectedCardIDs = nil
		out.emit(e.event(rules.EventAttackSkipped))
		e.enterPurchaseLocked(out)
		return nil
	})
}

// Rest turns every card of the current player's village face-up and ends
// the turn.
func (e *Engine) Rest() error {
	return e.exec("rest", true, func(out *outbox) error {
		if err := e.requireLocked("rest", rules.PhaseAttack, rules.PhasePurchase); err != nil {
			return err
		}
		e.restLocked(out, false)
		return nil
	})
}

// checkOptionLocked validates a bonus choice.
func (e *Engine) checkOptionLocked(command string, phase rules.Phase, cardID string) error {
	if err := e.requireLocked(command, phase); err != nil {
		return err
	}
	if len(e.turn.BonusOptions) == 0 {
		return newRuleError(CodeEmptyTarget, "%s has no cards to choose from", phase)
	}
	if !bonus.Contains(e.turn.BonusOptions, cardID) {
		return newRuleError(CodeInvalidSelection, "%s is not one of the offered cards", cardID)
	}
	return nil
}

// ChooseWeakenTarget flips one of the offered opponent cards face-down and
// keeps it as the purchase bonus for the rest of the turn.
func (e *Engine) ChooseWeakenTarget(cardID string) error {
	return e.exec("weaken", true, func(out *outbox) error {
		if err := e.checkOptionLocked("weaken", rules.PhaseWeakenOpponent, cardID); err != nil {
			return err
		}
		village := e.state.Players[e.turn.BonusTargetPlayer].Village
		if !village.SetFaceUp(cardID, false) {
			panic(fmt.Sprintf("game: weaken target %s not in village of player %d", cardID, e.turn.BonusTargetPlayer))
		}
		weakened, _ := village.Find(cardID)
		e.turn.PurchaseBonus = &weakened
		e.turn.BonusOptions = nil

		evt := e.event(rules.EventCardWeakened)
		evt.CardID = cardID
		evt.Amount = weakened.Value()
		out.emit(evt)
		e.logger.Info("card weakened", append(e.logFields(), zap.String("card_id", cardID))...)
		out.notify("Bonus Gained!", "You gained the power of the %s for this purchase phase.", cardName(weakened))

		e.enterPurchaseLocked(out)
		return nil
	})
}

// ChooseHeartBonusTarget flips one of the offered face-down cards back up and
// ends the turn.
func (e *Engine) ChooseHeartBonusTarget(cardID string) error {
	return e.exec("heart_bonus", true, func(out *outbox) error {
		if err := e.checkOptionLocked("recover", rules.PhaseHeartBonus, cardID); err != nil {
			return err
		}
		if !e.state.Current().Village.SetFaceUp(cardID, true) {
			panic(fmt.Sprintf("game: recovery target %s not in village", cardID))
		}
		out.emit(rules.NewCardEvent(rules.EventCardRecovered, e.state.GameID, e.state.CurrentPlayerIndex, cardID))
		e.logger.Info("card recovered", append(e.logFields(), zap.String("card_id", cardID))...)

		e.endTurnLocked(out)
		return nil
	})
}

// Restore replaces the running game with a snapshot. The snapshot must pass
// Validate; nothing is re-checked for auto-progression.
func (e *Engine) Restore(snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return e.exec("restore", true, func(out *outbox) error {
		turns, err := rules.RestoreTurnManager(snap.CurrentPlayerIndex, snap.Turn, snap.Phase)
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		e.state = snap.gameState()
		e.turns = turns
		e.turn = snap.turnState()
		e.pending = nil
		e.recorder.Begin(snap.GameID)

		out.emit(e.event(rules.EventGameRestored))
		e.logger.Info("game restored", e.logFields()...)
		return nil
	})
}

func (e *Engine) snapshotLocked() *Snapshot {
	return newSnapshot(e.state, e.turns.Phase(), &e.turn)
}

// Snapshot returns a deep copy of the board and turn-local state.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// GameID returns the id of the running game.
func (e *Engine) GameID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.GameID
}

// Phase returns the active phase.
func (e *Engine) Phase() rules.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.turns.Phase()
}

// SelectedCardIDs returns the current selection in selection order.
func (e *Engine) SelectedCardIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.turn.SelectedCardIDs...)
}

// BonusOptions returns the card ids offered by weaken_opponent or heart_bonus.
func (e *Engine) BonusOptions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.turn.BonusOptions...)
}

// PurchaseBonus returns a copy of the weakened card, or nil.
func (e *Engine) PurchaseBonus() *cards.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.turn.PurchaseBonus == nil {
		return nil
	}
	b := *e.turn.PurchaseBonus
	return &b
}

// WasAttackAutoSkipped reports whether this turn's attack was skipped for
// lack of Spades.
func (e *Engine) WasAttackAutoSkipped() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.turn.WasAttackAutoSkipped
}

// PendingPurchase returns the proposal awaiting commit or abandonment.
func (e *Engine) PendingPurchase() *PurchaseProposal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

func cardName(c cards.Card) string {
	return c.Rank.String() + " of " + c.Suit.String()
}
