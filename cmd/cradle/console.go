package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/outsidenote/Cradle-card-game/internal/game"
	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/outsidenote/Cradle-card-game/internal/game/rules"
	"github.com/outsidenote/Cradle-card-game/internal/game/watchers"
	"go.uber.org/zap"
)

// consoleGateway answers engine prompts on the session's terminal. Confirm
// reads from the same scanner as the command loop, so it must only be called
// from the goroutine running the session.
type consoleGateway struct {
	in  *bufio.Scanner
	out io.Writer
}

func (g *consoleGateway) Notify(title, message string) {
	fmt.Fprintf(g.out, "[%s] %s\n", title, message)
}

func (g *consoleGateway) Confirm(title, message string) bool {
	fmt.Fprintf(g.out, "[%s] %s [y/N] ", title, message)
	if !g.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(g.in.Text()))
	return answer == "y" || answer == "yes"
}

// session is one interactive game on a reader/writer pair.
type session struct {
	engine *game.Engine
	stats  *watchers.StatsWatcher
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

func newSession(r io.Reader, w io.Writer, cfg game.EngineConfig, logger *zap.Logger) (*session, error) {
	in := bufio.NewScanner(r)
	gw := &consoleGateway{in: in, out: w}

	engine, err := game.NewEngine(cfg, gw, logger)
	if err != nil {
		return nil, err
	}
	stats := watchers.NewStatsWatcher()
	stats.Attach(engine.Events())

	return &session{
		engine: engine,
		stats:  stats,
		in:     in,
		out:    w,
		logger: logger,
	}, nil
}

var errQuit = errors.New("quit")

// Run reads commands until quit or end of input.
func (s *session) Run() error {
	fmt.Fprintf(s.out, "Cradle (seed %d). Type 'help' for commands.\n", s.engine.Seed())
	s.printState()
	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		err := s.dispatch(strings.Fields(line))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *session) dispatch(args []string) error {
	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "help", "?":
		s.printHelp()
		return nil
	case "quit", "exit":
		return errQuit
	case "state", "show":
		s.printState()
		return nil
	case "json":
		return s.printJSON()
	case "stats":
		s.printStats()
		return nil
	case "restart":
		s.engine.Restart()
	case "select", "toggle":
		if len(rest) == 0 {
			return errors.New("usage: select <card-id>...")
		}
		for _, id := range rest {
			selected, err := s.engine.ToggleCardSelection(id)
			if err != nil {
				return err
			}
			if selected {
				fmt.Fprintf(s.out, "selected %s\n", id)
			} else {
				fmt.Fprintf(s.out, "deselected %s\n", id)
			}
		}
		return nil
	case "attack":
		res, err := s.engine.Attack()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "attack %d vs defense %d\n", res.AttackPower, res.DefensePower)
	case "skip":
		if err := s.engine.SkipAttack(); err != nil {
			return err
		}
	case "rest":
		if err := s.engine.Rest(); err != nil {
			return err
		}
	case "weaken":
		if len(rest) != 1 {
			return errors.New("usage: weaken <card-id>")
		}
		if err := s.engine.ChooseWeakenTarget(rest[0]); err != nil {
			return err
		}
	case "heart", "recover":
		if len(rest) != 1 {
			return errors.New("usage: heart <card-id>")
		}
		if err := s.engine.ChooseHeartBonusTarget(rest[0]); err != nil {
			return err
		}
	case "buy":
		if len(rest) != 1 {
			return errors.New("usage: buy <slot>")
		}
		slot, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("slot must be a number: %w", err)
		}
		res, err := s.engine.Purchase(slot - 1)
		if err != nil {
			return err
		}
		if !res.Committed {
			fmt.Fprintln(s.out, "purchase cancelled")
			return nil
		}
		fmt.Fprintf(s.out, "bought %s (%s, paid %d)\n", res.Acquired, res.Quote.Mode, res.Quote.Total)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	s.printState()
	return nil
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `Commands:
  state                 show the board
  json                  dump the board as JSON
  select <id>...        toggle village cards, e.g. select 5-of-Spades
  attack                attack with the selected Spades
  skip                  skip the attack and go to purchase
  rest                  flip your whole village face-up and end the turn
  weaken <id>           choose the opponent card to weaken
  buy <slot>            buy row slot 1-4 with the selected cards
  heart <id>            recover a face-down village card
  stats                 show per-player tallies
  restart               deal a new game
  quit                  leave
`)
}

func (s *session) printState() {
	snap := s.engine.Snapshot()
	fmt.Fprintf(s.out, "\nTurn %d, %s to play, phase %s\n",
		snap.Turn, snap.Players[snap.CurrentPlayerIndex].Name, snap.Phase)

	for i, p := range snap.Players {
		marker := " "
		if i == snap.CurrentPlayerIndex {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %-10s %s\n", marker, p.Name, formatVillage(p.Village, snap.SelectedCardIDs))
	}

	row := make([]string, len(snap.PurchaseRow))
	for i, c := range snap.PurchaseRow {
		row[i] = fmt.Sprintf("[%d] %s", i+1, c)
	}
	fmt.Fprintf(s.out, "  Row: %s  (deck %d, aces %d, discarded %d)\n",
		strings.Join(row, " "), len(snap.CentralDeck), len(snap.Aces), len(snap.Discarded))

	if snap.PurchaseBonus != nil {
		fmt.Fprintf(s.out, "  Bonus: %s\n", snap.PurchaseBonus)
	}
	if len(snap.BonusOptions) > 0 {
		fmt.Fprintf(s.out, "  Choose one of: %s\n", strings.Join(snap.BonusOptions, ", "))
	}
}

// formatVillage lists a village sorted for display. Face-down cards are in
// parentheses and selected cards are starred.
func formatVillage(village []cards.Card, selected []string) string {
	sorted := append([]cards.Card(nil), village...)
	cards.SortForDisplay(sorted)

	parts := make([]string, len(sorted))
	for i, c := range sorted {
		label := c.String()
		if !c.FaceUp {
			label = "(" + label + ")"
		}
		for _, id := range selected {
			if id == c.ID() {
				label += "*"
				break
			}
		}
		parts[i] = label
	}
	return strings.Join(parts, " ")
}

func (s *session) printStats() {
	names := s.engine.Snapshot().Players
	fmt.Fprintf(s.out, "Game %s, %d turns started\n", s.stats.GameID(), s.stats.TurnsStarted())
	for i := 0; i < rules.PlayerCount; i++ {
		st := s.stats.Player(i)
		fmt.Fprintf(s.out, "  %-10s attacks %d (won %d, skipped %d) weakened %d purchases %d (upgrades %d, spent %d) rests %d (auto %d) recovered %d\n",
			names[i].Name, st.Attacks, st.SuccessfulAttacks, st.AutoSkippedAttacks, st.CardsWeakened,
			st.Purchases, st.Upgrades, st.Spent, st.Rests, st.AutoRests, st.CardsRecovered)
	}
}

func (s *session) printJSON() error {
	data, err := json.MarshalIndent(newBoardView(s.engine.Snapshot()), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, string(data))
	return nil
}
