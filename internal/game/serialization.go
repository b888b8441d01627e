package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/outsidenote/Cradle-card-game/internal/game/cards"
	"github.com/outsidenote/Cradle-card-game/internal/game/rules"
)

// SnapshotVersion is bumped whenever the Snapshot layout changes.
const SnapshotVersion = 1

// PlayerSnapshot is the serialised form of a Player.
type PlayerSnapshot struct {
	ID      int
	Name    string
	Village []cards.Card
}

// Snapshot is a self-contained copy of the board plus the turn-local state.
// It is the save/restore contract offered to persistence collaborators.
type Snapshot struct {
	Version int
	GameID  string

	Players     [rules.PlayerCount]PlayerSnapshot
	PurchaseRow []cards.Card
	CentralDeck []cards.Card
	Aces        []cards.Card
	Discarded   []cards.Card

	CurrentPlayerIndex int
	Turn               int
	Phase              rules.Phase

	SelectedCardIDs      []string
	BonusOptions         []string
	BonusTargetPlayer    int
	PurchaseBonus        *cards.Card
	WasAttackAutoSkipped bool
}

func newSnapshot(state *GameState, phase rules.Phase, turn *TurnState) *Snapshot {
	ts := turn.clone()
	snap := &Snapshot{
		Version:              SnapshotVersion,
		GameID:               state.GameID,
		PurchaseRow:          state.PurchaseRow.Cards(),
		CentralDeck:          state.CentralDeck.Cards(),
		Aces:                 state.Aces.Cards(),
		Discarded:            state.Discarded.Cards(),
		CurrentPlayerIndex:   state.CurrentPlayerIndex,
		Turn:                 state.Turn,
		Phase:                phase,
		SelectedCardIDs:      ts.SelectedCardIDs,
		BonusOptions:         ts.BonusOptions,
		BonusTargetPlayer:    ts.BonusTargetPlayer,
		PurchaseBonus:        ts.PurchaseBonus,
		WasAttackAutoSkipped: ts.WasAttackAutoSkipped,
	}
	for i, p := range state.Players {
		snap.Players[i] = PlayerSnapshot{ID: p.ID, Name: p.Name, Village: p.Village.Cards()}
	}
	return snap
}

// gameState rebuilds live piles from the snapshot.
func (s *Snapshot) gameState() *GameState {
	state := &GameState{
		GameID:             s.GameID,
		PurchaseRow:        cards.NewPile(s.PurchaseRow...),
		CentralDeck:        cards.NewPile(s.CentralDeck...),
		Aces:               cards.NewPile(s.Aces...),
		Discarded:          cards.NewPile(s.Discarded...),
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		Turn:               s.Turn,
	}
	for i, p := range s.Players {
		state.Players[i] = &Player{ID: p.ID, Name: p.Name, Village: cards.NewPile(p.Village...)}
	}
	return state
}

func (s *Snapshot) turnState() TurnState {
	ts := TurnState{
		SelectedCardIDs:      s.SelectedCardIDs,
		BonusOptions:         s.BonusOptions,
		BonusTargetPlayer:    s.BonusTargetPlayer,
		PurchaseBonus:        s.PurchaseBonus,
		WasAttackAutoSkipped: s.WasAttackAutoSkipped,
	}
	return ts.clone()
}

// Checksum returns a SHA-256 over a canonical text form of the snapshot.
// Two snapshots with the same board and turn-local state hash identically.
func (s *Snapshot) Checksum() string {
	hash := sha256.Sum256([]byte(s.canonical()))
	return hex.EncodeToString(hash[:])
}

// canonical writes pile contents in pile order: slot order is part of the
// rules (row adjacency, draw end), so nothing is sorted.
func (s *Snapshot) canonical() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "GAME:%d|%s|%d|%d|%s\n", s.Version, s.GameID, s.CurrentPlayerIndex, s.Turn, s.Phase)
	for _, p := range s.Players {
		fmt.Fprintf(&buf, "PLAYER:%d|%s\n", p.ID, p.Name)
		writePile(&buf, "  VILLAGE", p.Village)
	}
	writePile(&buf, "ROW", s.PurchaseRow)
	writePile(&buf, "DECK", s.CentralDeck)
	writePile(&buf, "ACES", s.Aces)
	writePile(&buf, "DISCARDED", s.Discarded)

	fmt.Fprintf(&buf, "SELECTED:%s\n", strings.Join(s.SelectedCardIDs, ","))
	fmt.Fprintf(&buf, "OPTIONS:%d|%s\n", s.BonusTargetPlayer, strings.Join(s.BonusOptions, ","))
	bonus := ""
	if s.PurchaseBonus != nil {
		bonus = s.PurchaseBonus.ID()
	}
	fmt.Fprintf(&buf, "BONUS:%s|%t\n", bonus, s.WasAttackAutoSkipped)
	return buf.String()
}

func writePile(buf *strings.Builder, label string, cs []cards.Card) {
	buf.WriteString(label)
	buf.WriteString(":")
	for i, c := range cs {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString(c.ID())
		if c.FaceUp {
			buf.WriteString("+")
		} else {
			buf.WriteString("-")
		}
	}
	buf.WriteString("\n")
}

// VerifyDeckIntegrity checks that the snapshot holds each of the 52 cards
// exactly once across all of its piles.
func (s *Snapshot) VerifyDeckIntegrity() error {
	seen := make(map[string]int, cards.DeckSize)
	count := func(cs []cards.Card) {
		for _, c := range cs {
			seen[c.ID()]++
		}
	}
	for _, p := range s.Players {
		count(p.Village)
	}
	count(s.PurchaseRow)
	count(s.CentralDeck)
	count(s.Aces)
	count(s.Discarded)

	var problems []string
	for _, c := range cards.FullDeck() {
		switch n := seen[c.ID()]; n {
		case 1:
		case 0:
			problems = append(problems, c.ID()+" missing")
		default:
			problems = append(problems, fmt.Sprintf("%s appears %d times", c.ID(), n))
		}
		delete(seen, c.ID())
	}
	for id := range seen {
		problems = append(problems, "unknown card "+id)
	}
	if len(problems) > 0 {
		return fmt.Errorf("deck integrity: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Validate checks everything Restore relies on.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if _, err := rules.RestoreTurnManager(s.CurrentPlayerIndex, s.Turn, s.Phase); err != nil {
		return err
	}
	if s.BonusTargetPlayer < 0 || s.BonusTargetPlayer >= rules.PlayerCount {
		return fmt.Errorf("bonus target player %d out of range", s.BonusTargetPlayer)
	}
	if err := s.VerifyDeckIntegrity(); err != nil {
		return err
	}
	return s.validateTurnState()
}

// validateTurnState checks the turn-local fields against the board.
func (s *Snapshot) validateTurnState() error {
	current := s.CurrentPlayerIndex
	opponent := (current + 1) % rules.PlayerCount

	switch s.Phase {
	case rules.PhaseWeakenOpponent:
		if s.BonusTargetPlayer != opponent {
			return fmt.Errorf("weaken targets must belong to the opponent, got player %d", s.BonusTargetPlayer)
		}
		if err := s.checkOptions(true); err != nil {
			return err
		}
	case rules.PhaseHeartBonus:
		if s.BonusTargetPlayer != current {
			return fmt.Errorf("recovery targets must belong to the current player, got player %d", s.BonusTargetPlayer)
		}
		if err := s.checkOptions(false); err != nil {
			return err
		}
	default:
		if len(s.BonusOptions) > 0 {
			return fmt.Errorf("phase %s offers no bonus options", s.Phase)
		}
	}

	village := s.Players[current].Village
	seen := make(map[string]bool, len(s.SelectedCardIDs))
	for _, id := range s.SelectedCardIDs {
		if seen[id] {
			return fmt.Errorf("card %s selected twice", id)
		}
		seen[id] = true
		c, ok := findCard(village, id)
		if !ok {
			return fmt.Errorf("selected card %s is not in the current village", id)
		}
		if !c.FaceUp {
			return fmt.Errorf("selected card %s is face-down", id)
		}
	}

	if s.PurchaseBonus != nil {
		if s.Phase != rules.PhasePurchase {
			return fmt.Errorf("purchase bonus outside the purchase phase")
		}
		c, ok := findCard(s.Players[opponent].Village, s.PurchaseBonus.ID())
		if !ok {
			return fmt.Errorf("purchase bonus %s is not in the opponent's village", s.PurchaseBonus.ID())
		}
		if c.FaceUp {
			return fmt.Errorf("purchase bonus %s is face-up", c.ID())
		}
	}
	return nil
}

// checkOptions requires at least one option, each a distinct card of the
// bonus target's village with the given face.
func (s *Snapshot) checkOptions(faceUp bool) error {
	if len(s.BonusOptions) == 0 {
		return fmt.Errorf("phase %s requires bonus options", s.Phase)
	}
	village := s.Players[s.BonusTargetPlayer].Village
	seen := make(map[string]bool, len(s.BonusOptions))
	for _, id := range s.BonusOptions {
		if seen[id] {
			return fmt.Errorf("bonus option %s offered twice", id)
		}
		seen[id] = true
		c, ok := findCard(village, id)
		if !ok {
			return fmt.Errorf("bonus option %s is not in the village of player %d", id, s.BonusTargetPlayer)
		}
		if c.FaceUp != faceUp {
			return fmt.Errorf("bonus option %s has the wrong face", id)
		}
	}
	return nil
}

func findCard(cs []cards.Card, id string) (cards.Card, bool) {
	for _, c := range cs {
		if c.ID() == id {
			return c, true
		}
	}
	return cards.Card{}, false
}

// Encode serialises the snapshot with gob.
func (s *Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot parses bytes produced by Encode.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// ValidateSerializationRoundtrip encodes and decodes the snapshot and compares
// checksums.
func ValidateSerializationRoundtrip(s *Snapshot) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	if original, got := s.Checksum(), decoded.Checksum(); original != got {
		return fmt.Errorf("checksum mismatch: original=%s, decoded=%s", original, got)
	}
	return nil
}
