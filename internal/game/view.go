// Package game hosts matches on top of the rules engine: it owns match
// lifecycles keyed by id, builds per-player views with hidden information
// stripped, and records replays. The transport layer talks to this package
// only.
package game

import (
	"time"

	"github.com/invokesim/invoke-server-go/internal/game/core"
)

// GameView is the JSON-serializable snapshot sent to clients. Viewer-private
// information of the opponent (hand contents, deck contents) is reduced to
// counts.
type GameView struct {
	MatchID   string       `json:"match_id"`
	Phase     string       `json:"phase"`
	Round     int          `json:"round"`
	ActivePid int          `json:"active_pid"`
	Viewer    int          `json:"viewer,omitempty"`
	Waiting   int          `json:"waiting,omitempty"`
	Ended     bool         `json:"ended"`
	Winner    int          `json:"winner,omitempty"`
	Players   []PlayerView `json:"players"`
	CreatedAt time.Time    `json:"created_at,omitempty"`
}

// PlayerView is one player's half of a view.
type PlayerView struct {
	Pid        int             `json:"pid"`
	Act        string          `json:"act"`
	Characters []CharacterView `json:"characters"`
	ActiveID   int             `json:"active_id"`
	Hand       map[string]int  `json:"hand,omitempty"`
	HandCount  int             `json:"hand_count"`
	DeckCount  int             `json:"deck_count"`
	Dice       map[string]int  `json:"dice,omitempty"`
	DiceCount  int             `json:"dice_count"`
	Combat     []StatusView    `json:"combat_statuses,omitempty"`
	Summons    []StatusView    `json:"summons,omitempty"`
	Supports   []StatusView    `json:"supports,omitempty"`
}

// CharacterView is one character's public state.
type CharacterView struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Element   string       `json:"element"`
	HP        int          `json:"hp"`
	MaxHP     int          `json:"max_hp"`
	Energy    int          `json:"energy"`
	MaxEnergy int          `json:"max_energy"`
	Aura      []string     `json:"aura,omitempty"`
	Statuses  []StatusView `json:"statuses,omitempty"`
	Equipment []StatusView `json:"equipment,omitempty"`
	Defeated  bool         `json:"defeated"`
}

// StatusView is one status as shown to clients.
type StatusView struct {
	Name string `json:"name"`
}

// ViewerOmniscient builds a view with nothing hidden, for replays and logs.
const ViewerOmniscient = core.Pid(0)

// BuildView projects a snapshot into the view for one viewer. Pass
// ViewerOmniscient to keep both hands and dice visible.
func BuildView(s *core.GameState, viewer core.Pid) *GameView {
	view := &GameView{
		Phase:     s.Phase().Name(),
		Round:     s.Round(),
		ActivePid: int(s.ActivePid()),
		Viewer:    int(viewer),
		Ended:     s.GameEnd(),
	}
	if pid, ok := s.WaitingFor(); ok {
		view.Waiting = int(pid)
	}
	if winner, ok := s.Winner(); ok {
		view.Winner = int(winner)
	}
	for _, pid := range []core.Pid{core.P1, core.P2} {
		view.Players = append(view.Players, buildPlayerView(s, pid, viewer))
	}
	return view
}

func buildPlayerView(s *core.GameState, pid, viewer core.Pid) PlayerView {
	p := s.Player(pid)
	pv := PlayerView{
		Pid:       int(pid),
		Act:       p.Act().String(),
		ActiveID:  p.Characters().ActiveID(),
		HandCount: p.Hand().NumCards(),
		DeckCount: p.Deck().NumCards(),
		DiceCount: p.Dice().NumDice(),
		Combat:    buildStatusViews(p.CombatStatuses()),
		Summons:   buildStatusViews(p.Summons()),
		Supports:  buildStatusViews(p.Supports()),
	}
	if viewer == ViewerOmniscient || viewer == pid {
		pv.Hand = cardCounts(p)
		pv.Dice = diceCounts(p)
	}
	for _, c := range p.Characters().All() {
		pv.Characters = append(pv.Characters, buildCharacterView(c))
	}
	return pv
}

func buildCharacterView(c core.Character) CharacterView {
	cv := CharacterView{
		ID:        c.ID(),
		Name:      c.Kind().Name(),
		Element:   c.Kind().Element().String(),
		HP:        c.HP(),
		MaxHP:     c.MaxHP(),
		Energy:    c.Energy(),
		MaxEnergy: c.MaxEnergy(),
		Statuses:  buildStatusViews(c.CharacterStatuses()),
		Equipment: buildStatusViews(c.Equipment()),
		Defeated:  c.Defeated(),
	}
	for _, e := range c.Aura().Elems() {
		cv.Aura = append(cv.Aura, e.String())
	}
	return cv
}

func buildStatusViews(col core.Statuses) []StatusView {
	var out []StatusView
	for _, st := range col.All() {
		out = append(out, StatusView{Name: st.Name()})
	}
	return out
}

func cardCounts(p *core.PlayerState) map[string]int {
	out := make(map[string]int)
	for _, name := range p.Hand().Names() {
		out[name] = p.Hand().Get(name)
	}
	return out
}

func diceCounts(p *core.PlayerState) map[string]int {
	out := make(map[string]int)
	for e, n := range p.Dice().ToMap() {
		out[e.String()] = n
	}
	return out
}
