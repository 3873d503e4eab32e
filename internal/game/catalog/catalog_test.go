package catalog

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/invokesim/invoke-server-go/internal/game/core"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// battleState builds a fresh two-player state on the default roster with both
// Kaeyas active, ready for direct effect execution.
func battleState() *core.GameState {
	s := core.NewGameState(
		core.NewDefaultMode(),
		NewRegistry(),
		rand.New(rand.NewSource(1)),
		core.NewPlayerState(DefaultRoster(), DefaultDeck()),
		core.NewPlayerState(DefaultRoster(), DefaultDeck()),
	)
	chooseFirst := func(p *core.PlayerState) *core.PlayerState {
		return p.Builder().FCharacters(func(cs core.Characters) core.Characters {
			return cs.WithActiveID(1)
		}).Build()
	}
	return s.Builder().FPlayer(core.P1, chooseFirst).FPlayer(core.P2, chooseFirst).Build()
}

func drain(s *core.GameState) *core.GameState {
	for !s.EffectStack().IsEmpty() {
		s = s.ExecuteOne()
	}
	return s
}

func charTarget(pid core.Pid, id int) core.StaticTarget {
	return core.StaticTarget{Pid: pid, Zone: core.ZoneCharacter, ID: id}
}

func oppoActive(t *testing.T, s *core.GameState) core.Character {
	t.Helper()
	c, ok := s.Player(core.P2).Characters().Active()
	if !ok {
		t.Fatal("no opposing active character")
	}
	return c
}

func TestRegistryContents(t *testing.T) {
	r := NewRegistry()
	wantChars := []string{"Fischl", "Kaeya", "Keqing"}
	if got := r.CharacterNames(); !reflect.DeepEqual(got, wantChars) {
		t.Errorf("characters = %v, want %v", got, wantChars)
	}
	wantCards := []string{
		"Lotus Flower Crisp",
		"Mushroom Pizza",
		"Starsigns",
		"The Bestest Travel Companion!",
	}
	if got := r.CardNames(); !reflect.DeepEqual(got, wantCards) {
		t.Errorf("cards = %v, want %v", got, wantCards)
	}
	if _, ok := r.Card("Starsigns"); !ok {
		t.Error("Starsigns missing from the registry")
	}
	if _, ok := r.Character("Kaeya"); !ok {
		t.Error("Kaeya missing from the registry")
	}
}

func TestDefaultDeckSize(t *testing.T) {
	if got := DefaultDeck().NumCards(); got != 30 {
		t.Errorf("deck size = %d, want 30", got)
	}
}

func TestIcicleStrikesOnSwap(t *testing.T) {
	s := battleState()
	s = s.Builder().FPlayer(core.P1, func(p *core.PlayerState) *core.PlayerState {
		return p.Builder().CombatStatuses(core.NewStatuses(Icicle{Usages: 2})).Build()
	}).Build()

	s = drain(core.SwapCharacterEffect{Target: charTarget(core.P1, 2)}.Execute(s))
	c := oppoActive(t, s)
	if c.HP() != 8 {
		t.Errorf("hp = %d, want 8 after one icicle", c.HP())
	}
	if !c.Aura().Contains(element.Cryo) {
		t.Errorf("aura = %v, want CRYO", c.Aura())
	}
	st, ok := s.Player(core.P1).CombatStatuses().Find(Icicle{}.Name())
	if !ok {
		t.Fatal("icicle should persist with one usage left")
	}
	if got := st.(Icicle).Usages; got != 1 {
		t.Errorf("usages = %d, want 1", got)
	}

	// The last usage removes the status.
	s = drain(core.SwapCharacterEffect{Target: charTarget(core.P1, 1)}.Execute(s))
	if oppoActive(t, s).HP() != 6 {
		t.Errorf("hp = %d, want 6 after the second icicle", oppoActive(t, s).HP())
	}
	if s.Player(core.P1).CombatStatuses().Contains(Icicle{}.Name()) {
		t.Error("icicle should expire after its last usage")
	}
}

func TestOzStrikesAtCheckout(t *testing.T) {
	s := battleState()
	s = s.Builder().FPlayer(core.P1, func(p *core.PlayerState) *core.PlayerState {
		return p.Builder().Summons(core.NewStatuses(Oz{Usages: 1})).Build()
	}).Build()

	s = drain(core.TriggerAllEffect{Pid: core.P1, Signal: core.SignalEndRoundCheckOut}.Execute(s))
	c := oppoActive(t, s)
	if c.HP() != 9 {
		t.Errorf("hp = %d, want 9", c.HP())
	}
	if !c.Aura().Contains(element.Electro) {
		t.Errorf("aura = %v, want ELECTRO", c.Aura())
	}
	if s.Player(core.P1).Summons().Contains(Oz{}.Name()) {
		t.Error("Oz should leave after its last usage")
	}
}

func TestSatiatedClearsAtRoundEnd(t *testing.T) {
	s := battleState()
	s = core.AddStatusEffect{
		Target:    charTarget(core.P1, 1),
		Namespace: core.NSCharacterStatus,
		Status:    Satiated{},
	}.Execute(s)

	s = drain(core.TriggerAllEffect{Pid: core.P1, Signal: core.SignalRoundEnd}.Execute(s))
	c, _ := s.Player(core.P1).Characters().Get(1)
	if c.CharacterStatuses().Contains(Satiated{}.Name()) {
		t.Error("satiated should clear at round end")
	}
}

func TestLotusShieldAbsorbsForItsHolder(t *testing.T) {
	s := battleState()
	s = core.AddStatusEffect{
		Target:    charTarget(core.P1, 1),
		Namespace: core.NSCharacterStatus,
		Status:    LotusShield{},
	}.Execute(s)

	s = core.DamageEffect{Damage: core.Damage{
		Source:  charTarget(core.P2, 1),
		Target:  core.TargetOppoActive,
		Element: element.Physical,
		Amount:  5,
	}}.Execute(s)

	c, _ := s.Player(core.P1).Characters().Get(1)
	if c.HP() != 8 {
		t.Errorf("hp = %d, want 8 (3 absorbed)", c.HP())
	}
	if c.CharacterStatuses().Contains(LotusShield{}.Name()) {
		t.Error("shield should expire after absorbing")
	}
}

func TestLotusShieldIgnoresDamageToTeammates(t *testing.T) {
	s := battleState()
	s = core.AddStatusEffect{
		Target:    charTarget(core.P1, 2),
		Namespace: core.NSCharacterStatus,
		Status:    LotusShield{},
	}.Execute(s)

	s = core.DamageEffect{Damage: core.Damage{
		Source:  charTarget(core.P2, 1),
		Target:  core.TargetOppoActive,
		Element: element.Physical,
		Amount:  5,
	}}.Execute(s)

	active, _ := s.Player(core.P1).Characters().Get(1)
	if active.HP() != 5 {
		t.Errorf("hp = %d, want 5 (bench shield must not absorb)", active.HP())
	}
	bench, _ := s.Player(core.P1).Characters().Get(2)
	if !bench.CharacterStatuses().Contains(LotusShield{}.Name()) {
		t.Error("bench shield should survive damage to the active character")
	}
}

func TestFoodNeedsHungryCharacter(t *testing.T) {
	s := battleState()
	if !(MushroomPizza{}).Playable(s, core.P1) {
		t.Fatal("pizza should be playable on a fresh roster")
	}
	for _, c := range s.Player(core.P1).Characters().All() {
		s = core.AddStatusEffect{
			Target:    charTarget(core.P1, c.ID()),
			Namespace: core.NSCharacterStatus,
			Status:    Satiated{},
		}.Execute(s)
	}
	if (MushroomPizza{}).Playable(s, core.P1) {
		t.Error("pizza should not be playable once everyone is satiated")
	}
	if (LotusFlowerCrisp{}).Playable(s, core.P1) {
		t.Error("crisp shares the food precondition")
	}
}

func TestMushroomPizzaHealsAndSatiates(t *testing.T) {
	s := battleState()
	c, _ := s.Player(core.P1).Characters().Get(1)
	s = s.Builder().FPlayer(core.P1, func(p *core.PlayerState) *core.PlayerState {
		return p.Builder().FCharacters(func(cs core.Characters) core.Characters {
			return cs.Replace(c.Builder().HP(7).Build())
		}).Build()
	}).Build()

	for _, e := range (MushroomPizza{}).OnPlay(s, core.P1, charTarget(core.P1, 1)) {
		s = e.Execute(s)
	}
	c, _ = s.Player(core.P1).Characters().Get(1)
	if c.HP() != 8 {
		t.Errorf("hp = %d, want 8", c.HP())
	}
	if !c.CharacterStatuses().Contains(Satiated{}.Name()) {
		t.Error("eating should satiate")
	}
}

func TestStarsignsNeedsEnergyHeadroom(t *testing.T) {
	s := battleState()
	if !(Starsigns{}).Playable(s, core.P1) {
		t.Fatal("starsigns should be playable at zero energy")
	}
	c, _ := s.Player(core.P1).Characters().Get(1)
	s = s.Builder().FPlayer(core.P1, func(p *core.PlayerState) *core.PlayerState {
		return p.Builder().FCharacters(func(cs core.Characters) core.Characters {
			return cs.Replace(c.Builder().Energy(c.MaxEnergy()).Build())
		}).Build()
	}).Build()
	if (Starsigns{}).Playable(s, core.P1) {
		t.Error("starsigns should not be playable at full energy")
	}
}

func TestBestestTravelCompanionGrantsOmni(t *testing.T) {
	s := battleState()
	for _, e := range (TheBestestTravelCompanion{}).OnPlay(s, core.P1, core.StaticTarget{}) {
		s = e.Execute(s)
	}
	if got := s.Player(core.P1).Dice().Get(element.Omni); got != 2 {
		t.Errorf("OMNI = %d, want 2", got)
	}
}
