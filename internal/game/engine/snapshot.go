package engine

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tombs/internal/game/ai"
	"github.com/cory-johannsen/tombs/internal/game/character"
	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/messagelog"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// SnapshotVersion is the current Snapshot layout.
const SnapshotVersion = 1

// Snapshot is the plain-data form of a whole game.
type Snapshot struct {
	Version  int                  `json:"version"`
	Floor    int                  `json:"floor"`
	Turn     int                  `json:"turn"`
	GameOver bool                 `json:"game_over"`
	Map      MapState             `json:"map"`
	PlayerID string               `json:"player_id"`
	Actors   []ActorState         `json:"actors"`
	Items    []GroundItemState    `json:"items"`
	Messages []messagelog.Message `json:"messages"`
}

// MapState is a floor's terrain and visibility.
type MapState struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Tiles      []world.Tile `json:"tiles"`
	Visible    world.Grid   `json:"visible"`
	Explored   world.Grid   `json:"explored"`
	Downstairs world.Point  `json:"downstairs"`
}

// ActorState is one actor, living or dead, in spawn order.
type ActorState struct {
	ID             string                  `json:"id"`
	TemplateID     string                  `json:"template_id"`
	Name           string                  `json:"name"`
	X              int                     `json:"x"`
	Y              int                     `json:"y"`
	Glyph          rune                    `json:"glyph"`
	Color          color.Color             `json:"color"`
	BlocksMovement bool                    `json:"blocks_movement"`
	RenderOrder    world.RenderOrder       `json:"render_order"`
	Abilities      character.AbilityScores `json:"abilities"`
	Fighter        combat.State            `json:"fighter"`
	Level          character.Level         `json:"level"`
	Capacity       int                     `json:"capacity"`
	Inventory      []*inventory.Item       `json:"inventory"`
	WeaponID       string                  `json:"weapon_id,omitempty"`
	ArmorID        string                  `json:"armor_id,omitempty"`
	AI             *ai.State               `json:"ai,omitempty"`
	Loot           inventory.LootTable     `json:"loot"`
}

// GroundItemState is an item lying on the floor.
type GroundItemState struct {
	X    int             `json:"x"`
	Y    int             `json:"y"`
	Item *inventory.Item `json:"item"`
}

// Snapshot captures the engine's complete state.
func (e *Engine) Snapshot() *Snapshot {
	m := e.gameMap
	s := &Snapshot{
		Version:  SnapshotVersion,
		Floor:    e.floor,
		Turn:     e.turn,
		GameOver: e.gameOver,
		Map: MapState{
			Width:      m.Width,
			Height:     m.Height,
			Tiles:      append([]world.Tile(nil), m.Tiles...),
			Visible:    copyGrid(m.Visible),
			Explored:   copyGrid(m.Explored),
			Downstairs: m.Downstairs,
		},
		PlayerID: e.player.ID,
		Messages: e.log.Messages(),
	}
	for _, a := range m.Actors {
		s.Actors = append(s.Actors, actorState(a))
	}
	for _, gi := range m.Items {
		s.Items = append(s.Items, GroundItemState{X: gi.X, Y: gi.Y, Item: gi.Item.Clone()})
	}
	return s
}

func copyGrid(g world.Grid) world.Grid {
	return world.Grid{Width: g.Width, Height: g.Height, Cells: append([]bool(nil), g.Cells...)}
}

func cloneItems(items []*inventory.Item) []*inventory.Item {
	if items == nil {
		return nil
	}
	out := make([]*inventory.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func actorState(a *world.Actor) ActorState {
	st := ActorState{
		ID:             a.ID,
		TemplateID:     a.TemplateID,
		Name:           a.Name,
		X:              a.X,
		Y:              a.Y,
		Glyph:          a.Glyph,
		Color:          a.Color,
		BlocksMovement: a.BlocksMovement,
		RenderOrder:    a.RenderOrder,
		Abilities:      a.Abilities,
		Fighter:        a.Fighter.State(),
		Level:          a.Level,
		Capacity:       a.Inventory.Capacity,
		Inventory:      cloneItems(a.Inventory.Items),
		AI:             ai.Describe(a.AI),
		Loot:           inventory.LootTable{Items: append([]inventory.ItemDrop(nil), a.Loot.Items...)},
	}
	if a.Equipment.Weapon != nil {
		st.WeaponID = a.Equipment.Weapon.ID
	}
	if a.Equipment.Armor != nil {
		st.ArmorID = a.Equipment.Armor.ID
	}
	return st
}

// Restore rebuilds an Engine from s. Every invariant is re-checked: map and
// grid dimensions, hit points, item dice and effects, equipped items held in
// the inventory, and a player present on the map. Explored is widened to
// cover Visible. Items are copied, so the Engine never shares them with s.
//
// Postcondition: returns an error and no Engine when s is inconsistent.
func Restore(s *Snapshot, deps Deps) (*Engine, error) {
	if s == nil {
		return nil, errors.New("engine: restore: nil snapshot")
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("engine: restore: unsupported snapshot version %d", s.Version)
	}
	if s.Floor < 1 || s.Turn < 0 {
		return nil, fmt.Errorf("engine: restore: invalid floor %d or turn %d", s.Floor, s.Turn)
	}
	e, err := newEngine(deps)
	if err != nil {
		return nil, err
	}

	m, err := restoreMap(s.Map)
	if err != nil {
		return nil, fmt.Errorf("engine: restore: %w", err)
	}
	seen := make(map[string]bool, len(s.Actors))
	for i := range s.Actors {
		st := &s.Actors[i]
		if seen[st.ID] {
			return nil, fmt.Errorf("engine: restore: duplicate actor id %q", st.ID)
		}
		seen[st.ID] = true
		a, err := restoreActor(st, deps)
		if err != nil {
			return nil, fmt.Errorf("engine: restore: actor %q: %w", st.ID, err)
		}
		if !m.InBounds(a.X, a.Y) {
			return nil, fmt.Errorf("engine: restore: actor %q at (%d, %d) out of bounds", st.ID, a.X, a.Y)
		}
		m.AddActor(a)
		if a.ID == s.PlayerID {
			e.player = a
		}
	}
	if e.player == nil {
		return nil, fmt.Errorf("engine: restore: player %q not on the map", s.PlayerID)
	}
	if e.player.AI == nil && !s.GameOver {
		return nil, errors.New("engine: restore: player is dead but the game is not over")
	}
	for _, gi := range s.Items {
		if gi.Item == nil {
			return nil, errors.New("engine: restore: ground item without an item")
		}
		if !m.InBounds(gi.X, gi.Y) {
			return nil, fmt.Errorf("engine: restore: item %q at (%d, %d) out of bounds", gi.Item.ID, gi.X, gi.Y)
		}
		if err := gi.Item.Validate(); err != nil {
			return nil, fmt.Errorf("engine: restore: ground %w", err)
		}
		m.AddItem(&world.GroundItem{X: gi.X, Y: gi.Y, Item: gi.Item.Clone()})
	}

	e.gameMap = m
	e.floor = s.Floor
	e.turn = s.Turn
	e.gameOver = s.GameOver
	e.log.Restore(s.Messages)
	return e, nil
}

func restoreMap(ms MapState) (*world.GameMap, error) {
	if ms.Width <= 0 || ms.Height <= 0 {
		return nil, fmt.Errorf("map dimensions must be positive; got %dx%d", ms.Width, ms.Height)
	}
	n := ms.Width * ms.Height
	for _, g := range []world.Grid{ms.Visible, ms.Explored} {
		if g.Width != ms.Width || g.Height != ms.Height || len(g.Cells) != n {
			return nil, errors.New("visibility grid does not match map dimensions")
		}
	}
	m := world.NewGameMap(ms.Width, ms.Height)
	m.Tiles = append([]world.Tile(nil), ms.Tiles...)
	m.Downstairs = ms.Downstairs
	m.RestoreVisibility(copyGrid(ms.Visible), copyGrid(ms.Explored))
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func restoreActor(st *ActorState, deps Deps) (*world.Actor, error) {
	a := &world.Actor{
		Entity: world.Entity{
			ID:             st.ID,
			X:              st.X,
			Y:              st.Y,
			Glyph:          st.Glyph,
			Color:          st.Color,
			Name:           st.Name,
			BlocksMovement: st.BlocksMovement,
			RenderOrder:    st.RenderOrder,
		},
		TemplateID: st.TemplateID,
		Abilities:  st.Abilities,
		Equipment:  &inventory.Equipment{},
		Level:      st.Level,
		Loot:       st.Loot,
	}
	if err := a.Loot.Validate(); err != nil {
		return nil, err
	}
	if len(st.Inventory) > st.Capacity {
		return nil, fmt.Errorf("inventory holds %d items; capacity %d", len(st.Inventory), st.Capacity)
	}
	a.Inventory = inventory.New(st.Capacity)
	for _, it := range st.Inventory {
		if it == nil {
			return nil, errors.New("nil inventory item")
		}
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if err := a.Inventory.Add(it.Clone()); err != nil {
			return nil, err
		}
	}
	var err error
	if a.Equipment.Weapon, err = equipped(a.Inventory, st.WeaponID, inventory.TypeWeapon); err != nil {
		return nil, err
	}
	if a.Equipment.Armor, err = equipped(a.Inventory, st.ArmorID, inventory.TypeArmor); err != nil {
		return nil, err
	}

	a.Fighter, err = combat.RestoreFighter(st.Fighter, &a.Abilities, a.Equipment, deps.Dice)
	if err != nil {
		return nil, err
	}
	a.AI, err = deps.Policies.Restore(st.AI, a)
	if err != nil {
		return nil, err
	}
	if a.AI != nil && a.Fighter.HP() == 0 {
		return nil, errors.New("living actor has no hit points")
	}
	return a, nil
}

func equipped(inv *inventory.Inventory, id string, slot inventory.EquipmentType) (*inventory.Item, error) {
	if id == "" {
		return nil, nil
	}
	it := inv.Find(id)
	if it == nil {
		return nil, fmt.Errorf("equipped item %q is not in the inventory", id)
	}
	if it.Equippable == nil || it.Equippable.Type != slot {
		return nil, fmt.Errorf("item %q cannot be equipped as %s", id, slot)
	}
	return it, nil
}
