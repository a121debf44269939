// Package procgen builds dungeon floors: rectangular rooms joined by
// L-shaped corridors, populated from per-floor spawn tables.
package procgen

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/npc"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// Generator produces a new floor with player placed on it.
type Generator interface {
	Generate(floor int, player *world.Actor) (*world.GameMap, error)
}

// Params sizes the map and its rooms.
type Params struct {
	Width       int `mapstructure:"width"`
	Height      int `mapstructure:"height"`
	MaxRooms    int `mapstructure:"max_rooms"`
	RoomMinSize int `mapstructure:"room_min_size"`
	RoomMaxSize int `mapstructure:"room_max_size"`
}

// DefaultParams returns the standard floor dimensions.
func DefaultParams() Params {
	return Params{Width: 125, Height: 125, MaxRooms: 30, RoomMinSize: 6, RoomMaxSize: 10}
}

// Validate checks that rooms of every allowed size fit on the map.
func (p Params) Validate() error {
	var errs []error
	if p.MaxRooms < 1 {
		errs = append(errs, errors.New("max_rooms must be >= 1"))
	}
	if p.RoomMinSize < 3 {
		errs = append(errs, errors.New("room_min_size must be >= 3"))
	}
	if p.RoomMaxSize < p.RoomMinSize {
		errs = append(errs, errors.New("room_max_size must be >= room_min_size"))
	}
	if p.Width < p.RoomMaxSize+1 || p.Height < p.RoomMaxSize+1 {
		errs = append(errs, fmt.Errorf("map %dx%d cannot hold a room of size %d", p.Width, p.Height, p.RoomMaxSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("procgen: params: %w", errors.Join(errs...))
	}
	return nil
}

// Room is an axis-aligned rectangle; its walls lie on the edges.
type Room struct {
	X1, Y1, X2, Y2 int
}

// NewRoom returns the w by h room with its top-left corner at (x, y).
func NewRoom(x, y, w, h int) Room {
	return Room{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the room's middle cell.
func (r Room) Center() world.Point {
	return world.Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects reports whether r and other overlap, walls included.
func (r Room) Intersects(other Room) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 && r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// RoomsAndCorridors is the reference Generator.
type RoomsAndCorridors struct {
	params    Params
	tables    Tables
	templates *npc.Registry
	items     *inventory.Registry
	factory   npc.AIFactory
	src       dice.Source
	logger    *zap.Logger
}

// NewRoomsAndCorridors validates its inputs and returns a generator.
//
// Precondition: templates, items, factory, src and logger must be non-nil.
// Postcondition: every ID in tables resolves in templates or items.
func NewRoomsAndCorridors(params Params, tables Tables, templates *npc.Registry, items *inventory.Registry, factory npc.AIFactory, src dice.Source, logger *zap.Logger) (*RoomsAndCorridors, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	var errs []error
	for _, c := range tables.Enemies {
		if _, ok := templates.Template(c.ID); !ok {
			errs = append(errs, fmt.Errorf("unknown enemy template %q", c.ID))
		}
	}
	for _, c := range tables.Items {
		if _, ok := items.Item(c.ID); !ok {
			errs = append(errs, fmt.Errorf("unknown item %q", c.ID))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("procgen: %w", errors.Join(errs...))
	}
	return &RoomsAndCorridors{
		params:    params,
		tables:    tables,
		templates: templates,
		items:     items,
		factory:   factory,
		src:       src,
		logger:    logger,
	}, nil
}

// Generate implements Generator.
//
// Postcondition: player is on the returned map at the centre of the first
// room; the down staircase sits at the centre of the last room.
func (g *RoomsAndCorridors) Generate(floor int, player *world.Actor) (*world.GameMap, error) {
	p := g.params
	m := world.NewGameMap(p.Width, p.Height)

	var rooms []Room
	for i := 0; i < p.MaxRooms; i++ {
		w := g.randint(p.RoomMinSize, p.RoomMaxSize)
		h := g.randint(p.RoomMinSize, p.RoomMaxSize)
		x := g.randint(0, p.Width-w-1)
		y := g.randint(0, p.Height-h-1)
		room := NewRoom(x, y, w, h)

		overlaps := false
		for _, other := range rooms {
			if room.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		carve(m, room)
		if len(rooms) == 0 {
			c := room.Center()
			player.Place(c.X, c.Y)
			m.AddActor(player)
		} else {
			g.tunnel(m, rooms[len(rooms)-1].Center(), room.Center())
		}
		if err := g.populate(m, room, floor); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	last := rooms[len(rooms)-1].Center()
	m.SetTile(last.X, last.Y, world.DownStairsTile)
	m.Downstairs = last

	g.logger.Debug("floor generated",
		zap.Int("floor", floor),
		zap.Int("rooms", len(rooms)),
		zap.Int("actors", len(m.Actors)),
		zap.Int("items", len(m.Items)),
	)
	return m, nil
}

func (g *RoomsAndCorridors) randint(lo, hi int) int {
	return lo + g.src.Intn(hi-lo+1)
}

func carve(m *world.GameMap, r Room) {
	for y := r.Y1 + 1; y < r.Y2; y++ {
		for x := r.X1 + 1; x < r.X2; x++ {
			m.SetTile(x, y, world.FloorTile)
		}
	}
}

// tunnel digs an L-shaped corridor, turning horizontally or vertically first
// with equal chance.
func (g *RoomsAndCorridors) tunnel(m *world.GameMap, from, to world.Point) {
	corner := world.Point{X: to.X, Y: from.Y}
	if g.src.Intn(2) == 0 {
		corner = world.Point{X: from.X, Y: to.Y}
	}
	dig(m, from, corner)
	dig(m, corner, to)
}

// dig carves the straight line between two points sharing a row or column.
func dig(m *world.GameMap, a, b world.Point) {
	for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
		for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
			m.SetTile(x, y, world.FloorTile)
		}
	}
}

func (g *RoomsAndCorridors) populate(m *world.GameMap, r Room, floor int) error {
	monsters := g.randint(0, MaxForFloor(g.tables.MaxMonstersByFloor, floor))
	items := g.randint(0, MaxForFloor(g.tables.MaxItemsByFloor, floor))

	for _, id := range ChooseAtRandom(g.tables.Enemies, monsters, floor, g.src) {
		x, y := g.randint(r.X1+1, r.X2-1), g.randint(r.Y1+1, r.Y2-1)
		if occupied(m, x, y) {
			continue
		}
		tmpl, _ := g.templates.Template(id)
		a, err := npc.Spawn(tmpl, g.factory, g.src, x, y)
		if err != nil {
			return fmt.Errorf("procgen: floor %d: %w", floor, err)
		}
		m.AddActor(a)
	}
	for _, id := range ChooseAtRandom(g.tables.Items, items, floor, g.src) {
		x, y := g.randint(r.X1+1, r.X2-1), g.randint(r.Y1+1, r.Y2-1)
		if occupied(m, x, y) {
			continue
		}
		it, err := g.items.NewItem(id)
		if err != nil {
			return fmt.Errorf("procgen: floor %d: %w", floor, err)
		}
		m.AddItem(&world.GroundItem{X: x, Y: y, Item: it})
	}
	return nil
}

// occupied reports whether any actor or ground item already sits at (x, y).
func occupied(m *world.GameMap, x, y int) bool {
	for _, a := range m.Actors {
		if a.X == x && a.Y == y {
			return true
		}
	}
	return len(m.ItemsAt(x, y)) > 0
}
