package world

import "fmt"

// Tile is one map cell.
type Tile struct {
	Walkable    bool `json:"walkable"`
	Transparent bool `json:"transparent"`
	Stairs      bool `json:"stairs,omitempty"`
}

var (
	WallTile       = Tile{}
	FloorTile      = Tile{Walkable: true, Transparent: true}
	DownStairsTile = Tile{Walkable: true, Transparent: true, Stairs: true}
)

// Grid is a row-major boolean grid.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []bool `json:"cells"`
}

// NewGrid returns an all-false grid.
func NewGrid(w, h int) Grid {
	return Grid{Width: w, Height: h, Cells: make([]bool, w*h)}
}

// At reports the cell at (x, y); out of bounds is false.
func (g Grid) At(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return g.Cells[y*g.Width+x]
}

// Set writes the cell at (x, y); out of bounds is ignored.
func (g Grid) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Cells[y*g.Width+x] = v
}

// Clear sets every cell to false.
func (g Grid) Clear() {
	clear(g.Cells)
}

// Count returns the number of true cells.
func (g Grid) Count() int {
	n := 0
	for _, c := range g.Cells {
		if c {
			n++
		}
	}
	return n
}

// Covers reports whether every true cell of other is also true in g.
func (g Grid) Covers(other Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i, c := range other.Cells {
		if c && !g.Cells[i] {
			return false
		}
	}
	return true
}

// GameMap is a single dungeon floor.
//
// Invariant: Explored covers Visible.
type GameMap struct {
	Width, Height int
	Tiles         []Tile
	Visible       Grid
	Explored      Grid
	Downstairs    Point

	// Actors holds every actor on the floor, living or dead, in spawn order.
	Actors []*Actor
	Items  []*GroundItem
}

// NewGameMap returns a w by h floor of solid wall.
func NewGameMap(w, h int) *GameMap {
	tiles := make([]Tile, w*h)
	for i := range tiles {
		tiles[i] = WallTile
	}
	return &GameMap{
		Width:    w,
		Height:   h,
		Tiles:    tiles,
		Visible:  NewGrid(w, h),
		Explored: NewGrid(w, h),
	}
}

// InBounds reports whether (x, y) lies on the map.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// TileAt returns the tile at (x, y). Out of bounds reads as wall.
func (m *GameMap) TileAt(x, y int) Tile {
	if !m.InBounds(x, y) {
		return WallTile
	}
	return m.Tiles[y*m.Width+x]
}

// SetTile writes the tile at (x, y).
//
// Precondition: InBounds(x, y).
func (m *GameMap) SetTile(x, y int, t Tile) {
	m.Tiles[y*m.Width+x] = t
}

// Transparent reports whether light passes through (x, y).
func (m *GameMap) Transparent(x, y int) bool {
	return m.TileAt(x, y).Transparent
}

// Walkable reports whether (x, y) can be stood on.
func (m *GameMap) Walkable(x, y int) bool {
	return m.TileAt(x, y).Walkable
}

// AddActor places a on the map.
func (m *GameMap) AddActor(a *Actor) {
	m.Actors = append(m.Actors, a)
}

// RemoveActor takes a off the map and reports whether it was present.
func (m *GameMap) RemoveActor(a *Actor) bool {
	for i, cur := range m.Actors {
		if cur == a {
			m.Actors = append(m.Actors[:i], m.Actors[i+1:]...)
			return true
		}
	}
	return false
}

// LivingActors returns the actors that still have an AI, in spawn order.
func (m *GameMap) LivingActors() []*Actor {
	out := make([]*Actor, 0, len(m.Actors))
	for _, a := range m.Actors {
		if a.IsAlive() {
			out = append(out, a)
		}
	}
	return out
}

// BlockingActorAt returns the movement-blocking actor at (x, y), or nil.
func (m *GameMap) BlockingActorAt(x, y int) *Actor {
	for _, a := range m.Actors {
		if a.BlocksMovement && a.X == x && a.Y == y {
			return a
		}
	}
	return nil
}

// ActorAt returns the living actor at (x, y), or nil.
func (m *GameMap) ActorAt(x, y int) *Actor {
	for _, a := range m.Actors {
		if a.IsAlive() && a.X == x && a.Y == y {
			return a
		}
	}
	return nil
}

// AddItem drops gi on the map.
func (m *GameMap) AddItem(gi *GroundItem) {
	m.Items = append(m.Items, gi)
}

// RemoveItem takes gi off the map and reports whether it was present.
func (m *GameMap) RemoveItem(gi *GroundItem) bool {
	for i, cur := range m.Items {
		if cur == gi {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ItemsAt returns the ground items at (x, y) in drop order.
func (m *GameMap) ItemsAt(x, y int) []*GroundItem {
	var out []*GroundItem
	for _, gi := range m.Items {
		if gi.X == x && gi.Y == y {
			out = append(out, gi)
		}
	}
	return out
}

// Validate checks the structural invariants of a map loaded from storage.
func (m *GameMap) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("world: map dimensions must be positive; got %dx%d", m.Width, m.Height)
	}
	if len(m.Tiles) != m.Width*m.Height {
		return fmt.Errorf("world: map has %d tiles; want %d", len(m.Tiles), m.Width*m.Height)
	}
	for _, g := range []Grid{m.Visible, m.Explored} {
		if g.Width != m.Width || g.Height != m.Height || len(g.Cells) != m.Width*m.Height {
			return fmt.Errorf("world: visibility grid does not match map dimensions")
		}
	}
	if !m.Explored.Covers(m.Visible) {
		return fmt.Errorf("world: explored grid does not cover visible grid")
	}
	if !m.InBounds(m.Downstairs.X, m.Downstairs.Y) {
		return fmt.Errorf("world: downstairs (%d, %d) out of bounds", m.Downstairs.X, m.Downstairs.Y)
	}
	return nil
}
