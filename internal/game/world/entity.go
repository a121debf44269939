package world

import (
	"math"

	"github.com/cory-johannsen/tombs/internal/game/color"
)

// RenderOrder ranks entities that share a cell; higher draws on top.
type RenderOrder int

const (
	RenderCorpse RenderOrder = iota + 1
	RenderItem
	RenderActor
	RenderPlayer
)

// String returns the lowercase category name.
func (r RenderOrder) String() string {
	switch r {
	case RenderCorpse:
		return "corpse"
	case RenderItem:
		return "item"
	case RenderActor:
		return "actor"
	case RenderPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Entity is the positional and presentational state shared by actors.
type Entity struct {
	ID             string
	X, Y           int
	Glyph          rune
	Color          color.Color
	Name           string
	BlocksMovement bool
	RenderOrder    RenderOrder
}

// Move shifts the entity by (dx, dy).
func (e *Entity) Move(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// Place puts the entity at (x, y).
func (e *Entity) Place(x, y int) {
	e.X, e.Y = x, y
}

// Distance returns the Euclidean distance to (x, y).
func (e *Entity) Distance(x, y int) float64 {
	return math.Hypot(float64(x-e.X), float64(y-e.Y))
}
