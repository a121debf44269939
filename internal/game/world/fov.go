package world

// DefaultFOVRadius is the player's sight radius in cells.
const DefaultFOVRadius = 8

// Transparency is the map view a field-of-view algorithm reads.
type Transparency interface {
	InBounds(x, y int) bool
	Transparent(x, y int) bool
}

// FOV computes the cells visible from an origin.
type FOV interface {
	// Compute marks every cell visible from (ox, oy) within radius in visible.
	// Opaque cells that are seen are themselves marked visible.
	Compute(m Transparency, ox, oy, radius int, visible Grid)
}

// Shadowcast is recursive shadowcasting over eight octants with a Euclidean
// radius test dx*dx+dy*dy <= radius*radius.
type Shadowcast struct{}

var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Compute implements FOV.
func (Shadowcast) Compute(m Transparency, ox, oy, radius int, visible Grid) {
	if !m.InBounds(ox, oy) {
		return
	}
	visible.Set(ox, oy, true)
	for _, o := range octants {
		castLight(m, ox, oy, radius, 1, 1.0, 0.0, o[0], o[1], o[2], o[3], visible)
	}
}

func castLight(m Transparency, ox, oy, radius, row int, start, end float64, xx, xy, yx, yy int, visible Grid) {
	if start < end {
		return
	}
	r2 := radius * radius
	newStart := 0.0
	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		for dx <= 0 {
			dx++
			x := ox + dx*xx + dy*xy
			y := oy + dx*yx + dy*yy
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}
			if dx*dx+dy*dy <= r2 {
				visible.Set(x, y, true)
			}
			opaque := !m.InBounds(x, y) || !m.Transparent(x, y)
			if blocked {
				if opaque {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				blocked = true
				castLight(m, ox, oy, radius, j+1, start, lSlope, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
