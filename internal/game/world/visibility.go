package world

// Recompute refreshes Visible from (ox, oy) using fov and folds the result
// into Explored.
//
// Postcondition: Explored covers Visible, and Explored never loses a cell.
func (m *GameMap) Recompute(fov FOV, ox, oy, radius int) {
	m.Visible.Clear()
	fov.Compute(m, ox, oy, radius, m.Visible)
	m.markExplored()
}

// RestoreVisibility installs persisted grids and re-establishes the
// Explored-covers-Visible invariant.
func (m *GameMap) RestoreVisibility(visible, explored Grid) {
	m.Visible = visible
	m.Explored = explored
	m.markExplored()
}

func (m *GameMap) markExplored() {
	for i, v := range m.Visible.Cells {
		if v {
			m.Explored.Cells[i] = true
		}
	}
}
