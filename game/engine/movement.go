package engine

// line is a view over one row or column of a grid, ordered from the
// leading edge of a move inward: index 0 is the cell tiles move toward.
type line struct {
	grid  *Grid
	cells [Size]Position
}

// lineFor returns the n-th line of g along dir's axis.
func lineFor(g *Grid, dir Direction, n int) line {
	l := line{grid: g}
	for i := 0; i < Size; i++ {
		switch dir {
		case Left:
			l.cells[i] = Position{Row: n, Col: i}
		case Right:
			l.cells[i] = Position{Row: n, Col: Size - 1 - i}
		case Up:
			l.cells[i] = Position{Row: i, Col: n}
		case Down:
			l.cells[i] = Position{Row: Size - 1 - i, Col: n}
		}
	}
	return l
}

func (l line) get(i int) int {
	p := l.cells[i]
	return l.grid[p.Row][p.Col]
}

func (l line) set(i, v int) {
	p := l.cells[i]
	l.grid[p.Row][p.Col] = v
}

// merge combines equal tiles toward the leading edge without sliding them.
// Each tile looks back for its nearest non-empty neighbour; a neighbour that
// already received a merge this pass is not merged into again.
// It returns the points gained and which indexes hold merged tiles.
func (l line) merge() (int, [Size]bool) {
	var consumed [Size]bool
	gained := 0

	for j := 1; j < Size; j++ {
		v := l.get(j)
		if v == 0 {
			continue
		}
		for k := j - 1; k >= 0; k-- {
			target := l.get(k)
			if target == 0 {
				continue
			}
			if target == v && !consumed[k] {
				l.set(k, target*2)
				l.set(j, 0)
				consumed[k] = true
				gained += target * 2
			}
			break
		}
	}

	return gained, consumed
}

// compact packs non-empty tiles toward the leading edge, preserving order.
// flags travel with their tiles; the returned array is the flags' new layout.
func (l line) compact(flags [Size]bool) [Size]bool {
	var moved [Size]bool
	w := 0
	for i := 0; i < Size; i++ {
		v := l.get(i)
		if v == 0 {
			continue
		}
		if i != w {
			l.set(w, v)
			l.set(i, 0)
		}
		moved[w] = flags[i]
		w++
	}
	return moved
}

// slide applies a full move to g in place: merge then compact on every
// line along dir. It returns the points gained and the merged tiles.
func (g *Grid) slide(dir Direction) (int, []Merge) {
	gained := 0
	var merges []Merge

	for n := 0; n < Size; n++ {
		l := lineFor(g, dir, n)
		points, consumed := l.merge()
		gained += points

		merged := l.compact(consumed)
		for i, ok := range merged {
			if ok {
				merges = append(merges, Merge{Position: l.cells[i], Value: l.get(i)})
			}
		}
	}

	return gained, merges
}

// CanSlide reports whether moving g toward dir would change any cell
func (g Grid) CanSlide(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	next := g
	next.slide(dir)
	return next != g
}
