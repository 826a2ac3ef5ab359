package engine

import "fmt"

// EmptyCells lists the empty cells in row-major order
func (g Grid) EmptyCells() []Position {
	var empty []Position
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				empty = append(empty, Position{Row: r, Col: c})
			}
		}
	}
	return empty
}

// HasEmptyCell reports whether any cell is 0
func (g Grid) HasEmptyCell() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasEqualNeighbours reports whether two horizontally or vertically
// adjacent cells hold the same value.
func (g Grid) HasEqualNeighbours() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size-1; c++ {
			if g[r][c] == g[r][c+1] {
				return true
			}
		}
	}
	for c := 0; c < Size; c++ {
		for r := 0; r < Size-1; r++ {
			if g[r][c] == g[r+1][c] {
				return true
			}
		}
	}
	return false
}

// Contains reports whether any cell equals value
func (g Grid) Contains(value int) bool {
	for _, row := range g {
		for _, v := range row {
			if v == value {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the largest tile on the board, 0 for an empty board
func (g Grid) MaxTile() int {
	highest := 0
	for _, row := range g {
		for _, v := range row {
			if v > highest {
				highest = v
			}
		}
	}
	return highest
}

// Sum returns the total of all tile values
func (g Grid) Sum() int {
	sum := 0
	for _, row := range g {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// TileCount returns the number of non-empty cells
func (g Grid) TileCount() int {
	count := 0
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// Validate checks that every cell is empty or a power of two >= 2
func (g Grid) Validate() error {
	for r, row := range g {
		for c, v := range row {
			if v == 0 {
				continue
			}
			if v < MinTile || v&(v-1) != 0 {
				return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, v, r, c)
			}
		}
	}
	return nil
}
