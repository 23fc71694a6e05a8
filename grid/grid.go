// Package grid provides a 4-connected grid with walls as a search.Problem.
package grid

import (
	"math/rand"

	"github.com/pdrpinto/search"
)

// Point is a cell of the grid.
type Point struct {
	X, Y int
}

func (p Point) add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Move is the action of stepping to a neighbouring cell.
type Move string

const (
	Right Move = "right"
	Left  Move = "left"
	Down  Move = "down"
	Up    Move = "up"
)

var directions = []struct {
	move  Move
	delta Point
}{
	{Right, Point{1, 0}},
	{Left, Point{-1, 0}},
	{Down, Point{0, 1}},
	{Up, Point{0, -1}},
}

// Grid is a Width x Height board. Walls are impassable.
type Grid struct {
	Width, Height int
	Walls         map[Point]bool
}

// In reports whether p lies on the board.
func (g Grid) In(p Point) bool { return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height }

// Open reports whether p lies on the board and is not a wall.
func (g Grid) Open(p Point) bool { return g.In(p) && !g.Walls[p] }

// Neighbors returns the open cells next to p, each one step away.
func (g Grid) Neighbors(p Point) []search.Successor[Point] {
	successors := make([]search.Successor[Point], 0, len(directions))
	for _, d := range directions {
		next := p.add(d.delta)
		if g.Open(next) {
			successors = append(successors, search.Successor[Point]{State: next, Action: d.move, Cost: 1})
		}
	}
	return successors
}

// Problem searches for a path from Start to Goal.
type Problem struct {
	Grid  Grid
	Start Point
	Goal  Point
}

var _ search.Problem[Point] = Problem{}

func (p Problem) InitialState() Point    { return p.Start }
func (p Problem) IsGoal(state Point) bool { return state == p.Goal }

func (p Problem) Successors(state Point) ([]search.Successor[Point], error) {
	return p.Grid.Neighbors(state), nil
}

// Manhattan is the L1 distance to Goal. With unit 4-connected moves it is
// admissible and consistent.
type Manhattan struct {
	Goal Point
}

var _ search.Heuristic[Point] = Manhattan{}

func (m Manhattan) H(state Point) float64 {
	return float64(abs(state.X-m.Goal.X) + abs(state.Y-m.Goal.Y))
}

func (Manhattan) Admissible() bool { return true }
func (Manhattan) Consistent() bool { return true }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GenerateWalls builds clustered random walls via random walks. Each of the
// clusters starts at a random cell and takes steps moves; every visited cell
// becomes a wall with probability density. Cells in keepFree never become walls.
// An empty board yields no walls.
func GenerateWalls(r *rand.Rand, width, height, clusters, steps int, density float64, keepFree ...Point) map[Point]bool {
	if width <= 0 || height <= 0 {
		return map[Point]bool{}
	}
	free := make(map[Point]bool, len(keepFree))
	for _, p := range keepFree {
		free[p] = true
	}
	board := Grid{Width: width, Height: height}

	walls := map[Point]bool{}
	for c := 0; c < clusters; c++ {
		p := Point{r.Intn(width), r.Intn(height)}
		for s := 0; s < steps; s++ {
			if r.Float64() < density && !free[p] {
				walls[p] = true
			}
			next := p.add(directions[r.Intn(len(directions))].delta)
			if board.In(next) {
				p = next
			}
		}
	}
	return walls
}
