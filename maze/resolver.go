package maze

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Unreached is the distance of a cell with no open route to the exit.
const Unreached = -1

// stepOffsets are single-cell moves, in drawn order left, right, up, down.
var stepOffsets = [4]Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// DistanceField holds, per cell, the number of steps to the exit.
type DistanceField struct {
	size     int
	distance []int
}

func newDistanceField(size int) *DistanceField {
	distance := make([]int, size*size)
	for i := range distance {
		distance[i] = Unreached
	}
	return &DistanceField{size: size, distance: distance}
}

// Size returns the side length of the field.
func (f *DistanceField) Size() int {
	return f.size
}

// At returns the distance from p to the exit, or Unreached when p is out of
// bounds or has no route to the exit.
func (f *DistanceField) At(p Point) int {
	if f == nil || p.X < 0 || p.X >= f.size || p.Y < 0 || p.Y >= f.size {
		return Unreached
	}
	return f.distance[p.X*f.size+p.Y]
}

func (f *DistanceField) set(p Point, d int) {
	f.distance[p.X*f.size+p.Y] = d
}

// Max returns the largest finite distance, or Unreached for an empty field.
func (f *DistanceField) Max() int {
	longest := Unreached
	for _, d := range f.distance {
		if d > longest {
			longest = d
		}
	}
	return longest
}

// Rows returns a copy of the field as size rows of size distances.
func (f *DistanceField) Rows() [][]int {
	rows := make([][]int, f.size)
	for x := range rows {
		rows[x] = append([]int(nil), f.distance[x*f.size:(x+1)*f.size]...)
	}
	return rows
}

// Equal reports whether both fields hold the same distances.
func (f *DistanceField) Equal(other *DistanceField) bool {
	if f.size != other.size {
		return false
	}
	for i := range f.distance {
		if f.distance[i] != other.distance[i] {
			return false
		}
	}
	return true
}

// Render draws the distance table. Walls of m are drawn as '#', other cells
// without a route as '-'. m may be nil.
func (f *DistanceField) Render(m *Maze) string {
	width := len(strconv.Itoa(f.Max()))
	if width < 2 {
		width = 2
	}

	var b strings.Builder
	for x := 0; x < f.size; x++ {
		for y := 0; y < f.size; y++ {
			if y > 0 {
				b.WriteByte(' ')
			}
			p := Point{X: x, Y: y}
			switch d := f.At(p); {
			case d != Unreached:
				fmt.Fprintf(&b, "%*d", width, d)
			case m != nil && m.at(p) == Wall:
				fmt.Fprintf(&b, "%*s", width, "#")
			default:
				fmt.Fprintf(&b, "%*s", width, "-")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (f *DistanceField) String() string {
	return f.Render(nil)
}

// Resolver computes distance fields and remembers the latest one.
type Resolver struct {
	field *DistanceField
}

// NewResolver returns a Resolver that has not run yet.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Run labels every cell reachable from the exit with its step distance and
// stores the result. Running again on an unchanged maze gives an identical field.
func (r *Resolver) Run(m *Maze) *DistanceField {
	r.field = Resolve(m)
	return r.field
}

// DistanceAt returns the distance stored by the last Run, or Unreached if Run
// has not been called.
func (r *Resolver) DistanceAt(p Point) int {
	return r.field.At(p)
}

// Field returns the field computed by the last Run, or nil.
func (r *Resolver) Field() *DistanceField {
	return r.field
}

// Resolve runs a breadth-first search from the exit over every non-wall cell.
// The field covers the size×size maze only; padding is never visited.
func Resolve(m *Maze) *DistanceField {
	m.mustBeWellFormed()

	field := newDistanceField(m.size)
	field.set(m.exit, 0)

	queue := []Point{m.exit}
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		next := field.At(current) + 1
		for _, d := range stepOffsets {
			n := current.add(d)
			if !m.IsInBounds(n.X, n.Y) || m.at(n) == Wall || field.At(n) != Unreached {
				continue
			}
			field.set(n, next)
			queue = append(queue, n)
		}
	}

	return field
}

// Reachable returns every open cell connected to from by single steps.
// The set is empty when from is out of bounds or a wall.
func Reachable(m *Maze, from Point) *mapset.Set[Point] {
	reachable := mapset.New[Point]()
	if !m.IsInBounds(from.X, from.Y) || m.at(from) == Wall {
		return &reachable
	}

	reachable.Put(from)
	stack := []Point{from}
	for len(stack) > 0 {
		current := pop(&stack)
		for _, d := range stepOffsets {
			n := current.add(d)
			if !m.IsInBounds(n.X, n.Y) || m.at(n) == Wall || reachable.Has(n) {
				continue
			}
			reachable.Put(n)
			stack = append(stack, n)
		}
	}

	return &reachable
}
