package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSize       = errors.New("invalid maze size")
	ErrMalformedSnapshot = errors.New("malformed maze snapshot")
)

// Rand is the source of randomness used for placement and carving.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Option configures maze construction.
type Option func(*options)

type options struct {
	minSize int
	maxSize int
}

// WithSizeRange restricts accepted sizes to [min, max]. A max of 0 leaves the
// upper bound open.
func WithSizeRange(min, max int) Option {
	return func(o *options) {
		o.minSize = min
		o.maxSize = max
	}
}

// Maze is a square grid of markers with a start and an exit.
//
// The backing grid is (size+1)×(size+1). The extra row and column are padding
// for the generator's two-cell steps and are never part of the maze.
type Maze struct {
	size  int
	grid  [][]Marker
	start Point
	exit  Point
}

// New builds a size×size maze filled with walls. The start is placed uniformly
// at random and marked Path, then the exit is placed on a random edge and marked Exit.
func New(size int, rng Rand, opts ...Option) (*Maze, error) {
	if err := checkSize(size, opts); err != nil {
		return nil, err
	}

	m := &Maze{
		size: size,
		grid: newGrid(size),
	}

	m.start = Point{X: rng.Intn(size), Y: rng.Intn(size)}
	m.set(m.start, Path)

	m.exit = randomEdgePoint(size, rng)
	m.set(m.exit, Exit)

	return m, nil
}

// Restore rebuilds a maze from a row-major copy of its cells, as returned by Cells.
// Options bound the accepted size the same way they do for New.
func Restore(size int, start, exit Point, cells []Marker, opts ...Option) (*Maze, error) {
	if err := checkSize(size, opts); err != nil {
		return nil, err
	}
	// Compared by division: size*size can overflow for sizes read off the wire.
	if len(cells)%size != 0 || len(cells)/size != size {
		return nil, fmt.Errorf("%w: want %d×%d cells, got %d", ErrMalformedSnapshot, size, size, len(cells))
	}

	m := &Maze{
		size:  size,
		grid:  newGrid(size),
		start: start,
		exit:  exit,
	}
	if !m.IsInBounds(start.X, start.Y) || !m.IsInBounds(exit.X, exit.Y) {
		return nil, fmt.Errorf("%w: start %v or exit %v out of bounds", ErrMalformedSnapshot, start, exit)
	}

	for i, c := range cells {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown marker %v at index %d", ErrMalformedSnapshot, c, i)
		}
		p := Point{X: i / size, Y: i % size}
		if c == Exit && p != exit {
			return nil, fmt.Errorf("%w: second exit at %v", ErrMalformedSnapshot, p)
		}
		m.set(p, c)
	}

	if m.at(exit) != Exit {
		return nil, fmt.Errorf("%w: exit %v is not marked", ErrMalformedSnapshot, exit)
	}
	if m.at(start) == Wall {
		return nil, fmt.Errorf("%w: start %v is a wall", ErrMalformedSnapshot, start)
	}

	return m, nil
}

// checkSize rejects non-positive sizes and sizes outside any configured range.
func checkSize(size int, opts []Option) error {
	o := options{minSize: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if size <= 0 || size < o.minSize || (o.maxSize > 0 && size > o.maxSize) {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return nil
}

// newGrid allocates a padded grid of walls.
func newGrid(size int) [][]Marker {
	grid := make([][]Marker, size+1)
	for x := range grid {
		grid[x] = make([]Marker, size+1)
		for y := range grid[x] {
			grid[x][y] = Wall
		}
	}
	return grid
}

// randomEdgePoint picks a point on one of the four outer edges.
func randomEdgePoint(size int, rng Rand) Point {
	primaryOnX := rng.Intn(2) == 0
	primary := rng.Intn(size)
	secondary := 0
	if rng.Intn(2) == 1 {
		secondary = size - 1
	}

	if primaryOnX {
		return Point{X: primary, Y: secondary}
	}
	return Point{X: secondary, Y: primary}
}

// Size returns the side length of the maze.
func (m *Maze) Size() int {
	return m.size
}

// Start returns the start point.
func (m *Maze) Start() Point {
	return m.start
}

// Exit returns the exit point.
func (m *Maze) Exit() Point {
	return m.exit
}

// IsInBounds reports whether both coordinates lie in [0, size).
// The padding row and column are out of bounds.
func (m *Maze) IsInBounds(x, y int) bool {
	return x >= 0 && x < m.size && y >= 0 && y < m.size
}

// At returns the marker at (x, y).
// Callers must check IsInBounds first; no bounds check is made here.
func (m *Maze) At(x, y int) Marker {
	return m.grid[x][y]
}

// Set stores a marker at (x, y).
// Callers must check IsInBounds first; no bounds check is made here.
func (m *Maze) Set(x, y int, marker Marker) {
	m.grid[x][y] = marker
}

func (m *Maze) at(p Point) Marker {
	return m.grid[p.X][p.Y]
}

func (m *Maze) set(p Point, marker Marker) {
	m.grid[p.X][p.Y] = marker
}

// carve turns p into a path unless it holds the exit.
func (m *Maze) carve(p Point) {
	if m.at(p) != Exit {
		m.set(p, Path)
	}
}

// Cells returns a row-major copy of the size×size region, padding excluded.
func (m *Maze) Cells() []Marker {
	cells := make([]Marker, 0, m.size*m.size)
	for x := 0; x < m.size; x++ {
		cells = append(cells, m.grid[x][:m.size]...)
	}
	return cells
}

// Count returns how many in-bounds cells hold marker.
func (m *Maze) Count(marker Marker) int {
	n := 0
	for x := 0; x < m.size; x++ {
		for y := 0; y < m.size; y++ {
			if m.grid[x][y] == marker {
				n++
			}
		}
	}
	return n
}

// mustBeWellFormed panics if m cannot be walked safely.
func (m *Maze) mustBeWellFormed() {
	if m == nil {
		panic("maze: nil maze")
	}
	if len(m.grid) != m.size+1 {
		panic(fmt.Sprintf("maze: grid has %d rows, want %d", len(m.grid), m.size+1))
	}
	for x, row := range m.grid {
		if len(row) != m.size+1 {
			panic(fmt.Sprintf("maze: grid row %d has %d cells, want %d", x, len(row), m.size+1))
		}
	}
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Maze [size=%d start=%v exit=%v]\n", m.size, m.start, m.exit)

	border := "+" + strings.Repeat("-", m.size) + "+\n"
	b.WriteString(border)
	for x := 0; x < m.size; x++ {
		b.WriteByte('|')
		for y := 0; y < m.size; y++ {
			b.WriteRune(m.grid[x][y].Rune())
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)

	return b.String()
}
