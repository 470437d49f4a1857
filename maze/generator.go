package maze

// carveOffsets are the generator's two-cell steps. X is the rendered row and Y the
// column, so in drawn order they go left, right, up, down.
// Every other row and column is a wall slot between true cells.
var carveOffsets = [4]Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithExitLink makes the generator open a wall next to the exit when carving
// left the exit sealed off.
func WithExitLink() GeneratorOption {
	return func(g *Generator) {
		g.linkExit = true
	}
}

// Generator carves passages with a randomized depth-first backtracker.
type Generator struct {
	rng      Rand
	linkExit bool
}

// NewGenerator returns a Generator drawing its choices from rng.
func NewGenerator(rng Rand, opts ...GeneratorOption) *Generator {
	g := &Generator{rng: rng}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run carves m in place, starting from its start point.
//
// Cells two steps apart are joined by carving both the destination and the wall
// slot between them, so the carved cells form a spanning tree. The exit counts as
// unvisited until it is first stepped onto and is never overwritten.
func (g *Generator) Run(m *Maze) {
	m.mustBeWellFormed()

	exitVisited := m.start == m.exit
	m.carve(m.start)

	stack := []Point{m.start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]

		neighbours := g.unvisitedNeighbours(m, current, exitVisited)
		if len(neighbours) == 0 {
			pop(&stack)
			continue
		}

		next := neighbours[g.rng.Intn(len(neighbours))]
		m.carve(current.midpoint(next))
		m.carve(next)
		if next == m.exit {
			exitVisited = true
		}
		stack = append(stack, next)
	}

	if g.linkExit {
		g.openExit(m)
	}
}

// unvisitedNeighbours lists the in-bounds cells two steps from p that still hold
// a wall, plus the exit while it has not been visited.
func (g *Generator) unvisitedNeighbours(m *Maze, p Point, exitVisited bool) []Point {
	neighbours := make([]Point, 0, len(carveOffsets))
	for _, d := range carveOffsets {
		n := p.add(d)
		if !m.IsInBounds(n.X, n.Y) {
			continue
		}
		switch m.at(n) {
		case Wall:
			neighbours = append(neighbours, n)
		case Exit:
			if !exitVisited {
				neighbours = append(neighbours, n)
			}
		}
	}
	return neighbours
}

// openExit carves one wall next to the exit if none of its neighbours is open.
// A wall touching exactly one open cell is preferred since it adds no cycle.
func (g *Generator) openExit(m *Maze) {
	var single, multi []Point
	for _, d := range stepOffsets {
		n := m.exit.add(d)
		if !m.IsInBounds(n.X, n.Y) {
			continue
		}
		if m.at(n) != Wall {
			return
		}

		switch openAround(m, n, m.exit) {
		case 0:
		case 1:
			single = append(single, n)
		default:
			multi = append(multi, n)
		}
	}

	switch {
	case len(single) > 0:
		m.carve(single[g.rng.Intn(len(single))])
	case len(multi) > 0:
		m.carve(multi[g.rng.Intn(len(multi))])
	}
}

// openAround counts the open in-bounds neighbours of p, ignoring skip.
func openAround(m *Maze, p, skip Point) int {
	open := 0
	for _, d := range stepOffsets {
		n := p.add(d)
		if n == skip || !m.IsInBounds(n.X, n.Y) {
			continue
		}
		if m.at(n) != Wall {
			open++
		}
	}
	return open
}

// pop removes and returns the last element of a stack of points.
func pop(s *[]Point) Point {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
