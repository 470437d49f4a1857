package maze

import "fmt"

// Marker is the content of a single grid cell.
type Marker byte

const (
	Wall Marker = '#' // Wall is an uncarved cell.
	Path Marker = '.' // Path is a carved, walkable cell.
	Exit Marker = 'X' // Exit marks the maze exit. It is walkable and never overwritten.
)

// Rune returns the character used to draw the marker.
func (m Marker) Rune() rune {
	return rune(m)
}

func (m Marker) String() string {
	switch m {
	case Wall, Path, Exit:
		return string(m.Rune())
	default:
		return fmt.Sprintf("Marker(%d)", byte(m))
	}
}

// Valid reports whether m is one of the three known markers.
func (m Marker) Valid() bool {
	return m == Wall || m == Path || m == Exit
}

// Point is an immutable pair of grid coordinates.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// add returns p moved by the offset d.
func (p Point) add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// midpoint returns the cell halfway between p and q.
func (p Point) midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}
