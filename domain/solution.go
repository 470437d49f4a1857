// Package domain holds the types shared by the maze service, its adapters and its API.
package domain

import (
	"errors"

	"github.com/beka-birhanu/mazesolver/maze"
	"github.com/google/uuid"
)

var (
	ErrSizeOutOfRange  = errors.New("maze size out of range")
	ErrPointOutOfRange = errors.New("point outside the maze")
)

// SolveRequest describes the maze to build. The same size, seed and exit
// setting always produce the same maze.
type SolveRequest struct {
	Size        int
	Seed        *int64 // nil picks a fresh seed
	ConnectExit *bool  // nil uses the service default
}

// Solution is a generated maze together with its distance field.
type Solution struct {
	ID          uuid.UUID
	Seed        int64
	ConnectExit bool
	Cached      bool // served from the solution cache
	Maze        *maze.Maze
	Field       *maze.DistanceField
}

// StartDistance returns the number of steps from the start to the exit, or
// maze.Unreached when they are not connected.
func (s *Solution) StartDistance() int {
	return s.Field.At(s.Maze.Start())
}

// Snapshot flattens the solution for encoding.
func (s *Solution) Snapshot() *Snapshot {
	distances := make([]int, 0, s.Field.Size()*s.Field.Size())
	for _, row := range s.Field.Rows() {
		distances = append(distances, row...)
	}

	return &Snapshot{
		Size:        s.Maze.Size(),
		Seed:        s.Seed,
		ConnectExit: s.ConnectExit,
		Start:       s.Maze.Start(),
		Exit:        s.Maze.Exit(),
		Cells:       s.Maze.Cells(),
		Distances:   distances,
	}
}

// Snapshot is the flat, encodable form of a Solution.
type Snapshot struct {
	Size        int
	Seed        int64
	ConnectExit bool
	Start       maze.Point
	Exit        maze.Point
	Cells       []maze.Marker // row-major, Size*Size entries
	Distances   []int         // row-major, Size*Size entries
}
