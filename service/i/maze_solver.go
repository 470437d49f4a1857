package i

import (
	"context"

	"github.com/beka-birhanu/mazesolver/domain"
	"github.com/beka-birhanu/mazesolver/maze"
)

// MazeSolver builds mazes and answers distance queries about them.
type MazeSolver interface {
	// Limits returns the accepted maze size range.
	Limits() (min, max int)

	// Solve builds, carves and resolves the requested maze.
	Solve(context.Context, domain.SolveRequest) (*domain.Solution, error)

	// DistanceAt returns the distance from a point of the requested maze to its exit.
	DistanceAt(context.Context, domain.SolveRequest, maze.Point) (int, error)
}
