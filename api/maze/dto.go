// Package mazeapi provides the request and response bodies of the maze endpoints.
package mazeapi

import (
	"strings"

	"github.com/beka-birhanu/mazesolver/domain"
	"github.com/beka-birhanu/mazesolver/maze"
)

// SolveRequest is the body of a maze build request.
type SolveRequest struct {
	Size        int    `json:"size" binding:"required"`
	Seed        *int64 `json:"seed"`
	ConnectExit *bool  `json:"connect_exit"`
}

// DistanceQuery holds the query parameters of a point lookup.
type DistanceQuery struct {
	Size        int    `form:"size" binding:"required"`
	Seed        *int64 `form:"seed"`
	ConnectExit *bool  `form:"connect_exit"`
	X           *int   `form:"x" binding:"required"`
	Y           *int   `form:"y" binding:"required"`
}

// LimitsResponse reports the accepted maze sizes.
type LimitsResponse struct {
	MinSize int `json:"min_size"`
	MaxSize int `json:"max_size"`
}

// PointDTO is a maze coordinate.
type PointDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SolutionResponse is the JSON form of a solved maze.
type SolutionResponse struct {
	ID            string   `json:"id"`
	Size          int      `json:"size"`
	Seed          int64    `json:"seed"`
	ConnectExit   bool     `json:"connect_exit"`
	Cached        bool     `json:"cached"`
	Start         PointDTO `json:"start"`
	Exit          PointDTO `json:"exit"`
	StartDistance int      `json:"start_distance"`
	Reachable     bool     `json:"reachable"`
	Grid          []string `json:"grid"`
	Distances     [][]int  `json:"distances"`
	Rendering     string   `json:"rendering"`
}

// DistanceResponse answers a point lookup.
type DistanceResponse struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Distance  int  `json:"distance"`
	Reachable bool `json:"reachable"`
}

func newSolutionResponse(s *domain.Solution) *SolutionResponse {
	size := s.Maze.Size()
	cells := s.Maze.Cells()

	grid := make([]string, size)
	for x := range grid {
		var b strings.Builder
		for _, c := range cells[x*size : (x+1)*size] {
			b.WriteRune(c.Rune())
		}
		grid[x] = b.String()
	}

	start := s.StartDistance()
	return &SolutionResponse{
		ID:            s.ID.String(),
		Size:          size,
		Seed:          s.Seed,
		ConnectExit:   s.ConnectExit,
		Cached:        s.Cached,
		Start:         toPointDTO(s.Maze.Start()),
		Exit:          toPointDTO(s.Maze.Exit()),
		StartDistance: start,
		Reachable:     start != maze.Unreached,
		Grid:          grid,
		Distances:     s.Field.Rows(),
		Rendering:     s.Field.Render(s.Maze),
	}
}

func toPointDTO(p maze.Point) PointDTO {
	return PointDTO{X: p.X, Y: p.Y}
}
