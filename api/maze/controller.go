package mazeapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/beka-birhanu/mazesolver/domain"
	"github.com/beka-birhanu/mazesolver/encoder/pb"
	"github.com/beka-birhanu/mazesolver/maze"
	"github.com/beka-birhanu/mazesolver/service/i"
	"github.com/gin-gonic/gin"
)

// ProtobufContentType is the media type answered with an encoded snapshot.
const ProtobufContentType = pb.ContentType

var (
	ErrNilSolver  = errors.New("maze solver is nil")
	ErrNilEncoder = errors.New("snapshot encoder is nil")
	ErrNilLogger  = errors.New("logger is nil")
)

// MazeController serves maze builds and distance lookups.
type MazeController struct {
	solver  i.MazeSolver
	encoder i.SnapshotEncoder
	logger  i.Logger
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeSolver, e i.SnapshotEncoder, l i.Logger) (*MazeController, error) {
	switch {
	case ms == nil:
		return nil, ErrNilSolver
	case e == nil:
		return nil, ErrNilEncoder
	case l == nil:
		return nil, ErrNilLogger
	}

	return &MazeController{
		solver:  ms,
		encoder: e,
		logger:  l,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/mazes/limits", mc.limits)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.solve)
		mazes.GET("/distance", mc.distance)
	}
}

// limits reports the accepted maze sizes.
func (mc *MazeController) limits(ctx *gin.Context) {
	minSize, maxSize := mc.solver.Limits()
	ctx.JSON(http.StatusOK, &LimitsResponse{MinSize: minSize, MaxSize: maxSize})
}

// solve builds and resolves a maze.
func (mc *MazeController) solve(ctx *gin.Context) {
	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	solution, err := mc.solver.Solve(ctx.Request.Context(), domain.SolveRequest{
		Size:        request.Size,
		Seed:        request.Seed,
		ConnectExit: request.ConnectExit,
	})
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	if strings.Contains(ctx.GetHeader("Accept"), ProtobufContentType) {
		data, err := mc.encoder.MarshalSnapshot(solution.Snapshot())
		if err != nil {
			mc.fail(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, ProtobufContentType, data)
		return
	}

	ctx.JSON(http.StatusOK, newSolutionResponse(solution))
}

// distance answers a single point lookup.
func (mc *MazeController) distance(ctx *gin.Context) {
	var query DistanceQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := maze.Point{X: *query.X, Y: *query.Y}
	d, err := mc.solver.DistanceAt(ctx.Request.Context(), domain.SolveRequest{
		Size:        query.Size,
		Seed:        query.Seed,
		ConnectExit: query.ConnectExit,
	}, p)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &DistanceResponse{
		X:         p.X,
		Y:         p.Y,
		Distance:  d,
		Reachable: d != maze.Unreached,
	})
}

// fail maps request errors to 400 and everything else to 500.
func (mc *MazeController) fail(ctx *gin.Context, err error) {
	if errors.Is(err, domain.ErrSizeOutOfRange) || errors.Is(err, domain.ErrPointOutOfRange) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mc.logger.Error(fmt.Sprintf("%s %s: %s", ctx.Request.Method, ctx.Request.URL.Path, err))
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while solving maze"})
}
