package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/mazesolver/domain"
	"github.com/beka-birhanu/mazesolver/maze"
	"github.com/beka-birhanu/mazesolver/service/i"
	"github.com/google/uuid"
)

const (
	cacheKeyFmt = "%d:%d:%t"
)

var (
	ErrInvalidSizeRange = errors.New("invalid maze size range")
	ErrMissingLogger    = errors.New("logger is required")
	ErrMissingEncoder   = errors.New("encoder is required when a cache is configured")
)

// Config holds the dependencies and settings of a MazeService.
type Config struct {
	MinSize     int
	MaxSize     int
	ConnectExit bool // default for requests that leave it unset
	Cache       i.Cache
	Encoder     i.SnapshotEncoder
	Logger      i.Logger
	NewRand     func(seed int64) maze.Rand // defaults to math/rand
	NewSeed     func() int64               // defaults to the wall clock
}

// MazeService builds mazes, resolves their distance fields and caches the results.
type MazeService struct {
	minSize     int
	maxSize     int
	connectExit bool
	cache       i.Cache
	encoder     i.SnapshotEncoder
	logger      i.Logger
	newRand     func(int64) maze.Rand
	newSeed     func() int64
}

var _ i.MazeSolver = &MazeService{}

// NewMazeService validates c and returns a ready MazeService.
func NewMazeService(c *Config) (*MazeService, error) {
	if c.MinSize <= 0 || c.MaxSize < c.MinSize {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidSizeRange, c.MinSize, c.MaxSize)
	}
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}
	if c.Cache != nil && c.Encoder == nil {
		return nil, ErrMissingEncoder
	}

	s := &MazeService{
		minSize:     c.MinSize,
		maxSize:     c.MaxSize,
		connectExit: c.ConnectExit,
		cache:       c.Cache,
		encoder:     c.Encoder,
		logger:      c.Logger,
		newRand:     c.NewRand,
		newSeed:     c.NewSeed,
	}

	if s.cache == nil {
		s.cache = noCache{}
	}
	if s.newRand == nil {
		s.newRand = func(seed int64) maze.Rand {
			return rand.New(rand.NewSource(seed))
		}
	}
	if s.newSeed == nil {
		s.newSeed = func() int64 {
			return time.Now().UnixNano()
		}
	}

	return s, nil
}

// Limits implements i.MazeSolver.
func (s *MazeService) Limits() (int, int) {
	return s.minSize, s.maxSize
}

// Solve implements i.MazeSolver.
//
// A cached snapshot is used when present. Otherwise the maze is built under the
// cache build lock and stored. Cache failures are logged and skipped.
func (s *MazeService) Solve(ctx context.Context, req domain.SolveRequest) (*domain.Solution, error) {
	if err := s.checkSize(req.Size); err != nil {
		return nil, err
	}

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	connectExit := s.connectExit
	if req.ConnectExit != nil {
		connectExit = *req.ConnectExit
	}
	key := fmt.Sprintf(cacheKeyFmt, req.Size, seed, connectExit)

	if solution, ok := s.fromCache(ctx, key); ok {
		return solution, nil
	}

	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("taking build lock for %s: %s", key, err))
	} else {
		defer unlock()
		if solution, ok := s.fromCache(ctx, key); ok {
			return solution, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	solution, err := s.build(req.Size, seed, connectExit)
	if err != nil {
		s.logger.Error(fmt.Sprintf("building maze %s: %s", key, err))
		return nil, err
	}
	s.toCache(ctx, key, solution)

	s.logger.Info(fmt.Sprintf("solved maze %s: start distance %d", key, solution.StartDistance()))
	return solution, nil
}

// DistanceAt implements i.MazeSolver.
func (s *MazeService) DistanceAt(ctx context.Context, req domain.SolveRequest, p maze.Point) (int, error) {
	if err := s.checkSize(req.Size); err != nil {
		return maze.Unreached, err
	}
	if p.X < 0 || p.X >= req.Size || p.Y < 0 || p.Y >= req.Size {
		return maze.Unreached, fmt.Errorf("%w: %v in a maze of size %d", domain.ErrPointOutOfRange, p, req.Size)
	}

	solution, err := s.Solve(ctx, req)
	if err != nil {
		return maze.Unreached, err
	}
	return solution.Field.At(p), nil
}

func (s *MazeService) checkSize(size int) error {
	if size < s.minSize || size > s.maxSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", domain.ErrSizeOutOfRange, size, s.minSize, s.maxSize)
	}
	return nil
}

// build runs construction, carving and resolution in order.
func (s *MazeService) build(size int, seed int64, connectExit bool) (*domain.Solution, error) {
	rng := s.newRand(seed)

	m, err := maze.New(size, rng, maze.WithSizeRange(s.minSize, s.maxSize))
	if err != nil {
		return nil, err
	}

	var opts []maze.GeneratorOption
	if connectExit {
		opts = append(opts, maze.WithExitLink())
	}
	maze.NewGenerator(rng, opts...).Run(m)

	return &domain.Solution{
		ID:          uuid.New(),
		Seed:        seed,
		ConnectExit: connectExit,
		Maze:        m,
		Field:       maze.NewResolver().Run(m),
	}, nil
}

// fromCache restores a solution from its cached snapshot.
func (s *MazeService) fromCache(ctx context.Context, key string) (*domain.Solution, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("reading cached maze %s: %s", key, err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	snapshot, err := s.encoder.UnmarshalSnapshot(data)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("decoding cached maze %s: %s", key, err))
		return nil, false
	}

	m, err := maze.Restore(snapshot.Size, snapshot.Start, snapshot.Exit, snapshot.Cells, maze.WithSizeRange(s.minSize, s.maxSize))
	if err != nil {
		s.logger.Warning(fmt.Sprintf("restoring cached maze %s: %s", key, err))
		return nil, false
	}

	s.logger.Info(fmt.Sprintf("served maze %s from cache", key))
	return &domain.Solution{
		ID:          uuid.New(),
		Seed:        snapshot.Seed,
		ConnectExit: snapshot.ConnectExit,
		Cached:      true,
		Maze:        m,
		Field:       maze.Resolve(m),
	}, true
}

// toCache stores the solution snapshot, logging any failure.
func (s *MazeService) toCache(ctx context.Context, key string, solution *domain.Solution) {
	if _, ok := s.cache.(noCache); ok {
		return
	}

	data, err := s.encoder.MarshalSnapshot(solution.Snapshot())
	if err != nil {
		s.logger.Warning(fmt.Sprintf("encoding maze %s: %s", key, err))
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.Warning(fmt.Sprintf("caching maze %s: %s", key, err))
	}
}

// noCache is used when no cache is configured.
type noCache struct{}

func (noCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noCache) Set(context.Context, string, []byte) error         { return nil }
func (noCache) Lock(context.Context, string) (func(), error)      { return func() {}, nil }
