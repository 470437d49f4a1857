package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/beka-birhanu/mazesolver/domain"
	"github.com/beka-birhanu/mazesolver/encoder/pb"
	"github.com/beka-birhanu/mazesolver/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLogger struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
}

func (l *memLogger) Info(string) {}

func (l *memLogger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *memLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	locks   int
	failGet bool
	failSet bool
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errors.New("cache down")
	}
	c.sets++
	c.data[key] = value
	return nil
}

func (c *memCache) Lock(context.Context, string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locks++
	return func() {}, nil
}

func newService(t *testing.T, c *Config) *MazeService {
	t.Helper()
	if c.MinSize == 0 {
		c.MinSize, c.MaxSize = 4, 60
	}
	if c.Logger == nil {
		c.Logger = &memLogger{}
	}
	s, err := NewMazeService(c)
	require.NoError(t, err)
	return s
}

func seed(v int64) *int64 { return &v }

func TestNewMazeService(t *testing.T) {
	_, err := NewMazeService(&Config{MinSize: 0, MaxSize: 10, Logger: &memLogger{}})
	assert.ErrorIs(t, err, ErrInvalidSizeRange)

	_, err = NewMazeService(&Config{MinSize: 20, MaxSize: 10, Logger: &memLogger{}})
	assert.ErrorIs(t, err, ErrInvalidSizeRange)

	_, err = NewMazeService(&Config{MinSize: 1, MaxSize: 10})
	assert.ErrorIs(t, err, ErrMissingLogger)

	_, err = NewMazeService(&Config{MinSize: 1, MaxSize: 10, Logger: &memLogger{}, Cache: newMemCache()})
	assert.ErrorIs(t, err, ErrMissingEncoder)

	s, err := NewMazeService(&Config{MinSize: 20, MaxSize: 100, Logger: &memLogger{}})
	require.NoError(t, err)
	minSize, maxSize := s.Limits()
	assert.Equal(t, 20, minSize)
	assert.Equal(t, 100, maxSize)
}

func TestSolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects sizes outside the limits", func(t *testing.T) {
		s := newService(t, &Config{MinSize: 20, MaxSize: 100})
		for _, size := range []int{0, 19, 101} {
			_, err := s.Solve(ctx, domain.SolveRequest{Size: size})
			assert.ErrorIs(t, err, domain.ErrSizeOutOfRange, "size %d", size)
		}
	})

	t.Run("Builds a carved and resolved maze", func(t *testing.T) {
		s := newService(t, &Config{})
		solution, err := s.Solve(ctx, domain.SolveRequest{Size: 21, Seed: seed(3)})
		require.NoError(t, err)

		assert.Equal(t, int64(3), solution.Seed)
		assert.False(t, solution.Cached)
		assert.Equal(t, 21, solution.Maze.Size())
		assert.Equal(t, 0, solution.Field.At(solution.Maze.Exit()))
		assert.Greater(t, solution.Maze.Count(maze.Path), 1)
	})

	t.Run("Is deterministic for a seed", func(t *testing.T) {
		s := newService(t, &Config{})
		a, err := s.Solve(ctx, domain.SolveRequest{Size: 30, Seed: seed(99)})
		require.NoError(t, err)
		b, err := s.Solve(ctx, domain.SolveRequest{Size: 30, Seed: seed(99)})
		require.NoError(t, err)

		assert.Equal(t, a.Maze.Cells(), b.Maze.Cells())
		assert.True(t, a.Field.Equal(b.Field))
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("Draws a seed when none is given", func(t *testing.T) {
		s := newService(t, &Config{NewSeed: func() int64 { return 77 }})
		solution, err := s.Solve(ctx, domain.SolveRequest{Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(77), solution.Seed)
	})

	t.Run("Links the exit when asked", func(t *testing.T) {
		s := newService(t, &Config{ConnectExit: true})
		for i := int64(0); i < 40; i++ {
			solution, err := s.Solve(ctx, domain.SolveRequest{Size: 4 + int(i), Seed: seed(i)})
			require.NoError(t, err)
			assert.True(t, solution.ConnectExit)
			assert.NotEqual(t, maze.Unreached, solution.StartDistance(), "seed %d", i)
		}

		off := false
		solution, err := s.Solve(ctx, domain.SolveRequest{Size: 10, Seed: seed(1), ConnectExit: &off})
		require.NoError(t, err)
		assert.False(t, solution.ConnectExit)
	})

	t.Run("Honours a cancelled context", func(t *testing.T) {
		s := newService(t, &Config{})
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.Solve(cancelled, domain.SolveRequest{Size: 10, Seed: seed(1)})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSolveCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Serves repeated requests from the cache", func(t *testing.T) {
		cache := newMemCache()
		s := newService(t, &Config{Cache: cache, Encoder: &pb.Protobuf{}})

		first, err := s.Solve(ctx, domain.SolveRequest{Size: 25, Seed: seed(8)})
		require.NoError(t, err)
		assert.False(t, first.Cached)
		assert.Equal(t, 1, cache.sets)
		assert.Contains(t, cache.data, "25:8:false")

		second, err := s.Solve(ctx, domain.SolveRequest{Size: 25, Seed: seed(8)})
		require.NoError(t, err)
		assert.True(t, second.Cached)
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 1, cache.locks)

		assert.Equal(t, first.Maze.String(), second.Maze.String())
		assert.True(t, first.Field.Equal(second.Field))
		assert.Equal(t, first.Seed, second.Seed)
	})

	t.Run("Keys on the exit setting", func(t *testing.T) {
		cache := newMemCache()
		s := newService(t, &Config{Cache: cache, Encoder: &pb.Protobuf{}})
		on := true

		_, err := s.Solve(ctx, domain.SolveRequest{Size: 12, Seed: seed(2)})
		require.NoError(t, err)
		linked, err := s.Solve(ctx, domain.SolveRequest{Size: 12, Seed: seed(2), ConnectExit: &on})
		require.NoError(t, err)

		assert.False(t, linked.Cached)
		assert.Len(t, cache.data, 2)
	})

	t.Run("Falls back to building when the cache fails", func(t *testing.T) {
		cache := newMemCache()
		cache.failGet = true
		cache.failSet = true
		log := &memLogger{}
		s := newService(t, &Config{Cache: cache, Encoder: &pb.Protobuf{}, Logger: log})

		solution, err := s.Solve(ctx, domain.SolveRequest{Size: 12, Seed: seed(4)})
		require.NoError(t, err)
		assert.False(t, solution.Cached)
		assert.NotEmpty(t, log.warnings)
		assert.Empty(t, log.errors)
	})

	t.Run("Rebuilds over an entry sized outside the limits", func(t *testing.T) {
		enc := &pb.Protobuf{}
		cache := newMemCache()
		log := &memLogger{}
		s := newService(t, &Config{Cache: cache, Encoder: enc, Logger: log})

		for _, size := range []int{1 << 32, 1000, 2} {
			b, err := enc.MarshalSnapshot(&domain.Snapshot{Size: size, Seed: 4})
			require.NoError(t, err)
			cache.data["12:4:false"] = b

			var solution *domain.Solution
			require.NotPanics(t, func() {
				solution, err = s.Solve(ctx, domain.SolveRequest{Size: 12, Seed: seed(4)})
			})
			require.NoError(t, err)
			assert.False(t, solution.Cached, "size %d", size)
			assert.Equal(t, 12, solution.Maze.Size())
		}
		assert.NotEmpty(t, log.warnings)
	})

	t.Run("Rebuilds over a corrupt entry", func(t *testing.T) {
		cache := newMemCache()
		cache.data["12:4:false"] = []byte{0xff, 0xff}
		log := &memLogger{}
		s := newService(t, &Config{Cache: cache, Encoder: &pb.Protobuf{}, Logger: log})

		solution, err := s.Solve(ctx, domain.SolveRequest{Size: 12, Seed: seed(4)})
		require.NoError(t, err)
		assert.False(t, solution.Cached)
		assert.NotEmpty(t, log.warnings)
		assert.Equal(t, 1, cache.sets)
	})
}

func TestDistanceAt(t *testing.T) {
	ctx := context.Background()
	s := newService(t, &Config{})
	req := domain.SolveRequest{Size: 15, Seed: seed(6)}

	solution, err := s.Solve(ctx, req)
	require.NoError(t, err)

	d, err := s.DistanceAt(ctx, req, solution.Maze.Exit())
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = s.DistanceAt(ctx, req, solution.Maze.Start())
	require.NoError(t, err)
	assert.Equal(t, solution.StartDistance(), d)

	for _, p := range []maze.Point{{X: -1}, {X: 15}, {Y: 15}} {
		_, err = s.DistanceAt(ctx, req, p)
		assert.ErrorIs(t, err, domain.ErrPointOutOfRange)
	}

	_, err = s.DistanceAt(ctx, domain.SolveRequest{Size: 100}, maze.Point{})
	assert.ErrorIs(t, err, domain.ErrSizeOutOfRange)

	_, err = s.DistanceAt(ctx, domain.SolveRequest{Size: 100}, maze.Point{X: 200})
	assert.ErrorIs(t, err, domain.ErrSizeOutOfRange)
	assert.NotErrorIs(t, err, domain.ErrPointOutOfRange)
}
