package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beka-birhanu/mazesolver/domain"
	"github.com/beka-birhanu/mazesolver/maze"
)

var errInvalidEntry = errors.New("invalid entry")

// parseSize reads a maze size and checks it against [minSize, maxSize].
func parseSize(raw string, minSize, maxSize int) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errInvalidEntry, raw)
	}
	if size < minSize || size > maxSize {
		return 0, fmt.Errorf("%w: %d not in %d-%d", errInvalidEntry, size, minSize, maxSize)
	}
	return size, nil
}

// sizeFromArg parses a command line size, falling back to defaultSize with a notice.
func sizeFromArg(arg string, minSize, maxSize, defaultSize int, out io.Writer) int {
	size, err := parseSize(arg, minSize, maxSize)
	if err != nil {
		fmt.Fprintf(out, "Invalid parameter in command line - Defaulting to %d\n", defaultSize)
		return defaultSize
	}
	fmt.Fprintln(out, "-- Launching from argument --")
	return size
}

// promptSize asks for a size until a valid one is entered. When the input ends
// first, defaultSize is used.
func promptSize(in io.Reader, out io.Writer, minSize, maxSize, defaultSize int) int {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Enter a number (%d-%d) for initial maze size: ", minSize, maxSize)
		if !scanner.Scan() {
			fmt.Fprintf(out, "\nNo input - Defaulting to %d\n", defaultSize)
			return defaultSize
		}

		size, err := parseSize(scanner.Text(), minSize, maxSize)
		if err == nil {
			return size
		}
		fmt.Fprintln(out, "Invalid entry, try again")
	}
}

// printSolution writes the maze, its distance table and the start distance.
func printSolution(out io.Writer, s *domain.Solution) {
	fmt.Fprintln(out, s.Maze)
	fmt.Fprint(out, s.Field.Render(s.Maze))
	fmt.Fprintln(out)

	start := s.Maze.Start()
	if d := s.StartDistance(); d != maze.Unreached {
		fmt.Fprintf(out, "Distance from start %v to exit: %d steps (seed %d)\n", start, d, s.Seed)
		return
	}
	fmt.Fprintf(out, "Exit is not reachable from start %v (seed %d)\n", start, s.Seed)
}
