/*
Package maze provides tools for carving square grid mazes and measuring them.

A Maze is a square matrix of Markers (Wall, Path, Exit) with a start and an exit Point.
The exit always lies on the outer edge. The Generator carves a perfect maze with a
randomized depth-first backtracker that steps two cells at a time, and the Resolver
labels every cell reachable from the exit with its step distance to it.

Randomness is injected through the Rand interface so a seeded *rand.Rand gives
reproducible mazes.
*/
package maze
