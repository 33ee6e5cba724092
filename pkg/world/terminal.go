package world

import "context"

// Terminal is the line-based collaborator the game reads player input from
// and writes output to. ReadLine blocks until a full line is available.
type Terminal interface {
	ReadLine(ctx context.Context) (string, error)
	WriteLine(line string) error
}

// Rand picks challenge indexes. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Collector receives the name of a room the moment it is solved.
type Collector interface {
	Collect(roomName string)
}
