package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	studentIDMin  = 1000
	studentIDSpan = 9000
)

// IDGenerator produces enrollment identifiers of the form STD-<year>-<NNNN>.
// Uniqueness is not checked against the roster; with 9000 values per year collisions are possible.
type IDGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewIDGenerator builds a generator seeded with seed. A zero seed uses the current time.
func NewIDGenerator(seed int64) *IDGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &IDGenerator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns an identifier for currentYear with a number drawn uniformly from [1000, 9999].
func (g *IDGenerator) Generate(currentYear int) string {
	g.mu.Lock()
	n := studentIDMin + g.rnd.Intn(studentIDSpan)
	g.mu.Unlock()
	return fmt.Sprintf("STD-%d-%d", currentYear, n)
}
