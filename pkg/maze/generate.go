package maze

import (
	"math/rand/v2"
	"strings"

	"github.com/fruitnuke/maze/pkg/errors"
)

// Source is the random source a generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniformly distributed int in [0, n). n > 0.
	IntN(n int) int
}

// NewRand returns a PCG-backed source seeded from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Algorithm selects a generator.
type Algorithm string

const (
	AlgorithmFloodFill Algorithm = "floodfill"
	AlgorithmKruskal   Algorithm = "kruskal"
)

// DefaultAlgorithm is used when none is requested.
const DefaultAlgorithm = AlgorithmFloodFill

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{AlgorithmFloodFill, AlgorithmKruskal}

// ParseAlgorithm resolves an algorithm name, case-insensitively.
// "flood" and "dfs" are accepted for flood-fill. An empty name yields
// DefaultAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultAlgorithm, nil
	case "floodfill", "flood", "dfs":
		return AlgorithmFloodFill, nil
	case "kruskal":
		return AlgorithmKruskal, nil
	}
	return "", errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q (want floodfill or kruskal)", name)
}

// Generate runs the generator selected by alg.
func Generate(alg Algorithm, width, height int, rng Source) (*Grid, error) {
	switch alg {
	case AlgorithmFloodFill:
		return FloodFill(width, height, rng)
	case AlgorithmKruskal:
		return Kruskal(width, height, rng)
	}
	return nil, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q", alg)
}
