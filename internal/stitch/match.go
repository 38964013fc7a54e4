package stitch

import (
	"math"

	"github.com/ironsheep/long-screenshot-mcp/internal/shapes"
)

// Match pairs a shape of the upper frame with its counterpart in the lower
// frame.
type Match struct {
	A shapes.Shape `json:"a"`
	B shapes.Shape `json:"b"`

	// Distance is B.Center.Y - A.Center.Y. It is negative when the content
	// moved up, which is the usual direction of a downward scroll.
	Distance float64 `json:"distance"`
}

// MatchResult is the output of MatchShapes.
type MatchResult struct {
	// Matches holds one entry per shape of A that found a partner, in the
	// order of A.
	Matches []Match `json:"matches"`

	// Dominant is the most frequent non-zero distance, or 0 when every
	// match has distance 0 or there are no matches.
	Dominant float64 `json:"dominant"`
}

// distanceTally counts non-zero distances and tracks the most frequent one.
// On ties the distance that reached the count first wins.
type distanceTally struct {
	counts    map[float64]int
	best      float64
	bestCount int
}

func newDistanceTally() *distanceTally {
	return &distanceTally{counts: make(map[float64]int)}
}

func (t *distanceTally) add(d float64) {
	if d == 0 {
		return
	}
	t.counts[d]++
	if t.counts[d] > t.bestCount {
		t.bestCount = t.counts[d]
		t.best = d
	}
}

// MatchShapes pairs every shape of a with the nearest shape of b sharing its
// key. Nearness is |ΔY|; among equally near candidates the earliest in b is
// chosen. Shapes of a without a candidate are left out.
func MatchShapes(a, b []shapes.Shape) MatchResult {
	byKey := make(map[shapes.Key][]int, len(b))
	for i, s := range b {
		k := s.Key()
		byKey[k] = append(byKey[k], i)
	}

	tally := newDistanceTally()
	matches := make([]Match, 0)

	for _, sa := range a {
		candidates := byKey[sa.Key()]
		if len(candidates) == 0 {
			continue
		}

		nearest := candidates[0]
		nearestDist := math.Abs(b[nearest].Center.Y - sa.Center.Y)
		for _, i := range candidates[1:] {
			if d := math.Abs(b[i].Center.Y - sa.Center.Y); d < nearestDist {
				nearest, nearestDist = i, d
			}
		}

		m := Match{A: sa, B: b[nearest], Distance: b[nearest].Center.Y - sa.Center.Y}
		matches = append(matches, m)
		tally.add(m.Distance)
	}

	return MatchResult{Matches: matches, Dominant: tally.best}
}
