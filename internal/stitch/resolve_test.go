package stitch

import "testing"

// matchesWith builds a MatchResult from distances, with A rows 10 px apart
// from top to bottom.
func matchesWith(distances ...float64) MatchResult {
	ms := make([]Match, len(distances))
	for i, d := range distances {
		a := shapeAt(float64(i+1), float64(100+10*i))
		b := shapeAt(float64(i+1), a.Center.Y+d)
		ms[i] = Match{A: a, B: b, Distance: d}
	}
	return MatchResult{Matches: ms, Dominant: dominantOf(ms)}
}

func dominantOf(ms []Match) float64 {
	tally := newDistanceTally()
	for _, m := range ms {
		tally.add(m.Distance)
	}
	return tally.best
}

func repeat(d float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = d
	}
	return out
}

func TestResolve_Consensus(t *testing.T) {
	// 17 zero matches (85%) and 3 agreeing on -40 (15%).
	distances := append(repeat(0, 17), repeat(-40, 3)...)

	got := DefaultResolver().Resolve(matchesWith(distances...))

	// The topmost agreeing match is the 18th, at A.y = 100 + 17*10.
	want := OffsetInfo{Y1: 270, Y2: 230, Verdict: VerdictMatched}
	if got != want {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolve_Identical(t *testing.T) {
	// 19 zero matches (95%) beat any non-zero consensus.
	distances := append(repeat(0, 19), -40)

	got := DefaultResolver().Resolve(matchesWith(distances...))

	if !got.IsSentinel() || got.Verdict != VerdictIdentical {
		t.Errorf("Resolve() = %v, want identical sentinel", got)
	}
}

func TestResolve_NoConsensus(t *testing.T) {
	tests := []struct {
		name      string
		distances []float64
	}{
		{"no matches", nil},
		{"all distinct", []float64{-1, -2, -3, -4, -5, -6, -7, -8, -9, -10, -11, -12, -13, -14, -15, -16, -17, -18, -19, -20}},
		{"exactly ten percent", append([]float64{-5, -5}, -1, -2, -3, -4, -6, -7, -8, -9, -10, -11, -12, -13, -14, -15, -16, -17, -18, -19)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultResolver().Resolve(matchesWith(tt.distances...))
			if !got.IsSentinel() || got.Verdict != VerdictNoConsensus {
				t.Errorf("Resolve() = %v, want no-consensus sentinel", got)
			}
		})
	}
}

func TestResolve_TopmostAgreeing(t *testing.T) {
	res := MatchResult{
		Matches: []Match{
			{A: shapeAt(1, 300), B: shapeAt(1, 250), Distance: -50},
			{A: shapeAt(2, 120), B: shapeAt(2, 70), Distance: -50},
			{A: shapeAt(3, 40), B: shapeAt(3, 30), Distance: -10},
			{A: shapeAt(4, 200), B: shapeAt(4, 150), Distance: -50},
		},
		Dominant: -50,
	}

	got := DefaultResolver().Resolve(res)

	want := OffsetInfo{Y1: 120, Y2: 70, Verdict: VerdictMatched}
	if got != want {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolver_Thresholds(t *testing.T) {
	distances := append(repeat(0, 17), repeat(-40, 3)...)

	strict := Resolver{ZeroFraction: 0.8, ConsensusFraction: 0.1}
	if got := strict.Resolve(matchesWith(distances...)); got.Verdict != VerdictIdentical {
		t.Errorf("ZeroFraction 0.8: verdict %s, want identical", got.Verdict)
	}

	demanding := Resolver{ZeroFraction: 0.9, ConsensusFraction: 0.2}
	if got := demanding.Resolve(matchesWith(distances...)); got.Verdict != VerdictNoConsensus {
		t.Errorf("ConsensusFraction 0.2: verdict %s, want no-consensus", got.Verdict)
	}
}

func TestOffsetInfo(t *testing.T) {
	o := OffsetInfo{Y1: 60, Y2: 10, Verdict: VerdictMatched}
	if o.OffsetY() != -50 {
		t.Errorf("OffsetY() = %v, want -50", o.OffsetY())
	}
	if o.IsSentinel() {
		t.Error("IsSentinel() = true for a real offset")
	}
	if !(OffsetInfo{}).IsSentinel() {
		t.Error("IsSentinel() = false for the zero value")
	}
}
