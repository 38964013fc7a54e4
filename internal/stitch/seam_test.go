package stitch

import "testing"

func TestMeasureSeams(t *testing.T) {
	frames := colorFrames(t, red, red, blue)
	offsets := []OffsetInfo{
		{Y1: 60, Y2: 10, Verdict: VerdictMatched},
		{Y1: 50, Y2: 20, Verdict: VerdictMatched},
	}

	seams := MeasureSeams(frames, offsets)

	if len(seams) != 2 {
		t.Fatalf("got %d seams, want 2", len(seams))
	}
	if seams[0].Pair != 0 || seams[0].Y1 != 60 || seams[0].Y2 != 10 {
		t.Errorf("seam 0 = %+v, want pair 0 at 60/10", seams[0])
	}
	if seams[0].Difference != 0 {
		t.Errorf("seam 0 difference = %v, want 0 for equal frames", seams[0].Difference)
	}
	if seams[1].Difference <= 0 {
		t.Errorf("seam 1 difference = %v, want > 0 for red against blue", seams[1].Difference)
	}
}

func TestMeasureSeams_SkipsSentinels(t *testing.T) {
	frames := colorFrames(t, red, green, blue)
	offsets := []OffsetInfo{
		{Verdict: VerdictNoConsensus},
		{Y1: 99, Y2: 30, Verdict: VerdictMatched},
	}

	seams := MeasureSeams(frames, offsets)

	if len(seams) != 1 || seams[0].Pair != 1 {
		t.Fatalf("seams = %+v, want only pair 1", seams)
	}
}
