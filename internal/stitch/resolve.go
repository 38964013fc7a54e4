package stitch

import (
	"fmt"
	"sort"
)

// Verdict tells how an OffsetInfo was decided.
type Verdict string

const (
	// VerdictMatched means a credible share of the matches agree on the
	// scroll distance.
	VerdictMatched Verdict = "matched"

	// VerdictIdentical means almost every match has distance 0: the view
	// did not scroll between the two frames.
	VerdictIdentical Verdict = "identical"

	// VerdictNoConsensus means no distance is shared by enough matches,
	// including the case of no matches at all.
	VerdictNoConsensus Verdict = "no-consensus"
)

// OffsetInfo is the splice line between two consecutive frames. Content of
// the upper frame from Y1 down and of the lower frame above Y2 is
// duplicated. {0, 0} means no usable overlap.
type OffsetInfo struct {
	Y1      float64 `json:"y1"`
	Y2      float64 `json:"y2"`
	Verdict Verdict `json:"verdict"`
}

// OffsetY returns Y2 - Y1, the vertical shift this pair adds.
func (o OffsetInfo) OffsetY() float64 {
	return o.Y2 - o.Y1
}

// IsSentinel reports whether o is the "no overlap" value.
func (o OffsetInfo) IsSentinel() bool {
	return o.Y1 == 0 && o.Y2 == 0
}

func (o OffsetInfo) String() string {
	return fmt.Sprintf("{y1:%g y2:%g %s}", o.Y1, o.Y2, o.Verdict)
}

// Resolver decides the splice line from a MatchResult.
type Resolver struct {
	// ZeroFraction: more than this share of zero-distance matches means the
	// frames are identical.
	ZeroFraction float64

	// ConsensusFraction: the dominant distance must be carried by more than
	// this share of all matches.
	ConsensusFraction float64
}

// DefaultResolver returns the thresholds tuned for screen recordings.
func DefaultResolver() Resolver {
	return Resolver{
		ZeroFraction:      0.9,
		ConsensusFraction: 0.1,
	}
}

// Resolve returns the splice line of the topmost match that agrees with the
// dominant distance, or the sentinel.
func (r Resolver) Resolve(m MatchResult) OffsetInfo {
	total := float64(len(m.Matches))

	zero := 0
	for _, match := range m.Matches {
		if match.Distance == 0 {
			zero++
		}
	}
	if float64(zero) > r.ZeroFraction*total {
		return OffsetInfo{Verdict: VerdictIdentical}
	}

	agreeing := make([]Match, 0)
	for _, match := range m.Matches {
		if match.Distance == m.Dominant {
			agreeing = append(agreeing, match)
		}
	}
	sort.SliceStable(agreeing, func(i, j int) bool {
		return agreeing[i].A.Center.Y < agreeing[j].A.Center.Y
	})

	if len(agreeing) > 0 && float64(len(agreeing)) > r.ConsensusFraction*total {
		top := agreeing[0]
		return OffsetInfo{Y1: top.A.Center.Y, Y2: top.B.Center.Y, Verdict: VerdictMatched}
	}

	return OffsetInfo{Verdict: VerdictNoConsensus}
}
