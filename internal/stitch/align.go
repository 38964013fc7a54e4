package stitch

import (
	"context"
	"image"

	"github.com/ironsheep/long-screenshot-mcp/internal/shapes"
)

// PairRequest carries what is needed to align one pair of frames. Shapes
// already known for a frame are passed along so they are not extracted
// again; nil means unknown.
type PairRequest struct {
	A, B    image.Image
	ShapesA []shapes.Shape
	ShapesB []shapes.Shape
}

// PairResult is the outcome of aligning one pair. It returns the shapes of
// both frames so the caller can cache them.
type PairResult struct {
	Offset  OffsetInfo
	Matches MatchResult
	ShapesA []shapes.Shape
	ShapesB []shapes.Shape

	// Extracted counts the frames whose shapes had to be computed.
	Extracted int
}

// PairAligner runs the pair alignment, either in place or elsewhere.
type PairAligner interface {
	AlignPair(ctx context.Context, req PairRequest) (PairResult, error)
}

// alignPair is the alignment of one pair. Every PairAligner calls it.
//
// An extraction failure leaves that frame without shapes, which resolves to
// the sentinel. It is not an error.
func alignPair(e shapes.Extractor, r Resolver, req PairRequest) PairResult {
	var res PairResult

	res.ShapesA = req.ShapesA
	if res.ShapesA == nil {
		res.ShapesA = extractOrEmpty(e, req.A)
		res.Extracted++
	}
	res.ShapesB = req.ShapesB
	if res.ShapesB == nil {
		res.ShapesB = extractOrEmpty(e, req.B)
		res.Extracted++
	}

	res.Matches = MatchShapes(res.ShapesA, res.ShapesB)
	res.Offset = r.Resolve(res.Matches)
	return res
}

func extractOrEmpty(e shapes.Extractor, img image.Image) []shapes.Shape {
	s, err := e.Extract(img)
	if err != nil || s == nil {
		return []shapes.Shape{}
	}
	return s
}

// InProcess aligns pairs on the calling goroutine.
type InProcess struct {
	extractor shapes.Extractor
	resolver  Resolver
}

// NewInProcess creates a synchronous aligner.
func NewInProcess(e shapes.Extractor, r Resolver) *InProcess {
	return &InProcess{extractor: e, resolver: r}
}

// AlignPair aligns req immediately. The context is only checked before
// starting.
func (p *InProcess) AlignPair(ctx context.Context, req PairRequest) (PairResult, error) {
	if err := ctx.Err(); err != nil {
		return PairResult{}, err
	}
	return alignPair(p.extractor, p.resolver, req), nil
}
