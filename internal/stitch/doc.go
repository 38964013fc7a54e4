// Package stitch joins overlapping frames of a vertically scrolled view into
// one tall image.
//
// # Overview
//
// Every consecutive pair of frames is aligned independently:
//
//  1. Shapes are extracted from both frames (see package shapes) and kept in
//     a ShapeCache so a frame shared by two pairs is processed once.
//  2. MatchShapes pairs each shape of the upper frame with the nearest shape
//     of the lower frame that has the same key, and finds the most frequent
//     non-zero vertical distance.
//  3. A Resolver turns the matches into an OffsetInfo: the splice line Y1 in
//     the upper frame and the matching line Y2 in the lower frame, or the
//     {0, 0} sentinel when no overlap can be trusted.
//
// Composite then paints the frames onto one canvas, each one shifted up by
// the overlap accumulated so far.
//
// # Execution
//
// The pair step runs through a PairAligner. InProcess runs it on the calling
// goroutine, Worker on a dedicated goroutine fed over a channel. Both call
// the same code, so the results are identical. Pairs are always aligned in
// order, one at a time.
//
// # Example
//
//	extractor := shapes.NewBildExtractor(shapes.DefaultOptions())
//	cache := stitch.NewShapeCache(extractor)
//	p := stitch.NewPipeline(cache, stitch.NewInProcess(extractor, stitch.DefaultResolver()), stitch.Options{})
//	result, err := p.Run(ctx, frames)
package stitch
