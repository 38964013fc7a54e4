package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/long-screenshot-mcp/internal/capture"
	"github.com/ironsheep/long-screenshot-mcp/internal/imaging"
	"github.com/ironsheep/long-screenshot-mcp/internal/ocr"
	"github.com/ironsheep/long-screenshot-mcp/internal/shapes"
	"github.com/ironsheep/long-screenshot-mcp/internal/stitch"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "stitch_images", "frame_shapes").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Stitching
	case "stitch_images":
		return s.handleStitchImages(ctx, args)
	case "stitch_video":
		return s.handleStitchVideo(ctx, args)

	// Diagnostics
	case "stitch_offset":
		return s.handleStitchOffset(ctx, args)
	case "frame_shapes":
		return s.handleFrameShapes(args)
	case "frame_edges":
		return s.handleFrameEdges(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// release drops decoded frames once a tool call is done with them. The
// cache only shares decodes within a single call.
func (s *Server) release(paths ...string) {
	for _, path := range paths {
		s.cache.Evict(path)
	}
}

// aligner returns the worker when alignment is offloaded, or an in-process
// aligner otherwise.
func (s *Server) aligner() stitch.PairAligner {
	if s.worker != nil {
		return s.worker
	}
	return stitch.NewInProcess(s.extractor, s.resolver)
}

// === Stitching Handlers ===

// outputArgs are the composite options shared by stitch_images and
// stitch_video.
type outputArgs struct {
	Output         string `json:"output"`
	OutputDir      string `json:"output_dir"`
	Prefix         string `json:"prefix"`
	MaxHeight      int    `json:"max_height"`
	StackUnmatched *bool  `json:"stack_unmatched"`
	OCR            bool   `json:"ocr"`
	OCRLanguage    string `json:"ocr_language"`
	SeamOverlay    bool   `json:"seam_overlay"`
	SeamColor      string `json:"seam_color"`
}

// StitchResult is returned by the stitching tools.
type StitchResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Frames is the number of frames read; Dropped lists those that added
	// nothing to the composite.
	Frames  int   `json:"frames"`
	Dropped []int `json:"dropped"`

	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`

	Offsets    []stitch.OffsetInfo `json:"offsets"`
	Placements []stitch.Placement  `json:"placements"`
	Seams      []stitch.Seam       `json:"seams"`

	Overlay  *imaging.EncodedImage `json:"overlay,omitempty"`
	Text     *ocr.OCRResult        `json:"text,omitempty"`
	OCRError string                `json:"ocr_error,omitempty"`
}

type stitchImagesArgs struct {
	Paths     []string `json:"paths"`
	Directory string   `json:"directory"`
	outputArgs
}

func (s *Server) handleStitchImages(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a stitchImagesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		src *capture.FileSource
		err error
	)
	switch {
	case len(a.Paths) > 0:
		src, err = capture.NewFileSource(a.Paths, 1, s.cache)
	case a.Directory != "":
		src, err = capture.NewDirSource(a.Directory, 1, s.cache)
	default:
		return nil, fmt.Errorf("either paths or directory is required")
	}
	if err != nil {
		return nil, err
	}
	defer s.release(src.Paths()...)

	// One file per second, sampled once per second.
	return s.stitch(ctx, capture.Sample(src, 1), a.outputArgs)
}

type stitchVideoArgs struct {
	Path string  `json:"path"`
	Step float64 `json:"step"`
	outputArgs
}

func (s *Server) handleStitchVideo(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a stitchVideoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Step <= 0 {
		a.Step = s.cfg.Step
	}

	src, err := capture.OpenVideo(ctx, a.Path, capture.VideoOptions{
		FFmpeg:  s.cfg.FFmpeg,
		FFprobe: s.cfg.FFprobe,
	})
	if err != nil {
		return nil, err
	}
	s.debugf("video %s: %.3fs, step %.3fs", a.Path, src.Duration(), a.Step)

	return s.stitch(ctx, capture.Sample(src, a.Step), a.outputArgs)
}

// stitch runs the pipeline over frames and delivers the composite.
func (s *Server) stitch(ctx context.Context, frames stitch.FrameSource, out outputArgs) (*StitchResult, error) {
	stack := s.cfg.StackUnmatched
	if out.StackUnmatched != nil {
		stack = *out.StackUnmatched
	}

	pipeline := stitch.NewPipeline(
		stitch.NewShapeCache(s.extractor),
		s.aligner(),
		stitch.Options{
			Composite: stitch.CompositeOptions{StackUnmatched: stack},
			Logger:    s.logger,
		},
	)

	res, err := pipeline.RunSource(ctx, frames)
	if err != nil {
		return nil, err
	}

	result := &StitchResult{
		Width:      res.Image.Bounds().Dx(),
		Height:     res.Image.Bounds().Dy(),
		Frames:     res.Frames,
		Dropped:    droppedFrames(res.Frames, res.Placements),
		Offsets:    res.Offsets,
		Placements: res.Placements,
		Seams:      res.Seams,
	}

	if err := s.deliver(result, res.Image, out); err != nil {
		return nil, err
	}

	if out.SeamOverlay {
		overlay := imaging.SeamOverlay(res.Image, seamMarks(res.Placements), out.SeamColor)
		result.Overlay, err = imaging.EncodePreview(overlay, out.MaxHeight)
		if err != nil {
			return nil, err
		}
	}

	if out.OCR {
		lang := out.OCRLanguage
		if lang == "" {
			lang = s.cfg.OCRLanguage
		}
		// The composite is already delivered; an OCR failure is reported
		// alongside it.
		text, err := ocr.ExtractText(res.Image, lang)
		if err != nil {
			result.OCRError = err.Error()
		} else {
			result.Text = text
		}
	}

	return result, nil
}

// deliver writes the composite to a file and/or encodes it into result.
func (s *Server) deliver(result *StitchResult, img image.Image, out outputArgs) error {
	mode := out.Output
	if mode == "" {
		mode = "file"
	}

	switch mode {
	case "file", "base64", "both":
	default:
		return fmt.Errorf("invalid output %q: must be file, base64 or both", mode)
	}

	if mode == "file" || mode == "both" {
		dir := out.OutputDir
		if dir == "" {
			dir = s.cfg.OutputDir
		}
		prefix := out.Prefix
		if prefix == "" {
			prefix = s.cfg.OutputPrefix
		}

		path, err := imaging.SavePNG(img, dir, prefix, s.now())
		if err != nil {
			return err
		}
		result.OutputPath = path
		s.debugf("wrote %s", path)
	}

	if mode == "base64" || mode == "both" {
		encoded, err := imaging.EncodePreview(img, out.MaxHeight)
		if err != nil {
			return err
		}
		result.Image = encoded
	}

	return nil
}

// droppedFrames lists the indexes in [0, n) without a placement.
func droppedFrames(n int, placements []stitch.Placement) []int {
	placed := make([]bool, n)
	for _, p := range placements {
		if p.Index >= 0 && p.Index < n {
			placed[p.Index] = true
		}
	}

	dropped := make([]int, 0)
	for i, ok := range placed {
		if !ok {
			dropped = append(dropped, i)
		}
	}
	return dropped
}

// seamMarks puts a labelled line where every frame after the first starts.
func seamMarks(placements []stitch.Placement) []imaging.SeamMark {
	marks := make([]imaging.SeamMark, 0, len(placements))
	for _, p := range placements {
		if p.DstY == 0 {
			continue
		}
		marks = append(marks, imaging.SeamMark{
			Y:     p.DstY,
			Label: fmt.Sprintf("frame %d", p.Index),
		})
	}
	return marks
}

// spliceRows returns the pixel rows where the compositor joins a pair.
func spliceRows(o stitch.OffsetInfo) (int, int) {
	return int(math.Round(o.Y1)), int(math.Round(o.Y2))
}

// === Diagnostic Handlers ===

type stitchOffsetArgs struct {
	PathA         string  `json:"path_a"`
	PathB         string  `json:"path_b"`
	PreviewRadius int     `json:"preview_radius"`
	Scale         float64 `json:"scale"`
}

// OffsetResult is returned by stitch_offset.
type OffsetResult struct {
	Offset  stitch.OffsetInfo `json:"offset"`
	OffsetY float64           `json:"offset_y"`

	ShapesA  int     `json:"shapes_a"`
	ShapesB  int     `json:"shapes_b"`
	Matches  int     `json:"matches"`
	Agreeing int     `json:"agreeing"`
	Dominant float64 `json:"dominant"`

	Seam *stitch.Seam `json:"seam,omitempty"`

	// Upper and Lower show the rows around the splice in each frame.
	Upper *imaging.EncodedImage `json:"upper,omitempty"`
	Lower *imaging.EncodedImage `json:"lower,omitempty"`
}

func (s *Server) handleStitchOffset(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a stitchOffsetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	defer s.release(a.PathA, a.PathB)

	frames := make([]*stitch.Frame, 2)
	for i, path := range []string{a.PathA, a.PathB} {
		img, err := s.cache.Load(path)
		if err != nil {
			return nil, err
		}
		frames[i], err = stitch.NewFrame(img, i, float64(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	pair, err := s.aligner().AlignPair(ctx, stitch.PairRequest{A: frames[0].Image, B: frames[1].Image})
	if err != nil {
		return nil, err
	}

	result := &OffsetResult{
		Offset:   pair.Offset,
		OffsetY:  pair.Offset.OffsetY(),
		ShapesA:  len(pair.ShapesA),
		ShapesB:  len(pair.ShapesB),
		Matches:  len(pair.Matches.Matches),
		Dominant: pair.Matches.Dominant,
	}
	for _, m := range pair.Matches.Matches {
		if m.Distance != 0 && m.Distance == pair.Matches.Dominant {
			result.Agreeing++
		}
	}

	if seams := stitch.MeasureSeams(frames, []stitch.OffsetInfo{pair.Offset}); len(seams) == 1 {
		result.Seam = &seams[0]
	}

	if a.PreviewRadius > 0 && !pair.Offset.IsSentinel() {
		y1, y2 := spliceRows(pair.Offset)
		result.Upper, result.Lower, err = imaging.SpliceBands(
			frames[0].Image, frames[1].Image,
			y1, y2,
			a.PreviewRadius, a.Scale,
		)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

type frameShapesArgs struct {
	Path  string `json:"path"`
	Limit int    `json:"limit"`
}

// FrameShapesResult is returned by frame_shapes.
type FrameShapesResult struct {
	Frame   *imaging.FrameInfo `json:"frame"`
	Backend string             `json:"backend"`
	Count   int                `json:"count"`
	Shapes  []shapes.Shape     `json:"shapes"`
}

func (s *Server) handleFrameShapes(args json.RawMessage) (interface{}, error) {
	var a frameShapesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	defer s.release(a.Path)

	info, err := imaging.LoadFrameInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	found, err := s.extractor.Extract(img)
	if err != nil {
		return nil, err
	}
	if found == nil {
		found = []shapes.Shape{}
	}

	result := &FrameShapesResult{
		Frame:   info,
		Backend: s.cfg.Backend,
		Count:   len(found),
		Shapes:  found,
	}
	if a.Limit > 0 && len(found) > a.Limit {
		result.Shapes = found[:a.Limit]
	}
	return result, nil
}

type frameEdgesArgs struct {
	Path  string  `json:"path"`
	Y1    int     `json:"y1"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

// FrameEdgesResult is returned by frame_edges.
type FrameEdgesResult struct {
	EdgePixels int `json:"edge_pixels"`
	*imaging.EncodedImage
}

// edgeMapper is implemented by extractors that can show their edge map.
type edgeMapper interface {
	EdgeMap(img image.Image) (*image.Gray, error)
}

func (s *Server) handleFrameEdges(args json.RawMessage) (interface{}, error) {
	var a frameEdgesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	defer s.release(a.Path)

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	mapper, ok := s.extractor.(edgeMapper)
	if !ok {
		mapper = shapes.NewBildExtractor(shapes.DefaultOptions())
	}
	edges, err := mapper.EdgeMap(img)
	if err != nil {
		return nil, err
	}

	if a.Y2 == 0 {
		a.Y2 = edges.Bounds().Dy()
	}
	encoded, err := imaging.CropBand(edges, a.Y1, a.Y2, a.Scale)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, v := range edges.Pix {
		if v != 0 {
			count++
		}
	}

	return &FrameEdgesResult{EdgePixels: count, EncodedImage: encoded}, nil
}
