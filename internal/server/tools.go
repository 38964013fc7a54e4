package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// outputProperties are shared by the tools that produce a composite.
func outputProperties() map[string]interface{} {
	return map[string]interface{}{
		"output": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"file", "base64", "both"},
			"description": "Where the composite goes: a timestamp-named PNG file, a base64 PNG in the result, or both. Default file",
			"default":     "file",
		},
		"output_dir": map[string]interface{}{
			"type":        "string",
			"description": "Directory for the PNG file. Defaults to the server's configured output directory",
		},
		"prefix": map[string]interface{}{
			"type":        "string",
			"description": "File name prefix. Default longScreenCapture",
		},
		"max_height": map[string]interface{}{
			"type":        "integer",
			"description": "Shrink base64 images to at most this many rows. 0 keeps full size",
			"default":     0,
		},
		"stack_unmatched": map[string]interface{}{
			"type":        "boolean",
			"description": "Stack frames whose overlap cannot be found below the previous frame instead of dropping them",
		},
		"ocr": map[string]interface{}{
			"type":        "boolean",
			"description": "Run Tesseract OCR on the finished composite",
			"default":     false,
		},
		"ocr_language": map[string]interface{}{
			"type":        "string",
			"description": "Tesseract language code. Default eng",
		},
		"seam_overlay": map[string]interface{}{
			"type":        "boolean",
			"description": "Also return a base64 copy of the composite with a line drawn at every splice",
			"default":     false,
		},
		"seam_color": map[string]interface{}{
			"type":        "string",
			"description": "Overlay line color in hex (#RRGGBB or #RRGGBBAA). Default #FF0000A0",
		},
	}
}

func withOutput(props map[string]interface{}) map[string]interface{} {
	for k, v := range outputProperties() {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Stitching
		{
			Name:        "stitch_images",
			Description: "Stitch overlapping screenshots of a vertically scrolled view into one long screenshot. Frames are aligned pairwise in order; give either paths or a directory whose images are taken in name order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths of the frames, top of the page first",
					},
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory of frames, used when paths is empty",
					},
				}),
			},
		},
		{
			Name:        "stitch_video",
			Description: "Sample a screen recording of a scrolling view every step seconds and stitch the frames into one long screenshot. Requires ffmpeg and ffprobe.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the video file",
					},
					"step": map[string]interface{}{
						"type":        "number",
						"description": "Sampling interval in seconds. Default 0.5",
						"default":     0.5,
					},
				}),
				"required": []string{"path"},
			},
		},

		// Diagnostics
		{
			Name:        "stitch_offset",
			Description: "Compute the splice line between two consecutive frames without compositing. Returns {y1, y2}, the verdict and match statistics, optionally with crops of both frames around the splice.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path_a": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the upper frame",
					},
					"path_b": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the lower frame",
					},
					"preview_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Rows above and below the splice to return as base64 crops. 0 disables",
						"default":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor for the crops. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path_a", "path_b"},
			},
		},
		{
			Name:        "frame_shapes",
			Description: "Extract the rotated bounding boxes the aligner matches on from one frame.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Return at most this many shapes. 0 returns all",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "frame_edges",
			Description: "Return the edge map contours are traced on, as a base64 PNG. Useful to see why two frames do or do not align.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "First row of the band to return (0-based). Default 0",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Row after the band (exclusive). Default image height",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
