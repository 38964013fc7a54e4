// Package server implements the MCP (Model Context Protocol) server for long
// screenshot stitching.
//
// This package provides a JSON-RPC 2.0 server that exposes the stitcher
// through the MCP protocol, so an assistant can turn a screen recording or a
// folder of overlapping screenshots into one tall image.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Stitching:
//   - stitch_images: Stitch screenshot files or a directory of them
//   - stitch_video: Sample a recording with ffmpeg and stitch the frames
//
// Diagnostics:
//   - stitch_offset: Splice line and match statistics for one pair
//   - frame_shapes: Shapes extracted from one frame
//   - frame_edges: Edge map contours are traced on
//
// # Image Caching
//
// Frame files are decoded once and cached by path for the lifetime of the
// process. Extracted shapes are cached per stitch call only.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
