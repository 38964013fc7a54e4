// Package imaging loads frames and delivers stitched images for the MCP
// server.
//
// It wraps disintegration/imaging for decoding (with EXIF orientation),
// cropping, resizing and PNG encoding, and adds the pieces specific to long
// screenshots: timestamp-named output files, base64 payloads and a seam
// overlay that marks where each frame was spliced in.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with Y increasing downward. Bands are
// given as rows [y1, y2), y2 exclusive.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless and never modify their input images.
//
// # Supported Formats
//
// PNG, JPEG and GIF through the standard library; BMP, TIFF and WebP through
// golang.org/x/image.
package imaging
