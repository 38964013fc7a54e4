// Package ocr reads the text of a stitched long screenshot using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Images are
// passed to Tesseract as in-memory PNG bytes, so composites never need to be
// written to disk before they are read.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//
// # Functions
//
//   - ExtractText: whole-image OCR with word bounding boxes
//   - ExtractTextFromRegion: OCR on one rectangle, bounds reported in the
//     coordinates of the full image
//
// If word bounding boxes cannot be produced, the text is still returned with
// an empty Regions slice.
package ocr
