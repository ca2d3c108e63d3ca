// Package deck extracts per-slide text from a PowerPoint (pptx) package.
// A pptx file is an OOXML zip archive; slide text lives in DrawingML
// <a:t> runs inside each shape's <p:txBody>. The extractor walks those
// directly, the same way the workbook drawing parser does, so no slide
// rendering machinery is needed.
package deck

// Slide holds the concatenated non-empty shape text of one slide.
type Slide struct {
	Number  int    `json:"slide_number"` // 1-based
	Content string `json:"content"`
}

// Document is the extracted text of a whole deck.
type Document struct {
	Slides      []Slide `json:"slides"`
	TotalSlides int     `json:"total_slides"`
	// Summary concatenates every slide with non-empty content, each
	// prefixed by a "=== Slide N ===" header.
	Summary string `json:"summary"`
}
