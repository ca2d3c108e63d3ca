package deck

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/crosscheck-ai/crosscheck/pkg/errors"
)

// Parse extracts all readable text from raw pptx bytes. It fails with a
// ParsingError for a corrupted/unreadable package, and also for a
// structurally valid deck in which no slide carries any text: an empty
// deck has no reconciliation value, so it is rejected up front.
func Parse(data []byte) (*Document, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.NewParsingError("pptx", "invalid or corrupted PowerPoint file", err)
	}

	slideFiles, err := collectSlideFiles(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{TotalSlides: len(slideFiles)}
	var sections []string

	for i, file := range slideFiles {
		content, err := extractSlideText(file)
		if err != nil {
			return nil, errors.NewParsingError("pptx", fmt.Sprintf("slide %d: %v", i+1, err), err)
		}

		doc.Slides = append(doc.Slides, Slide{Number: i + 1, Content: content})
		if content != "" {
			sections = append(sections, fmt.Sprintf("=== Slide %d ===\n%s", i+1, content))
		}
	}

	if len(sections) == 0 {
		return nil, errors.NewParsingError("pptx",
			"PowerPoint file is empty or contains no readable text", errors.ErrEmptyDocument)
	}

	doc.Summary = strings.Join(sections, "\n\n")
	return doc, nil
}

// collectSlideFiles returns the slide parts of the package in
// presentation order (slide1.xml, slide2.xml, ... sorted numerically).
func collectSlideFiles(r *zip.Reader) ([]*zip.File, error) {
	hasContentTypes := false
	numbered := make(map[int]*zip.File)

	for _, f := range r.File {
		if f.Name == "[Content_Types].xml" {
			hasContentTypes = true
		}
		if path.Dir(f.Name) != "ppt/slides" {
			continue
		}
		base := path.Base(f.Name)
		if !strings.HasPrefix(base, "slide") || !strings.HasSuffix(base, ".xml") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "slide"), ".xml"))
		if err != nil {
			continue
		}
		numbered[n] = f
	}

	if !hasContentTypes {
		return nil, errors.NewParsingError("pptx",
			"invalid or corrupted PowerPoint file", errors.ErrUnparsableDocument)
	}

	order := make([]int, 0, len(numbered))
	for n := range numbered {
		order = append(order, n)
	}
	sort.Ints(order)

	files := make([]*zip.File, 0, len(order))
	for _, n := range order {
		files = append(files, numbered[n])
	}
	return files, nil
}

// extractSlideText walks one slide's XML and returns the whitespace-
// trimmed text of every shape that carries text, joined by newlines.
// Within a shape, paragraphs join with newlines and <a:br> inserts one.
func extractSlideText(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	decoder := xml.NewDecoder(rc)

	var shapeTexts []string
	var paragraphs []string
	var line strings.Builder
	inBody := false
	inRunText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "txBody":
				inBody = true
				paragraphs = nil
				line.Reset()
			case "t":
				if inBody {
					inRunText = true
				}
			case "br":
				if inBody {
					paragraphs = append(paragraphs, line.String())
					line.Reset()
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "txBody":
				paragraphs = append(paragraphs, line.String())
				line.Reset()
				if text := strings.TrimSpace(strings.Join(paragraphs, "\n")); text != "" {
					shapeTexts = append(shapeTexts, text)
				}
				inBody = false
			case "t":
				inRunText = false
			case "p":
				if inBody {
					paragraphs = append(paragraphs, line.String())
					line.Reset()
				}
			}
		case xml.CharData:
			if inRunText {
				line.Write(t)
			}
		}
	}

	return strings.Join(shapeTexts, "\n"), nil
}
