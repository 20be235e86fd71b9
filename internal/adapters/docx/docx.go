// Package docx provides the document loading adapter.
// It implements ports.DocumentLoader by opening the .docx ZIP container and
// projecting word/document.xml and word/comments.xml into the entities
// graph: ordered paragraphs of tagged runs, plus comments with anchors
// resolved to (paragraph index, byte offset) pairs.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/AndresRCA/docx-proofreader/internal/domain/entities"
)

// wordML is the WordprocessingML namespace all relevant elements live in.
const wordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Loader implements ports.DocumentLoader for .docx containers.
type Loader struct{}

// NewLoader creates a new .docx document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// SupportedExtensions returns file extensions this loader handles.
func (l *Loader) SupportedExtensions() []string {
	return []string{".docx"}
}

// Load opens the container at path and materializes the document graph.
// A missing or malformed container is a fatal error; a container without
// word/comments.xml is a document that simply has no comments.
func (l *Loader) Load(ctx context.Context, path string) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer archive.Close()

	body, err := openPart(&archive.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("%s is not a word document: %w", path, err)
	}
	paragraphs, anchors, err := parseBody(body)
	body.Close()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var raw []rawComment
	if part, err := openPart(&archive.Reader, "word/comments.xml"); err == nil {
		raw, err = parseComments(part)
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing comments of %s: %w", path, err)
		}
	}

	return &entities.Document{
		Name:       filepath.Base(path),
		Path:       path,
		Paragraphs: paragraphs,
		Comments:   assembleComments(raw, anchors),
	}, nil
}

// openPart returns a reader for the named file inside the container.
func openPart(r *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range r.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("missing %s", name)
}

// unresolved is the anchor state before either range marker has been seen.
func unresolved() entities.Anchor {
	return entities.Anchor{StartPara: -1, EndPara: -1}
}

// parseBody walks word/document.xml and produces the paragraph sequence
// plus the comment anchors keyed by comment id.
//
// Within a paragraph, text accumulates from w:t (and w:delText) leaves.
// Nesting under w:ins or w:del decides the revision tag; adjacent leaves
// sharing a tag coalesce into one run so a tracked block annotates as a
// single marked span. commentRangeStart/End markers snapshot the current
// (paragraph index, byte offset) position; a marker pair landing in two
// different paragraphs stays in the anchor as-is and is dropped later by
// the annotator.
func parseBody(r io.Reader) ([]entities.Paragraph, map[string]entities.Anchor, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []entities.Paragraph
		anchors    = make(map[string]entities.Anchor)

		inPara    bool
		runs      []entities.Run
		offset    int
		insDepth  int
		delDepth  int
		capturing bool
		text      strings.Builder
	)

	appendText := func(s string) {
		tag := entities.Unchanged
		if delDepth > 0 {
			tag = entities.Deleted
		} else if insDepth > 0 {
			tag = entities.Inserted
		}
		if n := len(runs); n > 0 && runs[n-1].Tag == tag {
			runs[n-1].Text += s
		} else {
			runs = append(runs, entities.Run{Text: s, Tag: tag})
		}
		offset += len(s)
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("decoding document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordML {
				continue
			}
			switch t.Name.Local {
			case "p":
				inPara = true
				runs = nil
				offset = 0
			case "ins":
				insDepth++
			case "del":
				delDepth++
			case "t", "delText":
				if inPara {
					capturing = true
					text.Reset()
				}
			case "commentRangeStart":
				if id := idAttr(t); inPara && id != "" {
					a, ok := anchors[id]
					if !ok {
						a = unresolved()
					}
					a.StartPara = len(paragraphs)
					a.StartOffset = offset
					anchors[id] = a
				}
			case "commentRangeEnd":
				if id := idAttr(t); inPara && id != "" {
					a, ok := anchors[id]
					if !ok {
						a = unresolved()
					}
					a.EndPara = len(paragraphs)
					a.EndOffset = offset
					anchors[id] = a
				}
			}

		case xml.EndElement:
			if t.Name.Space != wordML {
				continue
			}
			switch t.Name.Local {
			case "p":
				if inPara {
					paragraphs = append(paragraphs, entities.Paragraph{
						Index: len(paragraphs),
						Runs:  runs,
					})
					inPara = false
				}
			case "ins":
				if insDepth > 0 {
					insDepth--
				}
			case "del":
				if delDepth > 0 {
					delDepth--
				}
			case "t", "delText":
				if capturing {
					capturing = false
					appendText(text.String())
				}
			}

		case xml.CharData:
			if capturing {
				text.Write(t)
			}
		}
	}

	return paragraphs, anchors, nil
}

// idAttr returns the w:id attribute value, or "".
func idAttr(el xml.StartElement) string {
	for _, a := range el.Attr {
		if a.Name.Local == "id" {
			return a.Value
		}
	}
	return ""
}

// rawComment is one w:comment entry before anchors are attached.
type rawComment struct {
	id     string
	author string
	body   string
}

// parseComments walks word/comments.xml and collects comment bodies in
// file order. A body is the concatenation of every text leaf under the
// w:comment element.
func parseComments(r io.Reader) ([]rawComment, error) {
	dec := xml.NewDecoder(r)

	var (
		comments  []rawComment
		current   *rawComment
		capturing bool
		text      strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding comments.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordML {
				continue
			}
			switch t.Name.Local {
			case "comment":
				current = &rawComment{id: idAttr(t), author: authorAttr(t)}
			case "t":
				if current != nil {
					capturing = true
				}
			}

		case xml.EndElement:
			if t.Name.Space != wordML {
				continue
			}
			switch t.Name.Local {
			case "comment":
				if current != nil {
					current.body = text.String()
					comments = append(comments, *current)
					current = nil
					text.Reset()
				}
			case "t":
				capturing = false
			}

		case xml.CharData:
			if capturing {
				text.Write(t)
			}
		}
	}

	return comments, nil
}

// authorAttr returns the w:author attribute value, or "".
func authorAttr(el xml.StartElement) string {
	for _, a := range el.Attr {
		if a.Name.Local == "author" {
			return a.Value
		}
	}
	return ""
}

// assembleComments joins comment bodies with their anchors and folds
// threads: comments resolving to the identical anchor range are one
// conversation, the first in file order being the main comment and the
// rest its ordered replies. A comment id that never appeared as a range
// marker in the body keeps an unresolved anchor and is dropped by the
// annotator downstream.
func assembleComments(raw []rawComment, anchors map[string]entities.Anchor) []entities.Comment {
	var (
		comments []entities.Comment
		threads  = make(map[entities.Anchor]int)
	)

	for _, rc := range raw {
		anchor, ok := anchors[rc.id]
		if !ok {
			anchor = unresolved()
		}

		if anchor.Resolved() {
			if i, seen := threads[anchor]; seen {
				comments[i].Replies = append(comments[i].Replies, rc.body)
				continue
			}
			threads[anchor] = len(comments)
		}

		comments = append(comments, entities.Comment{
			ID:     rc.id,
			Author: rc.author,
			Body:   rc.body,
			Anchor: anchor,
		})
	}

	return comments
}
