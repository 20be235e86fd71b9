// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces - no
// container parsing, no file system code, just the transformation from a
// loaded document to a rendered report.
package usecases

import (
	"strings"

	"github.com/AndresRCA/docx-proofreader/internal/domain/entities"
)

// Markers are the strings wrapped around inserted and deleted run text in
// annotated paragraphs. Defaults mirror the report format consumed by the
// downstream proofreading workflow: **bold** insertions, --struck-- deletions.
type Markers struct {
	InsertOpen  string
	InsertClose string
	DeleteOpen  string
	DeleteClose string
}

// DefaultMarkers returns the standard marker set.
func DefaultMarkers() Markers {
	return Markers{
		InsertOpen:  "**",
		InsertClose: "**",
		DeleteOpen:  "--",
		DeleteClose: "--",
	}
}

// Annotate turns one paragraph into its ParagraphRecord: run texts
// concatenated with revision markers applied, plus the comments whose
// anchors fall entirely inside this paragraph, in document order.
//
// Comments whose anchor spans two different paragraphs are associated with
// no paragraph at all. That is a deliberate simplification of this tool
// (paragraph-based scope), not an error. Inverted or out-of-range anchors
// are treated the same way rather than raised.
func Annotate(p entities.Paragraph, comments []entities.Comment, m Markers) entities.ParagraphRecord {
	plain := p.Text()

	var annotated strings.Builder
	for _, r := range p.Runs {
		switch r.Tag {
		case entities.Inserted:
			annotated.WriteString(m.InsertOpen)
			annotated.WriteString(r.Text)
			annotated.WriteString(m.InsertClose)
		case entities.Deleted:
			annotated.WriteString(m.DeleteOpen)
			annotated.WriteString(r.Text)
			annotated.WriteString(m.DeleteClose)
		default:
			annotated.WriteString(r.Text)
		}
	}

	var anchored []entities.AnchoredComment
	for _, c := range comments {
		if !belongsTo(c.Anchor, p.Index, len(plain)) {
			continue
		}
		anchored = append(anchored, entities.AnchoredComment{
			AnchorText: plain[c.Anchor.StartOffset:c.Anchor.EndOffset],
			Comment:    c,
		})
	}

	return entities.ParagraphRecord{
		Index:     p.Index,
		Annotated: annotated.String(),
		Plain:     plain,
		Comments:  anchored,
		HasEdit:   p.HasEdit(),
	}
}

// AnnotateAll annotates every paragraph of the document in order.
func AnnotateAll(doc *entities.Document, m Markers) []entities.ParagraphRecord {
	records := make([]entities.ParagraphRecord, len(doc.Paragraphs))
	for i, p := range doc.Paragraphs {
		records[i] = Annotate(p, doc.Comments, m)
	}
	return records
}

// belongsTo reports whether the anchor lies entirely within the paragraph
// at index, with offsets valid against a raw text of the given length.
// Offsets are byte offsets into the concatenation of the paragraph's raw
// run texts; markers play no part in anchor resolution.
func belongsTo(a entities.Anchor, index, textLen int) bool {
	if !a.Resolved() {
		return false
	}
	if a.StartPara != index || a.EndPara != index {
		return false
	}
	if a.StartOffset < 0 || a.EndOffset < a.StartOffset || a.EndOffset > textLen {
		return false
	}
	return true
}
