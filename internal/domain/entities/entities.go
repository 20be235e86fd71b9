// Package entities contains core business entities.
// These are read-only projections of the source document - pure domain
// objects with no knowledge of the .docx container or the report format.
package entities

// RevisionTag classifies a run's tracked-change state.
type RevisionTag int

const (
	// Unchanged text was present before review and survived it.
	Unchanged RevisionTag = iota
	// Inserted text was added as a tracked change.
	Inserted
	// Deleted text was removed as a tracked change.
	Deleted
)

// String returns the tag name for logging.
func (t RevisionTag) String() string {
	switch t {
	case Inserted:
		return "inserted"
	case Deleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// Run is a contiguous span of text within a paragraph sharing one revision tag.
type Run struct {
	Text string
	Tag  RevisionTag
}

// Paragraph is an ordered sequence of runs. Its identity is its position
// in the document's paragraph sequence; it is immutable once loaded.
type Paragraph struct {
	Index int
	Runs  []Run
}

// Text returns the concatenation of the paragraph's raw run texts,
// with no markers and no added separators.
func (p Paragraph) Text() string {
	var n int
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range p.Runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// HasEdit reports whether any run carries an inserted or deleted tag.
func (p Paragraph) HasEdit() bool {
	for _, r := range p.Runs {
		if r.Tag != Unchanged {
			return true
		}
	}
	return false
}

// Anchor is the location a comment is attached to: paragraph indices plus
// byte offsets into the raw run-text concatenation of those paragraphs.
// StartPara and EndPara differ when the comment range crosses a paragraph
// boundary; such anchors are dropped by the annotator.
type Anchor struct {
	StartPara   int
	StartOffset int
	EndPara     int
	EndOffset   int
}

// Resolved reports whether both ends of the range were seen in the document.
func (a Anchor) Resolved() bool {
	return a.StartPara >= 0 && a.EndPara >= 0
}

// Comment is a reviewer comment with its threaded replies.
// Replies hold body text only; their identity is not needed downstream.
type Comment struct {
	ID      string
	Author  string
	Body    string
	Replies []string
	Anchor  Anchor
}

// Document is the fully materialized projection of one .docx file.
type Document struct {
	Name       string
	Path       string
	Paragraphs []Paragraph
	Comments   []Comment
}

// AnchoredComment pairs a comment with the exact substring of its
// paragraph's raw text that the anchor covers.
type AnchoredComment struct {
	AnchorText string
	Comment    Comment
}

// ParagraphRecord is the annotator's output for one paragraph: the marked-up
// text plus the comments whose anchors fall entirely inside it.
type ParagraphRecord struct {
	Index     int
	Annotated string
	Plain     string
	Comments  []AnchoredComment
	HasEdit   bool
}

// Reportable reports whether the paragraph earns a block in the report:
// it has at least one tracked edit or at least one associated comment.
func (r ParagraphRecord) Reportable() bool {
	return r.HasEdit || len(r.Comments) > 0
}
