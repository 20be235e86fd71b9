package usecases

import (
	"strings"
	"unicode/utf8"

	"github.com/AndresRCA/docx-proofreader/internal/domain/entities"
)

const (
	separator   = "==="
	noComments  = "!NONE!"
	contextHead = "Current context:"
)

// FormatReport renders the full report body from the annotated paragraph
// records. A paragraph earns a block iff it has a tracked edit or at least
// one associated comment; blocks appear in paragraph-index order. Each block
// shows contextLevel plain paragraphs on either side of the focal paragraph,
// the focal paragraph braced and annotated, and the comment list (or the
// !NONE! sentinel). Output is a pure function of its inputs: identical
// records and contextLevel always yield byte-identical text.
func FormatReport(records []entities.ParagraphRecord, contextLevel int) string {
	if contextLevel < 0 {
		contextLevel = 0
	}

	var b strings.Builder
	blocks := 0
	for i, rec := range records {
		if !rec.Reportable() {
			continue
		}
		writeBlock(&b, records, i, contextLevel)
		blocks++
	}
	if blocks > 0 {
		b.WriteString(separator + "\n")
	}
	return b.String()
}

// writeBlock renders one focal paragraph with its context window.
func writeBlock(b *strings.Builder, records []entities.ParagraphRecord, focal, contextLevel int) {
	lo := focal - contextLevel
	if lo < 0 {
		lo = 0
	}
	hi := focal + contextLevel
	if hi > len(records)-1 {
		hi = len(records) - 1
	}

	b.WriteString(separator + "\n")
	b.WriteString(contextHead + "\n")
	for j := lo; j <= hi; j++ {
		if j == focal {
			b.WriteString("{" + records[j].Annotated + "}\n")
		} else {
			b.WriteString(records[j].Plain + "\n")
		}
	}

	b.WriteString("\nComment(s):\n")
	if len(records[focal].Comments) == 0 {
		b.WriteString(noComments + "\n")
		return
	}
	for _, ac := range records[focal].Comments {
		b.WriteString(commentLine(ac) + "\n")
	}
}

// commentLine renders one comment and its threaded replies on a single
// line: [anchored substring] -> body. reply. reply.
func commentLine(ac entities.AnchoredComment) string {
	parts := make([]string, 0, 1+len(ac.Comment.Replies))
	parts = append(parts, "["+ac.AnchorText+"] -> "+punctuate(ac.Comment.Body))
	for _, reply := range ac.Comment.Replies {
		parts = append(parts, punctuate(reply))
	}
	return strings.Join(parts, " ")
}

// punctuate appends a period unless the text already ends in sentence-ending
// punctuation, optionally followed by a closing quote or bracket.
func punctuate(s string) string {
	t := strings.TrimRight(s, " \t")
	if t == "" {
		return t
	}
	u := strings.TrimRight(t, `"')]`+"”’")
	r, _ := utf8.DecodeLastRuneInString(u)
	switch r {
	case '.', '!', '?', '…':
		return t
	}
	return t + "."
}
