// Package parser extracts marker comments from source lines and rewrites
// files with the markers removed.
package parser

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/starford/gitcommit/internal/apperr"
)

// Default marker parts.
const (
	DefaultComment = "#"
	DefaultArrow   = "->"
)

var errInvalidUTF8 = errors.New("comment is not valid UTF-8")

// Marker is the two-part token that flags an annotated line.
type Marker struct {
	Comment string
	Arrow   string
}

// DefaultMarker is "#->".
var DefaultMarker = Marker{Comment: DefaultComment, Arrow: DefaultArrow}

// Token returns the full marker string.
func (m Marker) Token() string {
	return m.Comment + m.Arrow
}

// Classification is the outcome of classifying one line.
type Classification struct {
	// Retained is the code before the marker, or the whole line when unmarked.
	Retained string
	Marked   bool
	Comment  string
	// Line is the line the comment documents. Zero when unmarked.
	Line int
}

// Classify splits raw, the lineNr-th physical line including its
// terminator, at the first marker occurrence. A marker with no code before it
// documents the following line.
func (m Marker) Classify(raw string, lineNr int) (Classification, error) {
	token := m.Token()
	prefix, remainder, found := strings.Cut(raw, token)
	if token == "" || !found {
		return Classification{Retained: raw}, nil
	}

	comment := strings.TrimSpace(strings.ReplaceAll(remainder, token, ""))
	if !utf8.ValidString(comment) {
		return Classification{}, &apperr.LineParseError{Line: lineNr, Err: errInvalidUTF8}
	}

	line := lineNr
	if strings.TrimSpace(prefix) == "" {
		line++
	}

	return Classification{
		Retained: prefix,
		Marked:   true,
		Comment:  comment,
		Line:     line,
	}, nil
}
