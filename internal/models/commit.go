package models

import (
	"strings"
	"unicode/utf8"
)

const (
	// SummaryLimit is the maximum length of a commit summary, in characters.
	SummaryLimit = 50
	// DefaultBodyWidth is the column the commit body is wrapped at.
	DefaultBodyWidth = 70
)

// Commit carries the summary and body of the message. Both values are
// normalized when set.
type Commit struct {
	summary string
	body    []string
	width   int
}

// NewCommit creates a Commit whose body wraps at width columns. A width below
// one selects DefaultBodyWidth.
func NewCommit(width int) *Commit {
	if width < 1 {
		width = DefaultBodyWidth
	}
	return &Commit{width: width}
}

// Summary returns the truncated summary.
func (c *Commit) Summary() string { return c.summary }

// Body returns the wrapped body lines.
func (c *Commit) Body() []string { return c.body }

// SetSummary stores text cut to SummaryLimit characters.
func (c *Commit) SetSummary(text string) {
	if utf8.RuneCountInString(text) <= SummaryLimit {
		c.summary = text
		return
	}
	runes := []rune(text)
	c.summary = string(runes[:SummaryLimit])
}

// SetBody stores text word-wrapped to the commit width.
func (c *Commit) SetBody(text string) {
	width := c.width
	if width < 1 {
		width = DefaultBodyWidth
	}
	c.body = Wrap(text, width)
}

// Wrap splits text into lines of at most width characters. Whitespace runs,
// newlines included, collapse to a single space and words longer than width
// are broken.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current []rune
	for _, word := range words {
		w := []rune(word)
		for len(w) > 0 {
			switch {
			case len(current) == 0 && len(w) <= width:
				current = append(current, w...)
				w = nil
			case len(current) == 0:
				lines = append(lines, string(w[:width]))
				w = w[width:]
			case len(current)+1+len(w) <= width:
				current = append(current, ' ')
				current = append(current, w...)
				w = nil
			default:
				lines = append(lines, string(current))
				current = current[:0]
			}
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
