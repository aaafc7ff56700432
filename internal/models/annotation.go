// Package models defines the domain types for gitcommit.
package models

// CommentRecord is one extracted annotation. Line is 1-based and names the
// line of the original file the comment documents.
type CommentRecord struct {
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
}

// ParsedFile holds the comments extracted from one file, in file order.
type ParsedFile struct {
	Path     string          `json:"path" yaml:"path"`
	Tracked  bool            `json:"tracked" yaml:"tracked"`
	Comments []CommentRecord `json:"comments" yaml:"comments"`
}

// NewParsedFile creates an empty ParsedFile for a repository-relative path.
func NewParsedFile(path string, tracked bool) *ParsedFile {
	return &ParsedFile{Path: path, Tracked: tracked}
}

// AddComment appends a record. Records with a non-positive line are ignored.
func (p *ParsedFile) AddComment(line int, text string) {
	if line < 1 {
		return
	}
	p.Comments = append(p.Comments, CommentRecord{Line: line, Text: text})
}

// HasMarkers reports whether at least one comment was recorded.
func (p *ParsedFile) HasMarkers() bool {
	return len(p.Comments) > 0
}

// WorkItem is a file selected for processing.
type WorkItem struct {
	Path    string // relative to the repository root, slash separated
	AbsPath string
	Tracked bool
}
