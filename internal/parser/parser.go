package parser

import (
	"log/slog"
	"strings"

	"github.com/starford/gitcommit/internal/models"
)

// Result holds the output of rewriting one file.
type Result struct {
	File *models.ParsedFile
	// Lines is the rewritten file, each line with its terminator.
	Lines []string
	// Marked reports whether any line carried the marker.
	Marked bool
	// Skipped lists physical line numbers that failed to parse. Such lines
	// are kept verbatim, marker included.
	Skipped []int
}

// Content returns the rewritten file contents.
func (r *Result) Content() []byte {
	return []byte(strings.Join(r.Lines, ""))
}

// Rewrite classifies every line of data, records the comments on a new
// ParsedFile and builds the file with the markers removed. Unmarked and
// unparseable lines are kept byte for byte; marker-only lines are dropped.
func Rewrite(path string, tracked bool, data []byte, m Marker, logger *slog.Logger) *Result {
	lines := SplitLines(string(data))
	res := &Result{
		File:  models.NewParsedFile(path, tracked),
		Lines: make([]string, 0, len(lines)),
	}

	for i, raw := range lines {
		lineNr := i + 1
		c, err := m.Classify(raw, lineNr)
		if err != nil {
			logger.Warn("parser: skipping line",
				slog.String("path", path),
				slog.Int("line", lineNr),
				slog.String("error", err.Error()))
			res.Skipped = append(res.Skipped, lineNr)
			res.Lines = append(res.Lines, raw)
			continue
		}
		if !c.Marked {
			res.Lines = append(res.Lines, raw)
			continue
		}

		res.Marked = true
		if c.Line > len(lines) {
			// Marker-only last line: there is no following line to document.
			logger.Warn("parser: dropping comment past end of file",
				slog.String("path", path),
				slog.Int("line", lineNr))
		} else {
			res.File.AddComment(c.Line, c.Comment)
		}

		code := strings.TrimRight(c.Retained, " \t")
		if strings.TrimSpace(code) == "" {
			continue
		}
		res.Lines = append(res.Lines, code+terminator(raw))
	}

	return res
}

// SplitLines splits s after every "\n", keeping the terminators. A final line
// without a terminator is kept as is.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func terminator(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	case strings.HasSuffix(line, "\r"):
		return "\r"
	default:
		return ""
	}
}
