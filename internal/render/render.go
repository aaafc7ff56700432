// Package render turns the collected comments into a commit message.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/starford/gitcommit/internal/apperr"
	"github.com/starford/gitcommit/internal/models"
)

//go:embed templates/*.txt
var templates embed.FS

// DefaultTemplate is the name of the embedded template.
const DefaultTemplate = "standard.txt"

// Renderer produces the commit message text.
type Renderer interface {
	Render(summary string, body []string, files []*models.ParsedFile) (string, error)
}

// Data is the value templates are executed with.
type Data struct {
	Summary string
	Body    []string
	Files   []*models.ParsedFile
}

// Template renders with text/template. The zero value is not usable; create it
// with NewTemplate.
type Template struct {
	tmpl *template.Template
}

// NewTemplate parses the template at path, or the embedded default when path
// is empty.
func NewTemplate(path string) (*Template, error) {
	var (
		name string
		text []byte
		err  error
	)
	if path == "" {
		name = DefaultTemplate
		text, err = templates.ReadFile("templates/" + DefaultTemplate)
	} else {
		name = filepath.Base(path)
		text, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &apperr.RenderError{Stage: apperr.StageLoad, Err: err}
	}

	tmpl, err := template.New(name).Option("missingkey=error").Funcs(funcs).Parse(string(text))
	if err != nil {
		return nil, &apperr.RenderError{Stage: apperr.StageLoad, Err: err}
	}
	return &Template{tmpl: tmpl}, nil
}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// Render implements Renderer.
func (t *Template) Render(summary string, body []string, files []*models.ParsedFile) (string, error) {
	if t == nil || t.tmpl == nil {
		return "", &apperr.RenderError{Stage: apperr.StageLoad, Err: errors.New("template not loaded")}
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, Data{Summary: summary, Body: body, Files: files}); err != nil {
		return "", &apperr.RenderError{Stage: apperr.StageExecute, Err: err}
	}
	return buf.String(), nil
}

// WriteMessage writes text to path, or to a new file in the system temp
// directory when path is empty, and returns the absolute path written.
func WriteMessage(path, text string) (string, error) {
	if path == "" {
		f, err := os.CreateTemp("", "gitcommit-msg-*.txt")
		if err != nil {
			return "", &apperr.RenderError{Stage: apperr.StageWrite, Err: err}
		}
		if _, err := f.WriteString(text); err != nil {
			_ = f.Close()
			return "", &apperr.RenderError{Stage: apperr.StageWrite, Err: err}
		}
		if err := f.Close(); err != nil {
			return "", &apperr.RenderError{Stage: apperr.StageWrite, Err: err}
		}
		return f.Name(), nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &apperr.RenderError{Stage: apperr.StageWrite, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", &apperr.RenderError{Stage: apperr.StageWrite, Err: fmt.Errorf("create dir: %w", err)}
	}
	if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
		return "", &apperr.RenderError{Stage: apperr.StageWrite, Err: err}
	}
	return abs, nil
}
