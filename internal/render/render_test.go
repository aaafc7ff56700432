package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/gitcommit/internal/apperr"
	"github.com/starford/gitcommit/internal/models"
)

func sampleFiles() []*models.ParsedFile {
	a := models.NewParsedFile("a.py", true)
	a.AddComment(2, "explain y")
	a.AddComment(4, "next line is tricky")
	b := models.NewParsedFile("new.go", false)
	b.AddComment(1, "entry point")
	return []*models.ParsedFile{a, b}
}

func TestTemplate_DefaultLayout(t *testing.T) {
	tmpl, err := NewTemplate("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := tmpl.Render("Fix parser", []string{"Handles empty input."}, sampleFiles())
	if err != nil {
		t.Fatal(err)
	}
	want := "Fix parser\n" +
		"\n" +
		"Handles empty input.\n" +
		"\n" +
		"a.py\n" +
		"- line 2: explain y\n" +
		"- line 4: next line is tricky\n" +
		"\n" +
		"new.go (new file)\n" +
		"- line 1: entry point\n"
	if got != want {
		t.Errorf("rendered:\n%q\nwant:\n%q", got, want)
	}
}

func TestTemplate_SummaryOnly(t *testing.T) {
	tmpl, err := NewTemplate("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := tmpl.Render("Fix parser", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Fix parser\n" {
		t.Errorf("rendered = %q", got)
	}
}

func TestTemplate_UserTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.txt")
	text := `{{ upper .Summary }}{{ range .Files }} [{{ .Path }}:{{ len .Comments }}]{{ end }}`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	tmpl, err := NewTemplate(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tmpl.Render("fix", nil, sampleFiles())
	if err != nil {
		t.Fatal(err)
	}
	if got != "FIX [a.py:2] [new.go:1]" {
		t.Errorf("rendered = %q", got)
	}
}

func TestNewTemplate_MissingFile(t *testing.T) {
	_, err := NewTemplate(filepath.Join(t.TempDir(), "nope.txt"))
	var rErr *apperr.RenderError
	if !errors.As(err, &rErr) || rErr.Stage != apperr.StageLoad {
		t.Errorf("err = %v, want load-stage RenderError", err)
	}
}

func TestNewTemplate_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("{{ .Summary "), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewTemplate(path)
	if !errors.Is(err, apperr.ErrRender) {
		t.Errorf("err = %v, want ErrRender", err)
	}
}

func TestTemplate_ExecuteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exec.txt")
	if err := os.WriteFile(path, []byte("{{ .Missing }}"), 0o644); err != nil {
		t.Fatal(err)
	}
	tmpl, err := NewTemplate(path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = tmpl.Render("x", nil, nil)
	var rErr *apperr.RenderError
	if !errors.As(err, &rErr) || rErr.Stage != apperr.StageExecute {
		t.Errorf("err = %v, want execute-stage RenderError", err)
	}
}

func TestWriteMessage_TempFile(t *testing.T) {
	path, err := WriteMessage("", "hello\n")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(path) })
	if !filepath.IsAbs(path) {
		t.Errorf("path %s is not absolute", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteMessage_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "MSG")
	got, err := WriteMessage(path, "msg")
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("path = %s, want %s", got, path)
	}
}

func TestWriteMessage_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := WriteMessage(filepath.Join(blocker, "MSG"), "msg")
	var rErr *apperr.RenderError
	if !errors.As(err, &rErr) || rErr.Stage != apperr.StageWrite {
		t.Errorf("err = %v, want write-stage RenderError", err)
	}
	if !strings.Contains(err.Error(), "write") {
		t.Errorf("error %q should name the stage", err)
	}
}
