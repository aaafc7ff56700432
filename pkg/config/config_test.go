package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
}

func (s *sample) Validate() error {
	if s.Width < 1 {
		return errors.New("width must be positive")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnvAndKeepsDefaults(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")
	path := writeConfig(t, "name: ${SAMPLE_NAME}\n")

	s := &sample{Width: 70}
	if err := Load(path, s); err != nil {
		t.Fatal(err)
	}
	if s.Name != "from-env" {
		t.Errorf("name = %q, want from-env", s.Name)
	}
	if s.Width != 70 {
		t.Errorf("width = %d, want default 70", s.Width)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, "width: 0\n")
	err := Load(path, &sample{Width: 70})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("err = %v, want validation failure", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "none.yaml"), &sample{Width: 1}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	s := &sample{Name: "default", Width: 70}
	found, err := LoadOptional(filepath.Join(t.TempDir(), "none.yaml"), s)
	if err != nil {
		t.Fatal(err)
	}
	if found || s.Name != "default" {
		t.Errorf("found = %v, sample = %+v", found, s)
	}
}

func TestLoadOptional_ExistingFile(t *testing.T) {
	path := writeConfig(t, "name: file\nwidth: 40\n")
	s := &sample{Width: 70}
	found, err := LoadOptional(path, s)
	if err != nil {
		t.Fatal(err)
	}
	if !found || s.Name != "file" || s.Width != 40 {
		t.Errorf("found = %v, sample = %+v", found, s)
	}
}
