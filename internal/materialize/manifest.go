package materialize

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/gitcommit/internal/storage"
)

const (
	manifestName = "manifest.yaml"
	filesDir     = "files"
)

// Entry records one staged file.
type Entry struct {
	Path     string `yaml:"path"`
	Tracked  bool   `yaml:"tracked"`
	Original string `yaml:"original"` // checksum of the original when staged
	Staged   string `yaml:"staged"`   // checksum of the rewritten content
}

// Manifest describes the contents of a staging directory.
type Manifest struct {
	Root    string    `yaml:"root"`
	Created time.Time `yaml:"created"`
	Files   []Entry   `yaml:"files"`
}

// Lookup returns the entry for path.
func (m *Manifest) Lookup(path string) (Entry, bool) {
	for _, e := range m.Files {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Paths returns the staged paths in order.
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.Files))
	for _, e := range m.Files {
		paths = append(paths, e.Path)
	}
	return paths
}

func (m *Manifest) remove(path string) {
	for i := range m.Files {
		if m.Files[i].Path == path {
			m.Files = append(m.Files[:i], m.Files[i+1:]...)
			return
		}
	}
}

func (m *Manifest) put(e Entry) {
	for i := range m.Files {
		if m.Files[i].Path == e.Path {
			m.Files[i] = e
			return
		}
	}
	m.Files = append(m.Files, e)
	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].Path < m.Files[j].Path })
}

// LoadManifest reads the manifest of a staging directory. A directory without
// one yields an empty manifest.
func LoadManifest(staging storage.Provider) (*Manifest, error) {
	data, err := staging.Read(manifestName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Manifest{}, nil
		}
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("materialize: parse manifest: %w", err)
	}
	return &m, nil
}

func saveManifest(staging storage.Provider, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("materialize: encode manifest: %w", err)
	}
	return staging.Write(manifestName, data)
}
