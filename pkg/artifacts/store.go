// Package artifacts stores snapshot documents on disk so a later
// compare-snapshots invocation can reference them by ID. Snapshot contents
// are opaque: they are re-indented for readability but never inspected.
package artifacts

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store is a directory of pretty-printed JSON snapshot files.
type Store struct {
	dir string
}

// NewStore opens (and creates if needed) an artifact directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("artifact directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create artifact directory")
	}
	return &Store{dir: dir}, nil
}

// Save writes a snapshot document under a fresh ID derived from name and
// returns the ID.
func (s *Store) Save(name string, document json.RawMessage) (string, error) {
	pretty, err := indent(document)
	if err != nil {
		return "", errors.Wrap(err, "failed to format snapshot")
	}

	id := name + "-" + uuid.New().String()[:8]
	if err := os.WriteFile(s.Path(id), pretty, 0644); err != nil {
		return "", errors.Wrap(err, "failed to write snapshot file")
	}

	return id, nil
}

// Load reads a snapshot document by ID. A direct path to a snapshot file is
// accepted too, so snapshots can be moved between hosts.
func (s *Store) Load(ref string) (json.RawMessage, error) {
	path := s.Path(ref)
	if _, err := os.Stat(path); err != nil {
		if looksLikePath(ref) {
			path = ref
		} else {
			return nil, errors.Errorf("entry %s not found", ref)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot %s", ref)
	}
	if !json.Valid(data) {
		return nil, errors.Errorf("snapshot %s is not a valid JSON document", ref)
	}

	return json.RawMessage(data), nil
}

// Path returns the file path a snapshot ID maps to.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func looksLikePath(ref string) bool {
	return strings.ContainsRune(ref, os.PathSeparator) || strings.HasSuffix(ref, ".json")
}

func indent(document json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, document, "", "    "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
