package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Store holds definitions keyed by their id.
type Store struct {
	definitions map[string]model.Definition
}

// LoadFS walks the provided filesystem and parses JSON/YAML wizard
// definitions. When fsys is nil or no definition files are present, the
// returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]model.Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		def, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := store.definitions[def.ID]; exists {
			return fmt.Errorf("schema: duplicate definition %q (file %s)", def.ID, path)
		}
		store.definitions[def.ID] = def
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// LoadFile parses a single definition from disk.
func LoadFile(path string) (model.Definition, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return model.Definition{}, fmt.Errorf("schema: definition path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Definition{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML definition, applies defaults and validates it.
func Parse(data []byte, source string) (model.Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Definition{}, fmt.Errorf("schema: file %s is empty", source)
	}

	var def model.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = model.Definition{}
		if yerr := yaml.Unmarshal(data, &def); yerr != nil {
			return model.Definition{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}

	applyDefaults(&def)
	if err := Validate(def); err != nil {
		return model.Definition{}, fmt.Errorf("schema: %s: %w", source, err)
	}
	return def, nil
}

// Definition returns the definition registered under id.
func (s *Store) Definition(id string) (model.Definition, bool) {
	if s == nil {
		return model.Definition{}, false
	}
	def, ok := s.definitions[id]
	return def, ok
}

// IDs lists the registered definition ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.definitions))
	for id := range s.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
