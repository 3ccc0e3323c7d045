package inventory

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/codeready-toolchain/scene-validator/pkg/validatorerrors"
)

// Store holds every scene loaded from a catalog directory. It is built once
// at startup and never mutated afterward; Lookup is safe for concurrent use
// without locking because of that immutability.
type Store struct {
	scenes map[string]Scene
}

// Load reads every catalog file in dir, merging their scenes into a single
// Store. A directory that is missing, or whose files all fail to parse, is
// ErrInventoryMissing. A single malformed file is logged and skipped,
// provided at least one other file loaded successfully.
func Load(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", validatorerrors.ErrInventoryMissing, dir, err)
	}

	store := &Store{scenes: make(map[string]Scene)}
	loaded := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := store.loadFile(path); err != nil {
			slog.Error("skipping malformed inventory catalog",
				"file", path, "error", err)
			continue
		}
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w: no catalog file under %s loaded successfully", validatorerrors.ErrInventoryMissing, dir)
	}

	return store, nil
}

func (s *Store) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", validatorerrors.ErrInventoryMalformed, err)
	}

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", validatorerrors.ErrInventoryMalformed, err)
	}

	for _, raw := range doc.Resources.Scenes.Items {
		scene, err := raw.toScene()
		if err != nil {
			slog.Error("skipping malformed scene", "file", path, "scene_id", raw.ID, "error", err)
			continue
		}
		if scene.Legacy {
			slog.Warn("scene uses legacy action format, L1 validation will be skipped",
				"scene_id", scene.ID, "file", path)
		}
		s.scenes[scene.ID] = scene
	}

	return nil
}

// Lookup returns the Scene declared for sceneID, or false if no catalog
// declared one.
func (s *Store) Lookup(sceneID string) (Scene, bool) {
	scene, ok := s.scenes[sceneID]
	return scene, ok
}

// Len returns the number of scenes currently loaded, for health reporting.
func (s *Store) Len() int {
	return len(s.scenes)
}
