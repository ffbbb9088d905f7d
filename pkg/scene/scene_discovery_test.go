package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"glass-row", "Glass Row"},
		{"mirror_hall", "Mirror Hall"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if result := titleCase(tc.input); result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"b-named.json":   `{"name": "Alpha", "description": "first by name"}`,
		"a-unnamed.json": `{"spheres": []}`,
		"broken.json":    `{not json`,
		"notes.txt":      `ignored`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles failed: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}

	if scenes[0].Name != "A Unnamed" || scenes[0].ID != "json:a-unnamed" {
		t.Errorf("Expected fallback name for a-unnamed, got %+v", scenes[0])
	}
	if scenes[1].Name != "Alpha" || scenes[1].Description != "first by name" {
		t.Errorf("Expected metadata from file, got %+v", scenes[1])
	}
	for _, info := range scenes {
		if info.Type != "json" {
			t.Errorf("Expected type json, got %q", info.Type)
		}
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Expected no error for missing directory, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestListAllScenes_BuiltInFirst(t *testing.T) {
	scenes, err := ListAllScenes(t.TempDir())
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}
	if len(scenes) == 0 || scenes[0].ID != "default" {
		t.Errorf("Expected default scene first, got %+v", scenes)
	}
}
