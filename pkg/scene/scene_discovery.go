package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// sceneHeader is the subset of a scene file read during discovery
type sceneHeader struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BuiltInScenes lists the scenes compiled into the binary
func BuiltInScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Four spheres over a checkerboard, lit by three point lights",
			Type:        "builtin",
		},
	}
}

// ListSceneFiles scans dir for *.json scene files. A missing directory is
// not an error and yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name and description of a scene file,
// falling back to a title-cased file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       "json:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var header sceneHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("invalid scene file: %w", err)
	}
	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by the files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(BuiltInScenes(), files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-row" -> "Glass Row"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
