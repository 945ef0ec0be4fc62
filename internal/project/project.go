// Package project persists projects and application configuration as
// JSON files. Project files travel with the user; the app config lives
// in the platform config directory.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

// FileExtension is the conventional project file suffix.
const FileExtension = ".sfproj"

// Save writes the project to path as indented JSON, creating any
// missing parent directories.
func Save(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from path.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}

	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}

	if p.Shapes == nil {
		p.Shapes = model.ShapeList{}
	}
	if p.Name == "" {
		p.Name = filepath.Base(path)
	}
	return p, nil
}
