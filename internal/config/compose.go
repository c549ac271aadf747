// compose.go resolves a Docker Compose project name from a compose file,
// used by "dockhand logs --compose-file" to derive the stack label
// filter without requiring the user to know the project name.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// composeFile is the subset of a compose file this tool reads. The
// top-level name field sets COMPOSE_PROJECT_NAME; everything else is
// ignored.
type composeFile struct {
	Name string `yaml:"name"`
}

// ComposeProjectName returns the compose project name declared in the
// file at path. When the file declares no name, Docker Compose derives
// the project name from the file's directory, and so does this function.
func ComposeProjectName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read compose file: %w", err)
	}

	var cf composeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return "", fmt.Errorf("failed to parse compose file %s: %w", path, err)
	}

	if cf.Name != "" {
		return cf.Name, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve compose file path: %w", err)
	}
	return filepath.Base(filepath.Dir(abs)), nil
}
