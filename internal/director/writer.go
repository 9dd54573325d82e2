package director

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WritePath dumps a path table as YAML for inspection.
func WritePath(path *Path, file string) error {
	data, err := yaml.Marshal(path)
	if err != nil {
		return err
	}

	return os.WriteFile(file, data, 0644)
}

// ReadPath reads a path table written by WritePath, so a dumped table can be
// loaded back and compared.
func ReadPath(file string) (*Path, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var path Path
	if err := yaml.Unmarshal(data, &path); err != nil {
		return nil, err
	}

	return &path, nil
}
