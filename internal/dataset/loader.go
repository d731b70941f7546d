package dataset

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/tripgen-cli/internal/model"
)

//go:embed data/landuse.json data/modal.json
var embedded embed.FS

// Default returns a registry over the embedded reference dataset.
func Default() (*Registry, error) {
	data, err := embedded.ReadFile("data/landuse.json")
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read embedded land-use data")
	}
	var records []model.LandUseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "dataset: unmarshal embedded land-use data")
	}
	return NewRegistry(records)
}

// DefaultModal returns a modal registry over the embedded modal dataset.
func DefaultModal() (*ModalRegistry, error) {
	data, err := embedded.ReadFile("data/modal.json")
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read embedded modal data")
	}
	var records []model.ModalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "dataset: unmarshal embedded modal data")
	}
	return NewModalRegistry(records)
}

// LoadRecordsFromFile reads land-use records from a JSON or YAML file.
// The format is chosen by extension.
func LoadRecordsFromFile(path string) ([]model.LandUseRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read land-use file")
	}

	var records []model.LandUseRecord
	if err := unmarshalByExt(path, data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadModalRecordsFromFile reads modal records from a JSON or YAML file.
func LoadModalRecordsFromFile(path string) ([]model.ModalRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read modal file")
	}

	var records []model.ModalRecord
	if err := unmarshalByExt(path, data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func unmarshalByExt(path string, data []byte, out any) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return eris.Wrapf(err, "dataset: unmarshal %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return eris.Wrapf(err, "dataset: unmarshal %s", path)
		}
	default:
		return eris.Errorf("dataset: unsupported file extension %q", ext)
	}
	return nil
}

// Open builds the registries from config, preferring override files over the
// embedded defaults.
func Open(landusePath, modalPath string) (*Registry, *ModalRegistry, error) {
	reg, err := openRegistry(landusePath)
	if err != nil {
		return nil, nil, err
	}
	modal, err := openModal(modalPath)
	if err != nil {
		return nil, nil, err
	}
	return reg, modal, nil
}

func openRegistry(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	records, err := LoadRecordsFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(records)
}

func openModal(path string) (*ModalRegistry, error) {
	if path == "" {
		return DefaultModal()
	}
	records, err := LoadModalRecordsFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewModalRegistry(records)
}
