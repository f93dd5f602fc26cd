package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanFile is the on-disk plan input, written as YAML or JSON.
type PlanFile struct {
	Variant  string          `json:"variant,omitempty" yaml:"variant,omitempty"`
	Hours    *float64        `json:"hours,omitempty" yaml:"hours,omitempty"`
	Days     []string        `json:"days,omitempty" yaml:"days,omitempty"`
	Subjects []SubjectImport `json:"subjects" yaml:"subjects"`
}

// SubjectImport is one subject entry. Weight is the difficulty rating in the
// advanced variant and a free relative weight in the simple one.
type SubjectImport struct {
	Name       string   `json:"name" yaml:"name"`
	Weight     *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Goal       *float64 `json:"goal,omitempty" yaml:"goal,omitempty"`
	Progress   *float64 `json:"progress,omitempty" yaml:"progress,omitempty"`
	DailyHours *float64 `json:"daily_hours,omitempty" yaml:"daily_hours,omitempty"`
}

// LoadPlanFile reads a plan file. The extension picks the decoder: .yaml and
// .yml for YAML, .json for JSON. Unknown keys are rejected.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported plan file %q (expected .yaml, .yml or .json)", path)
	}
}

func ParseYAML(data []byte) (*PlanFile, error) {
	var f PlanFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &f, nil
}

func ParseJSON(data []byte) (*PlanFile, error) {
	var f PlanFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &f, nil
}
