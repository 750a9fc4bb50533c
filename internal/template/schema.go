package template

import (
	"encoding/json"
	"fmt"
	"os"
)

// Schema is the top-level JSON structure of a project template: a
// pre-built phase/department/line-item tree plus the business-type key
// used to decide which templates are offered.
type Schema struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Version      string        `json:"version"`
	Description  string        `json:"description,omitempty"`
	BusinessType string        `json:"business_type,omitempty"`
	Currency     string        `json:"currency,omitempty"`
	Phases       []PhaseConfig `json:"phases"`
}

type PhaseConfig struct {
	Name string `json:"name"`
	// Offsets are in days relative to the project planned start date.
	StartOffsetDays int                `json:"start_offset_days"`
	DurationDays    int                `json:"duration_days"`
	Departments     []DepartmentConfig `json:"departments"`
}

type DepartmentConfig struct {
	Name           string `json:"name"`
	ContractorMode string `json:"contractor_mode,omitempty"`
	// Amount is the stored department amount; legacy templates author it
	// independently of the line items.
	Amount    string           `json:"amount,omitempty"`
	LineItems []LineItemConfig `json:"line_items,omitempty"`
}

type LineItemConfig struct {
	ItemType  string `json:"item_type,omitempty"`
	Item      string `json:"item,omitempty"`
	Spec      string `json:"spec,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
	UOM       string `json:"uom,omitempty"`
	UnitPrice string `json:"unit_price,omitempty"`
}

// LoadSchema reads and parses a template file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("template %s: name is required", path)
	}
	if len(s.Phases) == 0 {
		return nil, fmt.Errorf("template %s: at least one phase is required", path)
	}
	return &s, nil
}
