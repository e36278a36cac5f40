package domain

import "wtr/pkg/selector"

// Category classifies a generated test case
type Category string

const (
	CategoryFunctional Category = "functional"
	CategoryApi        Category = "api"
	CategoryVisual     Category = "visual"
)

// ParseCategory maps a raw manifest value onto a known category.
// Unknown or empty values fall back to functional.
func ParseCategory(raw string) Category {
	switch Category(raw) {
	case CategoryApi:
		return CategoryApi
	case CategoryVisual:
		return CategoryVisual
	default:
		return CategoryFunctional
	}
}

// TestStep is one interaction inside a generated test case
type TestStep struct {
	Action     string                     `json:"action"`               // Interaction kind, e.g. goto, click, fill, expect
	Value      string                     `json:"value,omitempty"`      // Input value or assertion payload
	Candidates []selector.Candidate       `json:"candidates,omitempty"` // Explicit locator candidates from the generator
	Metadata   selector.ComponentMetadata `json:"metadata,omitempty"`   // Observed element attributes
}

// TestCase represents a single generated test case
type TestCase struct {
	Name     string     `json:"name"`            // Unique case name
	Category Category   `json:"category"`        // functional, api or visual
	Route    string     `json:"route,omitempty"` // Page route the case exercises
	File     string     `json:"file,omitempty"`  // Source file the case was loaded from
	Code     string     `json:"code,omitempty"`  // Runner-native source of the case
	Steps    []TestStep `json:"steps,omitempty"` // Structured steps, present for manifest cases
}
