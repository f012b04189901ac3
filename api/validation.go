// Package api provides validation utilities for API request handling.
package api

import (
	"strings"

	"github.com/gcbaptista/go-dedupe-engine/config"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateDatasetName validates a dataset name parameter
func ValidateDatasetName(datasetName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if datasetName == "" {
		result.AddError("datasetName", "Dataset name is required")
		return result
	}

	if strings.TrimSpace(datasetName) != datasetName {
		result.AddError("datasetName", "Dataset name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateDatasetSettings validates dataset settings for creation
func ValidateDatasetSettings(settings *config.DatasetSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Dataset settings are required")
		return result
	}

	if settings.Name == "" {
		result.AddError("name", "Dataset name is required")
	}

	for _, conflict := range settings.Validate() {
		result.AddError("settings", conflict)
	}

	return result
}

// ValidateNames validates a slice of candidate names for addition
func ValidateNames(names []string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(names) == 0 {
		result.AddError("names", "No names provided")
		return result
	}

	nonBlank := 0
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			nonBlank++
		}
	}
	if nonBlank == 0 {
		result.AddError("names", "All provided names are blank")
	}

	return result
}
