package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrDatasetNotFound is returned when a dataset is not found
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrDatasetAlreadyExists is returned when trying to create a dataset that already exists
	ErrDatasetAlreadyExists = errors.New("dataset already exists")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrBufferCapacity is returned when a scan's result buffer cannot grow
	// past its configured capacity limit
	ErrBufferCapacity = errors.New("result buffer capacity exceeded")
)

// DatasetNotFoundError represents a dataset not found error with context
type DatasetNotFoundError struct {
	DatasetName string
}

func (e *DatasetNotFoundError) Error() string {
	return fmt.Sprintf("dataset named '%s' not found", e.DatasetName)
}

func (e *DatasetNotFoundError) Is(target error) bool {
	return target == ErrDatasetNotFound
}

// NewDatasetNotFoundError creates a new DatasetNotFoundError
func NewDatasetNotFoundError(datasetName string) *DatasetNotFoundError {
	return &DatasetNotFoundError{DatasetName: datasetName}
}

// DatasetAlreadyExistsError represents a dataset already exists error with context
type DatasetAlreadyExistsError struct {
	DatasetName string
}

func (e *DatasetAlreadyExistsError) Error() string {
	return fmt.Sprintf("dataset named '%s' already exists", e.DatasetName)
}

func (e *DatasetAlreadyExistsError) Is(target error) bool {
	return target == ErrDatasetAlreadyExists
}

// NewDatasetAlreadyExistsError creates a new DatasetAlreadyExistsError
func NewDatasetAlreadyExistsError(datasetName string) *DatasetAlreadyExistsError {
	return &DatasetAlreadyExistsError{DatasetName: datasetName}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// BufferCapacityError is reported when a worker's result buffer hits its
// configured capacity limit during a scan. The whole scan aborts; there is no
// partial-success mode.
type BufferCapacityError struct {
	Capacity int
}

func (e *BufferCapacityError) Error() string {
	return fmt.Sprintf("scan aborted: result buffer cannot grow past %d entries", e.Capacity)
}

func (e *BufferCapacityError) Is(target error) bool {
	return target == ErrBufferCapacity
}

// NewBufferCapacityError creates a new BufferCapacityError
func NewBufferCapacityError(capacity int) *BufferCapacityError {
	return &BufferCapacityError{Capacity: capacity}
}
