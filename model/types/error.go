package types

import "fmt"

// NewMethodNotFoundError reports an unknown operation name.
func NewMethodNotFoundError(name string) error {
	return fmt.Errorf("method %v not found", name)
}

// NewInvalidInputError reports an input of an unexpected type.
func NewInvalidInputError(input interface{}) error {
	return fmt.Errorf("invalid input %T", input)
}

// NewInvalidOutputError reports an output of an unexpected type.
func NewInvalidOutputError(output interface{}) error {
	return fmt.Errorf("invalid output %T", output)
}
