package mcpserver

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperation signals a tool name outside the advertised set.
	ErrUnknownOperation = errors.New("unknown tool")
	// ErrInvalidArguments signals tool arguments that do not match the input schema.
	ErrInvalidArguments = errors.New("invalid arguments")
)

// UnknownOperationError names the rejected tool.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownOperation.Error(), e.Name)
}

func (e *UnknownOperationError) Unwrap() error { return ErrUnknownOperation }
