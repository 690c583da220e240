package vetoana

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrUnknownEpoch is returned when no hardware configuration covers a run.
type ErrUnknownEpoch struct {
	RunNumber int
}

func (e *ErrUnknownEpoch) Error() string {
	return fmt.Sprintf("panel map not known for run %d", e.RunNumber)
}

// ErrWriteOutput represents an error when writing an output table.
type ErrWriteOutput struct {
	Path string
	Err  error
}

func (e *ErrWriteOutput) Error() string {
	return fmt.Sprintf("error writing output %q: %v", e.Path, e.Err)
}

func (e *ErrWriteOutput) Unwrap() error {
	return e.Err
}
