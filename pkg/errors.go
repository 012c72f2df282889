package decoder

import "fmt"

// ErrMalformedWord represents a token that is not a hexadecimal 64-bit word.
type ErrMalformedWord struct {
	Line  int
	Token string
	Err   error
}

func (e *ErrMalformedWord) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed word %q on line %d: %v", e.Token, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed word %q: %v", e.Token, e.Err)
}

func (e *ErrMalformedWord) Unwrap() error {
	return e.Err
}

// ErrEmptyLine represents a line without any token, so no frame word.
type ErrEmptyLine struct {
	Line int
}

func (e *ErrEmptyLine) Error() string {
	return fmt.Sprintf("line %d is empty, no frame word found", e.Line)
}

// ErrFileUnreadable represents an error when opening or reading a file.
type ErrFileUnreadable struct {
	Filename string
	Err      error
}

func (e *ErrFileUnreadable) Error() string {
	return fmt.Sprintf("error reading file %q: %v", e.Filename, e.Err)
}

func (e *ErrFileUnreadable) Unwrap() error {
	return e.Err
}

// ErrIndexOutOfRange represents a chunk query beyond the loaded chunks.
type ErrIndexOutOfRange struct {
	Index int
	Len   int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("chunk index %d out of range, %d chunks loaded", e.Index, e.Len)
}

// ErrOpenFile represents an error when creating an output file.
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

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error {
	return e.Err
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error {
	return e.Err
}
