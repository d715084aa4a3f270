package types

import (
	"fmt"
	"os"
)

// OperationType defines the type of file system operation
type OperationType string

const (
	// OperationCreateDir creates a directory
	OperationCreateDir OperationType = "create_dir"

	// OperationWriteFile writes substituted content to a new file
	OperationWriteFile OperationType = "write_file"

	// OperationCopyFile copies a file byte-for-byte
	OperationCopyFile OperationType = "copy_file"
)

// Operation represents a low-level file system operation planned by the
// engine and applied in order
type Operation struct {
	// Type is the type of operation
	Type OperationType `json:"type"`

	// Source is the template path the operation derives from
	Source string `json:"source"`

	// Target is the destination path
	Target string `json:"target"`

	// Content is the content to write (write operations only)
	Content []byte `json:"-"`

	// Mode is the permission of the created entry
	Mode os.FileMode `json:"mode"`

	// Family is the content delimiter family used for write operations
	Family string `json:"family,omitempty"`
}

// Description is a human-readable description
func (o Operation) Description() string {
	switch o.Type {
	case OperationCreateDir:
		return fmt.Sprintf("create directory %s", o.Target)
	case OperationWriteFile:
		return fmt.Sprintf("write %s (from %s)", o.Target, o.Source)
	case OperationCopyFile:
		return fmt.Sprintf("copy %s (from %s)", o.Target, o.Source)
	default:
		return fmt.Sprintf("%s %s", o.Type, o.Target)
	}
}
