package types

import "time"

// InstantiateResult holds the result of the 'new' command.
type InstantiateResult struct {
	Template    string            `json:"template"`
	Destination string            `json:"destination"`
	Variables   map[string]string `json:"variables"`
	Operations  []Operation       `json:"operations"`
	DryRun      bool              `json:"dryRun"`
	Timestamp   time.Time         `json:"timestamp"`
	Summary     Summary           `json:"summary"`
}

// Summary counts the operations of a plan by type.
type Summary struct {
	DirsCreated  int `json:"dirsCreated"`
	FilesWritten int `json:"filesWritten"`
	FilesCopied  int `json:"filesCopied"`
}

// Add counts one operation.
func (s *Summary) Add(op Operation) {
	switch op.Type {
	case OperationCreateDir:
		s.DirsCreated++
	case OperationWriteFile:
		s.FilesWritten++
	case OperationCopyFile:
		s.FilesCopied++
	}
}

// ListTemplatesResult holds the result of the 'list' command.
type ListTemplatesResult struct {
	TemplatesDir string         `json:"templatesDir"`
	Templates    []TemplateInfo `json:"templates"`
}

// TemplateInfo contains summary information about a single template.
type TemplateInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// SaveTemplateResult holds the result of the 'save' command.
type SaveTemplateResult struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Path        string `json:"path"`
	FilesCopied int    `json:"filesCopied"`
	Replaced    bool   `json:"replaced"`
}

// ShowTemplateResult holds the result of the 'show' command.
type ShowTemplateResult struct {
	Template  TemplateInfo `json:"template"`
	Variables []string     `json:"variables"`
	Files     int          `json:"files"`
	Dirs      int          `json:"dirs"`
	Readme    string       `json:"readme,omitempty"`
}

// RemoveTemplateResult holds the result of the 'rm' command.
type RemoveTemplateResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// GenConfigResult holds the result of the 'config init' command.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}
