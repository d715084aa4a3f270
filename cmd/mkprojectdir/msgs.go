package mkprojectdir

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Create a project directory from a template"
	MsgNewShort        = "Create a project directory from a template"
	MsgListShort       = "List the stored templates"
	MsgSaveShort       = "Save a directory as a template"
	MsgShowShort       = "Show the variables and README of a template"
	MsgRemoveShort     = "Remove a stored template"
	MsgConfigShort     = "Manage the configuration file"
	MsgConfigInitShort = "Write a starting config.toml"
	MsgConfigShowShort = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgVersionFormat = "mkprojectdir version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrArgs = "expected <template> <destination>, got %d argument(s)"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagOutput       = "Output format: auto, term, text or json"
	MsgFlagConfig       = "Config file (default is config.toml in the config directory)"
	MsgFlagTemplatesDir = "Template store directory"
	MsgFlagSet          = "Set a variable value (name=value, repeatable)"
	MsgFlagVarsFile     = "Read variable values from a YAML, JSON or TOML file"
	MsgFlagNoInput      = "Never prompt; use configured defaults for missing values"
	MsgFlagDryRun       = "Show what would be created without writing anything"
	MsgFlagForce        = "Replace an existing file or template"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/save-long.txt
	msgSaveLongRaw string
	MsgSaveLong    = strings.TrimSpace(msgSaveLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
