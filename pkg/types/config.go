package types

import "time"

// DefaultSourcePath is the program module read by dump_info when no
// source is configured. It is resolved against the working directory.
const DefaultSourcePath = "programs/swap-program/src/lib.rs"

// OutputFormat selects how dump_info renders the interface record.
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTable OutputFormat = "table"
)

// Rules holds the tunable parts of the recognition patterns.
type Rules struct {
	// ContextParam is the literal parameter name that marks an instruction's
	// execution context (default "ctx"). Functions naming the parameter
	// differently are not recognized as instructions.
	ContextParam string `json:"context_param" yaml:"context_param"`

	// ErrorCodeBase is the code assigned to the first error variant (default 6000).
	ErrorCodeBase uint32 `json:"error_code_base" yaml:"error_code_base"`
}

// DefaultRules returns the rule set used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		ContextParam:  "ctx",
		ErrorCodeBase: 6000,
	}
}

// ExtractionConfig holds settings for the dump_info command.
type ExtractionConfig struct {
	Rules `yaml:",inline"`

	// SourcePath is the program module to read, relative to the working
	// directory unless absolute.
	SourcePath string `json:"source" yaml:"source"`

	// Format selects the serializer: json, yaml, or table.
	Format OutputFormat `json:"format" yaml:"format"`

	// Watch keeps the command running and re-extracts on file changes.
	Watch bool `json:"watch" yaml:"watch"`

	// Debounce is the quiet period after a change before re-extracting.
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// CatalogConfig holds settings for the interface catalog.
type CatalogConfig struct {
	// Dir is the base directory for the catalog (contains index/).
	Dir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
