package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatMermaid OutputFormat = "mermaid"
)

var outputFormats = []OutputFormat{
	OutputFormatText,
	OutputFormatDOT,
	OutputFormatJSON,
	OutputFormatMermaid,
}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat matches a user-supplied format name, ignoring case.
func ParseOutputFormat(value string) (OutputFormat, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, f := range outputFormats {
		if string(f) == value {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats returns the comma-separated list of format names.
func SupportedFormats() string {
	names := make([]string, len(outputFormats))
	for i, f := range outputFormats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
