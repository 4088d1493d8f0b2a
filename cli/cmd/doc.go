// Package cmd provides the subcommands of the tracer CLI.
//
// Commands that write trace lines take the process registry as a kong
// binding; see [Demo], [Emit] and [Dump].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// of the YAML configuration file.
	ConfigIdentifier = "config"

	// SeveritiesIdentifier is the kong variable identifier listing the
	// severity names accepted on the command line.
	SeveritiesIdentifier = "severities"

	// ColumnsIdentifier is the kong variable identifier containing the
	// default hex dump column count.
	ColumnsIdentifier = "columns"
)
