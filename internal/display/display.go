// Package display contains terminal formatting logic for the CLI.
//
// The command keeps benchmarking and report generation separate from
// rendering concerns by delegating all terminal output to formatters in
// this package.
package display

import "io"

// Formatter writes formatted output to a writer.
type Formatter interface {
	Format(w io.Writer) error
}
