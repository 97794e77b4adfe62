// Package history records completed runs in a local SQLite database so
// past verdicts and per-script exit codes can be inspected later.
package history
