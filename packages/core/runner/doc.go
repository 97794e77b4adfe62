// Package runner executes manifest entries as subprocesses, one at a time.
//
// It provides functionality for:
//   - Sequential, fail-fast execution of an ordered script manifest
//   - Passing TLS client-certificate flags to every invocation
//   - Exposing the project root to scripts through an environment variable
//   - Optional pacing of script launches
//
// Each subprocess is fully awaited before the next is started; the first
// non-zero exit aborts the run.
package runner
