// Package config loads suiterun configuration from a YAML file.
//
// Configuration supplies defaults for the manifest path, the interpreter,
// the credential files, and history recording; command-line flags always
// take precedence over file values.
package config
