package cmd

// Exit codes for suiterun CLI
const (
	// ExitSuccess indicates every manifest entry passed
	ExitSuccess = 0

	// ExitTestFailure indicates a manifest entry exited non-zero
	ExitTestFailure = 1

	// ExitManifestError indicates the manifest could not be read
	ExitManifestError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
