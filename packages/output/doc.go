// Package output displays run progress and verdicts on the console.
//
// The console reporter prints one line per manifest entry as it executes:
//
//	<entry>...
//	<entry>...done
//
// and on the first failure prints FAIL! followed by the attempted command
// line, or PASS after a clean run. Color decorates these lines but never
// changes them; --no-color and non-TTY output yield the plain strings.
package output
