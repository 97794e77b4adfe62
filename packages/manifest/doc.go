// Package manifest loads the ordered list of test scripts to execute.
//
// A manifest is a flat text file with one script path per line. Order is
// significant and duplicates are kept. Blank lines and lines starting
// with '#' are ignored.
package manifest
