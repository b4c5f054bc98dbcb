// Package util provides generic utility functions for corekit applications.
//
// It includes environment merging for subprocess execution, wildcard string
// matching, and small string helpers shared across the library.
package util
