// Package testing provides utilities for writing Raspberry Pi specific
// tests.
//
// Import it renamed to avoid clashing with the standard testing package:
//
//	import rpitesting "github.com/bitkis/ruspiro-mailbox/testing"
package testing
