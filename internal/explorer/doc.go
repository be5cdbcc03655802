// Package explorer implements the recursive tree-operation engine behind
// xplore.
//
// The engine is organized into focused modules:
//   - metadata: per-entry attribute reads (Stat)
//   - list: child enumeration and the sorted display listing
//   - copy: recursive replication with permission preservation
//   - remove: recursive deletion behind a confirmation gate
//   - move: rename with copy-then-delete cross-device fallback
//   - search: case-insensitive substring walks
//   - attrs: permission and ownership changes
//   - create: file, directory, and in-place rename helpers
//   - scan: read-only subtree accounting (size, tree, glob)
//   - session: the working-directory state arguments resolve against
//
// All mutating operations:
//   - Receive already-resolved absolute paths
//   - Run to completion and report partial failure in one Outcome
//   - Match every failure to a sentinel error via errors.Is
//
// Read-only scans accept a context and may be cancelled; mutating
// operations never are, so an outcome always describes a finished walk.
//
// Example Usage:
//
//	eng := explorer.New(log)
//	out := eng.Copy("/data/in", "/data/out")
//	if !out.Succeeded {
//	    for _, f := range out.Failures {
//	        fmt.Println(f.Path, f.Reason())
//	    }
//	}
package explorer
