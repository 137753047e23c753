// Package diag defines the error model shared by all pipeline phases.
//
// # Purpose
//
//   - Error is the single CompilationError a phase may return: a Code plus an
//     optional source position. The first Error aborts its phase; no partial
//     results travel with it.
//   - Diagnostic and Bag carry rendered-ready findings from the driver to the
//     CLI. Bag supports sorting and a stable golden form for tests.
//
// # Scope
//
// Package diag does not perform any formatting for terminals or IO.
// Rendering responsibilities live in internal/diagfmt.
//
// # Codes
//
// Codes are grouped by numeric family: LEX (1000), SYN (2000), SEM (3000)
// and IO (4000). Code.ID returns the stable string form (e.g. "SEM3002").
package diag
