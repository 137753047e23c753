// Package analyser parses a C0 token stream by recursive descent and emits
// stack-machine code while it parses. There is no syntax tree for
// statements: each grammar rule writes straight into the instruction stream
// of the function being translated. Expressions are the exception; they are
// parsed into a small closed tree first so operand order and types can be
// checked before anything is emitted.
//
// Analysis stops at the first error.
package analyser
