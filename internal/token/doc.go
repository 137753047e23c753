// Package token defines lexical token kinds for the c0 compiler.
// Invariants:
//   - Token.Text is the exact source text between Start and End.
//   - Start/End are 0-based (line, column); End is exclusive.
//   - Integer literals carry their numeric value in Token.Value; hex and
//     decimal forms of the same number have equal values.
//   - Keywords are case-sensitive. double, struct, switch, case and default
//     are recognised by the lexer but rejected by the analyser.
package token
