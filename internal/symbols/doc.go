// Package symbols holds the scope stack and the function table used while a
// C0 program is analysed.
//
// There are exactly two kinds of scope: the global one, always present, and
// the scope of the function whose body is being translated. Slots are
// numbered per scope starting at 0, so the first formal parameter of a
// function occupies local slot 0.
//
// Errors returned from this package carry no position; the caller attaches
// the position of the offending token.
package symbols
