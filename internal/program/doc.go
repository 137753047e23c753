// Package program is the artifact produced by a successful analysis: the
// constant pool, the function table and one instruction stream per
// function. It also knows how to store a Program as msgpack and how to
// print it as a text listing.
package program
