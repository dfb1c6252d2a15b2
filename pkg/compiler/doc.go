// Package compiler implements the front-end of a small C-like
// language: a buffered character source, a streaming lexer with a
// single token of lookahead, and a recursive-descent parser that
// builds a typed syntax tree.
//
// Pipeline: source text → NewLexer → NewParser → ParseProgram → Fprint
package compiler
