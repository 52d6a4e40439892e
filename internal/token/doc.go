// Package token defines lexical token kinds and trivia for the Fern front end.
// Invariants:
//   - Token.Text is the exact source text of the token (EOF has empty Text).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments are Leading trivia of the next significant token and
//     never appear in the main token stream.
//   - Keywords are not classified here; every word is an Ident. Fern's reserved
//     words belong to the grammar layer.
package token
