// Package diag defines the diagnostic model shared by the lexer, the parser and the
// driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – human oriented text; syntax messages follow the wording users know
//     from generated parsers ("extraneous input ')' expecting <EOF>").
//   - Primary span – the source.Span pointing at the offending token.
//   - Notes – optional secondary spans/messages.
//
// # Emitting diagnostics
//
// Phases never print. They call a Reporter, which is the pluggable diagnostic sink:
// BagReporter stores into a Bag, MultiReporter fans out, CountingReporter counts
// by severity. Rendering (line form, pretty form, JSON) lives in internal/diagfmt.
//
// Syntax errors are not Go errors. A Reporter call never aborts the phase that made
// it, so parsing continues past individual problems.
package diag
