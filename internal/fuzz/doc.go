// Package fuzztests houses Go fuzz harnesses that exercise the fern front-end
// (source -> lexer -> token stream -> parser). Its goal is to smoke test
// robustness and guard against panics, hangs or lost tokens on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер, проверяя инварианты дерева.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/tokstream,
// internal/parser, internal/diag, internal/testkit.
package fuzztests
