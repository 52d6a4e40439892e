// Package tokstream buffers tokens pulled from a lexer and offers random access
// over the already fetched prefix.
package tokstream

import (
	"fern/internal/token"
)

// Source produces tokens one at a time; after EOF it keeps returning EOF.
type Source interface {
	Next() token.Token
}

// Stream is a lazily filled token buffer with a read cursor.
type Stream struct {
	src        Source
	tokens     []token.Token
	p          int
	fetchedEOF bool
}

func New(src Source) *Stream {
	return &Stream{
		src:    src,
		tokens: make([]token.Token, 0, 64),
	}
}

// sync гарантирует, что в буфере есть токен с индексом i (или EOF).
func (s *Stream) sync(i int) {
	for !s.fetchedEOF && i >= len(s.tokens) {
		s.fetch()
	}
}

func (s *Stream) fetch() {
	tok := s.src.Next()
	tok.Index = len(s.tokens)
	s.tokens = append(s.tokens, tok)
	if tok.Kind == token.EOF {
		s.fetchedEOF = true
	}
}

// LT returns the k-th token of lookahead (k >= 1) or lookbehind (k < 0).
// Past the end it returns the EOF token; before the start or for k == 0 an
// Invalid token with Index -1.
func (s *Stream) LT(k int) token.Token {
	switch {
	case k == 0:
		return token.Token{Kind: token.Invalid, Index: -1}
	case k < 0:
		i := s.p + k
		if i < 0 || i >= len(s.tokens) {
			return token.Token{Kind: token.Invalid, Index: -1}
		}
		return s.tokens[i]
	}
	i := s.p + k - 1
	s.sync(i)
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// LA returns the kind of LT(k).
func (s *Stream) LA(k int) token.Kind {
	return s.LT(k).Kind
}

// Consume advances past the current token. At EOF it does nothing.
func (s *Stream) Consume() {
	if s.LA(1) == token.EOF {
		return
	}
	s.p++
}

// Index is the position of the current token.
func (s *Stream) Index() int {
	return s.p
}

// Seek moves the cursor to index i, clamped to the buffered range.
func (s *Stream) Seek(i int) {
	if i < 0 {
		i = 0
	}
	s.sync(i)
	if i >= len(s.tokens) {
		i = len(s.tokens) - 1
	}
	s.p = i
}

// Fill pulls tokens from the source until EOF and returns the buffer size.
func (s *Stream) Fill() int {
	for !s.fetchedEOF {
		s.fetch()
	}
	return len(s.tokens)
}

// Get returns the buffered token at index i.
func (s *Stream) Get(i int) (token.Token, bool) {
	if i < 0 || i >= len(s.tokens) {
		return token.Token{}, false
	}
	return s.tokens[i], true
}

// Tokens returns the buffered tokens. The slice is shared with the stream.
func (s *Stream) Tokens() []token.Token {
	return s.tokens
}

// Size is the number of buffered tokens.
func (s *Stream) Size() int {
	return len(s.tokens)
}

// Text concatenates the text of buffered tokens in [from, to], EOF excluded.
func (s *Stream) Text(from, to int) string {
	var n int
	for i := max(from, 0); i <= to && i < len(s.tokens); i++ {
		n += len(s.tokens[i].Text)
	}
	buf := make([]byte, 0, n)
	for i := max(from, 0); i <= to && i < len(s.tokens); i++ {
		if s.tokens[i].Kind == token.EOF {
			break
		}
		buf = append(buf, s.tokens[i].Text...)
	}
	return string(buf)
}
