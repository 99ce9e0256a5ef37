// Package scan splits raw line bytes into word tokens.
//
// A word token is a maximal run of ASCII alphanumeric bytes. Every other
// byte value is a separator: it is never part of a token and never emitted
// on its own. The predicate works on raw byte values only, so multi-byte
// UTF-8 sequences and other bytes >= 0x80 always separate, regardless of
// locale. Tokens never span line boundaries and are never empty.
package scan

// Scanner yields the word tokens of a single line, left to right.
//
// A Scanner is cheap to construct and can be reused across lines with
// Reset, which restarts scanning from the beginning of the new line.
type Scanner struct {
	line []byte
	pos  int  // next byte to examine
	fold bool // fold letter bytes to lowercase

	buf []byte // reused to build folded tokens
}

// New returns a Scanner over line. When caseSensitive is false, letter
// bytes are folded to lowercase as tokens are built.
func New(line []byte, caseSensitive bool) *Scanner {
	return &Scanner{line: line, fold: !caseSensitive}
}

// Reset restarts the Scanner at the beginning of line, keeping the
// case-folding mode it was constructed with.
func (s *Scanner) Reset(line []byte) {
	s.line = line
	s.pos = 0
}

// Next returns the next token and true, or "" and false once the line is
// exhausted. The returned token is its own string; it does not alias the
// line bytes.
func (s *Scanner) Next() (string, bool) {
	// Skip separators.
	for s.pos < len(s.line) && !isWordByte(s.line[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.line) {
		return "", false
	}

	start := s.pos
	for s.pos < len(s.line) && isWordByte(s.line[s.pos]) {
		s.pos++
	}

	if !s.fold {
		return string(s.line[start:s.pos]), true
	}

	s.buf = s.buf[:0]
	for _, ch := range s.line[start:s.pos] {
		s.buf = append(s.buf, toLower(ch))
	}
	return string(s.buf), true
}

// Tokens drains a fresh scan of line and returns all tokens in order.
// Lines without word bytes yield a nil slice.
func Tokens(line []byte, caseSensitive bool) []string {
	var tokens []string
	s := New(line, caseSensitive)
	for tok, ok := s.Next(); ok; tok, ok = s.Next() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// isWordByte reports whether ch is an ASCII alphanumeric byte. This is a
// byte-value check on purpose: it must not consult the locale or any
// Unicode tables, so bytes >= 0x80 are always separators.
func isWordByte(ch byte) bool {
	return ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

// toLower folds an ASCII uppercase letter to lowercase and leaves every
// other byte unchanged.
func toLower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
