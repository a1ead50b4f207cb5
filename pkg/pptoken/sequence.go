package pptoken

// Sequence is an ordered, index-addressable, pool-managed token buffer. It
// is the Go translation of lacc's `TokenArray` (original_source/.../macro.c),
// a growable array with an explicit length distinct from its capacity so
// that Pool can hand back previously allocated backing storage instead of
// reallocating on every Acquire.
type Sequence struct {
	data []Token
}

// Len returns the number of live tokens.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// At returns the token at index i.
func (s *Sequence) At(i int) Token {
	return s.data[i]
}

// Set overwrites the token at index i, used by pkg/macro's Table.Lookup to rewrite
// slot 0 of __FILE__/__LINE__ in place (SPEC_FULL.md §4.B).
func (s *Sequence) Set(i int, tok Token) {
	s.data[i] = tok
}

// Append adds a token to the end of the sequence.
func (s *Sequence) Append(tok Token) {
	s.data = append(s.data, tok)
}

// Concat appends every token of other to s, in order.
func (s *Sequence) Concat(other *Sequence) {
	if other == nil {
		return
	}
	s.data = append(s.data, other.data...)
}

// PopLast removes and returns the final token. The caller must ensure the
// sequence is non-empty.
func (s *Sequence) PopLast() Token {
	tok := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return tok
}

// Slice returns the live tokens as a plain slice. Callers must not retain it
// across a subsequent mutation of s: ReplaceSlice and Append may reallocate.
func (s *Sequence) Slice() []Token {
	return s.data
}

// FromSlice replaces the sequence's contents wholesale, reusing s's backing
// array's capacity where possible. Used by the paste engine (pkg/macro's
// expandPaste) to store its filtered result.
func (s *Sequence) FromSlice(toks []Token) {
	s.data = append(s.data[:0], toks...)
}

// ReplaceSlice replaces the half-open range [start, start+gaplen) with the
// contents of repl, exactly mirroring lacc's array_replace_slice: the
// "gap" came from reading a macro invocation out of the stream, and repl is
// the fully expanded replacement, which may be smaller or larger than the
// gap it displaces.
func (s *Sequence) ReplaceSlice(start, gaplen int, repl *Sequence) {
	replLen := repl.Len()
	tailStart := start + gaplen
	tail := append([]Token(nil), s.data[tailStart:]...)

	s.data = append(s.data[:start], make([]Token, replLen)...)
	copy(s.data[start:], repl.data)
	s.data = append(s.data, tail...)
}

func (s *Sequence) reset() {
	s.data = s.data[:0]
}
