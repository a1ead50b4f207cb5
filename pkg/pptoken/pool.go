package pptoken

// Pool recycles Sequence backing storage, the Go counterpart of lacc's
// `arrays` array-of-TokenArray and its get_token_array/release_token_array
// pair (original_source/.../macro.c:26-59). The macro engine's hot path
// (argument reading, parameter substitution, paste resolution) allocates and
// discards many short-lived sequences per expansion; recycling their
// backing arrays avoids the churn a fresh make([]Token, 0) per call would
// cause.
//
// Pool has no concurrency guarantee, matching the engine's single-threaded,
// non-reentrant resource model (SPEC_FULL.md §5).
type Pool struct {
	free []*Sequence
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Acquire returns a reset (Len() == 0) sequence, reusing a previously
// Released sequence's capacity when one is available.
func (p *Pool) Acquire() *Sequence {
	if n := len(p.free); n > 0 {
		seq := p.free[n-1]
		p.free = p.free[:n-1]
		seq.reset()
		return seq
	}
	return &Sequence{}
}

// Release returns seq's backing storage to the pool. The caller transfers
// ownership: seq must not be read or written again, and Release must not be
// called twice on the same sequence.
func (p *Pool) Release(seq *Sequence) {
	if seq == nil {
		return
	}
	p.free = append(p.free, seq)
}

// Teardown drops every recycled sequence, releasing their backing storage
// to the garbage collector. Called at engine/process teardown.
func (p *Pool) Teardown() {
	p.free = nil
}
