// Package rbitmap implements the replicated bitmap: one bit per vertex,
// stored striped across nodelets, with a set operation safe for
// concurrent callers and a sync operation that OR-merges several replicas
// together (used when each nodelet accumulates a local frontier bitmap
// that must be folded into the combined next frontier).
package rbitmap

import (
	"sync/atomic"

	"github.com/paperwasp/hybridbfs/nodelet"
)

const wordBits = 64

// wordOffset returns the word index holding bit n: n / 64.
//
// The original C implementation of this bitmap shipped in at least two
// variants; one divided by 256 instead of 64, which silently aliased four
// vertices (n, n+64, n+128, n+192) onto the same bit. 64 bits per word is the only value
// consistent with the type's own "divide by 64" comment and with every
// caller's assumption that word i holds bits [64i, 64i+64), so that is
// what this port implements.
func wordOffset(n int64) int64 { return n >> 6 }

func bitOffset(n int64) uint { return uint(n & (wordBits - 1)) }

// Bitmap is a single nodelet-local (or whole-graph, for the non-replicated
// case) bitmap over n bits.
type Bitmap struct {
	n     int64
	words *nodelet.StripedLongs
}

// New allocates a Bitmap covering n bits, striped across rt's nodelets a
// word at a time.
func New(rt *nodelet.Runtime, n int64) *Bitmap {
	numWords := (n + wordBits - 1) / wordBits
	if numWords == 0 {
		numWords = 1
	}
	return &Bitmap{n: n, words: nodelet.NewStripedLongs(rt, numWords)}
}

// Len returns the number of bits the bitmap covers.
func (b *Bitmap) Len() int64 { return b.n }

// SetBit atomically sets bit n, the analogue of bitmap_set_bit /
// REMOTE_OR. Returns true if the bit transitioned from 0 to 1.
func (b *Bitmap) SetBit(n int64) bool {
	addr := addressOf(b.words, wordOffset(n))
	bit := int64(1) << bitOffset(n)
	for {
		old := atomic.LoadInt64(addr)
		if old&bit != 0 {
			return false
		}
		if atomic.CompareAndSwapInt64(addr, old, old|bit) {
			return true
		}
	}
}

// GetBit reads bit n without synchronization guarantees beyond the Go
// memory model's atomics (safe to call concurrently with SetBit, may miss
// a just-set bit until a subsequent Sync).
func (b *Bitmap) GetBit(n int64) bool {
	word := atomic.LoadInt64(addressOf(b.words, wordOffset(n)))
	return word&(int64(1)<<bitOffset(n)) != 0
}

// Clear zeroes every word.
func (b *Bitmap) Clear() {
	for i := int64(0); i < b.words.Len(); i++ {
		b.words.Set(i, 0)
	}
}

func addressOf(s *nodelet.StripedLongs, i int64) *int64 { return s.AddressOf(i) }

// Replicated holds one Bitmap per nodelet, all covering the same n bits —
// the representation used while each nodelet accumulates its own view of
// "vertices discovered this step" before Sync folds them together.
type Replicated struct {
	rt     *nodelet.Runtime
	n      int64
	copies []*Bitmap
}

// NewReplicated allocates P independent n-bit bitmaps.
func NewReplicated(rt *nodelet.Runtime, n int64) *Replicated {
	r := &Replicated{rt: rt, n: n, copies: make([]*Bitmap, rt.NumNodelets())}
	for i := range r.copies {
		r.copies[i] = New(rt, n)
	}
	return r
}

// View returns the nodelet-th replica's Bitmap.
func (r *Replicated) View(nodelet int) *Bitmap { return r.copies[nodelet] }

// Len returns the number of bits each replica covers.
func (r *Replicated) Len() int64 { return r.n }

// Sync OR-merges every replica into dst, the analogue of
// bitmap_replicated_sync: after Sync, dst.GetBit(v) is true iff any
// replica had set it.
func (r *Replicated) Sync(dst *Bitmap) {
	for i := int64(0); i < dst.words.Len(); i++ {
		var merged int64
		for _, copy := range r.copies {
			merged |= copy.words.Get(i)
		}
		dst.words.Set(i, merged)
	}
}

// ClearAll zeroes every replica.
func (r *Replicated) ClearAll() {
	for _, copy := range r.copies {
		copy.Clear()
	}
}

// Swap exchanges the underlying word storage of a and b in place, the
// analogue of bitmap_swap_ptrs — used by the BFS engine to swap "current"
// and "next" frontier bitmaps without copying.
func Swap(a, b *Bitmap) {
	a.words, b.words = b.words, a.words
}
