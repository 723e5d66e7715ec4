package hashkernel

import (
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// maxPooledBits caps the capacity of bitsets returned to the pool.
const maxPooledBits = 1 << 16

var bitsetPool = sync.Pool{
	New: func() interface{} {
		return bitset.New(4096)
	},
}

// BitVector is a fixed-length fingerprint backed by a pooled bitset.  Release
// hands the storage back to the pool; a released vector reads as empty.
type BitVector struct {
	bits     *bitset.BitSet
	n        int
	released atomic.Bool
}

func newBitVector(n int) *BitVector {
	b := bitsetPool.Get().(*bitset.BitSet)
	b.ClearAll()
	return &BitVector{bits: b, n: n}
}

// setHash sets the bit selected by h.
func (v *BitVector) setHash(h uint64) {
	v.bits.Set(uint(h % uint64(v.n)))
}

func (v *BitVector) set(i int) {
	if i >= 0 && i < v.n {
		v.bits.Set(uint(i))
	}
}

// Len returns the number of bits.
func (v *BitVector) Len() int {
	return v.n
}

// Test reports whether bit i is set.
func (v *BitVector) Test(i int) bool {
	if v.released.Load() || i < 0 || i >= v.n {
		return false
	}
	return v.bits.Test(uint(i))
}

// Count returns the number of set bits.
func (v *BitVector) Count() int {
	if v.released.Load() {
		return 0
	}
	return int(v.bits.Count())
}

// OnBits lists set bit indexes in ascending order.
func (v *BitVector) OnBits() []int {
	if v.released.Load() {
		return nil
	}
	out := make([]int, 0, v.bits.Count())
	for i, ok := v.bits.NextSet(0); ok && int(i) < v.n; i, ok = v.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Bytes packs the vector LSB-first.
func (v *BitVector) Bytes() []byte {
	out := make([]byte, (v.n+7)/8)
	for _, i := range v.OnBits() {
		out[i/8] |= 1 << uint(i%8)
	}
	return out
}

// Release returns the storage to the pool.  Calling it more than once is a
// no-op.
func (v *BitVector) Release() {
	if !v.released.CompareAndSwap(false, true) {
		return
	}
	b := v.bits
	v.bits = nil
	if b.Len() <= maxPooledBits {
		bitsetPool.Put(b)
	}
}

//Personal.AI order the ending
