package hashkernel

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hasher accumulates a feature code.  Seeds keep codes from different
// generators apart.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(seed string) *hasher {
	h := &hasher{d: xxhash.New()}
	_, _ = h.d.WriteString(seed)
	return h
}

func (h *hasher) num(v int) *hasher {
	return h.u64(uint64(int64(v)))
}

func (h *hasher) u64(v uint64) *hasher {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
	return h
}

func (h *hasher) str(s string) *hasher {
	_, _ = h.d.WriteString(s)
	return h.num(len(s))
}

func (h *hasher) flag(b bool) *hasher {
	if b {
		return h.u64(1)
	}
	return h.u64(0)
}

func (h *hasher) sum() uint64 {
	return h.d.Sum64()
}

// pathLabels interleaves atom and bond labels along path:
// a0, b01, a1, b12, a2, ...
func pathLabels(path []int, atomLabel func(i int) uint64, bondLabel func(a, b int) uint64) []uint64 {
	out := make([]uint64, 0, 2*len(path))
	for k, i := range path {
		if k > 0 {
			out = append(out, bondLabel(path[k-1], i))
		}
		out = append(out, atomLabel(i))
	}
	return out
}

// sequenceCode hashes labels in both directions and keeps the smaller code,
// so a path and its reverse collide.
func sequenceCode(seed string, labels []uint64) uint64 {
	forward := newHasher(seed)
	reverse := newHasher(seed)
	n := len(labels)
	for k := 0; k < n; k++ {
		forward.u64(labels[k])
		reverse.u64(labels[n-1-k])
	}
	f, r := forward.sum(), reverse.sum()
	if r < f {
		return r
	}
	return f
}

//Personal.AI order the ending
