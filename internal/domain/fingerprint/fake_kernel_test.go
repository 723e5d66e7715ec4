package fingerprint

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// fakeVector is a BitVector over a bool slice that counts releases.
type fakeVector struct {
	bits     []bool
	released *int32
}

func newFakeVector(n int, on ...int) *fakeVector {
	v := &fakeVector{bits: make([]bool, n), released: new(int32)}
	for _, i := range on {
		v.bits[i] = true
	}
	return v
}

func (v *fakeVector) Len() int        { return len(v.bits) }
func (v *fakeVector) Test(i int) bool { return i >= 0 && i < len(v.bits) && v.bits[i] }
func (v *fakeVector) Count() int      { return len(v.OnBits()) }
func (v *fakeVector) Release()        { atomic.AddInt32(v.released, 1) }

func (v *fakeVector) OnBits() []int {
	var out []int
	for i, b := range v.bits {
		if b {
			out = append(out, i)
		}
	}
	return out
}

func (v *fakeVector) Bytes() []byte {
	out := make([]byte, (len(v.bits)+7)/8)
	for i, b := range v.bits {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

type fakeInvariants struct{ released int32 }

func (i *fakeInvariants) Release() { atomic.AddInt32(&i.released, 1) }

type fakeMolecule struct{ atoms int }

func (m fakeMolecule) NumAtoms() int { return m.atoms }
func (fakeMolecule) Release()        {}

// call records one kernel entry.
type call struct {
	method string
	args   []interface{}
}

// fakeKernel records every call and returns a vector of the requested size.
type fakeKernel struct {
	mu    sync.Mutex
	calls []call

	invariants    *fakeInvariants
	invariantsErr error
	err           error

	// avalonDelay keeps AvalonFingerprint busy so overlapping entries show.
	avalonDelay  time.Duration
	avalonActive int32
	avalonMax    int32
}

var errKernel = errors.New("kernel: boom")

func (k *fakeKernel) record(method string, args ...interface{}) {
	k.mu.Lock()
	k.calls = append(k.calls, call{method: method, args: args})
	k.mu.Unlock()
}

func (k *fakeKernel) lastCall() call {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.calls) == 0 {
		return call{}
	}
	return k.calls[len(k.calls)-1]
}

func (k *fakeKernel) result(n int) (BitVector, error) {
	if k.err != nil {
		return nil, k.err
	}
	return newFakeVector(n), nil
}

func (k *fakeKernel) MorganFingerprint(_ Molecule, radius, numBits int) (BitVector, error) {
	k.record("MorganFingerprint", radius, numBits)
	return k.result(numBits)
}

func (k *fakeKernel) FeatureInvariants(_ Molecule) (Invariants, error) {
	k.record("FeatureInvariants")
	if k.invariantsErr != nil {
		return nil, k.invariantsErr
	}
	k.invariants = &fakeInvariants{}
	return k.invariants, nil
}

func (k *fakeKernel) MorganFingerprintWithInvariants(_ Molecule, radius, numBits int, _ Invariants) (BitVector, error) {
	k.record("MorganFingerprintWithInvariants", radius, numBits)
	return k.result(numBits)
}

func (k *fakeKernel) HashedAtomPairFingerprint(_ Molecule, numBits, minPath, maxPath int) (BitVector, error) {
	k.record("HashedAtomPairFingerprint", numBits, minPath, maxPath)
	return k.result(numBits)
}

func (k *fakeKernel) HashedTopologicalTorsionFingerprint(_ Molecule, numBits, pathLength int) (BitVector, error) {
	k.record("HashedTopologicalTorsionFingerprint", numBits, pathLength)
	return k.result(numBits)
}

func (k *fakeKernel) RDKitFingerprint(_ Molecule, minPath, maxPath, numBits, nBitsPerHash int) (BitVector, error) {
	k.record("RDKitFingerprint", minPath, maxPath, numBits, nBitsPerHash)
	return k.result(numBits)
}

func (k *fakeKernel) AvalonFingerprint(_ Molecule, numBits int, isQuery bool, bitFlags uint32) (BitVector, error) {
	active := atomic.AddInt32(&k.avalonActive, 1)
	for {
		peak := atomic.LoadInt32(&k.avalonMax)
		if active <= peak || atomic.CompareAndSwapInt32(&k.avalonMax, peak, active) {
			break
		}
	}
	if k.avalonDelay > 0 {
		time.Sleep(k.avalonDelay)
	}
	atomic.AddInt32(&k.avalonActive, -1)
	k.record("AvalonFingerprint", numBits, isQuery, bitFlags)
	return k.result(numBits)
}

func (k *fakeKernel) LayeredFingerprint(_ Molecule, layerFlags uint32, minPath, maxPath, numBits int) (BitVector, error) {
	k.record("LayeredFingerprint", layerFlags, minPath, maxPath, numBits)
	return k.result(numBits)
}

func (k *fakeKernel) MACCSFingerprint(_ Molecule) (BitVector, error) {
	k.record("MACCSFingerprint")
	return k.result(MACCSNumBits)
}

func (k *fakeKernel) PatternFingerprint(_ Molecule, numBits int) (BitVector, error) {
	k.record("PatternFingerprint", numBits)
	return k.result(numBits)
}

//Personal.AI order the ending
