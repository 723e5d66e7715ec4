package hashkernel

import (
	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
)

// Avalon feature classes selected by the bitFlags argument.
const (
	AvalonAtomCount uint32 = 1 << iota
	AvalonAtomPairs
	AvalonPaths
	AvalonAugmentedAtoms
	AvalonRings
	AvalonHydrogenCounts

	// AvalonAllFeatures enables every class.
	AvalonAllFeatures uint32 = 1<<6 - 1
)

// avalonPathBonds is the path length hashed by AvalonPaths.
const avalonPathBonds = 3

// avalonScratch is reused by every AvalonFingerprint call.  The generator is
// not reentrant; callers serialise access.
var avalonScratch struct {
	codes  []uint64
	counts map[uint64]int
}

func resetAvalonScratch(n int) {
	if cap(avalonScratch.codes) < n {
		avalonScratch.codes = make([]uint64, n)
	}
	avalonScratch.codes = avalonScratch.codes[:n]
	if avalonScratch.counts == nil {
		avalonScratch.counts = make(map[uint64]int)
	}
	for k := range avalonScratch.counts {
		delete(avalonScratch.counts, k)
	}
}

// AvalonFingerprint hashes the feature classes enabled in bitFlags.  Query
// fingerprints omit hydrogen-count features so that a query with implicit
// hydrogens still screens its superstructures.  Concurrent calls are not
// supported.
func (k *Kernel) AvalonFingerprint(m fingerprint.Molecule, numBits int, isQuery bool, bitFlags uint32) (fingerprint.BitVector, error) {
	mol, err := k.prepare(m, numBits)
	if err != nil {
		return nil, err
	}
	resetAvalonScratch(mol.NumAtoms())
	codes := avalonScratch.codes
	for i := range codes {
		codes[i] = mol.elementLabel(i)
	}

	v := newBitVector(numBits)
	if bitFlags&AvalonAtomCount != 0 {
		for _, c := range codes {
			avalonScratch.counts[c]++
		}
		for c, n := range avalonScratch.counts {
			for j := 1; j <= n; j++ {
				v.setHash(newHasher("avalon-count").u64(c).num(j).sum())
			}
		}
	}
	if bitFlags&AvalonAtomPairs != 0 {
		dist := mol.distances()
		for i := range codes {
			for j := i + 1; j < len(codes); j++ {
				if dist[i][j] < 1 || dist[i][j] > avalonPathBonds {
					continue
				}
				a, b := codes[i], codes[j]
				if a > b {
					a, b = b, a
				}
				v.setHash(newHasher("avalon-pair").u64(a).u64(b).num(dist[i][j]).sum())
			}
		}
	}
	if bitFlags&AvalonPaths != 0 {
		label := func(i int) uint64 { return codes[i] }
		err = k.walk(mol, "avalon", avalonPathBonds, avalonPathBonds, func(path []int) {
			v.setHash(sequenceCode("avalon-path", pathLabels(path, label, mol.orderLabel)))
		})
		if err != nil {
			v.Release()
			return nil, err
		}
	}
	if bitFlags&AvalonAugmentedAtoms != 0 {
		for i := range codes {
			h := newHasher("avalon-aug").u64(codes[i]).num(mol.degree(i))
			orders := [bondAromatic + 1]int{}
			for _, e := range mol.adj[i] {
				orders[e.order]++
			}
			for _, n := range orders[1:] {
				h.num(n)
			}
			v.setHash(h.sum())
		}
	}
	if bitFlags&AvalonRings != 0 {
		for size, n := range mol.ringSizes {
			for j := 1; j <= n; j++ {
				v.setHash(newHasher("avalon-ring").num(size).num(j).sum())
			}
		}
		for i := range codes {
			if mol.inRing(i) {
				v.setHash(newHasher("avalon-ringatom").u64(codes[i]).num(mol.ringSize[i]).sum())
			}
		}
	}
	if bitFlags&AvalonHydrogenCounts != 0 && !isQuery {
		for i := range codes {
			if h := mol.totalH[i]; h > 0 {
				v.setHash(newHasher("avalon-h").u64(codes[i]).num(h).sum())
			}
		}
	}
	return v, nil
}

//Personal.AI order the ending
