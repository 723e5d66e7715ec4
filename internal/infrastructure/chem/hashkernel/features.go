package hashkernel

import (
	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
)

// Pharmacophoric feature classes folded into feature invariants.
const (
	featureDonor uint64 = 1 << iota
	featureAcceptor
	featureAromatic
	featureHalogen
	featureBasic
	featureAcidic
)

// Invariants holds per-atom feature invariants for a circular pass.
type Invariants struct {
	vals []uint64
}

// Release drops the invariant values.
func (inv *Invariants) Release() { inv.vals = nil }

// FeatureInvariants classifies each atom by pharmacophoric role, so that
// atoms playing the same role share a seed regardless of element.
func (k *Kernel) FeatureInvariants(m fingerprint.Molecule) (fingerprint.Invariants, error) {
	mol, err := k.molecule(m)
	if err != nil {
		return nil, err
	}
	vals := make([]uint64, mol.NumAtoms())
	for i := range vals {
		vals[i] = newHasher("feature").u64(mol.featureClass(i)).sum()
	}
	return &Invariants{vals: vals}, nil
}

func (m *Molecule) featureClass(i int) uint64 {
	a := m.atoms[i]
	var f uint64
	switch a.symbol {
	case "N":
		if m.totalH[i] > 0 {
			f |= featureDonor
		}
		if !a.aromatic && a.charge <= 0 && m.piCount(i) == 0 {
			f |= featureBasic
		}
		if a.charge > 0 {
			f |= featureBasic
		}
		if a.aromatic && m.totalH[i] == 0 && m.degree(i) == 2 {
			f |= featureAcceptor
		}
	case "O":
		if m.totalH[i] > 0 {
			f |= featureDonor
		}
		if a.charge <= 0 {
			f |= featureAcceptor
		}
		if a.charge < 0 || (m.totalH[i] > 0 && m.nextToCarbonyl(i)) {
			f |= featureAcidic
		}
	case "S":
		if m.totalH[i] > 0 {
			f |= featureDonor
		}
	case "F", "Cl", "Br", "I":
		f |= featureHalogen
	}
	if a.aromatic {
		f |= featureAromatic
	}
	return f
}

// nextToCarbonyl reports whether atom i sits on a carbon that also carries a
// double-bonded oxygen, as in a carboxylic acid.
func (m *Molecule) nextToCarbonyl(i int) bool {
	for _, e := range m.adj[i] {
		if m.atoms[e.to].symbol != "C" {
			continue
		}
		for _, f := range m.adj[e.to] {
			if f.to != i && f.order == bondDouble && m.atoms[f.to].symbol == "O" {
				return true
			}
		}
	}
	return false
}

//Personal.AI order the ending
