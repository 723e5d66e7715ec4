package hashkernel

import (
	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
)

// maccsBits is the number of MACCS structural keys.
const maccsBits = 166

// maccsKey is one structural key; key k occupies bit k-1.
type maccsKey struct {
	key  int
	test func(m *Molecule, c *maccsCounts) bool
}

// maccsCounts caches atom and group counts shared by many keys.
type maccsCounts struct {
	element map[string]int
	charged int
	methyl  int
	hydroxy int
	amine   int
}

func countMACCS(m *Molecule) *maccsCounts {
	c := &maccsCounts{element: make(map[string]int)}
	for i, a := range m.atoms {
		c.element[a.symbol]++
		if a.charge != 0 {
			c.charged++
		}
		switch {
		case a.symbol == "C" && !a.aromatic && m.degree(i) == 1 && m.totalH[i] == 3:
			c.methyl++
		case a.symbol == "O" && m.totalH[i] == 1:
			c.hydroxy++
		case a.symbol == "N" && m.totalH[i] == 2:
			c.amine++
		}
	}
	return c
}

func halogens(c *maccsCounts) int {
	return c.element["F"] + c.element["Cl"] + c.element["Br"] + c.element["I"]
}

// hasBond reports whether some bond joins elements x and y with order.
func (m *Molecule) hasBond(x, y string, order bondOrder) bool {
	for a := range m.atoms {
		if m.atoms[a].symbol != x {
			continue
		}
		for _, e := range m.adj[a] {
			if e.order == order && m.atoms[e.to].symbol == y {
				return true
			}
		}
	}
	return false
}

// heteroRing reports whether some ring atom is not carbon, restricted to
// symbol when it is non-empty.
func (m *Molecule) heteroRing(symbol string) bool {
	for i, a := range m.atoms {
		if !m.inRing(i) || a.symbol == "C" {
			continue
		}
		if symbol == "" || a.symbol == symbol {
			return true
		}
	}
	return false
}

func (m *Molecule) ringsOfSizeAtLeast(size int) int {
	n := 0
	for s, count := range m.ringSizes {
		if s >= size {
			n += count
		}
	}
	return n
}

func (m *Molecule) aromaticRings() int {
	bonds := 0
	for k := range m.ringBond {
		if m.bondOrder(k[0], k[1]) == bondAromatic {
			bonds++
		}
	}
	// Estimate: five- and six-membered rings both round to one.
	return (bonds + 4) / 6
}

var maccsKeys = []maccsKey{
	{11, func(m *Molecule, _ *maccsCounts) bool { return m.ringSizes[4] > 0 }},
	{22, func(m *Molecule, _ *maccsCounts) bool { return m.ringSizes[3] > 0 }},
	{42, func(_ *Molecule, c *maccsCounts) bool { return c.element["F"] > 0 }},
	{46, func(_ *Molecule, c *maccsCounts) bool { return c.element["Br"] > 0 }},
	{49, func(_ *Molecule, c *maccsCounts) bool { return c.charged > 0 }},
	{65, func(m *Molecule, _ *maccsCounts) bool { return m.hasBond("C", "N", bondAromatic) }},
	{84, func(_ *Molecule, c *maccsCounts) bool { return c.amine > 0 }},
	{88, func(_ *Molecule, c *maccsCounts) bool { return c.element["S"] > 0 }},
	{96, func(m *Molecule, _ *maccsCounts) bool { return m.ringSizes[5] > 0 }},
	{101, func(m *Molecule, _ *maccsCounts) bool { return m.ringsOfSizeAtLeast(8) > 0 }},
	{103, func(_ *Molecule, c *maccsCounts) bool { return c.element["Cl"] > 0 }},
	{107, func(_ *Molecule, c *maccsCounts) bool { return halogens(c) > 0 }},
	{121, func(m *Molecule, _ *maccsCounts) bool { return m.heteroRing("N") }},
	{125, func(m *Molecule, _ *maccsCounts) bool { return m.aromaticRings() > 1 }},
	{134, func(_ *Molecule, c *maccsCounts) bool { return halogens(c) > 1 }},
	{137, func(m *Molecule, _ *maccsCounts) bool { return m.heteroRing("") }},
	{139, func(_ *Molecule, c *maccsCounts) bool { return c.hydroxy > 0 }},
	{142, func(_ *Molecule, c *maccsCounts) bool { return c.element["N"] > 1 }},
	{145, func(m *Molecule, _ *maccsCounts) bool { return m.ringSizes[6] > 1 }},
	{146, func(_ *Molecule, c *maccsCounts) bool { return c.element["O"] > 2 }},
	{149, func(_ *Molecule, c *maccsCounts) bool { return c.methyl > 1 }},
	{154, func(m *Molecule, _ *maccsCounts) bool { return m.hasBond("C", "O", bondDouble) }},
	{157, func(m *Molecule, _ *maccsCounts) bool { return m.hasBond("C", "O", bondSingle) }},
	{158, func(m *Molecule, _ *maccsCounts) bool { return m.hasBond("C", "N", bondSingle) }},
	{159, func(_ *Molecule, c *maccsCounts) bool { return c.element["O"] > 1 }},
	{160, func(_ *Molecule, c *maccsCounts) bool { return c.methyl > 0 }},
	{161, func(_ *Molecule, c *maccsCounts) bool { return c.element["N"] > 0 }},
	{162, func(m *Molecule, _ *maccsCounts) bool {
		for _, a := range m.atoms {
			if a.aromatic {
				return true
			}
		}
		return false
	}},
	{163, func(m *Molecule, _ *maccsCounts) bool { return m.ringSizes[6] > 0 }},
	{164, func(_ *Molecule, c *maccsCounts) bool { return c.element["O"] > 0 }},
	{165, func(m *Molecule, _ *maccsCounts) bool { return m.ringCount() > 0 }},
	{166, func(m *Molecule, _ *maccsCounts) bool { return m.components > 1 }},
}

// MACCSFingerprint evaluates the structural keys this toolkit supports.  The
// vector is always 166 bits long.
func (k *Kernel) MACCSFingerprint(m fingerprint.Molecule) (fingerprint.BitVector, error) {
	mol, err := k.molecule(m)
	if err != nil {
		return nil, err
	}
	v := newBitVector(maccsBits)
	counts := countMACCS(mol)
	for _, key := range maccsKeys {
		if key.test(mol, counts) {
			v.set(key.key - 1)
		}
	}
	return v, nil
}

//Personal.AI order the ending
