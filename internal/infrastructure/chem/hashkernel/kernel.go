// Package hashkernel is a pure-Go molecular toolkit that parses SMILES and
// computes hashed fingerprints for every family in the fingerprint catalog.
// Features are hashed with xxhash into bitset-backed vectors; the bit layout
// is this package's own and is stable across releases, but it does not
// reproduce any third-party toolkit bit for bit.
package hashkernel

import (
	"fmt"
	"sort"

	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

// Defaults for Config.
const (
	DefaultMaxAtoms   = 1000
	DefaultMaxPaths   = 1 << 18
	DefaultMaxNumBits = 1 << 20
)

// patternMaxBonds is the longest path the pattern generator hashes.
const patternMaxBonds = 5

// Config bounds the work a single call may do.
type Config struct {
	// MaxAtoms rejects larger molecules at parse time.
	MaxAtoms   int `mapstructure:"max_atoms"`
	// MaxPaths caps path enumeration per fingerprint.
	MaxPaths   int `mapstructure:"max_paths"`
	// MaxNumBits is the longest bit vector a generator will allocate.
	MaxNumBits int `mapstructure:"max_num_bits"`
}

func (c *Config) applyDefaults() {
	if c.MaxAtoms <= 0 {
		c.MaxAtoms = DefaultMaxAtoms
	}
	if c.MaxPaths <= 0 {
		c.MaxPaths = DefaultMaxPaths
	}
	if c.MaxNumBits <= 0 {
		c.MaxNumBits = DefaultMaxNumBits
	}
}

// Kernel implements fingerprint.Toolkit.
type Kernel struct {
	cfg    Config
	logger logging.Logger
}

var _ fingerprint.Toolkit = (*Kernel)(nil)

// New creates a Kernel.  A nil logger discards output.
func New(cfg Config, logger logging.Logger) *Kernel {
	cfg.applyDefaults()
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Kernel{cfg: cfg, logger: logger}
}

// ParseSMILES parses smiles into a Molecule.
func (k *Kernel) ParseSMILES(smiles string) (fingerprint.Molecule, error) {
	mol, err := parseSMILES(smiles)
	if err != nil {
		return nil, err
	}
	if mol.NumAtoms() > k.cfg.MaxAtoms {
		return nil, invalidSMILES(smiles, fmt.Sprintf("molecule has %d heavy atoms, limit is %d", mol.NumAtoms(), k.cfg.MaxAtoms))
	}
	return mol, nil
}

func (k *Kernel) molecule(m fingerprint.Molecule) (*Molecule, error) {
	mol, ok := m.(*Molecule)
	if !ok || mol == nil {
		return nil, calcError("molecule was not parsed by this kernel")
	}
	if mol.released.Load() {
		return nil, calcError("molecule has been released")
	}
	return mol, nil
}

func calcError(message string) *errors.AppError {
	return errors.New(errors.ErrCodeFingerprintCalculation, message)
}

func (k *Kernel) checkBits(numBits int) error {
	if numBits <= 0 {
		return calcError(fmt.Sprintf("bit count must be positive, got %d", numBits))
	}
	if numBits > k.cfg.MaxNumBits {
		return calcError(fmt.Sprintf("bit count %d exceeds the limit of %d", numBits, k.cfg.MaxNumBits))
	}
	return nil
}

// prepare resolves the molecule and checks the bit count.
func (k *Kernel) prepare(m fingerprint.Molecule, numBits int) (*Molecule, error) {
	mol, err := k.molecule(m)
	if err != nil {
		return nil, err
	}
	if err := k.checkBits(numBits); err != nil {
		return nil, err
	}
	return mol, nil
}

// walk enumerates paths under the configured limit.
func (k *Kernel) walk(mol *Molecule, generator string, minBonds, maxBonds int, fn func(path []int)) error {
	if mol.walkPaths(minBonds, maxBonds, k.cfg.MaxPaths, fn) {
		return nil
	}
	k.logger.Warn("path enumeration limit reached",
		logging.String("generator", generator),
		logging.Int("atoms", mol.NumAtoms()),
		logging.Int("max_paths", k.cfg.MaxPaths))
	return calcError("path enumeration limit exceeded").WithDetail(fmt.Sprintf("generator=%s max_paths=%d", generator, k.cfg.MaxPaths))
}

// ─────────────────────────────────────────────────────────────────────────────
// Atom labels
// ─────────────────────────────────────────────────────────────────────────────

// atomInvariant is the default circular-fingerprint seed for atom i.
func (m *Molecule) atomInvariant(i int) uint64 {
	a := m.atoms[i]
	return newHasher("atom").
		str(a.symbol).
		num(m.degree(i)).
		num(m.totalH[i]).
		num(a.charge).
		num(a.isotope).
		flag(m.inRing(i)).
		flag(a.aromatic).
		sum()
}

// atomCode is the atom-pair and torsion atom type.
func (m *Molecule) atomCode(i int) uint64 {
	degree := m.degree(i)
	if degree > 7 {
		degree = 7
	}
	pi := m.piCount(i)
	if pi > 3 {
		pi = 3
	}
	return newHasher("atomcode").str(m.atoms[i].symbol).num(degree).num(pi).sum()
}

func (m *Molecule) elementLabel(i int) uint64 {
	return newHasher("element").str(m.atoms[i].symbol).flag(m.atoms[i].aromatic).sum()
}

func (m *Molecule) orderLabel(a, b int) uint64 {
	return uint64(m.bondOrder(a, b))
}

// ─────────────────────────────────────────────────────────────────────────────
// Circular fingerprints
// ─────────────────────────────────────────────────────────────────────────────

type neighbourID struct {
	order bondOrder
	id    uint64
}

// circular runs radius rounds of neighbourhood hashing starting from seeds
// and sets a bit for every environment seen.
func circular(mol *Molecule, radius, numBits int, seeds []uint64) *BitVector {
	v := newBitVector(numBits)
	ids := append([]uint64(nil), seeds...)
	for _, id := range ids {
		v.setHash(id)
	}
	next := make([]uint64, len(ids))
	for r := 1; r <= radius; r++ {
		for i := range mol.atoms {
			nbs := make([]neighbourID, 0, len(mol.adj[i]))
			for _, e := range mol.adj[i] {
				nbs = append(nbs, neighbourID{order: e.order, id: ids[e.to]})
			}
			sort.Slice(nbs, func(a, b int) bool {
				if nbs[a].order != nbs[b].order {
					return nbs[a].order < nbs[b].order
				}
				return nbs[a].id < nbs[b].id
			})
			h := newHasher("morgan").num(r).u64(ids[i])
			for _, nb := range nbs {
				h.num(int(nb.order)).u64(nb.id)
			}
			next[i] = h.sum()
			v.setHash(next[i])
		}
		ids, next = next, ids
	}
	return v
}

// MorganFingerprint computes a circular fingerprint from default atom
// invariants.
func (k *Kernel) MorganFingerprint(m fingerprint.Molecule, radius, numBits int) (fingerprint.BitVector, error) {
	mol, err := k.prepare(m, numBits)
	if err != nil {
		return nil, err
	}
	seeds := make([]uint64, mol.NumAtoms())
	for i := range seeds {
		seeds[i] = mol.atomInvariant(i)
	}
	return circular(mol, radius, numBits, seeds), nil
}

// MorganFingerprintWithInvariants computes a circular fingerprint seeded with
// inv, which must come from FeatureInvariants on the same molecule.
func (k *Kernel) MorganFingerprintWithInvariants(m fingerprint.Molecule, radius, numBits int, inv fingerprint.Invariants) (fingerprint.BitVector, error) {
	mol, err := k.prepare(m, numBits)
	if err != nil {
		return nil, err
	}
	fi, ok := inv.(*Invariants)
	if !ok || fi == nil || fi.vals == nil {
		return nil, calcError("invariants were not produced by this kernel or have been released")
	}
	if len(fi.vals) != mol.NumAtoms() {
		return nil, calcError(fmt.Sprintf("invariants cover %d atoms, molecule has %d", len(fi.vals), mol.NumAtoms()))
	}
	return circular(mol, radius, numBits, fi.vals), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Pair and path fingerprints
// ─────────────────────────────────────────────────────────────────────────────

// HashedAtomPairFingerprint hashes every atom pair whose topological distance
// lies in [minPath, maxPath].
func (k *Kernel) HashedAtomPairFingerprint(m fingerprint.Molecule, numBits, minPath, maxPath int) (fingerprint.BitVector, error) {
	mol, err := k.prepare(m, numBits)
	if err != nil {
		return nil, err
	}
	v := newBitVector(numBits)
	dist := mol.distances()
	codes := make([]uint64, mol.NumAtoms())
	for i := range codes {
		codes[i] = mol.atomCode(i)
	}
	for i := range codes {
		for j := i + 1; j < len(codes); j++ {
			d := dist[i][j]
			if d < minPath || d > maxPath {
				continue
			}
			a, b := codes[i], codes[j]
			if a > b {
				a, b = b, a
			}
			v.setHash(newHasher("atompair").u64(a).u64(b).num(d).sum())
		}
	}
	return v, nil
}

// HashedTopologicalTorsionFingerprint hashes every linear path of pathLength
// atoms, labelling each atom with its type and branch count off the path.
func (k *Kernel) HashedTopologicalTorsionFingerprint(m fingerprint.Molecule, numBits, pathLength int) (fingerprint.BitVector, error) {
	mol, err := k.prepare(m, numBits)
	if err != nil {
		return nil, err
	}
	if pathLength < 1 {
		return nil, calcError(fmt.Sprintf("torsion path length must be positive, got %d", pathLength))
	}
	v := newBitVector(numBits)
	err = k.walk(mol, "torsion", pathLength-1, pathLength-1, func(path []int) {
		labels := make([]uint64, len(path))
		for pos, i := range path {
			branches := mol.degree(i) - 1
			if pos > 0 && pos < len(path)-1 {
				branches--
			}
			labels[pos] = newHasher("torsionatom").u64(mol.atomCode(i)).num(branches).sum()
		}
		v.setHash(sequenceCode("torsion", labels))
	})
	if err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// RDKitFingerprint hashes every linear path with between minPath and maxPath
// bonds, setting nBitsPerHash bits per path.
func (k *Kernel) RDKitFingerprint(m fingerprint.Molecule, minPath, maxPath, numBits, nBitsPerHash int) (fingerprint.BitVector, error) {
	mol, err := k.prepare(m, numBits)
	if err != nil {
		return nil, err
	}
	v := newBitVector(numBits)
	err = k.walk(mol, "rdkit", minPath, maxPath, func(path []int) {
		code := sequenceCode("rdkit", pathLabels(path, mol.elementLabel, mol.orderLabel))
		for b := 0; b < nBitsPerHash; b++ {
			v.setHash(newHasher("rdkitbit").u64(code).num(b).sum())
		}
	})
	if err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// Layer bits accepted by LayeredFingerprint.
const (
	LayerTopology uint32 = 1 << iota
	LayerBondOrder
	LayerAtomTypes
	LayerRingPresence
	LayerRingSize
	LayerAromaticity

	layerCount = 6
)

// layerLabels returns the atom and bond labelling for one layer.
func (m *Molecule) layerLabels(layer int) (func(int) uint64, func(int, int) uint64) {
	zeroAtom := func(int) uint64 { return 0 }
	zeroBond := func(int, int) uint64 { return 0 }
	switch uint32(1) << uint(layer) {
	case LayerTopology:
		return func(i int) uint64 { return uint64(m.degree(i)) }, zeroBond
	case LayerBondOrder:
		return zeroAtom, m.orderLabel
	case LayerAtomTypes:
		return m.elementLabel, zeroBond
	case LayerRingPresence:
		return zeroAtom, func(a, b int) uint64 {
			if m.isRingBond(a, b) {
				return 1
			}
			return 0
		}
	case LayerRingSize:
		return func(i int) uint64 { return uint64(m.ringSize[i]) }, zeroBond
	default:
		return func(i int) uint64 {
				if m.atoms[i].aromatic {
					return 1
				}
				return 0
			}, func(a, b int) uint64 {
				if m.bondOrder(a, b) == bondAromatic {
					return 1
				}
				return 0
			}
	}
}

// LayeredFingerprint hashes paths once per enabled layer, each layer seeing a
// different projection of the path.
func (k *Kernel) LayeredFingerprint(m fingerprint.Molecule, layerFlags uint32, minPath, maxPath, numBits int) (fingerprint.BitVector, error) {
	mol, err := k.prepare(m, numBits)
	if err != nil {
		return nil, err
	}
	type labelling struct {
		seed string
		atom func(int) uint64
		bond func(int, int) uint64
	}
	var layers []labelling
	for l := 0; l < layerCount; l++ {
		if layerFlags&(1<<uint(l)) == 0 {
			continue
		}
		atom, bond := mol.layerLabels(l)
		layers = append(layers, labelling{seed: fmt.Sprintf("layer%d", l), atom: atom, bond: bond})
	}
	v := newBitVector(numBits)
	err = k.walk(mol, "layered", minPath, maxPath, func(path []int) {
		for _, l := range layers {
			v.setHash(sequenceCode(l.seed, pathLabels(path, l.atom, l.bond)))
		}
	})
	if err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// PatternFingerprint hashes short generic paths and single-atom
// environments, intended as a substructure screen.
func (k *Kernel) PatternFingerprint(m fingerprint.Molecule, numBits int) (fingerprint.BitVector, error) {
	mol, err := k.prepare(m, numBits)
	if err != nil {
		return nil, err
	}
	v := newBitVector(numBits)
	for i := range mol.atoms {
		v.setHash(newHasher("patternatom").u64(mol.elementLabel(i)).num(mol.degree(i)).sum())
	}
	ringBond := func(a, b int) uint64 {
		label := uint64(mol.bondOrder(a, b))
		if mol.isRingBond(a, b) {
			label |= 1 << 8
		}
		return label
	}
	err = k.walk(mol, "pattern", 1, patternMaxBonds, func(path []int) {
		v.setHash(sequenceCode("pattern", pathLabels(path, mol.elementLabel, ringBond)))
	})
	if err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

//Personal.AI order the ending
