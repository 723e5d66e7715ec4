package fingerprint

import (
	"sync"
)

// Calculation-time defaults for knobs a descriptor may leave unset.
const (
	DefaultAtomPairMinPath   = 1
	DefaultAtomPairMaxPath   = (1<<5 - 1) - 1
	DefaultTorsionPathLength = 4

	// rdkitBitsPerHash is the number of bits set per hashed path.
	rdkitBitsPerHash = 2
	// avalonQuery is the query-flag value selecting query fingerprints.
	avalonQuery = 1
)

// avalonMu serialises every Avalon kernel call in the process.  The Avalon
// routine crashes under concurrent entry.
var avalonMu sync.Mutex

type calculator func(k Kernel, mol Molecule, s *Settings) (BitVector, error)

// Calculate computes the bit vector of mol under s.  s must have passed
// Validate; Calculate does not re-check it.  Kernel errors are returned
// unchanged.  The caller owns the returned vector and must Release it.
func (f Family) Calculate(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	if s == nil {
		return nil, invalidSettings(MsgNoSettings)
	}
	v, ok := f.variant()
	if !ok {
		return nil, unknownFamily(f.String())
	}
	return v.calculate(k, mol, s)
}

// Calculate computes the bit vector of mol with s's own family.
func Calculate(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	if s == nil {
		return nil, invalidSettings(MsgNoSettings)
	}
	return s.family.Calculate(k, mol, s)
}

func calculateMorgan(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	return k.MorganFingerprint(mol, s.params.Radius.value, s.params.NumBits.value)
}

func calculateFeatMorgan(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	inv, err := k.FeatureInvariants(mol)
	if err != nil {
		return nil, err
	}
	defer inv.Release()
	return k.MorganFingerprintWithInvariants(mol, s.params.Radius.value, s.params.NumBits.value, inv)
}

func calculateAtomPair(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	return k.HashedAtomPairFingerprint(mol,
		s.params.NumBits.value,
		s.params.AtomPairMinPath.Or(DefaultAtomPairMinPath),
		s.params.AtomPairMaxPath.Or(DefaultAtomPairMaxPath))
}

func calculateTorsion(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	return k.HashedTopologicalTorsionFingerprint(mol,
		s.params.NumBits.value,
		s.params.TorsionPathLength.Or(DefaultTorsionPathLength))
}

func calculateRDKit(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	return k.RDKitFingerprint(mol, s.params.MinPath.value, s.params.MaxPath.value, s.params.NumBits.value, rdkitBitsPerHash)
}

func calculateAvalon(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	isQuery := s.params.AvalonQueryFlag.Or(0) == avalonQuery
	// An absent bit-flags knob selects every feature class.
	bitFlags := uint32(s.params.AvalonBitFlags.Or(legacyUnavailable))

	avalonMu.Lock()
	defer avalonMu.Unlock()
	return k.AvalonFingerprint(mol, s.params.NumBits.value, isQuery, bitFlags)
}

func calculateLayered(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	return k.LayeredFingerprint(mol,
		uint32(s.params.LayerFlags.value),
		s.params.MinPath.value,
		s.params.MaxPath.value,
		s.params.NumBits.value)
}

func calculateMACCS(k Kernel, mol Molecule, _ *Settings) (BitVector, error) {
	return k.MACCSFingerprint(mol)
}

func calculatePattern(k Kernel, mol Molecule, s *Settings) (BitVector, error) {
	return k.PatternFingerprint(mol, s.params.NumBits.value)
}

//Personal.AI order the ending
