package fingerprint

// Molecule is a parsed chemical structure owned by a Kernel.  Release frees
// any resources held by the handle; the handle must not be used afterwards.
type Molecule interface {
	NumAtoms() int
	Release()
}

// Invariants is a per-atom invariant vector prepared by the Kernel as input
// to a circular fingerprint pass.
type Invariants interface {
	Release()
}

// BitVector is a fixed-length fingerprint.  The caller that obtains a
// BitVector owns it and must call Release on every path once done.
type BitVector interface {
	// Len is the number of bits.
	Len() int
	// Test reports whether bit i is set.
	Test(i int) bool
	// Count is the number of set bits.
	Count() int
	// OnBits lists the indexes of set bits in ascending order.
	OnBits() []int
	// Bytes packs the vector LSB-first: bit i lives in byte i/8 at position i%8.
	Bytes() []byte
	Release()
}

// MoleculeParser turns a SMILES string into a Molecule.
type MoleculeParser interface {
	ParseSMILES(smiles string) (Molecule, error)
}

// Kernel is the molecular toolkit that computes bit vectors.  Calls are
// synchronous.  Errors are returned to callers unchanged.
//
// Implementations must tolerate concurrent calls, except AvalonFingerprint,
// which callers in this package never enter concurrently.
type Kernel interface {
	MorganFingerprint(mol Molecule, radius, numBits int) (BitVector, error)
	FeatureInvariants(mol Molecule) (Invariants, error)
	MorganFingerprintWithInvariants(mol Molecule, radius, numBits int, inv Invariants) (BitVector, error)
	HashedAtomPairFingerprint(mol Molecule, numBits, minPath, maxPath int) (BitVector, error)
	HashedTopologicalTorsionFingerprint(mol Molecule, numBits, pathLength int) (BitVector, error)
	RDKitFingerprint(mol Molecule, minPath, maxPath, numBits, nBitsPerHash int) (BitVector, error)
	AvalonFingerprint(mol Molecule, numBits int, isQuery bool, bitFlags uint32) (BitVector, error)
	LayeredFingerprint(mol Molecule, layerFlags uint32, minPath, maxPath, numBits int) (BitVector, error)
	MACCSFingerprint(mol Molecule) (BitVector, error)
	PatternFingerprint(mol Molecule, numBits int) (BitVector, error)
}

// Toolkit is a Kernel that can also parse molecules.
type Toolkit interface {
	MoleculeParser
	Kernel
}

//Personal.AI order the ending
