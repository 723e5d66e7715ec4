package hashkernel

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

const aspirin = "CC(=O)Oc1ccccc1C(=O)O"

func newTestKernel() *Kernel {
	return New(Config{}, nil)
}

func parse(t *testing.T, k *Kernel, smiles string) fingerprint.Molecule {
	t.Helper()
	mol, err := k.ParseSMILES(smiles)
	require.NoError(t, err)
	t.Cleanup(mol.Release)
	return mol
}

type genCase struct {
	name string
	run  func(k *Kernel, mol fingerprint.Molecule) (fingerprint.BitVector, error)
}

func generators() []genCase {
	return []genCase{
		{"morgan", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			return k.MorganFingerprint(m, 2, 2048)
		}},
		{"featmorgan", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			inv, err := k.FeatureInvariants(m)
			if err != nil {
				return nil, err
			}
			defer inv.Release()
			return k.MorganFingerprintWithInvariants(m, 2, 2048, inv)
		}},
		{"atompair", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			return k.HashedAtomPairFingerprint(m, 2048, 1, 30)
		}},
		{"torsion", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			return k.HashedTopologicalTorsionFingerprint(m, 2048, 4)
		}},
		{"rdkit", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			return k.RDKitFingerprint(m, 1, 7, 2048, 2)
		}},
		{"avalon", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			return k.AvalonFingerprint(m, 512, false, AvalonAllFeatures)
		}},
		{"layered", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			return k.LayeredFingerprint(m, 0x07, 1, 7, 2048)
		}},
		{"maccs", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			return k.MACCSFingerprint(m)
		}},
		{"pattern", func(k *Kernel, m fingerprint.Molecule) (fingerprint.BitVector, error) {
			return k.PatternFingerprint(m, 2048)
		}},
	}
}

func TestKernel_GeneratorsAreDeterministic(t *testing.T) {
	k := newTestKernel()
	for _, g := range generators() {
		t.Run(g.name, func(t *testing.T) {
			v1, err := g.run(k, parse(t, k, aspirin))
			require.NoError(t, err)
			defer v1.Release()
			v2, err := g.run(k, parse(t, k, aspirin))
			require.NoError(t, err)
			defer v2.Release()

			assert.Greater(t, v1.Count(), 0)
			assert.Equal(t, v1.OnBits(), v2.OnBits())
			assert.Equal(t, v1.Bytes(), v2.Bytes())
		})
	}
}

func TestKernel_GeneratorsDistinguishMolecules(t *testing.T) {
	k := newTestKernel()
	for _, g := range generators() {
		t.Run(g.name, func(t *testing.T) {
			v1, err := g.run(k, parse(t, k, aspirin))
			require.NoError(t, err)
			defer v1.Release()
			v2, err := g.run(k, parse(t, k, "CCN(CC)CC"))
			require.NoError(t, err)
			defer v2.Release()
			assert.NotEqual(t, v1.OnBits(), v2.OnBits())
		})
	}
}

func TestKernel_ReleasedMolecule(t *testing.T) {
	k := newTestKernel()
	for _, g := range generators() {
		t.Run(g.name, func(t *testing.T) {
			mol, err := k.ParseSMILES("CCO")
			require.NoError(t, err)
			mol.Release()
			v, err := g.run(k, mol)
			assert.Nil(t, v)
			assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
		})
	}
}

type foreignMolecule struct{}

func (foreignMolecule) NumAtoms() int { return 1 }
func (foreignMolecule) Release()      {}

func TestKernel_ForeignMolecule(t *testing.T) {
	k := newTestKernel()
	_, err := k.MorganFingerprint(foreignMolecule{}, 2, 1024)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
	_, err = k.FeatureInvariants(foreignMolecule{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
}

func TestKernel_NonPositiveBits(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, "CCO")
	_, err := k.MorganFingerprint(mol, 2, 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
	_, err = k.PatternFingerprint(mol, -1)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
}

func TestKernel_MaxNumBits(t *testing.T) {
	k := New(Config{MaxNumBits: 4096}, nil)
	mol := parse(t, k, "CCO")

	v, err := k.MorganFingerprint(mol, 2, 4096)
	require.NoError(t, err)
	v.Release()

	_, err = k.MorganFingerprint(mol, 2, 4097)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
	_, err = k.AvalonFingerprint(mol, 1<<31, false, 0xFFFF)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))

	_, err = New(Config{}, nil).PatternFingerprint(mol, DefaultMaxNumBits+1)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
}

func TestKernel_MaxAtoms(t *testing.T) {
	k := New(Config{MaxAtoms: 3}, nil)
	_, err := k.ParseSMILES("CCC")
	require.NoError(t, err)
	_, err = k.ParseSMILES("CCCC")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeParse))
}

func TestKernel_MaxPaths(t *testing.T) {
	k := New(Config{MaxPaths: 5}, nil)
	mol := parse(t, k, strings.Repeat("C", 20))
	v, err := k.RDKitFingerprint(mol, 1, 7, 2048, 2)
	assert.Nil(t, v)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
	assert.Contains(t, err.Error(), "generator=rdkit")
}

func TestKernel_VectorLength(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, aspirin)

	v, err := k.MorganFingerprint(mol, 2, 1000)
	require.NoError(t, err)
	defer v.Release()
	assert.Equal(t, 1000, v.Len())
	assert.Len(t, v.Bytes(), 125)
	for _, i := range v.OnBits() {
		assert.Less(t, i, 1000)
	}

	maccs, err := k.MACCSFingerprint(mol)
	require.NoError(t, err)
	defer maccs.Release()
	assert.Equal(t, 166, maccs.Len())
}

func TestKernel_MorganRadiusGrowsFeatures(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, aspirin)
	r0, err := k.MorganFingerprint(mol, 0, 4096)
	require.NoError(t, err)
	defer r0.Release()
	r2, err := k.MorganFingerprint(mol, 2, 4096)
	require.NoError(t, err)
	defer r2.Release()

	assert.Greater(t, r2.Count(), r0.Count())
	for _, i := range r0.OnBits() {
		assert.True(t, r2.Test(i))
	}
}

func TestKernel_FeatureInvariantsMatchMolecule(t *testing.T) {
	k := newTestKernel()
	small := parse(t, k, "CO")
	large := parse(t, k, aspirin)
	inv, err := k.FeatureInvariants(small)
	require.NoError(t, err)
	defer inv.Release()

	_, err = k.MorganFingerprintWithInvariants(large, 2, 1024, inv)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))

	inv.Release()
	_, err = k.MorganFingerprintWithInvariants(small, 2, 1024, inv)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
}

func TestKernel_FeatureClasses(t *testing.T) {
	mol := mustParse(t, "OC(=O)c1ccncc1Cl")
	assert.Equal(t, featureDonor|featureAcceptor|featureAcidic, mol.featureClass(0))
	assert.Equal(t, featureAcceptor, mol.featureClass(2))
	assert.Equal(t, featureAromatic|featureAcceptor, mol.featureClass(6))
	assert.Equal(t, featureHalogen, mol.featureClass(9))
}

func TestKernel_AtomPairWindow(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, "CCCCC")
	narrow, err := k.HashedAtomPairFingerprint(mol, 4096, 1, 1)
	require.NoError(t, err)
	defer narrow.Release()
	wide, err := k.HashedAtomPairFingerprint(mol, 4096, 1, 4)
	require.NoError(t, err)
	defer wide.Release()
	empty, err := k.HashedAtomPairFingerprint(mol, 4096, 5, 30)
	require.NoError(t, err)
	defer empty.Release()

	assert.Greater(t, wide.Count(), narrow.Count())
	assert.Zero(t, empty.Count())
}

func TestKernel_TorsionNeedsLongEnoughPath(t *testing.T) {
	k := newTestKernel()
	short := parse(t, k, "CCC")
	v, err := k.HashedTopologicalTorsionFingerprint(short, 2048, 4)
	require.NoError(t, err)
	defer v.Release()
	assert.Zero(t, v.Count())

	_, err = k.HashedTopologicalTorsionFingerprint(short, 2048, 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintCalculation))
}

func TestKernel_RDKitBitsPerHash(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, "CC")
	one, err := k.RDKitFingerprint(mol, 1, 1, 1<<16, 1)
	require.NoError(t, err)
	defer one.Release()
	two, err := k.RDKitFingerprint(mol, 1, 1, 1<<16, 2)
	require.NoError(t, err)
	defer two.Release()

	assert.Equal(t, 1, one.Count())
	assert.Equal(t, 2, two.Count())
}

func TestKernel_LayeredFlagsSelectLayers(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, aspirin)
	none, err := k.LayeredFingerprint(mol, 0, 1, 7, 2048)
	require.NoError(t, err)
	defer none.Release()
	topo, err := k.LayeredFingerprint(mol, LayerTopology, 1, 7, 2048)
	require.NoError(t, err)
	defer topo.Release()
	all, err := k.LayeredFingerprint(mol, 0x3f, 1, 7, 2048)
	require.NoError(t, err)
	defer all.Release()

	assert.Zero(t, none.Count())
	assert.Greater(t, all.Count(), topo.Count())
}

func TestKernel_AvalonQueryOmitsHydrogens(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, "CCO")
	query, err := k.AvalonFingerprint(mol, 1024, true, AvalonHydrogenCounts)
	require.NoError(t, err)
	defer query.Release()
	full, err := k.AvalonFingerprint(mol, 1024, false, AvalonHydrogenCounts)
	require.NoError(t, err)
	defer full.Release()

	assert.Zero(t, query.Count())
	assert.Greater(t, full.Count(), 0)
}

func TestKernel_AvalonFlagsSelectClasses(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, aspirin)
	counts, err := k.AvalonFingerprint(mol, 1024, false, AvalonAtomCount)
	require.NoError(t, err)
	defer counts.Release()
	all, err := k.AvalonFingerprint(mol, 1024, false, AvalonAllFeatures)
	require.NoError(t, err)
	defer all.Release()
	unset, err := k.AvalonFingerprint(mol, 1024, false, ^uint32(0))
	require.NoError(t, err)
	defer unset.Release()

	assert.Greater(t, all.Count(), counts.Count())
	assert.Equal(t, all.OnBits(), unset.OnBits())
}

func TestKernel_MACCSKeys(t *testing.T) {
	k := newTestKernel()
	key := func(v fingerprint.BitVector, n int) bool { return v.Test(n - 1) }

	v, err := k.MACCSFingerprint(parse(t, k, aspirin))
	require.NoError(t, err)
	defer v.Release()
	assert.True(t, key(v, 154), "C=O")
	assert.True(t, key(v, 139), "OH")
	assert.True(t, key(v, 160), "CH3")
	assert.True(t, key(v, 162), "aromatic")
	assert.True(t, key(v, 163), "six-membered ring")
	assert.True(t, key(v, 165), "ring")
	assert.True(t, key(v, 146), "more than two O")
	assert.False(t, key(v, 161), "N")
	assert.False(t, key(v, 166), "fragments")
	assert.False(t, key(v, 107), "halogen")

	salt, err := k.MACCSFingerprint(parse(t, k, "[Na+].[Cl-]"))
	require.NoError(t, err)
	defer salt.Release()
	assert.True(t, key(salt, 166))
	assert.True(t, key(salt, 49))
	assert.True(t, key(salt, 103))
	assert.False(t, key(salt, 165))
}

func TestKernel_ConcurrentNonAvalonGenerators(t *testing.T) {
	k := newTestKernel()
	want, err := k.MorganFingerprint(parse(t, k, aspirin), 2, 2048)
	require.NoError(t, err)
	defer want.Release()
	expected := want.OnBits()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mol, err := k.ParseSMILES(aspirin)
			if !assert.NoError(t, err) {
				return
			}
			defer mol.Release()
			v, err := k.MorganFingerprint(mol, 2, 2048)
			if !assert.NoError(t, err) {
				return
			}
			defer v.Release()
			assert.Equal(t, expected, v.OnBits())
		}()
	}
	wg.Wait()
}

func TestBitVector_Release(t *testing.T) {
	v := newBitVector(64)
	v.set(3)
	v.set(63)
	v.set(64)
	assert.Equal(t, []int{3, 63}, v.OnBits())
	assert.Equal(t, []byte{0x08, 0, 0, 0, 0, 0, 0, 0x80}, v.Bytes())

	v.Release()
	v.Release()
	assert.Zero(t, v.Count())
	assert.False(t, v.Test(3))
	assert.Nil(t, v.OnBits())
	assert.Len(t, v.Bytes(), 8)

	fresh := newBitVector(64)
	defer fresh.Release()
	assert.Zero(t, fresh.Count())
}

//Personal.AI order the ending
