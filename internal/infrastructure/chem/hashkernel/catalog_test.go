package hashkernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
)

func catalogBundle() fingerprint.Bundle {
	return fingerprint.Bundle{
		TorsionPathLength: fingerprint.Value(4),
		MinPath:           fingerprint.Value(1),
		MaxPath:           fingerprint.Value(6),
		AtomPairMinPath:   fingerprint.Value(1),
		AtomPairMaxPath:   fingerprint.Value(12),
		NumBits:           fingerprint.Value(1024),
		Radius:            fingerprint.Value(2),
		LayerFlags:        fingerprint.Value(0x07),
		AvalonQueryFlag:   fingerprint.Value(0),
		AvalonBitFlags:    fingerprint.Value(int(AvalonAllFeatures)),
	}
}

func TestCatalog_EveryFamilyCalculates(t *testing.T) {
	k := newTestKernel()
	for _, f := range fingerprint.Families() {
		t.Run(f.Name(), func(t *testing.T) {
			s := f.Specification(catalogBundle())
			require.NoError(t, fingerprint.Validate(s))

			mol := parse(t, k, aspirin)
			v, err := fingerprint.Calculate(k, mol, s)
			require.NoError(t, err)
			defer v.Release()

			n, _ := s.NumBits().Get()
			assert.Equal(t, n, v.Len())
			assert.Greater(t, v.Count(), 0)
		})
	}
}

func TestCatalog_AvalonUnsetFlagsMatchAllFeatures(t *testing.T) {
	k := newTestKernel()
	mol := parse(t, k, aspirin)

	b := catalogBundle()
	explicit, err := fingerprint.Calculate(k, mol, fingerprint.Avalon.Specification(b))
	require.NoError(t, err)
	defer explicit.Release()

	b.AvalonBitFlags = fingerprint.Unavailable
	b.AvalonQueryFlag = fingerprint.Unavailable
	unset, err := fingerprint.Calculate(k, mol, fingerprint.Avalon.Specification(b))
	require.NoError(t, err)
	defer unset.Release()

	assert.Equal(t, explicit.OnBits(), unset.OnBits())
}

func TestCatalog_SimilarityOfIdenticalMolecules(t *testing.T) {
	k := newTestKernel()
	s := fingerprint.Morgan.Specification(catalogBundle())

	a, err := fingerprint.Calculate(k, parse(t, k, aspirin), s)
	require.NoError(t, err)
	defer a.Release()
	b, err := fingerprint.Calculate(k, parse(t, k, aspirin), s)
	require.NoError(t, err)
	defer b.Release()
	c, err := fingerprint.Calculate(k, parse(t, k, "CCCCCCCC"), s)
	require.NoError(t, err)
	defer c.Release()

	same, err := fingerprint.Tanimoto(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, same)

	diff, err := fingerprint.Tanimoto(a, c)
	require.NoError(t, err)
	assert.Less(t, diff, 0.5)
}

//Personal.AI order the ending
