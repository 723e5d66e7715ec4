package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompatible_Reflexive(t *testing.T) {
	for _, f := range Families() {
		s := f.Specification(fullBundle())
		assert.True(t, IsCompatible(s, s), f.String())
		assert.True(t, IsCompatible(s, f.Specification(fullBundle())), f.String())
	}
}

func TestIsCompatible_Symmetric(t *testing.T) {
	specs := []*Settings{
		Morgan.Specification(Bundle{NumBits: Value(2048), Radius: Value(2)}),
		Morgan.Specification(Bundle{NumBits: Value(2048), Radius: Value(3)}),
		FeatMorgan.Specification(Bundle{NumBits: Value(2048), Radius: Value(2)}),
		AtomPair.Specification(Bundle{NumBits: Value(2048)}),
		AtomPair.Specification(Bundle{NumBits: Value(2048), AtomPairMinPath: Value(1), AtomPairMaxPath: Value(30)}),
		nil,
	}
	for _, a := range specs {
		for _, b := range specs {
			assert.Equal(t, IsCompatible(a, b), IsCompatible(b, a), "%s vs %s", a, b)
		}
	}
}

func TestIsCompatible_FamilyMustMatch(t *testing.T) {
	b := Bundle{NumBits: Value(2048), Radius: Value(2)}
	assert.False(t, IsCompatible(Morgan.Specification(b), FeatMorgan.Specification(b)))

	// Pattern and MACCS share only the bit count.
	assert.False(t, IsCompatible(
		Pattern.Specification(Bundle{NumBits: Value(MACCSNumBits)}),
		MACCS.Specification(Bundle{})))
}

func TestIsCompatible_UnsetVersusDefaultIsAMismatch(t *testing.T) {
	unset := AtomPair.Specification(Bundle{NumBits: Value(2048)})
	explicit := AtomPair.Specification(Bundle{
		NumBits:         Value(2048),
		AtomPairMinPath: Value(DefaultAtomPairMinPath),
		AtomPairMaxPath: Value(DefaultAtomPairMaxPath),
	})
	assert.False(t, IsCompatible(unset, explicit))
	assert.Equal(t, []Parameter{ParamAtomPairMinPath, ParamAtomPairMaxPath}, Diff(unset, explicit))
}

func TestIsCompatible_IrrelevantKnobsIgnoredByConstruction(t *testing.T) {
	a := fullBundle()
	b := fullBundle()
	b.Radius = Value(10)
	b.AvalonBitFlags = Value(1)
	assert.True(t, IsCompatible(Torsion.Specification(a), Torsion.Specification(b)))
	assert.False(t, IsCompatible(Morgan.Specification(a), Morgan.Specification(b)))
}

func TestIsCompatible_Nil(t *testing.T) {
	s := Pattern.Specification(Bundle{NumBits: Value(64)})
	assert.False(t, IsCompatible(nil, s))
	assert.False(t, IsCompatible(s, nil))
	assert.False(t, IsCompatible(nil, nil))
	assert.Nil(t, Diff(nil, s))
}

//Personal.AI order the ending
