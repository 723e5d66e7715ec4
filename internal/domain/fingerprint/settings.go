package fingerprint

import (
	"strings"
)

// Parameter names one knob of the universal bundle.
type Parameter int

const (
	ParamTorsionPathLength Parameter = iota
	ParamMinPath
	ParamMaxPath
	ParamAtomPairMinPath
	ParamAtomPairMaxPath
	ParamNumBits
	ParamRadius
	ParamLayerFlags
	ParamAvalonQueryFlag
	ParamAvalonBitFlags

	numParameters
)

// parameterKeys are the persisted metadata keys, indexed by Parameter.
var parameterKeys = [numParameters]string{
	ParamTorsionPathLength: "torsionPathLength",
	ParamMinPath:           "minPath",
	ParamMaxPath:           "maxPath",
	ParamAtomPairMinPath:   "atomPairMinPath",
	ParamAtomPairMaxPath:   "atomPairMaxPath",
	ParamNumBits:           "numBits",
	ParamRadius:            "radius",
	ParamLayerFlags:        "layerFlags",
	ParamAvalonQueryFlag:   "avalonQueryFlag",
	ParamAvalonBitFlags:    "avalonBitFlags",
}

// Parameters returns every knob in bundle order.
func Parameters() []Parameter {
	out := make([]Parameter, numParameters)
	for i := range out {
		out[i] = Parameter(i)
	}
	return out
}

// Key returns the persisted metadata key, e.g. "atomPairMinPath".
func (p Parameter) Key() string {
	if p < 0 || p >= numParameters {
		return ""
	}
	return parameterKeys[p]
}

func (p Parameter) String() string {
	return p.Key()
}

func (b Bundle) get(p Parameter) Param {
	switch p {
	case ParamTorsionPathLength:
		return b.TorsionPathLength
	case ParamMinPath:
		return b.MinPath
	case ParamMaxPath:
		return b.MaxPath
	case ParamAtomPairMinPath:
		return b.AtomPairMinPath
	case ParamAtomPairMaxPath:
		return b.AtomPairMaxPath
	case ParamNumBits:
		return b.NumBits
	case ParamRadius:
		return b.Radius
	case ParamLayerFlags:
		return b.LayerFlags
	case ParamAvalonQueryFlag:
		return b.AvalonQueryFlag
	case ParamAvalonBitFlags:
		return b.AvalonBitFlags
	}
	return Unavailable
}

func (b *Bundle) set(p Parameter, v Param) {
	switch p {
	case ParamTorsionPathLength:
		b.TorsionPathLength = v
	case ParamMinPath:
		b.MinPath = v
	case ParamMaxPath:
		b.MaxPath = v
	case ParamAtomPairMinPath:
		b.AtomPairMinPath = v
	case ParamAtomPairMaxPath:
		b.AtomPairMaxPath = v
	case ParamNumBits:
		b.NumBits = v
	case ParamRadius:
		b.Radius = v
	case ParamLayerFlags:
		b.LayerFlags = v
	case ParamAvalonQueryFlag:
		b.AvalonQueryFlag = v
	case ParamAvalonBitFlags:
		b.AvalonBitFlags = v
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Settings
// ─────────────────────────────────────────────────────────────────────────────

// Settings is an immutable fingerprint descriptor.  A knob carries a value
// only if the owning family declared it relevant; every other knob is
// Unavailable.  Settings values are created by Family.Specification and are
// safe for concurrent use.
type Settings struct {
	family Family
	params Bundle
}

// Specification builds the descriptor for f from the universal bundle.  Only
// the knobs f honours are copied; the rest are forced to Unavailable.  It
// performs no validation.  An invalid family yields nil.
func (f Family) Specification(b Bundle) *Settings {
	v, ok := f.variant()
	if !ok {
		return nil
	}
	s := &Settings{family: f}
	for _, p := range v.parameters {
		s.params.set(p, b.get(p))
	}
	if v.fixedNumBits > 0 {
		s.params.NumBits = Value(v.fixedNumBits)
	}
	return s
}

// Family returns the owning family.
func (s *Settings) Family() Family { return s.family }

// FamilyName returns the owning family's display name.
func (s *Settings) FamilyName() string { return s.family.String() }

func (s *Settings) TorsionPathLength() Param { return s.params.TorsionPathLength }
func (s *Settings) MinPath() Param           { return s.params.MinPath }
func (s *Settings) MaxPath() Param           { return s.params.MaxPath }
func (s *Settings) AtomPairMinPath() Param   { return s.params.AtomPairMinPath }
func (s *Settings) AtomPairMaxPath() Param   { return s.params.AtomPairMaxPath }
func (s *Settings) NumBits() Param           { return s.params.NumBits }
func (s *Settings) Radius() Param            { return s.params.Radius }
func (s *Settings) LayerFlags() Param        { return s.params.LayerFlags }
func (s *Settings) AvalonQueryFlag() Param   { return s.params.AvalonQueryFlag }
func (s *Settings) AvalonBitFlags() Param    { return s.params.AvalonBitFlags }

// Get returns the knob p.
func (s *Settings) Get(p Parameter) Param {
	return s.params.get(p)
}

// Bundle returns a copy of the knobs.
func (s *Settings) Bundle() Bundle {
	return s.params
}

// String renders the family followed by its available knobs, e.g.
// "Morgan{numBits=2048, radius=2}".
func (s *Settings) String() string {
	if s == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(s.family.String())
	sb.WriteByte('{')
	first := true
	for _, p := range Parameters() {
		v := s.params.get(p)
		if !v.IsAvailable() {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(p.Key())
		sb.WriteByte('=')
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

//Personal.AI order the ending
