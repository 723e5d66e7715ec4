// Package fingerprint implements the catalog of molecular fingerprint families
// used to index and query chemical structures.  Each Family knows which subset
// of the universal parameter bundle it honours, how to validate a Settings
// descriptor built from that subset, and how to drive an external Kernel to
// produce the bit vector.  Two descriptors are interchangeable for index/query
// matching only when IsCompatible reports true.
package fingerprint

import (
	"fmt"
	"strings"

	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Family
// ─────────────────────────────────────────────────────────────────────────────

// Family identifies one fingerprint algorithm.  The set is closed; the zero
// value is not a valid family.
type Family int

const (
	Morgan Family = iota + 1
	FeatMorgan
	AtomPair
	Torsion
	RDKit
	Avalon
	Layered
	MACCS
	Pattern
)

const numFamilies = int(Pattern)

// variant is the per-family behaviour.  Every valid Family owns exactly one
// entry in the variants table.
type variant struct {
	name       string
	display    string
	parameters []Parameter
	// fixedNumBits, when non-zero, replaces whatever bit count the bundle
	// carries.
	fixedNumBits int
	rules        []rule
	calculate    calculator
	// serialized marks families whose kernel routine must never be entered
	// concurrently.
	serialized bool
}

var variants = [numFamilies + 1]variant{
	Morgan: {
		name:       "morgan",
		display:    "Morgan",
		parameters: []Parameter{ParamNumBits, ParamRadius},
		rules:      []rule{ruleNumBits, ruleRadius},
		calculate:  calculateMorgan,
	},
	FeatMorgan: {
		name:       "featmorgan",
		display:    "FeatMorgan",
		parameters: []Parameter{ParamNumBits, ParamRadius},
		rules:      []rule{ruleNumBits, ruleRadius},
		calculate:  calculateFeatMorgan,
	},
	AtomPair: {
		name:       "atompair",
		display:    "AtomPair",
		parameters: []Parameter{ParamAtomPairMinPath, ParamAtomPairMaxPath, ParamNumBits},
		rules:      []rule{ruleNumBits, ruleAtomPairMinPath, ruleAtomPairMaxPath, ruleAtomPairPathOrder},
		calculate:  calculateAtomPair,
	},
	Torsion: {
		name:       "torsion",
		display:    "Torsion",
		parameters: []Parameter{ParamTorsionPathLength, ParamNumBits},
		rules:      []rule{ruleNumBits, ruleTorsionPathLength},
		calculate:  calculateTorsion,
	},
	RDKit: {
		name:       "rdkit",
		display:    "RDKit",
		parameters: []Parameter{ParamMinPath, ParamMaxPath, ParamNumBits},
		rules:      []rule{ruleNumBits, ruleMinPath, ruleMaxPath, rulePathOrder},
		calculate:  calculateRDKit,
	},
	Avalon: {
		name:       "avalon",
		display:    "Avalon",
		parameters: []Parameter{ParamNumBits, ParamAvalonQueryFlag, ParamAvalonBitFlags},
		rules:      []rule{ruleNumBits},
		calculate:  calculateAvalon,
		serialized: true,
	},
	Layered: {
		name:       "layered",
		display:    "Layered",
		parameters: []Parameter{ParamMinPath, ParamMaxPath, ParamNumBits, ParamLayerFlags},
		rules:      []rule{ruleNumBits, ruleMinPath, ruleMaxPath, rulePathOrder, ruleLayerFlags},
		calculate:  calculateLayered,
	},
	MACCS: {
		name:         "maccs",
		display:      "MACCS",
		parameters:   []Parameter{ParamNumBits},
		fixedNumBits: MACCSNumBits,
		rules:        []rule{ruleNumBits},
		calculate:    calculateMACCS,
	},
	Pattern: {
		name:       "pattern",
		display:    "Pattern",
		parameters: []Parameter{ParamNumBits},
		rules:      []rule{ruleNumBits},
		calculate:  calculatePattern,
	},
}

// MACCSNumBits is the fixed length of the MACCS structural keys.
const MACCSNumBits = 166

func init() {
	for f := Family(1); int(f) <= numFamilies; f++ {
		v := variants[f]
		if v.name == "" || v.display == "" || v.calculate == nil || len(v.rules) == 0 {
			panic(fmt.Sprintf("fingerprint: family %d has an incomplete variant definition", int(f)))
		}
	}
}

func (f Family) variant() (*variant, bool) {
	if !f.IsValid() {
		return nil, false
	}
	return &variants[f], true
}

// IsValid reports whether f is one of the declared families.
func (f Family) IsValid() bool {
	return f >= Morgan && int(f) <= numFamilies
}

// Name returns the canonical identifier, e.g. "atompair".
func (f Family) Name() string {
	if v, ok := f.variant(); ok {
		return v.name
	}
	return ""
}

// String returns the display name, e.g. "AtomPair".  Display names are the
// persisted wire tokens.
func (f Family) String() string {
	if v, ok := f.variant(); ok {
		return v.display
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Parameters lists the knobs this family honours, in bundle order.
func (f Family) Parameters() []Parameter {
	v, ok := f.variant()
	if !ok {
		return nil
	}
	out := make([]Parameter, len(v.parameters))
	copy(out, v.parameters)
	return out
}

// Serialized reports whether calculations for f run one at a time across
// the process.
func (f Family) Serialized() bool {
	v, ok := f.variant()
	return ok && v.serialized
}

// MarshalText encodes the display name.
func (f Family) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, unknownFamily(f.String())
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes a canonical identifier or display name.
func (f *Family) UnmarshalText(text []byte) error {
	parsed, ok := ParseFamily(string(text))
	if !ok {
		return unknownFamily(string(text))
	}
	*f = parsed
	return nil
}

// Families returns every family in declaration order.
func Families() []Family {
	out := make([]Family, 0, numFamilies)
	for f := Family(1); int(f) <= numFamilies; f++ {
		out = append(out, f)
	}
	return out
}

// ParseFamily resolves name to a family.  The canonical identifier is tried
// first with an exact match, then the display name after trimming and
// upper-casing both sides.
func ParseFamily(name string) (Family, bool) {
	for _, f := range Families() {
		if variants[f].name == name {
			return f, true
		}
	}
	want := strings.ToUpper(strings.TrimSpace(name))
	for _, f := range Families() {
		if strings.ToUpper(variants[f].display) == want {
			return f, true
		}
	}
	return 0, false
}

// MustParseFamily is ParseFamily that panics on failure.  Intended for
// constants in tests and wiring code.
func MustParseFamily(name string) Family {
	f, ok := ParseFamily(name)
	if !ok {
		panic(fmt.Sprintf("fingerprint: unknown family %q", name))
	}
	return f
}

func unknownFamily(name string) *errors.AppError {
	return errors.Newf(errors.ErrCodeFingerprintTypeUnsupported, "unknown fingerprint type %q", name)
}

//Personal.AI order the ending
