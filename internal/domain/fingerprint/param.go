package fingerprint

import "strconv"

// legacyUnavailable is the integer that marks an absent knob in persisted
// index metadata.
const legacyUnavailable = -1

// Param is an optional integer knob.  The zero value is Unavailable, meaning
// the knob does not apply to the owning family.
type Param struct {
	value int
	ok    bool
}

// Unavailable is the absent Param.
var Unavailable = Param{}

// Value wraps v as an available Param.  -1 is the absent sentinel and yields
// Unavailable.  Other negative and zero values are kept as given; rejecting
// them is the job of validation.
func Value(v int) Param {
	if v == legacyUnavailable {
		return Unavailable
	}
	return Param{value: v, ok: true}
}

// ParamFromLegacy decodes the persisted integer form, where -1 means absent.
func ParamFromLegacy(v int) Param {
	return Value(v)
}

// ParamFromPtr decodes a nullable integer.  Nil and -1 are both absent.
func ParamFromPtr(v *int) Param {
	if v == nil {
		return Unavailable
	}
	return Value(*v)
}

// Get returns the value and whether it is available.
func (p Param) Get() (int, bool) {
	return p.value, p.ok
}

// IsAvailable reports whether the knob carries a value.
func (p Param) IsAvailable() bool {
	return p.ok
}

// Or returns the value, or def when unavailable.
func (p Param) Or(def int) int {
	if !p.ok {
		return def
	}
	return p.value
}

// Legacy returns the persisted integer form.
func (p Param) Legacy() int {
	return p.Or(legacyUnavailable)
}

// Ptr returns the nullable integer form.
func (p Param) Ptr() *int {
	if !p.ok {
		return nil
	}
	v := p.value
	return &v
}

func (p Param) String() string {
	if !p.ok {
		return "n/a"
	}
	return strconv.Itoa(p.value)
}

// positive holds for an available value greater than zero.
func (p Param) positive() bool {
	return p.ok && p.value > 0
}

// Bundle is the universal parameter bundle: every knob any family may honour.
// Families copy only their relevant subset when building Settings.
type Bundle struct {
	TorsionPathLength Param
	MinPath           Param
	MaxPath           Param
	AtomPairMinPath   Param
	AtomPairMaxPath   Param
	NumBits           Param
	Radius            Param
	LayerFlags        Param
	AvalonQueryFlag   Param
	AvalonBitFlags    Param
}

//Personal.AI order the ending
