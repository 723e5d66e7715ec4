package fingerprint

// IsCompatible reports whether an index built with a can be queried with b.
// A nil descriptor is never compatible.  Otherwise every knob and the family
// must be equal; a knob that is Unavailable on one side and set on the other
// is a mismatch.  The relation is reflexive and symmetric.
func IsCompatible(a, b *Settings) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// Diff lists the knobs whose values differ between a and b.  The family is
// not a knob; compare Family() separately.
func Diff(a, b *Settings) []Parameter {
	if a == nil || b == nil {
		return nil
	}
	var out []Parameter
	for _, p := range Parameters() {
		if a.params.get(p) != b.params.get(p) {
			out = append(out, p)
		}
	}
	return out
}

//Personal.AI order the ending
