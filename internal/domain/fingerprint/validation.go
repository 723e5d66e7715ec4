package fingerprint

import (
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

// Validation messages.  They are surfaced verbatim to operators configuring
// index fields, so the wording is stable.
const (
	MsgNoSettings        = "No fingerprint settings available."
	MsgNumBits           = "Number of bits must be a positive number > 0."
	MsgRadius            = "Radius must be a positive number > 0."
	MsgAtomPairMinPath   = "AtomPair minimal path must be a positive number > 0."
	MsgAtomPairMaxPath   = "AtomPair maximal path must be a positive number > 0."
	MsgAtomPairPathOrder = "AtomPair maximal path must be greater than or equal to AtomPair minimal path."
	MsgTorsionPathLength = "Torsion path length must be a positive number > 0."
	MsgMinPath           = "Minimal path must be a positive number > 0."
	MsgMaxPath           = "Maximal path must be a positive number > 0."
	MsgPathOrder         = "Maximal path must be greater than or equal to minimal path."
	MsgLayerFlags        = "Layer flags must be a positive number > 0."
)

// rule is one legality predicate over a non-nil descriptor.
type rule struct {
	holds   func(s *Settings) bool
	message string
}

// optionalPositive holds when p is absent or greater than zero.
func optionalPositive(p Param) bool {
	return !p.IsAvailable() || p.positive()
}

var (
	ruleNumBits = rule{
		holds:   func(s *Settings) bool { return s.params.NumBits.positive() },
		message: MsgNumBits,
	}
	ruleRadius = rule{
		holds:   func(s *Settings) bool { return s.params.Radius.positive() },
		message: MsgRadius,
	}
	ruleAtomPairMinPath = rule{
		holds:   func(s *Settings) bool { return optionalPositive(s.params.AtomPairMinPath) },
		message: MsgAtomPairMinPath,
	}
	ruleAtomPairMaxPath = rule{
		holds:   func(s *Settings) bool { return optionalPositive(s.params.AtomPairMaxPath) },
		message: MsgAtomPairMaxPath,
	}
	ruleAtomPairPathOrder = rule{
		holds: func(s *Settings) bool {
			lo, loOK := s.params.AtomPairMinPath.Get()
			hi, hiOK := s.params.AtomPairMaxPath.Get()
			return !loOK || !hiOK || hi >= lo
		},
		message: MsgAtomPairPathOrder,
	}
	ruleTorsionPathLength = rule{
		holds:   func(s *Settings) bool { return optionalPositive(s.params.TorsionPathLength) },
		message: MsgTorsionPathLength,
	}
	ruleMinPath = rule{
		holds:   func(s *Settings) bool { return s.params.MinPath.positive() },
		message: MsgMinPath,
	}
	ruleMaxPath = rule{
		holds:   func(s *Settings) bool { return s.params.MaxPath.positive() },
		message: MsgMaxPath,
	}
	// rulePathOrder runs after ruleMinPath and ruleMaxPath, so both knobs are
	// present by the time it is evaluated.
	rulePathOrder = rule{
		holds:   func(s *Settings) bool { return s.params.MaxPath.value >= s.params.MinPath.value },
		message: MsgPathOrder,
	}
	ruleLayerFlags = rule{
		holds:   func(s *Settings) bool { return s.params.LayerFlags.positive() },
		message: MsgLayerFlags,
	}
)

// Validate checks s against f's legality rules.  A nil descriptor fails
// before any family rule runs; otherwise rules run in a fixed order and the
// first failure is returned as an ErrCodeInvalidFingerprintSettings error.
// Validate never mutates s.
func (f Family) Validate(s *Settings) error {
	if s == nil {
		return invalidSettings(MsgNoSettings)
	}
	v, ok := f.variant()
	if !ok {
		return unknownFamily(f.String())
	}
	for _, r := range v.rules {
		if !r.holds(s) {
			return invalidSettings(r.message).WithDetail("type=" + v.display)
		}
	}
	return nil
}

// Validate checks s against its own family's rules.
func Validate(s *Settings) error {
	if s == nil {
		return invalidSettings(MsgNoSettings)
	}
	return s.family.Validate(s)
}

func invalidSettings(message string) *errors.AppError {
	return errors.New(errors.ErrCodeInvalidFingerprintSettings, message)
}

//Personal.AI order the ending
