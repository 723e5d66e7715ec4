// Package fingerprint defines the fingerprint-settings Data Transfer Objects and
// request/response structures shared by the HTTP API, the CLI and the Go
// client.  No domain logic lives here.  Every optional knob is a nullable
// integer: a nil pointer means "not applicable to this family".
package fingerprint

// ─────────────────────────────────────────────────────────────────────────────
// Parameters & settings
// ─────────────────────────────────────────────────────────────────────────────

// ParametersDTO is the universal parameter bundle.  It carries every knob any
// fingerprint family can honour.
type ParametersDTO struct {
	TorsionPathLength *int `json:"torsion_path_length,omitempty" yaml:"torsion_path_length,omitempty"`
	MinPath           *int `json:"min_path,omitempty" yaml:"min_path,omitempty"`
	MaxPath           *int `json:"max_path,omitempty" yaml:"max_path,omitempty"`
	AtomPairMinPath   *int `json:"atom_pair_min_path,omitempty" yaml:"atom_pair_min_path,omitempty"`
	AtomPairMaxPath   *int `json:"atom_pair_max_path,omitempty" yaml:"atom_pair_max_path,omitempty"`
	NumBits           *int `json:"num_bits,omitempty" yaml:"num_bits,omitempty"`
	Radius            *int `json:"radius,omitempty" yaml:"radius,omitempty"`
	LayerFlags        *int `json:"layer_flags,omitempty" yaml:"layer_flags,omitempty"`
	AvalonQueryFlag   *int `json:"avalon_query_flag,omitempty" yaml:"avalon_query_flag,omitempty"`
	AvalonBitFlags    *int `json:"avalon_bit_flags,omitempty" yaml:"avalon_bit_flags,omitempty"`
}

// IsEmpty reports whether no knob is set.
func (p ParametersDTO) IsEmpty() bool {
	for _, v := range []*int{
		p.TorsionPathLength, p.MinPath, p.MaxPath, p.AtomPairMinPath, p.AtomPairMaxPath,
		p.NumBits, p.Radius, p.LayerFlags, p.AvalonQueryFlag, p.AvalonBitFlags,
	} {
		if v != nil {
			return false
		}
	}
	return true
}

// SettingsDTO is the wire form of a fingerprint settings descriptor.  Type is
// the family's display name ("Morgan", "AtomPair", ...); canonical identifiers
// ("morgan", "atompair", ...) are accepted on input.
type SettingsDTO struct {
	Type          string `json:"type" yaml:"type"`
	ParametersDTO `yaml:",inline"`
}

// FamilyInfo describes one fingerprint family.
type FamilyInfo struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Parameters  []string `json:"parameters"`
	Serialized  bool     `json:"serialized"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Requests / responses
// ─────────────────────────────────────────────────────────────────────────────

// SpecificationRequest asks the service to build a settings descriptor for
// Type from the universal bundle.
type SpecificationRequest struct {
	Type       string        `json:"type"`
	Parameters ParametersDTO `json:"parameters"`
}

// ValidationResponse reports the outcome of a validation call.  Code and
// Message are empty when Valid is true.
type ValidationResponse struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CompatibilityRequest carries the two descriptors to compare.
type CompatibilityRequest struct {
	A *SettingsDTO `json:"a"`
	B *SettingsDTO `json:"b"`
}

// CompatibilityResponse reports whether two descriptors are interchangeable.
type CompatibilityResponse struct {
	Compatible bool `json:"compatible"`
}

// CalculateRequest asks for the fingerprints of one or more SMILES strings
// under one descriptor.
type CalculateRequest struct {
	Settings SettingsDTO `json:"settings"`
	SMILES   []string    `json:"smiles"`
}

// FingerprintResult is the bit vector computed for a single molecule.
type FingerprintResult struct {
	SMILES  string `json:"smiles"`
	NumBits int    `json:"num_bits"`
	OnBits  []int  `json:"on_bits"`
	Count   int    `json:"count"`
	Hex     string `json:"hex"`
	Error   string `json:"error,omitempty"`
}

// CalculateResponse carries results in request order.
type CalculateResponse struct {
	Settings SettingsDTO         `json:"settings"`
	Results  []FingerprintResult `json:"results"`
}

// SimilarityRequest compares two molecules under one descriptor.
type SimilarityRequest struct {
	Settings SettingsDTO `json:"settings"`
	Query    string      `json:"query"`
	Target   string      `json:"target"`
}

// SimilarityResponse carries the Tanimoto coefficient of the two fingerprints.
type SimilarityResponse struct {
	Tanimoto float64 `json:"tanimoto"`
}

// FieldSettingsResponse is the descriptor registered for an index field.
type FieldSettingsResponse struct {
	Field    string      `json:"field"`
	Settings SettingsDTO `json:"settings"`
}

// IntPtr returns a pointer to v.  Handy for building ParametersDTO literals.
func IntPtr(v int) *int {
	return &v
}

//Personal.AI order the ending
