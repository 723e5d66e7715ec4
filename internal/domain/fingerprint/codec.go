package fingerprint

import (
	"strconv"

	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// MetadataTypeKey holds the family display name in persisted metadata.
const MetadataTypeKey = "type"

// MetadataKeys lists every persisted metadata key in a stable order: the
// family first, then each Parameter in bundle order.
func MetadataKeys() []string {
	keys := make([]string, 0, numParameters+1)
	keys = append(keys, MetadataTypeKey)
	for _, p := range Parameters() {
		keys = append(keys, p.Key())
	}
	return keys
}

// Metadata encodes s as flat string metadata.  Unavailable knobs are written
// as "-1" so existing index metadata stays readable.
func (s *Settings) Metadata() map[string]string {
	m := make(map[string]string, numParameters+1)
	m[MetadataTypeKey] = s.family.String()
	for _, p := range Parameters() {
		m[p.Key()] = strconv.Itoa(s.params.get(p).Legacy())
	}
	return m
}

// SettingsFromMetadata decodes metadata written by Metadata.  Missing knobs
// are Unavailable.  The result is rebuilt through Family.Specification, so
// knobs irrelevant to the family are dropped.
func SettingsFromMetadata(m map[string]string) (*Settings, error) {
	name, ok := m[MetadataTypeKey]
	if !ok {
		return nil, errors.New(errors.ErrCodeFingerprintTypeUnsupported, "fingerprint type missing from metadata")
	}
	f, ok := ParseFamily(name)
	if !ok {
		return nil, unknownFamily(name)
	}
	var b Bundle
	for _, p := range Parameters() {
		raw, ok := m[p.Key()]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "malformed fingerprint metadata").
				WithDetail(p.Key() + "=" + raw)
		}
		b.set(p, ParamFromLegacy(v))
	}
	return f.Specification(b), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DTO conversion
// ─────────────────────────────────────────────────────────────────────────────

// BundleFromDTO converts the nullable wire bundle.
func BundleFromDTO(d ftypes.ParametersDTO) Bundle {
	return Bundle{
		TorsionPathLength: ParamFromPtr(d.TorsionPathLength),
		MinPath:           ParamFromPtr(d.MinPath),
		MaxPath:           ParamFromPtr(d.MaxPath),
		AtomPairMinPath:   ParamFromPtr(d.AtomPairMinPath),
		AtomPairMaxPath:   ParamFromPtr(d.AtomPairMaxPath),
		NumBits:           ParamFromPtr(d.NumBits),
		Radius:            ParamFromPtr(d.Radius),
		LayerFlags:        ParamFromPtr(d.LayerFlags),
		AvalonQueryFlag:   ParamFromPtr(d.AvalonQueryFlag),
		AvalonBitFlags:    ParamFromPtr(d.AvalonBitFlags),
	}
}

// ToDTO converts a bundle to its nullable wire form.
func (b Bundle) ToDTO() ftypes.ParametersDTO {
	return ftypes.ParametersDTO{
		TorsionPathLength: b.TorsionPathLength.Ptr(),
		MinPath:           b.MinPath.Ptr(),
		MaxPath:           b.MaxPath.Ptr(),
		AtomPairMinPath:   b.AtomPairMinPath.Ptr(),
		AtomPairMaxPath:   b.AtomPairMaxPath.Ptr(),
		NumBits:           b.NumBits.Ptr(),
		Radius:            b.Radius.Ptr(),
		LayerFlags:        b.LayerFlags.Ptr(),
		AvalonQueryFlag:   b.AvalonQueryFlag.Ptr(),
		AvalonBitFlags:    b.AvalonBitFlags.Ptr(),
	}
}

// ToDTO converts s to its wire form.
func (s *Settings) ToDTO() ftypes.SettingsDTO {
	return ftypes.SettingsDTO{
		Type:          s.family.String(),
		ParametersDTO: s.params.ToDTO(),
	}
}

// SettingsFromDTO resolves the family and builds its descriptor.  The
// descriptor is not validated.
func SettingsFromDTO(d ftypes.SettingsDTO) (*Settings, error) {
	f, ok := ParseFamily(d.Type)
	if !ok {
		return nil, unknownFamily(d.Type)
	}
	return f.Specification(BundleFromDTO(d.ParametersDTO)), nil
}

// Info describes f for listings.
func (f Family) Info() ftypes.FamilyInfo {
	params := f.Parameters()
	keys := make([]string, len(params))
	for i, p := range params {
		keys[i] = p.Key()
	}
	return ftypes.FamilyInfo{
		Name:        f.Name(),
		DisplayName: f.String(),
		Parameters:  keys,
		Serialized:  f.Serialized(),
	}
}

//Personal.AI order the ending
