package client

import (
	"context"
	"fmt"
	"strings"

	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// FingerprintsClient wraps the /fingerprints endpoints.
type FingerprintsClient struct {
	client *Client
}

// Families lists the supported fingerprint families.
func (fc *FingerprintsClient) Families(ctx context.Context) ([]ftypes.FamilyInfo, error) {
	var resp struct {
		Families []ftypes.FamilyInfo `json:"families"`
	}
	if err := fc.client.get(ctx, "/fingerprints/families", &resp); err != nil {
		return nil, err
	}
	return resp.Families, nil
}

// Specification builds a descriptor for family from the universal bundle.
func (fc *FingerprintsClient) Specification(ctx context.Context, family string, params ftypes.ParametersDTO) (*ftypes.SettingsDTO, error) {
	if strings.TrimSpace(family) == "" {
		return nil, fmt.Errorf("client: family is required")
	}
	var out ftypes.SettingsDTO
	req := ftypes.SpecificationRequest{Type: family, Parameters: params}
	if err := fc.client.post(ctx, "/fingerprints/specification", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate asks the service whether settings is legal for its family.
func (fc *FingerprintsClient) Validate(ctx context.Context, settings ftypes.SettingsDTO) (*ftypes.ValidationResponse, error) {
	var out ftypes.ValidationResponse
	if err := fc.client.post(ctx, "/fingerprints/validate", settings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compatible reports whether a and b produce interchangeable fingerprints.
func (fc *FingerprintsClient) Compatible(ctx context.Context, a, b ftypes.SettingsDTO) (bool, error) {
	var out ftypes.CompatibilityResponse
	req := ftypes.CompatibilityRequest{A: &a, B: &b}
	if err := fc.client.post(ctx, "/fingerprints/compatibility", req, &out); err != nil {
		return false, err
	}
	return out.Compatible, nil
}

// Calculate fingerprints every SMILES under settings.  Per-molecule parse
// failures are reported in FingerprintResult.Error.
func (fc *FingerprintsClient) Calculate(ctx context.Context, settings ftypes.SettingsDTO, smiles ...string) (*ftypes.CalculateResponse, error) {
	if len(smiles) == 0 {
		return nil, fmt.Errorf("client: at least one SMILES is required")
	}
	var out ftypes.CalculateResponse
	req := ftypes.CalculateRequest{Settings: settings, SMILES: smiles}
	if err := fc.client.post(ctx, "/fingerprints/calculate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Similarity returns the Tanimoto coefficient of query and target.
func (fc *FingerprintsClient) Similarity(ctx context.Context, settings ftypes.SettingsDTO, query, target string) (float64, error) {
	var out ftypes.SimilarityResponse
	req := ftypes.SimilarityRequest{Settings: settings, Query: query, Target: target}
	if err := fc.client.post(ctx, "/fingerprints/similarity", req, &out); err != nil {
		return 0, err
	}
	return out.Tanimoto, nil
}

//Personal.AI order the ending
