package client

import (
	"context"
	"fmt"
	"net/url"

	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// FieldsClient wraps the /fields registry endpoints.
type FieldsClient struct {
	client *Client
}

func fieldPath(field, suffix string) (string, error) {
	if field == "" {
		return "", fmt.Errorf("client: field is required")
	}
	return "/fields/" + url.PathEscape(field) + suffix, nil
}

// List returns the registered field names.
func (f *FieldsClient) List(ctx context.Context) ([]string, error) {
	var resp struct {
		Fields []string `json:"fields"`
	}
	if err := f.client.get(ctx, "/fields", &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// Get returns the descriptor registered for field.
func (f *FieldsClient) Get(ctx context.Context, field string) (*ftypes.FieldSettingsResponse, error) {
	path, err := fieldPath(field, "/settings")
	if err != nil {
		return nil, err
	}
	var out ftypes.FieldSettingsResponse
	if err := f.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Put registers settings for field, replacing any previous descriptor.
func (f *FieldsClient) Put(ctx context.Context, field string, settings ftypes.SettingsDTO) (*ftypes.FieldSettingsResponse, error) {
	path, err := fieldPath(field, "/settings")
	if err != nil {
		return nil, err
	}
	var out ftypes.FieldSettingsResponse
	if err := f.client.put(ctx, path, settings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the descriptor registered for field.
func (f *FieldsClient) Delete(ctx context.Context, field string) error {
	path, err := fieldPath(field, "/settings")
	if err != nil {
		return err
	}
	return f.client.delete(ctx, path)
}

// CheckQuery returns nil when query is compatible with field's descriptor.
// An incompatible query is an *APIError with IsConflict() true.
func (f *FieldsClient) CheckQuery(ctx context.Context, field string, query ftypes.SettingsDTO) error {
	path, err := fieldPath(field, "/compatibility")
	if err != nil {
		return err
	}
	return f.client.post(ctx, path, query, nil)
}

//Personal.AI order the ending
