package http

import (
	"context"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfp "github.com/turtacn/KeyIP-Fingerprint/internal/application/fingerprint"
	domain "github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/chem/hashkernel"
	"github.com/turtacn/KeyIP-Fingerprint/internal/interfaces/http/handlers"
	"github.com/turtacn/KeyIP-Fingerprint/internal/testutil"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/client"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// memStore keeps field settings in memory.
type memStore struct {
	mu     sync.Mutex
	fields map[string]*domain.Settings
}

func (m *memStore) Save(_ context.Context, field string, s *domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[field] = s
	return nil
}

func (m *memStore) Load(_ context.Context, field string) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.fields[field]
	if !ok {
		return nil, errors.New(errors.ErrCodeFieldSettingsNotFound, "no fingerprint settings registered for field").
			WithDetail("field=" + field)
	}
	return s, nil
}

func (m *memStore) Delete(_ context.Context, field string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.fields, field)
	return nil
}

func (m *memStore) Fields(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.fields))
	for f := range m.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

// newStack serves the full route tree and returns an SDK client pointed at it.
func newStack(t *testing.T) *client.Client {
	t.Helper()
	logger := testutil.NewMockLogger()
	svc := appfp.NewService(hashkernel.New(hashkernel.Config{}, logger),
		&memStore{fields: map[string]*domain.Settings{}}, logger)

	srv := httptest.NewServer(NewRouter(RouterConfig{
		FingerprintHandler: handlers.NewFingerprintHandler(svc, logger, 0),
		FieldHandler:       handlers.NewFieldHandler(svc, logger, 0),
		HealthHandler:      handlers.NewHealthHandler("it"),
		Logger:             logger,
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewClient(srv.URL, "", client.WithRetryMax(0))
	require.NoError(t, err)
	return c
}

func morgan(bits, radius int) ftypes.SettingsDTO {
	return ftypes.SettingsDTO{
		Type:          "Morgan",
		ParametersDTO: ftypes.ParametersDTO{NumBits: ftypes.IntPtr(bits), Radius: ftypes.IntPtr(radius)},
	}
}

func TestIntegration_CatalogRoundTrip(t *testing.T) {
	c := newStack(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	families, err := c.Fingerprints().Families(ctx)
	require.NoError(t, err)
	assert.Len(t, families, 9)

	spec, err := c.Fingerprints().Specification(ctx, "atompair", ftypes.ParametersDTO{
		NumBits: ftypes.IntPtr(1024),
		Radius:  ftypes.IntPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "AtomPair", spec.Type)
	assert.Nil(t, spec.Radius)

	v, err := c.Fingerprints().Validate(ctx, morgan(0, 2))
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, string(errors.ErrCodeInvalidFingerprintSettings), v.Code)

	ok, err := c.Fingerprints().Compatible(ctx, morgan(2048, 2), morgan(2048, 3))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIntegration_CalculateAndSimilarity(t *testing.T) {
	c := newStack(t)
	ctx := context.Background()

	resp, err := c.Fingerprints().Calculate(ctx, morgan(1024, 2), "c1ccccc1", "not smiles(")
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 1024, resp.Results[0].NumBits)
	assert.Greater(t, resp.Results[0].Count, 0)
	assert.NotEmpty(t, resp.Results[1].Error)

	same, err := c.Fingerprints().Similarity(ctx, morgan(2048, 2), "CCO", "CCO")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, same, 1e-9)

	diff, err := c.Fingerprints().Similarity(ctx, morgan(2048, 2), "CCO", "c1ccccc1")
	require.NoError(t, err)
	assert.Less(t, diff, 1.0)
}

func TestIntegration_FieldRegistry(t *testing.T) {
	c := newStack(t)
	ctx := context.Background()

	_, err := c.Fields().Put(ctx, "structure_fp", morgan(2048, 2))
	require.NoError(t, err)

	fields, err := c.Fields().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"structure_fp"}, fields)

	got, err := c.Fields().Get(ctx, "structure_fp")
	require.NoError(t, err)
	assert.Equal(t, "Morgan", got.Settings.Type)
	assert.Equal(t, 2048, *got.Settings.NumBits)

	require.NoError(t, c.Fields().CheckQuery(ctx, "structure_fp", morgan(2048, 2)))

	err = c.Fields().CheckQuery(ctx, "structure_fp", morgan(1024, 2))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsConflict())

	require.NoError(t, c.Fields().Delete(ctx, "structure_fp"))
	_, err = c.Fields().Get(ctx, "structure_fp")
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

//Personal.AI order the ending
