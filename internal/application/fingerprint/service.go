// Package fingerprint provides the application-level service for fingerprint
// settings and calculation.  It sits between the HTTP/CLI handlers and the
// domain catalog, and owns molecule and bit-vector lifetimes.
package fingerprint

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	domain "github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

const (
	defaultBatchConcurrency = 8
	defaultMaxBatchSize     = 1000
)

// SettingsStore persists the descriptor registered for each index field.
type SettingsStore interface {
	Save(ctx context.Context, field string, settings *domain.Settings) error
	Load(ctx context.Context, field string) (*domain.Settings, error)
	Delete(ctx context.Context, field string) error
	Fields(ctx context.Context) ([]string, error)
}

// Service defines the fingerprint application operations.
type Service interface {
	Families(ctx context.Context) []ftypes.FamilyInfo
	Specification(ctx context.Context, req *ftypes.SpecificationRequest) (*ftypes.SettingsDTO, error)
	Validate(ctx context.Context, settings ftypes.SettingsDTO) (*ftypes.ValidationResponse, error)
	CheckCompatibility(ctx context.Context, req *ftypes.CompatibilityRequest) (*ftypes.CompatibilityResponse, error)
	Calculate(ctx context.Context, req *ftypes.CalculateRequest) (*ftypes.CalculateResponse, error)
	Similarity(ctx context.Context, req *ftypes.SimilarityRequest) (*ftypes.SimilarityResponse, error)

	RegisterField(ctx context.Context, field string, settings ftypes.SettingsDTO) (*ftypes.FieldSettingsResponse, error)
	FieldSettings(ctx context.Context, field string) (*ftypes.FieldSettingsResponse, error)
	DeleteField(ctx context.Context, field string) error
	ListFields(ctx context.Context) ([]string, error)
	CheckQueryCompatibility(ctx context.Context, field string, query ftypes.SettingsDTO) error
}

// Option configures the service.
type Option func(*serviceImpl)

// WithMetrics records calculations, validation failures and compatibility
// checks on m.
func WithMetrics(m *prometheus.FingerprintMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

// WithDefaultSettings is used whenever a request names no fingerprint type.
func WithDefaultSettings(settings *domain.Settings) Option {
	return func(s *serviceImpl) { s.defaults = settings }
}

func WithBatchConcurrency(n int) Option {
	return func(s *serviceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithMaxBatchSize(n int) Option {
	return func(s *serviceImpl) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

type serviceImpl struct {
	toolkit     domain.Toolkit
	store       SettingsStore
	logger      logging.Logger
	metrics     *prometheus.FingerprintMetrics
	defaults    *domain.Settings
	concurrency int
	maxBatch    int
}

// NewService creates a new fingerprint application service.
func NewService(toolkit domain.Toolkit, store SettingsStore, logger logging.Logger, opts ...Option) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &serviceImpl{
		toolkit:     toolkit,
		store:       store,
		logger:      logger,
		concurrency: defaultBatchConcurrency,
		maxBatch:    defaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) Families(_ context.Context) []ftypes.FamilyInfo {
	families := domain.Families()
	out := make([]ftypes.FamilyInfo, len(families))
	for i, f := range families {
		out[i] = f.Info()
	}
	return out
}

func (s *serviceImpl) Specification(_ context.Context, req *ftypes.SpecificationRequest) (*ftypes.SettingsDTO, error) {
	if req == nil {
		return nil, errors.InvalidParam("request body is required")
	}
	f, ok := domain.ParseFamily(req.Type)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeFingerprintTypeUnsupported, "unknown fingerprint type %q", req.Type)
	}
	dto := f.Specification(domain.BundleFromDTO(req.Parameters)).ToDTO()
	return &dto, nil
}

func (s *serviceImpl) Validate(_ context.Context, dto ftypes.SettingsDTO) (*ftypes.ValidationResponse, error) {
	settings, err := s.decode(dto)
	if err != nil {
		return nil, err
	}
	if err := domain.Validate(settings); err != nil {
		prometheus.RecordValidationFailure(s.metrics, settings.Family().Name())
		return &ftypes.ValidationResponse{
			Valid:   false,
			Code:    errors.GetCode(err).String(),
			Message: validationMessage(err),
		}, nil
	}
	return &ftypes.ValidationResponse{Valid: true}, nil
}

func (s *serviceImpl) CheckCompatibility(_ context.Context, req *ftypes.CompatibilityRequest) (*ftypes.CompatibilityResponse, error) {
	if req == nil || req.A == nil || req.B == nil {
		return nil, errors.InvalidParam("both settings a and b are required")
	}
	a, err := s.decode(*req.A)
	if err != nil {
		return nil, err
	}
	b, err := s.decode(*req.B)
	if err != nil {
		return nil, err
	}
	compatible := domain.IsCompatible(a, b)
	prometheus.RecordCompatibility(s.metrics, compatible)
	return &ftypes.CompatibilityResponse{Compatible: compatible}, nil
}

// Calculate fingerprints every SMILES in req under one descriptor.  A molecule
// that fails to parse or calculate carries its error in its own result; the
// batch as a whole fails only on bad settings, bad input size or cancellation.
func (s *serviceImpl) Calculate(ctx context.Context, req *ftypes.CalculateRequest) (*ftypes.CalculateResponse, error) {
	if req == nil {
		return nil, errors.InvalidParam("request body is required")
	}
	if len(req.SMILES) == 0 {
		return nil, errors.InvalidParam("at least one SMILES string is required")
	}
	if len(req.SMILES) > s.maxBatch {
		return nil, errors.Newf(errors.CodeInvalidParam, "batch of %d molecules exceeds the limit of %d", len(req.SMILES), s.maxBatch)
	}
	settings, err := s.resolve(req.Settings)
	if err != nil {
		return nil, err
	}

	family := settings.Family().Name()
	prometheus.RecordBatch(s.metrics, family, len(req.SMILES))
	start := time.Now()

	results := make([]ftypes.FingerprintResult, len(req.SMILES))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, smiles := range req.SMILES {
		i, smiles := i, smiles
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.fingerprintResult(settings, smiles)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFingerprintCalculation, "batch calculation aborted")
	}

	logging.LogOperationDuration(s.logger.WithContext(ctx), "fingerprint batch", start,
		logging.String(logging.FieldFamily, family),
		logging.Int("molecules", len(req.SMILES)))

	return &ftypes.CalculateResponse{Settings: settings.ToDTO(), Results: results}, nil
}

func (s *serviceImpl) fingerprintResult(settings *domain.Settings, smiles string) ftypes.FingerprintResult {
	res := ftypes.FingerprintResult{SMILES: smiles}
	bv, err := s.fingerprint(settings, smiles)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer bv.Release()

	res.NumBits = bv.Len()
	res.OnBits = bv.OnBits()
	res.Count = bv.Count()
	res.Hex = hex.EncodeToString(bv.Bytes())
	return res
}

// fingerprint parses smiles and calculates its vector.  The caller owns the
// returned vector.
func (s *serviceImpl) fingerprint(settings *domain.Settings, smiles string) (domain.BitVector, error) {
	mol, err := s.toolkit.ParseSMILES(smiles)
	if err != nil {
		prometheus.RecordParseFailure(s.metrics)
		return nil, err
	}
	defer mol.Release()

	start := time.Now()
	bv, err := domain.Calculate(s.toolkit, mol, settings)
	prometheus.RecordCalculation(s.metrics, settings.Family().Name(), time.Since(start), err)
	if err != nil {
		s.logger.Warn("fingerprint calculation failed",
			logging.String(logging.FieldFamily, settings.FamilyName()),
			logging.String("smiles", smiles),
			logging.Err(err))
		return nil, err
	}
	return bv, nil
}

func (s *serviceImpl) Similarity(_ context.Context, req *ftypes.SimilarityRequest) (*ftypes.SimilarityResponse, error) {
	if req == nil || req.Query == "" || req.Target == "" {
		return nil, errors.InvalidParam("query and target SMILES are required")
	}
	settings, err := s.resolve(req.Settings)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	q, err := s.fingerprint(settings, req.Query)
	if err != nil {
		return nil, err
	}
	defer q.Release()
	t, err := s.fingerprint(settings, req.Target)
	if err != nil {
		return nil, err
	}
	defer t.Release()

	score, err := domain.Tanimoto(q, t)
	if err != nil {
		return nil, err
	}
	prometheus.RecordSimilarity(s.metrics, settings.Family().Name(), time.Since(start))
	return &ftypes.SimilarityResponse{Tanimoto: score}, nil
}

func (s *serviceImpl) RegisterField(ctx context.Context, field string, dto ftypes.SettingsDTO) (*ftypes.FieldSettingsResponse, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	settings, err := s.resolve(dto)
	if err != nil {
		return nil, err
	}
	store, err := s.settingsStore()
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, field, settings); err != nil {
		return nil, err
	}
	s.logger.WithContext(ctx).Info("registered field settings",
		logging.String(logging.FieldField, field),
		logging.String(logging.FieldFamily, settings.FamilyName()))
	return &ftypes.FieldSettingsResponse{Field: field, Settings: settings.ToDTO()}, nil
}

func (s *serviceImpl) FieldSettings(ctx context.Context, field string) (*ftypes.FieldSettingsResponse, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	store, err := s.settingsStore()
	if err != nil {
		return nil, err
	}
	settings, err := store.Load(ctx, field)
	if err != nil {
		return nil, err
	}
	return &ftypes.FieldSettingsResponse{Field: field, Settings: settings.ToDTO()}, nil
}

func (s *serviceImpl) DeleteField(ctx context.Context, field string) error {
	if err := checkField(field); err != nil {
		return err
	}
	store, err := s.settingsStore()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, field); err != nil {
		return err
	}
	s.logger.WithContext(ctx).Info("deleted field settings", logging.String(logging.FieldField, field))
	return nil
}

func (s *serviceImpl) ListFields(ctx context.Context) ([]string, error) {
	store, err := s.settingsStore()
	if err != nil {
		return nil, err
	}
	return store.Fields(ctx)
}

// settingsStore fails for a service built without a field registry, as the
// CLI's local mode is.
func (s *serviceImpl) settingsStore() (SettingsStore, error) {
	if s.store == nil {
		return nil, errors.New(errors.ErrCodeServiceUnavailable, "field settings registry is not configured")
	}
	return s.store, nil
}

// CheckQueryCompatibility rejects a query descriptor that differs from the
// one the field was indexed with.
func (s *serviceImpl) CheckQueryCompatibility(ctx context.Context, field string, query ftypes.SettingsDTO) error {
	if err := checkField(field); err != nil {
		return err
	}
	q, err := s.decode(query)
	if err != nil {
		return err
	}
	store, err := s.settingsStore()
	if err != nil {
		return err
	}
	indexed, err := store.Load(ctx, field)
	if err != nil {
		return err
	}
	compatible := domain.IsCompatible(indexed, q)
	prometheus.RecordCompatibility(s.metrics, compatible)
	if compatible {
		return nil
	}
	return errors.New(errors.ErrCodeIncompatibleSettings, "query fingerprint settings differ from the indexed field").
		WithDetail(incompatibility(field, indexed, q))
}

func incompatibility(field string, indexed, query *domain.Settings) string {
	if indexed.Family() != query.Family() {
		return "field=" + field + " type=" + indexed.FamilyName() + "!=" + query.FamilyName()
	}
	diff := domain.Diff(indexed, query)
	keys := make([]string, len(diff))
	for i, p := range diff {
		keys[i] = p.Key()
	}
	return "field=" + field + " differs=" + strings.Join(keys, ",")
}

// decode turns the wire descriptor into a domain descriptor without
// validating it.  An empty type with no knobs selects the configured default;
// knobs without a type are rejected.
func (s *serviceImpl) decode(dto ftypes.SettingsDTO) (*domain.Settings, error) {
	if strings.TrimSpace(dto.Type) == "" {
		if !dto.ParametersDTO.IsEmpty() {
			return nil, errors.InvalidParam("fingerprint parameters given without a type")
		}
		if s.defaults == nil {
			return nil, errors.New(errors.ErrCodeInvalidFingerprintSettings, domain.MsgNoSettings)
		}
		return s.defaults, nil
	}
	return domain.SettingsFromDTO(dto)
}

// resolve decodes and validates.
func (s *serviceImpl) resolve(dto ftypes.SettingsDTO) (*domain.Settings, error) {
	settings, err := s.decode(dto)
	if err != nil {
		return nil, err
	}
	if err := domain.Validate(settings); err != nil {
		prometheus.RecordValidationFailure(s.metrics, settings.Family().Name())
		return nil, err
	}
	return settings, nil
}

func checkField(field string) error {
	if strings.TrimSpace(field) == "" {
		return errors.InvalidParam("field name must not be empty")
	}
	return nil
}

func validationMessage(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

//Personal.AI order the ending
