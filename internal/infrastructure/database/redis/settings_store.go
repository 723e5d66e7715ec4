package redis

import (
	"context"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

// DefaultKeyPrefix namespaces every key the store writes.
const DefaultKeyPrefix = "keyip:fp:"

// SettingsStore persists the fingerprint descriptor of each index field.
// A descriptor is stored as a hash in its metadata encoding, and the field
// name is recorded in an index set.
type SettingsStore struct {
	client  *Client
	prefix  string
	logger  logging.Logger
	metrics *prometheus.FingerprintMetrics
	group   singleflight.Group
}

// StoreOption configures a SettingsStore.
type StoreOption func(*SettingsStore)

func WithKeyPrefix(prefix string) StoreOption {
	return func(s *SettingsStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

func WithMetrics(m *prometheus.FingerprintMetrics) StoreOption {
	return func(s *SettingsStore) { s.metrics = m }
}

func NewSettingsStore(client *Client, logger logging.Logger, opts ...StoreOption) *SettingsStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &SettingsStore{
		client: client,
		prefix: DefaultKeyPrefix,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SettingsStore) fieldKey(field string) string {
	return s.prefix + "field:" + field
}

func (s *SettingsStore) indexKey() string {
	return s.prefix + "fields"
}

// metadataArgs flattens m in MetadataKeys order.
func metadataArgs(m map[string]string) []interface{} {
	keys := fingerprint.MetadataKeys()
	args := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, m[k])
	}
	return args
}

// Save replaces the descriptor recorded for field.
func (s *SettingsStore) Save(ctx context.Context, field string, settings *fingerprint.Settings) error {
	if field == "" {
		return errors.InvalidParam("field name must not be empty")
	}
	if settings == nil {
		return errors.New(errors.ErrCodeInvalidFingerprintSettings, fingerprint.MsgNoSettings)
	}
	start := time.Now()
	defer func() { prometheus.RecordStoreOp(s.metrics, "save", time.Since(start)) }()

	key := s.fieldKey(field)
	args := metadataArgs(settings.Metadata())
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, args...)
		pipe.SAdd(ctx, s.indexKey(), field)
		return nil
	})
	if err != nil {
		s.logger.Error("failed to save field settings", logging.String(logging.FieldField, field), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to save field settings")
	}
	s.logger.Debug("saved field settings",
		logging.String(logging.FieldField, field),
		logging.String(logging.FieldFamily, settings.FamilyName()))
	return nil
}

// Load returns the descriptor recorded for field.  Concurrent loads of the
// same field share one round trip.
func (s *SettingsStore) Load(ctx context.Context, field string) (*fingerprint.Settings, error) {
	start := time.Now()
	defer func() { prometheus.RecordStoreOp(s.metrics, "load", time.Since(start)) }()

	key := s.fieldKey(field)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.client.HGetAll(ctx, key)
	})
	if err != nil {
		s.logger.Error("failed to load field settings", logging.String(logging.FieldField, field), logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to load field settings")
	}
	m := v.(map[string]string)
	if len(m) == 0 {
		prometheus.RecordStoreAccess(s.metrics, false)
		return nil, errors.New(errors.ErrCodeFieldSettingsNotFound, "no fingerprint settings registered for field").
			WithDetail("field=" + field)
	}
	prometheus.RecordStoreAccess(s.metrics, true)

	settings, err := fingerprint.SettingsFromMetadata(m)
	if err != nil {
		s.logger.Warn("stored field settings are corrupt", logging.String(logging.FieldField, field), logging.Err(err))
		return nil, err
	}
	return settings, nil
}

// Delete removes the descriptor recorded for field.
func (s *SettingsStore) Delete(ctx context.Context, field string) error {
	start := time.Now()
	defer func() { prometheus.RecordStoreOp(s.metrics, "delete", time.Since(start)) }()

	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.fieldKey(field))
		pipe.SRem(ctx, s.indexKey(), field)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete field settings")
	}
	if del.Val() == 0 {
		return errors.New(errors.ErrCodeFieldSettingsNotFound, "no fingerprint settings registered for field").
			WithDetail("field=" + field)
	}
	return nil
}

// Fields lists registered field names in lexical order.
func (s *SettingsStore) Fields(ctx context.Context) ([]string, error) {
	fields, err := s.client.SMembers(ctx, s.indexKey())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to list fields")
	}
	sort.Strings(fields)
	return fields, nil
}

//Personal.AI order the ending
