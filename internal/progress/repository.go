package progress

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// DefaultKey is the blob key progress is stored under.
const DefaultKey = "lexiz_progress"

// BlobStore is the persistence contract: reads return the last successful
// write, or ok=false when the key has never been written.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Repository loads and saves a Store as a single blob.
type Repository struct {
	blobs  BlobStore
	key    string
	codec  Codec
	logger *slog.Logger
}

// NewRepository creates a repository. An empty key selects DefaultKey and a
// nil logger selects slog.Default().
func NewRepository(blobs BlobStore, key string, codec Codec, logger *slog.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{blobs: blobs, key: key, codec: codec, logger: logger}
}

// Load reads the persisted store. A missing blob yields a fresh store; a
// corrupt blob is logged and replaced by a fresh store rather than failing.
// Only a failing read is returned as an error.
func (r *Repository) Load(ctx context.Context) (*Store, error) {
	data, ok, err := r.blobs.Get(ctx, r.key)
	if err != nil {
		return nil, errors.Wrapf(err, "read progress %q", r.key)
	}
	if !ok {
		return NewStore(r.codec.Levels, r.codec.DailyGoal), nil
	}

	s, err := r.codec.Decode(data)
	if err != nil {
		r.logger.Warn("discarding unreadable progress", "key", r.key, "error", err)
		return NewStore(r.codec.Levels, r.codec.DailyGoal), nil
	}
	return s, nil
}

// Save writes the whole store.
func (r *Repository) Save(ctx context.Context, s *Store) error {
	data, err := r.codec.Encode(s)
	if err != nil {
		return err
	}
	if err := r.blobs.Set(ctx, r.key, data); err != nil {
		return errors.Wrapf(err, "write progress %q", r.key)
	}
	return nil
}

// Reset deletes all persisted progress.
func (r *Repository) Reset(ctx context.Context) error {
	if err := r.blobs.Delete(ctx, r.key); err != nil {
		return errors.Wrapf(err, "delete progress %q", r.key)
	}
	return nil
}
