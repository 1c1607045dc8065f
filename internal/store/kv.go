package store

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// sqlKV implements KV on the kv_entries table.
type sqlKV struct {
	db *sqlx.DB
}

func (k *sqlKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := k.db.GetContext(ctx, &data, k.db.Rebind(`SELECT data FROM kv_entries WHERE name = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "get %q", key)
	}
	return data, true, nil
}

func (k *sqlKV) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := k.db.ExecContext(ctx, k.db.Rebind(`
		INSERT INTO kv_entries (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`),
		key, value, time.Now().UnixMilli())
	if err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}

func (k *sqlKV) Delete(ctx context.Context, key string) error {
	if _, err := k.db.ExecContext(ctx, k.db.Rebind(`DELETE FROM kv_entries WHERE name = ?`), key); err != nil {
		return errors.Wrapf(err, "delete %q", key)
	}
	return nil
}

// MemoryKV is an in-process KV. Values are copied on the way in and out.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
