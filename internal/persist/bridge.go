// Package persist moves the todo list between a state.Store and durable
// key-value storage.
package persist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/state"
	"github.com/Makepad-fr/tada/internal/storage"
)

// DefaultKey is the storage key the list lives under.
const DefaultKey = "items"

// Bridge reads and writes the serialized list under a single key.
type Bridge struct {
	kv     storage.KV
	key    string
	logger *log.Logger

	// serializes Save so an older snapshot never lands after a newer one
	mu sync.Mutex
}

func New(kv storage.KV, key string, logger *log.Logger) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bridge{kv: kv, key: key, logger: logger}
}

func (b *Bridge) Key() string { return b.key }

// Load returns the persisted list. Absent, unreadable or malformed data
// all come back as an empty list; there is no error path.
func (b *Bridge) Load(ctx context.Context) []model.Item {
	items, _ := b.Read(ctx)
	return items
}

// Read is Load that also returns the stored bytes the list was decoded
// from. raw is nil whenever the list came back empty for lack of usable
// data.
func (b *Bridge) Read(ctx context.Context) (items []model.Item, raw []byte) {
	raw, err := b.kv.Get(ctx, b.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.logger.Debug("no stored list", "key", b.key)
		} else {
			b.logger.Warn("stored list unreadable, starting empty", "key", b.key, "err", err)
		}
		return []model.Item{}, nil
	}
	items, err = decode(raw)
	if err != nil {
		b.logger.Debug("stored list malformed, starting empty", "key", b.key, "err", err)
		return []model.Item{}, nil
	}
	b.logger.Debug("loaded list", "key", b.key, "items", len(items))
	return items, raw
}

// Save overwrites the stored value with the store's current list and
// records the written bytes as the store's snapshot.
func (b *Bridge) Save(ctx context.Context, st *state.Store) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := model.Encode(st.Items())
	if err != nil {
		return err
	}
	if err := b.kv.Set(ctx, b.key, data); err != nil {
		b.logger.Error("save failed", "key", b.key, "err", err)
		return fmt.Errorf("save %q: %w", b.key, err)
	}
	st.MarkSaved(data)
	b.logger.Debug("saved list", "key", b.key, "bytes", len(data))
	return nil
}
