// Package session owns one run of tada: the backend, the loaded list and
// the background autosave task.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/persist"
	"github.com/Makepad-fr/tada/internal/state"
	"github.com/Makepad-fr/tada/internal/storage"
	"github.com/Makepad-fr/tada/internal/storage/jsonstore"
	"github.com/Makepad-fr/tada/internal/storage/memstore"
	"github.com/Makepad-fr/tada/internal/storage/sqlitestore"
)

// Phase is the session lifecycle state.
type Phase int

const (
	Loading Phase = iota
	Ready
	Closed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

type Session struct {
	Store *state.Store

	cfg    *config.Config
	kv     storage.KV
	bridge *persist.Bridge
	logger *log.Logger

	mu     sync.Mutex
	phase  Phase
	cancel context.CancelFunc
	group  *errgroup.Group
}

// OpenBackend opens the storage backend named by cfg.
func OpenBackend(cfg *config.Config) (storage.KV, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.Open(cfg.Path)
	case config.BackendSQLite:
		return sqlitestore.Open(cfg.Path)
	case config.BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Open opens the configured backend and loads the list. cfg must be
// finalized.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Session, error) {
	kv, err := OpenBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	return New(ctx, kv, cfg, logger)
}

// New loads the list from an already opened backend. The session takes
// ownership of kv.
func New(ctx context.Context, kv storage.KV, cfg *config.Config, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		cfg:    cfg,
		kv:     kv,
		bridge: persist.New(kv, cfg.Key, logger),
		logger: logger,
		phase:  Loading,
	}

	items, raw := s.bridge.Read(ctx)
	s.Store = state.New(items)
	snap, err := model.Encode(s.Store.Items())
	if err != nil {
		kv.Close()
		return nil, err
	}
	if s.Store.Len() != len(items) {
		// Duplicates were dropped; storage still holds the old bytes.
		snap = raw
		logger.Debug("stored list had duplicates, marking unsaved", "key", cfg.Key,
			"stored", len(items), "kept", s.Store.Len())
	}
	s.Store.MarkSaved(snap)

	s.phase = Ready
	logger.Debug("session ready", "backend", cfg.Backend, "key", cfg.Key, "items", s.Store.Len())
	return s, nil
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Config() *config.Config { return s.cfg }

// Save writes the current list and refreshes the snapshot.
func (s *Session) Save(ctx context.Context) error {
	return s.bridge.Save(ctx, s.Store)
}

// StartAutosave launches the periodic save task. It runs until ctx is done
// or Close is called. onSave may be nil. Calling it twice is a no-op.
func (s *Session) StartAutosave(ctx context.Context, onSave func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group != nil || s.phase != Ready {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	a := &persist.Autosaver{
		Bridge:   s.bridge,
		Store:    s.Store,
		Interval: s.cfg.AutosaveInterval,
		OnSave: func(err error) {
			if err != nil {
				s.logger.Warn("autosave failed", "err", err)
			} else {
				s.logger.Debug("autosaved", "items", s.Store.Len())
			}
			if onSave != nil {
				onSave(err)
			}
		},
	}
	g.Go(func() error { return a.Run(gctx) })
	s.cancel = cancel
	s.group = g
}

// Close stops the autosave task, saves once more when save_on_exit is set
// and the list has unsaved changes, and releases the backend.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.phase == Closed {
		s.mu.Unlock()
		return nil
	}
	s.phase = Closed
	cancel, g := s.cancel, s.group
	s.mu.Unlock()

	var errs []error
	if cancel != nil {
		cancel()
		if err := g.Wait(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.cfg.SaveOnExit && s.Store.Dirty() {
		if err := s.bridge.Save(context.Background(), s.Store); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.kv.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close backend: %w", err))
	}
	return errors.Join(errs...)
}
