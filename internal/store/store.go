// Package store is the application state controller. It owns the in-memory
// aggregate, persists every mutation to local storage immediately, and
// coalesces remote writes through a single pending-write flag with two
// triggers: a short debounce after the last edit, and a periodic ticker.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tkmani91/khs-server/internal/config"
	"github.com/tkmani91/khs-server/internal/github"
	"github.com/tkmani91/khs-server/internal/localstore"
	"github.com/tkmani91/khs-server/internal/models"
)

// Remote is the persistence adapter the controller pushes to. Satisfied by
// *github.Client.
type Remote interface {
	Fetch(ctx context.Context) (*models.Database, github.Source, error)
	Save(ctx context.Context, db *models.Database) error
	IsConfigured() bool
}

// SyncStatus is the non-blocking indicator shown to the user
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// statusDisplay is how long success/error stays visible before idling.
const statusDisplay = 2 * time.Second

// Store holds the aggregate and the sync machinery
type Store struct {
	mu      sync.RWMutex
	db      *models.Database
	loaded  bool
	pending bool

	local  *localstore.Store
	remote Remote
	seed   models.User
	logger *logrus.Logger

	debounce      time.Duration
	autoInterval  time.Duration
	debounceTimer *time.Timer
	stopOnce      sync.Once
	stopCh        chan struct{}

	statusMu    sync.Mutex
	status      SyncStatus
	statusTimer *time.Timer
}

// New creates a Store. The remote adapter is always passed in; whether it is
// actually used depends on IsConfigured, which can change at runtime.
func New(local *localstore.Store, remote Remote, seed models.User, sync config.SyncConfig, logger *logrus.Logger) *Store {
	return &Store{
		db:           models.DefaultDatabase(seed),
		local:        local,
		remote:       remote,
		seed:         seed,
		logger:       logger,
		debounce:     sync.Debounce,
		autoInterval: sync.AutoInterval,
		stopCh:       make(chan struct{}),
		status:       SyncIdle,
	}
}

// Load populates the aggregate: remote if configured, else the local blob,
// else a seeded default. Never fails; the worst case is an empty default.
func (s *Store) Load(ctx context.Context) {
	var db *models.Database

	if s.remote.IsConfigured() {
		remote, src, err := s.remote.Fetch(ctx)
		if err != nil {
			s.logger.WithError(err).WithField("source", src.String()).Warn("store: remote load degraded")
		} else {
			s.logger.WithField("source", src.String()).Info("store: loaded from remote")
		}
		db = remote
		// Keep a local backup of whatever the remote gave us.
		s.local.Save(localstore.KeyData, db)
	} else {
		db = models.DefaultDatabase(s.seed)
		if s.local.Load(localstore.KeyData, db) {
			db.EnsureDefaults(s.seed)
			s.logger.Info("store: loaded from local storage")
		}
	}

	s.mu.Lock()
	s.db = db
	s.loaded = true
	s.mu.Unlock()
}

// StartAutoSync launches the periodic trigger. Call once after Load.
func (s *Store) StartAutoSync() {
	if s.autoInterval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(s.autoInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.flush()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Close stops the timers. Pending changes are flushed one last time.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.mu.Lock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.mu.Unlock()
	s.flush()
}

// Status returns the current sync indicator.
func (s *Store) Status() SyncStatus {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}

// RemoteMode reports whether the remote adapter is active.
func (s *Store) RemoteMode() bool {
	return s.remote.IsConfigured()
}

// Snapshot returns a deep copy of the current aggregate.
func (s *Store) Snapshot() *models.Database {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Clone()
}

// SyncNow pushes the current state immediately, bypassing the debounce.
func (s *Store) SyncNow(ctx context.Context) error {
	s.mu.Lock()
	s.pending = true
	s.mu.Unlock()
	return s.flushCtx(ctx)
}

// mutate runs fn on the aggregate under the write lock, then persists: the
// local copy synchronously, the remote copy through the debounced pending
// flag.
func (s *Store) mutate(fn func(db *models.Database)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.db)
	if !s.loaded {
		return
	}

	// Saving under the lock keeps the local backup in mutation order.
	s.local.Save(localstore.KeyData, s.db)

	if !s.remote.IsConfigured() {
		return
	}
	s.pending = true
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, s.flush)
}

// flush is the single coalesced-write action. Whichever trigger fires first
// wins; the other finds the pending flag cleared and does nothing. A failed
// save leaves the flag set so the periodic trigger tries again.
func (s *Store) flush() {
	_ = s.flushCtx(context.Background())
}

func (s *Store) flushCtx(ctx context.Context) error {
	s.mu.Lock()
	if !s.pending || !s.remote.IsConfigured() {
		s.mu.Unlock()
		return nil
	}
	s.pending = false
	snapshot := s.db.Clone()
	s.mu.Unlock()

	s.setStatus(SyncSyncing)
	if err := s.remote.Save(ctx, snapshot); err != nil {
		s.logger.WithError(err).Error("store: remote save failed")
		s.mu.Lock()
		s.pending = true
		s.mu.Unlock()
		s.setStatus(SyncError)
		return err
	}
	s.setStatus(SyncSuccess)
	return nil
}

func (s *Store) setStatus(status SyncStatus) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	if s.statusTimer != nil {
		s.statusTimer.Stop()
		s.statusTimer = nil
	}
	s.status = status
	if status == SyncSuccess || status == SyncError {
		s.statusTimer = time.AfterFunc(statusDisplay, func() {
			s.statusMu.Lock()
			s.status = SyncIdle
			s.statusMu.Unlock()
		})
	}
}
