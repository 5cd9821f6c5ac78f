// Package memory implements every repository interface on in-process maps.
// It backs service and handler tests that run without PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notice"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

type balanceKey struct {
	employeeID string
	leaveType  leave.Type
}

type registrationKey struct {
	eventID string
	userID  string
}

type tables struct {
	users           map[string]user.User
	balances        map[balanceKey]balance.Balance
	balanceRequests map[string]balance.Request
	leaves          map[string]leave.Leave
	notices         map[string]notice.Notice
	notifications   map[string]notification.Notification
	articles        map[string]wellness.Article
	events          map[string]wellness.Event
	registrations   map[registrationKey]wellness.Registration
}

func newTables() tables {
	return tables{
		users:           make(map[string]user.User),
		balances:        make(map[balanceKey]balance.Balance),
		balanceRequests: make(map[string]balance.Request),
		leaves:          make(map[string]leave.Leave),
		notices:         make(map[string]notice.Notice),
		notifications:   make(map[string]notification.Notification),
		articles:        make(map[string]wellness.Article),
		events:          make(map[string]wellness.Event),
		registrations:   make(map[registrationKey]wellness.Registration),
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.balances {
		c.balances[k] = v
	}
	for k, v := range t.balanceRequests {
		c.balanceRequests[k] = v
	}
	for k, v := range t.leaves {
		c.leaves[k] = v
	}
	for k, v := range t.notices {
		c.notices[k] = v
	}
	for k, v := range t.notifications {
		c.notifications[k] = v
	}
	for k, v := range t.articles {
		c.articles[k] = v
	}
	for k, v := range t.events {
		c.events[k] = v
	}
	for k, v := range t.registrations {
		c.registrations[k] = v
	}
	return c
}

// Store holds all tables behind one lock. Timestamps come from Now so
// tests can pin the clock.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data tables
	Now  func() time.Time
	seq  time.Duration
}

func NewStore() *Store {
	return &Store{
		data: newTables(),
		Now:  time.Now,
	}
}

// now returns strictly increasing timestamps so "newest first" ordering is stable
// even when several rows are written within one clock tick. Callers hold s.mu.
func (s *Store) now() time.Time {
	s.seq += time.Microsecond
	return s.Now().UTC().Add(s.seq)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type txKey struct{}

type transactor struct {
	store *Store
}

// Transactor snapshots every table and restores it when fn fails.
// Transactions are serialised, which mirrors the row locks taken in PostgreSQL.
func (s *Store) Transactor() database.Transactor {
	return &transactor{store: s}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	t.store.mu.Lock()
	snapshot := t.store.data.clone()
	t.store.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.mu.Lock()
		t.store.data = snapshot
		t.store.mu.Unlock()
		return err
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
