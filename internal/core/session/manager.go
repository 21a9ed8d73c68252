package session

import (
	"context"
	"sync"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/filter"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

// StoreFactory yields the durable bank-selection store bound to one
// operator.
type StoreFactory func(operatorID string) filter.BankStore

// Manager owns the per-operator sessions. Sessions live in memory for
// the process lifetime; only the bank selection survives restarts, via
// the durable store each session is created with.
type Manager struct {
	mu sync.Mutex

	pageSize int
	sources  *statement.Registry
	stores   StoreFactory
	log      *logger.Logger

	sessions map[string]*Session
}

// NewManager creates a session manager.
func NewManager(pageSize int, sources *statement.Registry, stores StoreFactory, log *logger.Logger) *Manager {
	return &Manager{
		pageSize: pageSize,
		sources:  sources,
		stores:   stores,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Get returns the operator's session, creating it on first use.
func (m *Manager) Get(ctx context.Context, operatorID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[operatorID]; ok {
		return s
	}

	var store filter.BankStore
	if m.stores != nil {
		store = m.stores(operatorID)
	}

	s := New(ctx, m.pageSize, m.sources, store, m.log.WithField("operator_id", operatorID))
	m.sessions[operatorID] = s
	return s
}

// Drop discards an operator's session.
func (m *Manager) Drop(operatorID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, operatorID)
}
