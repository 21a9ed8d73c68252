// Package selection holds the transaction currently under detail
// inspection plus the active-bank navigation hint.
package selection

import (
	"sync"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
)

// Store is a single-slot selection holder. At most one transaction is
// selected at a time; selecting a new one replaces the prior selection.
// Safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	selected   *statement.Transaction
	activeBank string
}

// NewStore creates an empty selection store
func NewStore() *Store {
	return &Store{}
}

// Select sets the transaction under inspection, replacing any prior one.
// The transaction is copied so later mutations of the caller's value do
// not leak into the store.
func (s *Store) Select(tx statement.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := tx
	s.selected = &cp
}

// Clear removes the current selection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the transaction under inspection, or false when none.
func (s *Store) Selected() (statement.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return statement.Transaction{}, false
	}
	return *s.selected, true
}

// SetActiveBank records which bank a bank-specific view announced. The
// hint is consulted once when a statement session starts; an explicit
// bank selection always wins over it afterwards.
func (s *Store) SetActiveBank(bankID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeBank = bankID
}

// ActiveBank returns the last announced bank, or empty.
func (s *Store) ActiveBank() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeBank
}
