// Package filter owns the statement view's filter fields (bank, search,
// mode, page) and their transition rules. Bank selection and free-text
// search are mutually exclusive: setting one clears the other. Any change
// to bank, search or mode resets pagination to page 1.
package filter

import (
	"context"
	"strings"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

// ModeFilter narrows the view to credits, debits, or everything.
type ModeFilter string

const (
	ModeAll    ModeFilter = "ALL"
	ModeCredit ModeFilter = "CREDIT"
	ModeDebit  ModeFilter = "DEBIT"
)

// ParseMode maps a request token to a ModeFilter; anything unrecognized
// collapses to ModeAll.
func ParseMode(s string) ModeFilter {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ModeCredit):
		return ModeCredit
	case string(ModeDebit):
		return ModeDebit
	default:
		return ModeAll
	}
}

// BankStore durably persists the selected bank so a returning operator
// does not have to re-select one within the same browsing session.
type BankStore interface {
	SaveBank(ctx context.Context, bankID string) error
	LoadBank(ctx context.Context) (string, error)
}

// Snapshot is an immutable copy of the fields that identify a fetch.
// Responses are tagged with the snapshot that produced them and discarded
// when it no longer matches the current state.
type Snapshot struct {
	Bank   string
	Search string
	Page   int
}

// State holds the current filter fields. Mutators are not synchronized;
// the owning session serializes access.
type State struct {
	pageSize int
	store    BankStore
	log      *logger.Logger

	selectedBank string
	searchTerm   string
	modeFilter   ModeFilter
	page         int
}

// New creates a filter state with defaults: no bank, empty search,
// ModeAll, page 1.
func New(pageSize int, store BankStore, log *logger.Logger) *State {
	return &State{
		pageSize:   pageSize,
		store:      store,
		log:        log.WithField("component", "filter"),
		modeFilter: ModeAll,
		page:       1,
	}
}

// SeedBank pre-selects a bank at session start without the side effects
// of SetBank: nothing else is reset and nothing is persisted. Used for
// the durably stored bank and the cross-view navigation hint.
func (s *State) SeedBank(bankID string) {
	s.selectedBank = bankID
}

// SetBank selects a bank, clears the search term, resets the mode filter
// to ALL and pagination to page 1. The bank ID is persisted best effort:
// a storage failure is logged, never surfaced.
func (s *State) SetBank(ctx context.Context, bankID string) {
	s.selectedBank = bankID
	s.searchTerm = ""
	s.modeFilter = ModeAll
	s.page = 1

	if s.store != nil {
		if err := s.store.SaveBank(ctx, bankID); err != nil {
			s.log.Warn("failed to persist bank selection", "bank", bankID, "error", err)
		}
	}
}

// SetSearch sets the trimmed search term, clears the bank selection and
// resets the mode filter and pagination. Search and bank selection are
// mutually exclusive.
func (s *State) SetSearch(term string) {
	s.searchTerm = strings.TrimSpace(term)
	s.selectedBank = ""
	s.modeFilter = ModeAll
	s.page = 1
}

// SetMode applies a credit/debit filter. The upstream API conflates mode
// filtering with free-text search, so CREDIT/DEBIT set the search term to
// the literal mode token; ALL clears both search and bank. This mirrors
// the upstream contract and is deliberately not "fixed" here.
func (s *State) SetMode(mode ModeFilter) {
	s.modeFilter = mode
	s.selectedBank = ""
	s.page = 1

	if mode == ModeAll {
		s.searchTerm = ""
	} else {
		s.searchTerm = string(mode)
	}
}

// SetPage moves to page n. Clamping to [1, totalPages] from the latest
// fetch metadata is the caller's responsibility.
func (s *State) SetPage(n int) {
	s.page = n
}

// QueryParams resolves the fields forwarded upstream: exactly size, page
// and search. The mode filter is never sent directly; it is already
// folded into the search term.
func (s *State) QueryParams() statement.Query {
	return statement.Query{
		Size:   s.pageSize,
		Page:   s.page,
		Search: s.searchTerm,
	}
}

// Snapshot captures the fields identifying the next fetch.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Bank:   s.selectedBank,
		Search: s.searchTerm,
		Page:   s.page,
	}
}

// SelectedBank returns the currently selected bank ID, or empty.
func (s *State) SelectedBank() string { return s.selectedBank }

// SearchTerm returns the current search term.
func (s *State) SearchTerm() string { return s.searchTerm }

// Mode returns the current mode filter.
func (s *State) Mode() ModeFilter { return s.modeFilter }

// Page returns the current 1-based page index.
func (s *State) Page() int { return s.page }

// PageSize returns the fixed page size.
func (s *State) PageSize() int { return s.pageSize }
