// Package session ties the statement view together for one operator:
// filter state, statement sources, derived statistics and the detail
// selection. It replaces the browser event loop of the dashboard with a
// mutex-guarded state object; fetches are tagged with the filter
// snapshot that produced them and a response whose snapshot no longer
// matches is discarded, never applied.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/aggregate"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/filter"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/selection"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

// ErrNotOnPage is returned when a selection targets a transaction that
// is not part of the currently loaded page.
var ErrNotOnPage = errors.New("transaction not on current page")

// View is the materialized statement view served to the dashboard.
type View struct {
	SelectedBank string                              `json:"selected_bank"`
	SearchTerm   string                              `json:"search_term"`
	Mode         filter.ModeFilter                   `json:"mode"`
	Page         int                                 `json:"page"`
	PageSize     int                                 `json:"page_size"`
	Transactions []statement.Transaction             `json:"transactions"`
	Stats        aggregate.Stats                     `json:"stats"`
	ByCurrency   map[string]aggregate.CurrencyTotals `json:"by_currency"`
	Meta         statement.Meta                      `json:"meta"`
}

// tag identifies one in-flight fetch: the routed bank plus the filter
// snapshot that produced the request.
type tag struct {
	route string
	snap  filter.Snapshot
}

// Session is the per-operator statement view state. All methods are safe
// for concurrent use.
type Session struct {
	mu sync.Mutex

	filter    *filter.State
	selection *selection.Store
	sources   *statement.Registry
	log       *logger.Logger

	// route is the bank whose source requests go to. Search and mode
	// filtering clear the visible bank selection but keep querying the
	// bank the operator was on; the route only changes on SetBank.
	route string

	transactions []statement.Transaction
	stats        aggregate.Stats
	currencies   map[string]aggregate.CurrencyTotals
	meta         statement.Meta
}

// New creates a session, seeding the bank selection from the durable
// store when one is present and registered.
func New(ctx context.Context, pageSize int, sources *statement.Registry, store filter.BankStore, log *logger.Logger) *Session {
	s := &Session{
		filter:    filter.New(pageSize, store, log),
		selection: selection.NewStore(),
		sources:   sources,
		log:       log.WithField("component", "session"),
	}

	if store != nil {
		bank, err := store.LoadBank(ctx)
		if err != nil {
			s.log.Warn("failed to load stored bank selection", "error", err)
		} else if bank != "" {
			if _, err := sources.Source(bank); err == nil {
				s.filter.SeedBank(bank)
				s.route = bank
			}
		}
	}

	return s
}

// SetBank selects a bank and refreshes the view.
func (s *Session) SetBank(ctx context.Context, bankID string) error {
	if _, err := s.sources.Source(bankID); err != nil {
		return err
	}

	s.mu.Lock()
	s.filter.SetBank(ctx, bankID)
	s.route = bankID
	s.mu.Unlock()

	s.Refresh(ctx)
	return nil
}

// SetSearch applies a free-text search and refreshes. The visible bank
// selection clears but requests keep routing to the current bank.
func (s *Session) SetSearch(ctx context.Context, term string) {
	s.mu.Lock()
	s.filter.SetSearch(term)
	s.mu.Unlock()

	s.Refresh(ctx)
}

// SetMode applies a credit/debit filter and refreshes.
func (s *Session) SetMode(ctx context.Context, mode filter.ModeFilter) {
	s.mu.Lock()
	s.filter.SetMode(mode)
	s.mu.Unlock()

	s.Refresh(ctx)
}

// SetPage moves to page n, clamped to [1, totalPages] using the most
// recent fetch metadata, and refreshes.
func (s *Session) SetPage(ctx context.Context, n int) {
	s.mu.Lock()
	if n < 1 {
		n = 1
	}
	if s.meta.TotalPages > 0 && n > s.meta.TotalPages {
		n = s.meta.TotalPages
	}
	s.filter.SetPage(n)
	s.mu.Unlock()

	s.Refresh(ctx)
}

// Refresh fetches the statement page for the current filter state. A
// failed fetch clears the view (fail closed); a response arriving for an
// outdated snapshot is dropped.
func (s *Session) Refresh(ctx context.Context) {
	s.mu.Lock()
	// The navigation hint is only consulted while no bank has been
	// chosen explicitly or restored from the store.
	if s.route == "" && s.filter.SelectedBank() == "" {
		if hint := s.selection.ActiveBank(); hint != "" {
			if _, err := s.sources.Source(hint); err == nil {
				s.filter.SeedBank(hint)
				s.route = hint
			}
		}
	}
	t := tag{route: s.route, snap: s.filter.Snapshot()}
	params := s.filter.QueryParams()
	s.mu.Unlock()

	if t.route == "" {
		s.apply(t, &statement.Page{})
		return
	}

	src, err := s.sources.Source(t.route)
	if err != nil {
		s.apply(t, &statement.Page{})
		return
	}

	page, err := src.FetchStatement(ctx, params)
	if err != nil {
		if errors.Is(err, statement.ErrUnauthorized) {
			s.log.Warn("statement source unauthorized", "bank", t.route)
		} else {
			s.log.Error("statement fetch failed", "bank", t.route, "error", err)
		}
		// No data, not a partial result.
		s.apply(t, &statement.Page{})
		return
	}

	s.apply(t, page)
}

// apply installs a fetched page if its tag still matches the current
// filter state; stale responses are silently discarded.
func (s *Session) apply(t tag, page *statement.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.route != s.route || t.snap != s.filter.Snapshot() {
		s.log.Debug("discarding stale statement response",
			"bank", t.route, "page", t.snap.Page)
		return
	}

	s.transactions = page.Transactions
	s.meta = page.Meta
	s.stats = aggregate.Aggregate(page.Transactions, page.Meta.TotalResults)
	s.currencies = aggregate.ByCurrency(page.Transactions)
}

// View returns the current statement view.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := make([]statement.Transaction, len(s.transactions))
	copy(txs, s.transactions)

	return View{
		SelectedBank: s.filter.SelectedBank(),
		SearchTerm:   s.filter.SearchTerm(),
		Mode:         s.filter.Mode(),
		Page:         s.filter.Page(),
		PageSize:     s.filter.PageSize(),
		Transactions: txs,
		Stats:        s.stats,
		ByCurrency:   s.currencies,
		Meta:         s.meta,
	}
}

// Route returns the bank requests are currently routed to.
func (s *Session) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// SelectByPTID marks the transaction with the given provider ID as the
// one under detail inspection. Only transactions on the current page can
// be selected.
func (s *Session) SelectByPTID(ptid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if tx.PTID == ptid {
			s.selection.Select(tx)
			return nil
		}
	}
	return ErrNotOnPage
}

// ClearSelection removes the detail selection.
func (s *Session) ClearSelection() {
	s.selection.Clear()
}

// Selected returns the transaction under detail inspection.
func (s *Session) Selected() (statement.Transaction, bool) {
	return s.selection.Selected()
}

// SetActiveBank records the cross-view navigation hint.
func (s *Session) SetActiveBank(bankID string) {
	s.selection.SetActiveBank(bankID)
}
