package filter_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/filter"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

type fakeBankStore struct {
	saved   []string
	saveErr error
}

func (f *fakeBankStore) SaveBank(_ context.Context, bankID string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, bankID)
	return nil
}

func (f *fakeBankStore) LoadBank(context.Context) (string, error) {
	if len(f.saved) == 0 {
		return "", nil
	}
	return f.saved[len(f.saved)-1], nil
}

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func newState(store filter.BankStore) *filter.State {
	return filter.New(50, store, testLogger())
}

func TestState_Defaults(t *testing.T) {
	s := newState(nil)

	assert.Equal(t, "", s.SelectedBank())
	assert.Equal(t, "", s.SearchTerm())
	assert.Equal(t, filter.ModeAll, s.Mode())
	assert.Equal(t, 1, s.Page())
}

func TestState_SetBank(t *testing.T) {
	store := &fakeBankStore{}
	s := newState(store)

	s.SetSearch("rent")
	s.SetPage(4)
	s.SetBank(context.Background(), "uba")

	assert.Equal(t, "uba", s.SelectedBank())
	assert.Equal(t, "", s.SearchTerm())
	assert.Equal(t, filter.ModeAll, s.Mode())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, []string{"uba"}, store.saved)
}

func TestState_SetBank_StoreFailureIsNotFatal(t *testing.T) {
	store := &fakeBankStore{saveErr: errors.New("redis down")}
	s := newState(store)

	s.SetBank(context.Background(), "zenith")
	assert.Equal(t, "zenith", s.SelectedBank())
}

func TestState_SetSearch_ClearsBank(t *testing.T) {
	s := newState(&fakeBankStore{})

	s.SetBank(context.Background(), "zenith")
	s.SetSearch("  salary  ")

	assert.Equal(t, "salary", s.SearchTerm())
	assert.Equal(t, "", s.SelectedBank())
	assert.Equal(t, 1, s.Page())
}

func TestState_ModeSearchMutualExclusivity(t *testing.T) {
	s := newState(&fakeBankStore{})

	// Mode filter rides on the search parameter upstream.
	s.SetMode(filter.ModeCredit)
	assert.Equal(t, "", s.SelectedBank())
	assert.Equal(t, "CREDIT", s.SearchTerm())
	assert.Equal(t, filter.ModeCredit, s.Mode())

	// Selecting a bank afterwards clears the search and the mode filter
	// resets to ALL so the two never desync.
	s.SetBank(context.Background(), "uba")
	assert.Equal(t, "", s.SearchTerm())
	assert.Equal(t, filter.ModeAll, s.Mode())
}

func TestState_SetModeAll_ClearsSearchAndBank(t *testing.T) {
	s := newState(&fakeBankStore{})

	s.SetMode(filter.ModeDebit)
	assert.Equal(t, "DEBIT", s.SearchTerm())

	s.SetMode(filter.ModeAll)
	assert.Equal(t, "", s.SearchTerm())
	assert.Equal(t, "", s.SelectedBank())
}

func TestState_PageResetInvariant(t *testing.T) {
	s := newState(&fakeBankStore{})

	ops := []func(){
		func() { s.SetBank(context.Background(), "ptb") },
		func() { s.SetSearch("transfer") },
		func() { s.SetMode(filter.ModeCredit) },
		func() { s.SetMode(filter.ModeAll) },
	}

	for _, op := range ops {
		s.SetPage(9)
		op()
		assert.Equal(t, 1, s.Page())
	}
}

func TestState_SetPage_OnlyChangesPage(t *testing.T) {
	s := newState(&fakeBankStore{})
	s.SetBank(context.Background(), "zenith")

	s.SetPage(3)

	assert.Equal(t, 3, s.Page())
	assert.Equal(t, "zenith", s.SelectedBank())
}

func TestState_QueryParams(t *testing.T) {
	s := newState(&fakeBankStore{})
	s.SetSearch("fuel")
	s.SetPage(2)

	q := s.QueryParams()

	assert.Equal(t, 50, q.Size)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, "fuel", q.Search)
	// Exactly these three are forwarded; mode is folded into search.
	assert.Empty(t, q.Mode)
	assert.Empty(t, q.AccountNumber)
	assert.Empty(t, q.Start)
	assert.Empty(t, q.End)
	assert.Empty(t, q.Ordering)
}

func TestState_Snapshot(t *testing.T) {
	s := newState(&fakeBankStore{})
	s.SetBank(context.Background(), "uba")
	s.SetPage(2)

	snap := s.Snapshot()
	assert.Equal(t, filter.Snapshot{Bank: "uba", Search: "", Page: 2}, snap)

	// Snapshot is a copy: later mutations do not affect it.
	s.SetPage(3)
	assert.Equal(t, 2, snap.Page)
}

func TestState_SeedBank(t *testing.T) {
	store := &fakeBankStore{}
	s := newState(store)

	s.SetSearch("x")
	s.SetPage(1)
	s.SeedBank("zenith")

	assert.Equal(t, "zenith", s.SelectedBank())
	// Seeding persists nothing.
	assert.Empty(t, store.saved)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, filter.ModeCredit, filter.ParseMode("credit"))
	assert.Equal(t, filter.ModeDebit, filter.ParseMode(" DEBIT "))
	assert.Equal(t, filter.ModeAll, filter.ParseMode("ALL"))
	assert.Equal(t, filter.ModeAll, filter.ParseMode("whatever"))
	assert.Equal(t, filter.ModeAll, filter.ParseMode(""))
}
