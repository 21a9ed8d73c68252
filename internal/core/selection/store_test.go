package selection_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/selection"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
)

func TestStore_SelectReplacesPrior(t *testing.T) {
	s := selection.NewStore()

	_, ok := s.Selected()
	assert.False(t, ok)

	s.Select(statement.Transaction{PTID: "PT-1"})
	s.Select(statement.Transaction{PTID: "PT-2"})

	tx, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "PT-2", tx.PTID)
}

func TestStore_Clear(t *testing.T) {
	s := selection.NewStore()

	s.Select(statement.Transaction{PTID: "PT-1"})
	s.Clear()

	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestStore_SelectCopies(t *testing.T) {
	s := selection.NewStore()

	tx := statement.Transaction{PTID: "PT-1", Description: "before"}
	s.Select(tx)
	tx.Description = "after"

	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "before", got.Description)
}

func TestStore_ActiveBank(t *testing.T) {
	s := selection.NewStore()

	assert.Equal(t, "", s.ActiveBank())

	s.SetActiveBank("zenith")
	assert.Equal(t, "zenith", s.ActiveBank())

	// Last write wins.
	s.SetActiveBank("uba")
	assert.Equal(t, "uba", s.ActiveBank())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := selection.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Select(statement.Transaction{PTID: "PT-x"})
			s.SetActiveBank("ptb")
		}()
		go func() {
			defer wg.Done()
			s.Selected()
			s.ActiveBank()
		}()
	}
	wg.Wait()

	_, ok := s.Selected()
	assert.True(t, ok)
}
