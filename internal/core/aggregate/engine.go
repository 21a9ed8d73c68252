// Package aggregate computes derived statistics over a single statement
// page. All functions are pure: identical input yields identical output,
// nothing is mutated and nothing panics, so a bad page from an upstream
// bank degrades to zeroed stats instead of taking the dashboard down.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/money"
)

// Stats holds the derived totals for one statement page.
type Stats struct {
	// LatestRunningBalance is the running balance of the first transaction
	// on the page. Pages arrive newest-first, so this is the current
	// account balance when BalanceKnown is true.
	LatestRunningBalance decimal.Decimal `json:"latest_running_balance"`

	// BalanceKnown is false when the page ordering could not be trusted
	// (transaction dates were seen increasing), in which case
	// LatestRunningBalance must not be presented as a current balance.
	BalanceKnown bool `json:"balance_known"`

	// TotalCredit and TotalDebit are sums over the current page only,
	// not the full account history.
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalDebit  decimal.Decimal `json:"total_debit"`

	CreditCount int `json:"credit_count"`
	DebitCount  int `json:"debit_count"`

	// TotalResultCount is the authoritative cross-page total from source
	// pagination metadata.
	TotalResultCount int `json:"total_result_count"`
}

// CurrencyTotals holds per-currency credit/debit rollups for a page.
type CurrencyTotals struct {
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	CreditCount int             `json:"credit_count"`
	DebitCount  int             `json:"debit_count"`
}

// UnknownCurrency buckets rows whose currency field is blank.
const UnknownCurrency = "UNKNOWN"

// Aggregate computes page statistics from the transactions of one
// statement page. totalFromMeta is the cross-page result count from the
// source's pagination metadata; when absent (<= 0) the page length is
// used instead.
//
// Amount fields sum leniently: a row whose amount does not parse
// contributes zero. The source guarantees the inactive side of each row
// is zero, so credit and debit sums run over every row regardless of the
// mode field.
func Aggregate(txs []statement.Transaction, totalFromMeta int) Stats {
	stats := Stats{
		LatestRunningBalance: decimal.Zero,
		TotalCredit:          decimal.Zero,
		TotalDebit:           decimal.Zero,
		TotalResultCount:     totalFromMeta,
	}

	if totalFromMeta <= 0 {
		stats.TotalResultCount = len(txs)
	}

	if len(txs) == 0 {
		return stats
	}

	// Only the first element is consulted for the balance.
	stats.LatestRunningBalance = money.Parse(txs[0].RunningBalance)
	stats.BalanceKnown = orderingHolds(txs)

	for _, tx := range txs {
		stats.TotalCredit = stats.TotalCredit.Add(money.Parse(tx.CreditAmount))
		stats.TotalDebit = stats.TotalDebit.Add(money.Parse(tx.DebitAmount))

		switch tx.Mode {
		case statement.ModeCredit:
			stats.CreditCount++
		case statement.ModeDebit:
			stats.DebitCount++
		}
	}

	return stats
}

// ByCurrency groups credit/debit totals and counts per currency code.
// Rows with a blank currency land in the UnknownCurrency bucket.
func ByCurrency(txs []statement.Transaction) map[string]CurrencyTotals {
	totals := make(map[string]CurrencyTotals)

	for _, tx := range txs {
		cur := tx.Currency
		if cur == "" {
			cur = UnknownCurrency
		}

		t, ok := totals[cur]
		if !ok {
			t = CurrencyTotals{TotalCredit: decimal.Zero, TotalDebit: decimal.Zero}
		}

		t.TotalCredit = t.TotalCredit.Add(money.Parse(tx.CreditAmount))
		t.TotalDebit = t.TotalDebit.Add(money.Parse(tx.DebitAmount))
		switch tx.Mode {
		case statement.ModeCredit:
			t.CreditCount++
		case statement.ModeDebit:
			t.DebitCount++
		}
		totals[cur] = t
	}

	return totals
}

// dateLayouts covers the formats the three banks have been observed using.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02-Jan-2006",
	"02/01/2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// orderingHolds checks, best effort, that transaction dates are
// non-increasing down the page. Pairs where either date fails to parse
// are skipped; the source is trusted unless an increasing pair is
// actually observed.
func orderingHolds(txs []statement.Transaction) bool {
	var prev time.Time
	havePrev := false

	for _, tx := range txs {
		t, ok := parseDate(tx.TransactionDate)
		if !ok {
			continue
		}
		if havePrev && t.After(prev) {
			return false
		}
		prev = t
		havePrev = true
	}

	return true
}
