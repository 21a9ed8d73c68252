package aggregate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/aggregate"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func samplePage() []statement.Transaction {
	return []statement.Transaction{
		{
			Mode:            statement.ModeCredit,
			CreditAmount:    "100",
			RunningBalance:  "500",
			TransactionDate: "2026-03-03",
			Currency:        "NGN",
		},
		{
			Mode:            statement.ModeDebit,
			DebitAmount:     "40",
			RunningBalance:  "400",
			TransactionDate: "2026-03-02",
			Currency:        "NGN",
		},
		{
			Mode:            statement.ModeCredit,
			CreditAmount:    "20",
			RunningBalance:  "440",
			TransactionDate: "2026-03-01",
			Currency:        "NGN",
		},
	}
}

func TestAggregate_Scenario(t *testing.T) {
	stats := aggregate.Aggregate(samplePage(), 3)

	assert.True(t, stats.LatestRunningBalance.Equal(dec(t, "500")))
	assert.True(t, stats.BalanceKnown)
	assert.True(t, stats.TotalCredit.Equal(dec(t, "120")))
	assert.True(t, stats.TotalDebit.Equal(dec(t, "40")))
	assert.Equal(t, 2, stats.CreditCount)
	assert.Equal(t, 1, stats.DebitCount)
	assert.Equal(t, 3, stats.TotalResultCount)
}

func TestAggregate_Purity(t *testing.T) {
	txs := samplePage()

	first := aggregate.Aggregate(txs, 42)
	second := aggregate.Aggregate(txs, 42)

	assert.Equal(t, first, second)
}

func TestAggregate_EmptyInput(t *testing.T) {
	stats := aggregate.Aggregate(nil, 17)

	assert.True(t, stats.LatestRunningBalance.IsZero())
	assert.False(t, stats.BalanceKnown)
	assert.True(t, stats.TotalCredit.IsZero())
	assert.True(t, stats.TotalDebit.IsZero())
	assert.Equal(t, 0, stats.CreditCount)
	assert.Equal(t, 0, stats.DebitCount)
	assert.Equal(t, 17, stats.TotalResultCount)
}

func TestAggregate_TotalCountFallback(t *testing.T) {
	stats := aggregate.Aggregate(samplePage(), 0)
	assert.Equal(t, 3, stats.TotalResultCount)

	stats = aggregate.Aggregate(samplePage(), -1)
	assert.Equal(t, 3, stats.TotalResultCount)
}

func TestAggregate_CreditDebitExclusivity(t *testing.T) {
	txs := samplePage()
	stats := aggregate.Aggregate(txs, len(txs))

	// Each row has exactly one nonzero side, so credit+debit must equal
	// the sum of every nonzero amount on the page.
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.Mode == statement.ModeCredit {
			sum = sum.Add(dec(t, tx.CreditAmount))
		} else {
			sum = sum.Add(dec(t, tx.DebitAmount))
		}
	}

	assert.True(t, stats.TotalCredit.Add(stats.TotalDebit).Equal(sum))
}

func TestAggregate_MalformedAmount(t *testing.T) {
	txs := []statement.Transaction{
		{Mode: statement.ModeCredit, CreditAmount: "abc", RunningBalance: "100"},
		{Mode: statement.ModeCredit, CreditAmount: "50", RunningBalance: "100"},
	}

	stats := aggregate.Aggregate(txs, 2)

	// The malformed row contributes zero, never NaN or an error.
	assert.True(t, stats.TotalCredit.Equal(dec(t, "50")))
	assert.Equal(t, 2, stats.CreditCount)
}

func TestAggregate_MalformedBalance(t *testing.T) {
	txs := []statement.Transaction{
		{Mode: statement.ModeDebit, DebitAmount: "10", RunningBalance: "n/a"},
	}

	stats := aggregate.Aggregate(txs, 1)
	assert.True(t, stats.LatestRunningBalance.IsZero())
}

func TestAggregate_OrderingViolationFlagsBalance(t *testing.T) {
	txs := []statement.Transaction{
		{Mode: statement.ModeCredit, CreditAmount: "10", RunningBalance: "300", TransactionDate: "2026-03-01"},
		{Mode: statement.ModeCredit, CreditAmount: "10", RunningBalance: "290", TransactionDate: "2026-03-05"},
	}

	stats := aggregate.Aggregate(txs, 2)

	// Balance is still reported from the first row but flagged untrusted.
	assert.True(t, stats.LatestRunningBalance.Equal(dec(t, "300")))
	assert.False(t, stats.BalanceKnown)
}

func TestAggregate_UnparseableDatesTrusted(t *testing.T) {
	txs := []statement.Transaction{
		{Mode: statement.ModeCredit, CreditAmount: "10", RunningBalance: "300", TransactionDate: "???"},
		{Mode: statement.ModeCredit, CreditAmount: "10", RunningBalance: "290", TransactionDate: ""},
	}

	stats := aggregate.Aggregate(txs, 2)
	assert.True(t, stats.BalanceKnown)
}

func TestAggregate_FormattedAmountsIgnored(t *testing.T) {
	// Only the raw fields feed the sums; display companions are opaque.
	txs := []statement.Transaction{
		{
			Mode:          statement.ModeCredit,
			CreditAmount:  "1250.50",
			CreditDisplay: "₦1,250.50",
		},
	}

	stats := aggregate.Aggregate(txs, 1)
	assert.True(t, stats.TotalCredit.Equal(dec(t, "1250.50")))
}

func TestByCurrency(t *testing.T) {
	txs := append(samplePage(), statement.Transaction{
		Mode:         statement.ModeDebit,
		DebitAmount:  "5",
		Currency:     "USD",
	}, statement.Transaction{
		Mode:         statement.ModeCredit,
		CreditAmount: "7",
		Currency:     "",
	})

	totals := aggregate.ByCurrency(txs)
	require.Len(t, totals, 3)

	ngn := totals["NGN"]
	assert.True(t, ngn.TotalCredit.Equal(dec(t, "120")))
	assert.True(t, ngn.TotalDebit.Equal(dec(t, "40")))
	assert.Equal(t, 2, ngn.CreditCount)
	assert.Equal(t, 1, ngn.DebitCount)

	usd := totals["USD"]
	assert.True(t, usd.TotalDebit.Equal(dec(t, "5")))
	assert.Equal(t, 1, usd.DebitCount)

	unknown := totals[aggregate.UnknownCurrency]
	assert.True(t, unknown.TotalCredit.Equal(dec(t, "7")))
}

func TestByCurrency_Empty(t *testing.T) {
	totals := aggregate.ByCurrency(nil)
	assert.Empty(t, totals)
}
