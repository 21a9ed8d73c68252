package ptb

import (
	"context"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/money"
)

// SourceAdapter adapts the PremiumTrust client to the statement.Source
// interface. PremiumTrust is the only upstream without pre-formatted
// display amounts, so the adapter derives them here; downstream code
// treats display strings as authoritative and never re-formats.
type SourceAdapter struct {
	client *Client
}

// NewSourceAdapter creates a new adapter
func NewSourceAdapter(client *Client) *SourceAdapter {
	return &SourceAdapter{client: client}
}

var _ statement.Source = (*SourceAdapter)(nil)

// FetchStatement fetches one page and normalizes PremiumTrust records.
func (a *SourceAdapter) FetchStatement(ctx context.Context, q statement.Query) (*statement.Page, error) {
	resp, err := a.client.GetRecords(ctx, q)
	if err != nil {
		return nil, err
	}

	txs := make([]statement.Transaction, 0, len(resp.Data.Records))
	for _, rec := range resp.Data.Records {
		txs = append(txs, convertRecord(rec))
	}

	return &statement.Page{
		Transactions: txs,
		Meta: statement.Meta{
			TotalPages:   resp.Data.PageCount,
			TotalResults: resp.Data.RecordCount,
		},
	}, nil
}

func convertRecord(rec Record) statement.Transaction {
	tx := statement.Transaction{
		ID:              rec.TxnID,
		PTID:            rec.ProviderTxnID,
		AccountNumber:   rec.AccountNo,
		AccountName:     rec.AccountName,
		TransactionDate: rec.TxnDate,
		ValueDate:       rec.ValueDate,
		TransactionCode: rec.TxnCode,
		Description:     rec.Narrative,
		Currency:        rec.Currency,
	}

	// The signed amount lands in exactly one column. An unparseable
	// amount passes through verbatim so the row still renders; it sums
	// as zero downstream.
	amount, amountOK := money.ParseStrict(rec.Amount)
	raw := rec.Amount
	display := rec.Amount
	if amountOK {
		raw = amount.Abs().String()
		display = money.Format(amount.Abs())
	}

	if rec.IsCredit() {
		tx.Mode = statement.ModeCredit
		tx.CreditAmount = raw
		tx.CreditDisplay = display
	} else {
		tx.Mode = statement.ModeDebit
		tx.DebitAmount = raw
		tx.DebitDisplay = display
	}

	tx.RunningBalance = rec.Balance
	if bal, ok := money.ParseStrict(rec.Balance); ok {
		tx.BalanceDisplay = money.Format(bal)
	} else {
		tx.BalanceDisplay = rec.Balance
	}

	return tx
}
