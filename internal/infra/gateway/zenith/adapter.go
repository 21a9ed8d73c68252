package zenith

import (
	"context"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
)

// SourceAdapter adapts the Zenith client to the statement.Source interface
type SourceAdapter struct {
	client *Client
}

// NewSourceAdapter creates a new adapter
func NewSourceAdapter(client *Client) *SourceAdapter {
	return &SourceAdapter{client: client}
}

// Ensure adapter implements the interface
var _ statement.Source = (*SourceAdapter)(nil)

// FetchStatement fetches one page and normalizes Zenith rows.
func (a *SourceAdapter) FetchStatement(ctx context.Context, q statement.Query) (*statement.Page, error) {
	resp, err := a.client.GetStatement(ctx, q)
	if err != nil {
		return nil, err
	}

	txs := make([]statement.Transaction, 0, len(resp.Data))
	for _, row := range resp.Data {
		txs = append(txs, convertRow(row))
	}

	return &statement.Page{
		Transactions: txs,
		Meta: statement.Meta{
			TotalPages:   resp.Meta.TotalPages,
			TotalResults: resp.Meta.TotalResults,
		},
	}, nil
}

// convertRow maps one Zenith row onto the normalized transaction shape.
// Zenith sends a single display-formatted string per amount, so the raw
// and display fields carry the same value; downstream parsing is lenient
// about the comma grouping.
func convertRow(row StatementRow) statement.Transaction {
	mode := statement.ModeDebit
	if row.IsCredit() {
		mode = statement.ModeCredit
	}

	return statement.Transaction{
		ID:              row.ID,
		PTID:            row.PTID,
		AccountNumber:   row.AccountNumber,
		AccountName:     row.AccountName,
		TransactionDate: row.TrnDate,
		ValueDate:       row.ValDate,
		TransactionCode: row.TrnCode,
		Description:     row.Narration,
		Mode:            mode,
		DebitAmount:     row.Debit,
		DebitDisplay:    row.Debit,
		CreditAmount:    row.Credit,
		CreditDisplay:   row.Credit,
		RunningBalance:  row.Balance,
		BalanceDisplay:  row.Balance,
		Currency:        row.Currency,
	}
}
