package uba

import (
	"context"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
)

// SourceAdapter adapts the UBA client to the statement.Source interface
type SourceAdapter struct {
	client *Client
}

// NewSourceAdapter creates a new adapter
func NewSourceAdapter(client *Client) *SourceAdapter {
	return &SourceAdapter{client: client}
}

var _ statement.Source = (*SourceAdapter)(nil)

// FetchStatement fetches one page and normalizes UBA rows.
func (a *SourceAdapter) FetchStatement(ctx context.Context, q statement.Query) (*statement.Page, error) {
	resp, err := a.client.GetTransactions(ctx, q)
	if err != nil {
		return nil, err
	}

	txs := make([]statement.Transaction, 0, len(resp.Transactions))
	for _, row := range resp.Transactions {
		txs = append(txs, convertRow(row))
	}

	return &statement.Page{
		Transactions: txs,
		Meta: statement.Meta{
			TotalPages:   resp.Pagination.Pages,
			TotalResults: resp.Pagination.Count,
		},
	}, nil
}

func convertRow(row TransactionRow) statement.Transaction {
	// Anything UBA does not explicitly mark as a credit is treated as a
	// debit; the raw amount fields decide the sums either way.
	mode := statement.ModeDebit
	if row.Type == "CREDIT" {
		mode = statement.ModeCredit
	}

	return statement.Transaction{
		ID:              row.Reference,
		PTID:            row.ProviderRef,
		AccountNumber:   row.AccountNumber,
		AccountName:     row.AccountName,
		TransactionDate: row.PostedAt,
		ValueDate:       row.ValueDate,
		TransactionCode: row.Channel,
		Description:     row.Remarks,
		Mode:            mode,
		DebitAmount:     row.DebitAmount,
		DebitDisplay:    row.DebitDisplay,
		CreditAmount:    row.CreditAmount,
		CreditDisplay:   row.CreditDisplay,
		RunningBalance:  row.Balance,
		BalanceDisplay:  row.BalanceDisplay,
		Currency:        row.Currency,
	}
}
