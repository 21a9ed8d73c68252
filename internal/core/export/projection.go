// Package export maps a statement page into a flat tabular shape for
// file download. The projection covers the currently loaded page only;
// exporting the full history is out of scope.
package export

import (
	"fmt"
	"time"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
)

// Row is one exported transaction. Column order is part of the output
// contract: sixteen fields, raw and formatted amounts side by side.
type Row struct {
	ID               string
	PTID             string
	AccountNumber    string
	AccountName      string
	TransactionDate  string
	ValueDate        string
	TransactionCode  string
	Description      string
	Mode             string
	DebitAmount      string
	DebitFormatted   string
	CreditAmount     string
	CreditFormatted  string
	BalanceRaw       string
	BalanceFormatted string
	Currency         string
}

// ColumnCount is the fixed number of export columns.
const ColumnCount = 16

// Headers returns the sixteen column labels in output order.
func Headers() []string {
	return []string{
		"Transaction ID",
		"Provider ID",
		"Account Number",
		"Account Name",
		"Transaction Date",
		"Value Date",
		"Transaction Code",
		"Description",
		"Mode",
		"Debit Amount",
		"Debit Amount (Formatted)",
		"Credit Amount",
		"Credit Amount (Formatted)",
		"Running Balance",
		"Running Balance (Formatted)",
		"Currency",
	}
}

// Values returns the row's fields in the same order as Headers.
func (r Row) Values() []string {
	return []string{
		r.ID,
		r.PTID,
		r.AccountNumber,
		r.AccountName,
		r.TransactionDate,
		r.ValueDate,
		r.TransactionCode,
		r.Description,
		r.Mode,
		r.DebitAmount,
		r.DebitFormatted,
		r.CreditAmount,
		r.CreditFormatted,
		r.BalanceRaw,
		r.BalanceFormatted,
		r.Currency,
	}
}

// Project maps each transaction to a Row, order preserving and 1:1.
// Formatted display strings pass through from the source untouched.
func Project(txs []statement.Transaction) []Row {
	rows := make([]Row, len(txs))
	for i, tx := range txs {
		rows[i] = Row{
			ID:               tx.ID,
			PTID:             tx.PTID,
			AccountNumber:    tx.AccountNumber,
			AccountName:      tx.AccountName,
			TransactionDate:  tx.TransactionDate,
			ValueDate:        tx.ValueDate,
			TransactionCode:  tx.TransactionCode,
			Description:      tx.Description,
			Mode:             string(tx.Mode),
			DebitAmount:      tx.DebitAmount,
			DebitFormatted:   tx.DebitDisplay,
			CreditAmount:     tx.CreditAmount,
			CreditFormatted:  tx.CreditDisplay,
			BalanceRaw:       tx.RunningBalance,
			BalanceFormatted: tx.BalanceDisplay,
			Currency:         tx.Currency,
		}
	}
	return rows
}

// Filename builds the download name, embedding the bank identifier and
// the export date so repeated exports on the same day stay tellable
// apart from other banks' files.
func Filename(bankID string, now time.Time) string {
	if bankID == "" {
		bankID = "statement"
	}
	return fmt.Sprintf("%s-statement-%s.csv", bankID, now.Format("2006-01-02"))
}
