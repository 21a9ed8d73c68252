package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/export"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
)

func sampleTx() statement.Transaction {
	return statement.Transaction{
		ID:              "tx-1",
		PTID:            "PT-001",
		AccountNumber:   "0123456789",
		AccountName:     "ACME Holdings",
		TransactionDate: "2026-03-03",
		ValueDate:       "2026-03-04",
		TransactionCode: "NIP",
		Description:     "Transfer from ACME",
		Mode:            statement.ModeCredit,
		CreditAmount:    "1250.50",
		CreditDisplay:   "₦1,250.50",
		DebitAmount:     "0",
		DebitDisplay:    "₦0.00",
		RunningBalance:  "5000.00",
		BalanceDisplay:  "₦5,000.00",
		Currency:        "NGN",
	}
}

func TestHeaders_SixteenColumns(t *testing.T) {
	headers := export.Headers()
	require.Len(t, headers, export.ColumnCount)

	// Order is part of the output contract.
	assert.Equal(t, "Transaction ID", headers[0])
	assert.Equal(t, "Provider ID", headers[1])
	assert.Equal(t, "Mode", headers[8])
	assert.Equal(t, "Currency", headers[15])
}

func TestProject_RowCountAndOrder(t *testing.T) {
	txs := []statement.Transaction{
		sampleTx(),
		{ID: "tx-2", Mode: statement.ModeDebit, DebitAmount: "40"},
		{ID: "tx-3", Mode: statement.ModeCredit, CreditAmount: "20"},
	}

	rows := export.Project(txs)

	require.Len(t, rows, len(txs))
	assert.Equal(t, "tx-1", rows[0].ID)
	assert.Equal(t, "tx-2", rows[1].ID)
	assert.Equal(t, "tx-3", rows[2].ID)
}

func TestProject_Empty(t *testing.T) {
	assert.Empty(t, export.Project(nil))
	assert.Empty(t, export.Project([]statement.Transaction{}))
}

func TestRow_ValuesMatchHeaders(t *testing.T) {
	rows := export.Project([]statement.Transaction{sampleTx()})
	require.Len(t, rows, 1)

	values := rows[0].Values()
	require.Len(t, values, export.ColumnCount)

	assert.Equal(t, "tx-1", values[0])
	assert.Equal(t, "PT-001", values[1])
	assert.Equal(t, "0123456789", values[2])
	assert.Equal(t, "ACME Holdings", values[3])
	assert.Equal(t, "2026-03-03", values[4])
	assert.Equal(t, "2026-03-04", values[5])
	assert.Equal(t, "NIP", values[6])
	assert.Equal(t, "Transfer from ACME", values[7])
	assert.Equal(t, "CREDIT", values[8])
	assert.Equal(t, "0", values[9])
	assert.Equal(t, "₦0.00", values[10])
	assert.Equal(t, "1250.50", values[11])
	assert.Equal(t, "₦1,250.50", values[12])
	assert.Equal(t, "5000.00", values[13])
	assert.Equal(t, "₦5,000.00", values[14])
	assert.Equal(t, "NGN", values[15])
}

func TestProject_FormattedStringsPassThrough(t *testing.T) {
	tx := sampleTx()
	// Deliberately inconsistent raw vs display: the projection must not
	// re-derive display strings from the raw amounts.
	tx.CreditDisplay = "₦9,999.99"

	rows := export.Project([]statement.Transaction{tx})
	assert.Equal(t, "₦9,999.99", rows[0].CreditFormatted)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := export.Project([]statement.Transaction{sampleTx()})

	require.NoError(t, export.WriteCSV(&buf, rows))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, export.Headers(), records[0])
	assert.Equal(t, rows[0].Values(), records[1])
}

func TestWriteCSV_EmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, export.Headers(), records[0])
}

func TestFilename(t *testing.T) {
	date := time.Date(2026, 3, 3, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "zenith-statement-2026-03-03.csv", export.Filename("zenith", date))
	assert.Equal(t, "statement-statement-2026-03-03.csv", export.Filename("", date))
}
