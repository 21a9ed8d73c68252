package ptb

// RecordsResponse is the top-level PremiumTrust statement response
type RecordsResponse struct {
	Data RecordsData `json:"data"`
}

// RecordsData wraps the records with PremiumTrust's page counters
type RecordsData struct {
	Records     []Record `json:"records"`
	PageCount   int      `json:"page_count"`
	RecordCount int      `json:"record_count"`
}

// Record is a single entry as PremiumTrust reports it. There is one
// signed amount per record plus a direction flag; debits carry a
// negative amount.
type Record struct {
	TxnID         string `json:"txn_id"`
	ProviderTxnID string `json:"provider_txn_id"`
	AccountNo     string `json:"account_no"`
	AccountName   string `json:"account_name"`
	TxnDate       string `json:"txn_date"`
	ValueDate     string `json:"value_date"`
	TxnCode       string `json:"txn_code"`
	Narrative     string `json:"narrative"`
	Direction     string `json:"direction"` // "CR" or "DR"
	Amount        string `json:"amount"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
}

// IsCredit reports whether the record is a credit entry.
func (r Record) IsCredit() bool {
	return r.Direction == "CR"
}
