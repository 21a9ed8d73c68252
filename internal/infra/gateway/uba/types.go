package uba

// TransactionsResponse is the top-level UBA transactions response
type TransactionsResponse struct {
	Transactions []TransactionRow `json:"transactions"`
	Pagination   Pagination       `json:"pagination"`
}

// Pagination carries UBA's page counters
type Pagination struct {
	Pages int `json:"pages"`
	Count int `json:"count"`
}

// TransactionRow is a single entry as UBA reports it. UBA sends each
// amount twice: a plain decimal string for computation and a separate
// display string the bank already formatted.
type TransactionRow struct {
	Reference     string `json:"reference"`
	ProviderRef   string `json:"provider_ref"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	PostedAt      string `json:"posted_at"`
	ValueDate     string `json:"value_date"`
	Channel       string `json:"channel"`
	Remarks       string `json:"remarks"`
	Type          string `json:"type"` // "CREDIT" or "DEBIT"

	DebitAmount    string `json:"debit_amount"`
	DebitDisplay   string `json:"debit_amount_display"`
	CreditAmount   string `json:"credit_amount"`
	CreditDisplay  string `json:"credit_amount_display"`
	Balance        string `json:"running_balance"`
	BalanceDisplay string `json:"running_balance_display"`

	Currency string `json:"currency_code"`
}
