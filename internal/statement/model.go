package statement

// Mode classifies a transaction as a credit or a debit.
type Mode string

const (
	ModeCredit Mode = "CREDIT"
	ModeDebit  Mode = "DEBIT"
)

// Transaction is a single statement row as reported by an upstream bank.
// Amount fields stay as source strings: the raw fields feed computation
// (leniently parsed) and the formatted companions are authoritative display
// strings that must never be re-derived, to avoid rounding drift against
// the bank's own rendering.
type Transaction struct {
	ID            string `json:"id"`
	PTID          string `json:"ptid"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`

	TransactionDate string `json:"transaction_date"`
	ValueDate       string `json:"value_date"`
	TransactionCode string `json:"transaction_code"`
	Description     string `json:"description"`

	Mode Mode `json:"mode"`

	DebitAmount    string `json:"debit_amount"`
	DebitDisplay   string `json:"debit_display"`
	CreditAmount   string `json:"credit_amount"`
	CreditDisplay  string `json:"credit_display"`
	RunningBalance string `json:"running_balance"`
	BalanceDisplay string `json:"balance_display"`

	Currency string `json:"currency"`
}

// Meta is the pagination metadata accompanying a statement page.
// TotalResults is authoritative across all pages; len(Transactions) is not.
type Meta struct {
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// Page is one page of a paginated statement for a single bank query.
type Page struct {
	Transactions []Transaction `json:"transactions"`
	Meta         Meta          `json:"meta"`
}
