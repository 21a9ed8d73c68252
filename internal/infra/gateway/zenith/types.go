package zenith

// StatementResponse is the top-level Zenith statement API response
type StatementResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    []StatementRow `json:"data"`
	Meta    ResponseMeta   `json:"meta"`
}

// ResponseMeta carries Zenith's pagination counters
type ResponseMeta struct {
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// StatementRow is a single transaction as Zenith reports it. Amounts
// come as display-formatted strings with comma grouping ("1,250.00");
// DrCr is "D" for debits and "C" for credits.
type StatementRow struct {
	ID            string `json:"id"`
	PTID          string `json:"ptid"`
	AccountNumber string `json:"acct_no"`
	AccountName   string `json:"acct_name"`
	TrnDate       string `json:"trn_date"`
	ValDate       string `json:"val_date"`
	TrnCode       string `json:"trn_code"`
	Narration     string `json:"narration"`
	DrCr          string `json:"drcr"`
	Debit         string `json:"debit"`
	Credit        string `json:"credit"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
}

// IsCredit reports whether the row is a credit entry.
func (r StatementRow) IsCredit() bool {
	return r.DrCr == "C"
}
