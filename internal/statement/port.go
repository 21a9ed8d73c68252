package statement

import "context"

// Query is the parameter set forwarded to an upstream statement API.
// The upstream contract exposes a single free-text search parameter that
// doubles as the mode filter, so there is no dedicated mode field on the
// wire beyond what callers fold into Search.
type Query struct {
	Search        string
	Start         string
	End           string
	AccountNumber string
	Mode          string
	Ordering      string
	Size          int
	Page          int
}

// Source fetches one statement page from a single bank.
type Source interface {
	FetchStatement(ctx context.Context, q Query) (*Page, error)
}
