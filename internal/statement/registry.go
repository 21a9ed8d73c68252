package statement

import "sort"

// Bank identifiers for the supported upstream statement sources.
const (
	BankZenith = "zenith"
	BankUBA    = "uba"
	BankPTB    = "ptb"
)

// Registry maps bank identifiers to their statement sources.
// Registration happens once at startup; lookups are read-only after that.
type Registry struct {
	sources map[string]Source
}

// NewRegistry creates an empty source registry
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds a source for a bank ID, replacing any existing one
func (r *Registry) Register(bankID string, src Source) {
	r.sources[bankID] = src
}

// Source returns the statement source for a bank ID
func (r *Registry) Source(bankID string) (Source, error) {
	src, ok := r.sources[bankID]
	if !ok {
		return nil, ErrUnknownBank
	}
	return src, nil
}

// BankIDs returns the registered bank identifiers in stable order
func (r *Registry) BankIDs() []string {
	ids := make([]string, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
