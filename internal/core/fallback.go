package core

// FallbackResolver is the deterministic local reply path: classify the
// message against the ordered rule list and render the matching template.
// It never fails and always returns a non-empty string.
type FallbackResolver struct {
	table *ReplyTable
}

func NewFallbackResolver(table *ReplyTable) *FallbackResolver {
	return &FallbackResolver{table: table}
}

func (r *FallbackResolver) Respond(text string) string {
	return r.table.Render(Classify(text))
}
