package pipeline

// Summary aggregates the results of a batch run.
type Summary struct {
	Methods      int `json:"methods"`
	Failed       int `json:"failed"`
	Diags        int `json:"diags"`
	Instructions int `json:"instructions"`
	Blocks       int `json:"blocks"`
	Tries        int `json:"tries"`
	Handlers     int `json:"handlers"`
	Filters      int `json:"filters"`
	MaxDepth     int `json:"max_depth"`
}

// Summarize counts results. Failed methods contribute only to Failed and
// Diags.
func Summarize(results []Result) Summary {
	s := Summary{Methods: len(results)}
	for _, r := range results {
		s.Diags += len(r.Diags)
		if r.Err != nil || r.Tree == nil {
			s.Failed++
			continue
		}
		st := r.Tree.Stats()
		s.Instructions += st.Instructions
		s.Blocks += st.Blocks
		s.Tries += st.Tries
		s.Handlers += st.Handlers
		s.Filters += st.Filters
		s.MaxDepth = max(s.MaxDepth, st.MaxDepth)
	}
	return s
}
