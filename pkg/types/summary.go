package types

// Summary aggregates per-outcome counts for a completed run.
type Summary struct {
	Infected   int `json:"infected"`
	Clean      int `json:"clean"`
	Ineligible int `json:"ineligible"`
	Errors     int `json:"errors"`
	Total      int `json:"total"`
}

// Summarize computes a Summary from a slice of records.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Outcome {
		case OutcomeInfected:
			s.Infected++
		case OutcomeClean:
			s.Clean++
		case OutcomeIneligible:
			s.Ineligible++
		case OutcomeError:
			s.Errors++
		}
		s.Total++
	}
	return s
}
