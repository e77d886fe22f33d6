package batch

import (
	"github.com/jmylchreest/silcolour/internal/recolour"
)

// Summary tallies the outcomes of a batch.
type Summary struct {
	// Total is the number of files dispatched.
	Total int

	// Failed counts jobs stopped by an error rather than an outcome code.
	Failed int

	// Outcomes holds one entry per file, in input order.
	Outcomes []Outcome

	counts map[recolour.Result]int
}

func newSummary(total int) *Summary {
	return &Summary{
		Total:    total,
		Outcomes: make([]Outcome, total),
		counts:   make(map[recolour.Result]int, len(recolour.Codes())),
	}
}

func (s *Summary) record(index int, o Outcome) {
	s.Outcomes[index] = o
	if o.Err != nil {
		s.Failed++
		return
	}
	s.counts[o.Result]++
}

// Count returns the number of files that ended with result r.
func (s *Summary) Count(r recolour.Result) int {
	if r == recolour.ResultFailed {
		return s.Failed
	}
	return s.counts[r]
}

// Succeeded returns the number of files written.
func (s *Summary) Succeeded() int {
	return s.counts[recolour.ResultSuccess]
}

// AllSucceeded reports whether every file was written.
func (s *Summary) AllSucceeded() bool {
	return s.Succeeded() == s.Total
}

// Codes returns the count of each outcome code, indexed by code value.
func (s *Summary) Codes() map[recolour.Result]int {
	out := make(map[recolour.Result]int, len(recolour.Codes()))
	for _, r := range recolour.Codes() {
		out[r] = s.counts[r]
	}
	return out
}
