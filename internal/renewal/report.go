package renewal

import (
	"fmt"

	"github.com/google/uuid"
)

// Result is the outcome for a single PO line.
type Result struct {
	POLineID string
	Err      error
}

// Report collects per-record outcomes for one bulk run.
type Report struct {
	// RunID correlates console output with the debug log files.
	RunID   string
	Results []Result
}

// NewReport creates an empty report with a fresh run ID.
func NewReport(capacity int) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, 0, capacity),
	}
}

// Add records the outcome for one PO line.
func (r *Report) Add(poLineID string, err error) {
	r.Results = append(r.Results, Result{POLineID: poLineID, Err: err})
}

// Failed returns the number of records that could not be updated.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Failures returns only the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Summary returns a one-line human-readable summary.
func (r *Report) Summary() string {
	total := len(r.Results)
	failed := r.Failed()
	return fmt.Sprintf("updated %d/%d PO lines (%d failed) run=%s", total-failed, total, failed, r.RunID)
}
