// Package stats derives dashboard counters from already-fetched
// slices. Everything here is pure: no I/O, inputs are never mutated.
package stats

import (
	"fmt"
	"time"

	"github.com/doutly/doutly-service/internal/domain"
)

// LeadStats summarizes a list of leads.
type LeadStats struct {
	Total          int                       `json:"total"`
	ByStatus       map[domain.LeadStatus]int `json:"by_status"`
	Bought         int                       `json:"bought"`
	ConversionRate string                    `json:"conversion_rate"`
}

// DoubtStats summarizes a list of doubts.
type DoubtStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Assigned int `json:"assigned"`
	Resolved int `json:"resolved"`
}

// Snapshot bundles both summaries for the dashboard endpoint.
type Snapshot struct {
	Leads       LeadStats  `json:"leads"`
	Doubts      DoubtStats `json:"doubts"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// ComputeLeadStats counts leads per status and derives the conversion
// rate as bought/total*100 with one decimal. An empty input yields the
// string "0", never a division by zero.
func ComputeLeadStats(leads []domain.Lead) LeadStats {
	result := LeadStats{
		Total:    len(leads),
		ByStatus: make(map[domain.LeadStatus]int),
	}
	for i := range leads {
		result.ByStatus[leads[i].Status]++
		if leads[i].Status == domain.LeadStatusBought {
			result.Bought++
		}
	}
	if result.Total == 0 {
		result.ConversionRate = "0"
		return result
	}
	result.ConversionRate = fmt.Sprintf("%.1f", float64(result.Bought)/float64(result.Total)*100)
	return result
}

// ComputeDoubtStats counts doubts per lifecycle state.
func ComputeDoubtStats(doubts []domain.Doubt) DoubtStats {
	result := DoubtStats{Total: len(doubts)}
	for i := range doubts {
		switch doubts[i].Status {
		case domain.DoubtStatusPending:
			result.Pending++
		case domain.DoubtStatusAssigned:
			result.Assigned++
		case domain.DoubtStatusResolved:
			result.Resolved++
		}
	}
	return result
}
