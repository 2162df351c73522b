package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doutly/doutly-service/internal/domain"
)

func TestComputeLeadStatsEmpty(t *testing.T) {
	result := ComputeLeadStats(nil)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, "0", result.ConversionRate)
}

func TestComputeLeadStatsConversionRate(t *testing.T) {
	leads := []domain.Lead{
		{Status: domain.LeadStatusNew},
		{Status: domain.LeadStatusBought},
		{Status: domain.LeadStatusInterested},
		{Status: domain.LeadStatusBought},
	}
	result := ComputeLeadStats(leads)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Bought)
	assert.Equal(t, "50.0", result.ConversionRate)
	assert.Equal(t, 1, result.ByStatus[domain.LeadStatusNew])
	assert.Equal(t, 2, result.ByStatus[domain.LeadStatusBought])
}

func TestComputeLeadStatsAllBought(t *testing.T) {
	leads := []domain.Lead{
		{Status: domain.LeadStatusBought},
		{Status: domain.LeadStatusBought},
	}
	assert.Equal(t, "100.0", ComputeLeadStats(leads).ConversionRate)
}

func TestComputeDoubtStats(t *testing.T) {
	doubts := []domain.Doubt{
		{Status: domain.DoubtStatusPending},
		{Status: domain.DoubtStatusAssigned},
		{Status: domain.DoubtStatusAssigned},
		{Status: domain.DoubtStatusResolved},
	}
	result := ComputeDoubtStats(doubts)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 1, result.Pending)
	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, 1, result.Resolved)
}
