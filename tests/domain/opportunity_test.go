package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpportunityStatus_IsValid(t *testing.T) {
	valid := []domain.OpportunityStatus{
		domain.OpportunityStatusActive,
		domain.OpportunityStatusDisabled,
		domain.OpportunityStatusExpired,
		domain.OpportunityStatusWon,
		domain.OpportunityStatusLost,
		domain.OpportunityStatusAbandoned,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}

	assert.False(t, domain.OpportunityStatus("").IsValid())
	assert.False(t, domain.OpportunityStatus("closed").IsValid())
}

func TestOpportunity_ApplyStatus_StampsDateOnce(t *testing.T) {
	opp := &domain.Opportunity{Status: domain.OpportunityStatusActive}

	first := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stamped := opp.ApplyStatus(domain.OpportunityStatusWon, first)
	assert.True(t, stamped)
	assert.Equal(t, domain.OpportunityStatusWon, opp.Status)
	require.NotNil(t, opp.WonDate)
	assert.Equal(t, first, *opp.WonDate)

	// Back to active, then won again: the original date must survive
	opp.ApplyStatus(domain.OpportunityStatusActive, first.AddDate(0, 1, 0))
	assert.Equal(t, domain.OpportunityStatusActive, opp.Status)
	require.NotNil(t, opp.WonDate)

	stamped = opp.ApplyStatus(domain.OpportunityStatusWon, first.AddDate(0, 2, 0))
	assert.False(t, stamped)
	assert.Equal(t, first, *opp.WonDate)
}

func TestOpportunity_ApplyStatus_EachStatusOwnDate(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	opp := &domain.Opportunity{Status: domain.OpportunityStatusActive}

	opp.ApplyStatus(domain.OpportunityStatusLost, now)
	require.NotNil(t, opp.LostDate)
	assert.Nil(t, opp.WonDate)
	assert.Nil(t, opp.AbandonedDate)

	opp.ApplyStatus(domain.OpportunityStatusAbandoned, now.AddDate(0, 0, 1))
	require.NotNil(t, opp.AbandonedDate)
	assert.Equal(t, now, *opp.LostDate)
}

func TestOpportunity_ApplyStatus_ActiveHasNoDate(t *testing.T) {
	opp := &domain.Opportunity{Status: domain.OpportunityStatusWon}
	stamped := opp.ApplyStatus(domain.OpportunityStatusActive, time.Now().UTC())
	assert.False(t, stamped)
	assert.Equal(t, domain.OpportunityStatusActive, opp.Status)
}

func TestOpportunity_ApplyApproval(t *testing.T) {
	opp := &domain.Opportunity{Status: domain.OpportunityStatusActive}
	approver := uuid.New()
	first := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	stamped := opp.ApplyApproval(approver, first)
	assert.True(t, stamped)
	assert.True(t, opp.Approved)
	require.NotNil(t, opp.ApprovalUserID)
	assert.Equal(t, approver, *opp.ApprovalUserID)
	require.NotNil(t, opp.ApprovedDate)
	assert.Equal(t, first, *opp.ApprovedDate)

	// A re-approval by someone else moves neither the user nor the date
	other := uuid.New()
	stamped = opp.ApplyApproval(other, first.AddDate(0, 3, 0))
	assert.False(t, stamped)
	assert.Equal(t, approver, *opp.ApprovalUserID)
	assert.Equal(t, first, *opp.ApprovedDate)
}

func TestPeriodPerformance_CalendarMonth(t *testing.T) {
	tests := []struct {
		name       string
		period     int
		startMonth int
		year       int
		wantMonth  time.Month
	}{
		{"january start period 1", 1, 1, 2026, time.January},
		{"january start period 12", 12, 1, 2026, time.December},
		{"july start period 1", 1, 7, 2026, time.July},
		{"july start period 6", 6, 7, 2026, time.December},
		{"july start period 7 wraps", 7, 7, 2026, time.January},
		{"march start period 11", 11, 3, 2026, time.January},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.PeriodPerformance{Period: tt.period}
			got := p.CalendarMonth(tt.startMonth, tt.year)
			assert.Equal(t, tt.wantMonth, got.Month())
			assert.Equal(t, tt.year, got.Year())
			assert.Equal(t, 1, got.Day())
		})
	}
}
