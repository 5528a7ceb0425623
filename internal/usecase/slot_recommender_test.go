package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-placement-backend/internal/domain"
	"go-placement-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

// stubChecker flags slots as conflicting based on a predicate
type stubChecker struct {
	busy       func(start, end time.Time) bool
	incomplete bool
}

func (s stubChecker) CheckConflicts(_ context.Context, candidate *domain.Interview, _ string) *domain.ConflictReport {
	if s.busy != nil && s.busy(candidate.StartTime, candidate.EndTime) {
		return domain.NewConflictReport([]domain.Conflict{{
			Type:     domain.ConflictStudentOverlap,
			Severity: domain.SeverityHigh,
		}}, s.incomplete)
	}
	return domain.NewConflictReport(nil, s.incomplete)
}

func TestSlotRecommender(t *testing.T) {
	ctx := context.Background()
	rules := domain.DefaultBusinessRules()

	t.Run("Should rank the slot nearest the requested morning time first", func(t *testing.T) {
		r := usecase.NewSlotRecommender(stubChecker{}, nil, 0)
		candidate := onlineCandidate() // Monday 10:00

		suggestions := r.Suggest(ctx, candidate, rules, 60, 2, 3)

		assert.Len(t, suggestions, 3)
		assert.Equal(t, monday(10, 0), suggestions[0].StartTime)
		for i := 1; i < len(suggestions); i++ {
			assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
		}
	})

	t.Run("Should only return slots that re-validate as conflict-free", func(t *testing.T) {
		// Everything between 09:00 and 12:00 is booked solid
		checker := stubChecker{busy: func(start, _ time.Time) bool {
			return start.Hour() < 12
		}}
		r := usecase.NewSlotRecommender(checker, nil, 0)

		suggestions := r.Suggest(ctx, onlineCandidate(), rules, 60, 1, 5)

		assert.NotEmpty(t, suggestions)
		for _, s := range suggestions {
			assert.GreaterOrEqual(t, s.StartTime.Hour(), 12)
			report := checker.CheckConflicts(ctx, &domain.Interview{StartTime: s.StartTime, EndTime: s.EndTime}, "")
			assert.False(t, report.HasConflicts)
		}
	})

	t.Run("Should skip weekends entirely under default rules", func(t *testing.T) {
		r := usecase.NewSlotRecommender(stubChecker{}, nil, 0)
		candidate := onlineCandidate()
		candidate.StartTime = saturday(10, 0)
		candidate.EndTime = saturday(11, 0)

		// Horizon covers only Saturday and Sunday
		suggestions := r.Suggest(ctx, candidate, rules, 60, 2, 5)
		assert.Empty(t, suggestions)
	})

	t.Run("Should bound the search by the probe cap", func(t *testing.T) {
		calls := 0
		checker := stubChecker{busy: func(_, _ time.Time) bool {
			calls++
			return false
		}}
		r := usecase.NewSlotRecommender(checker, nil, 4)

		suggestions := r.Suggest(ctx, onlineCandidate(), rules, 60, 7, 100)

		assert.Len(t, suggestions, 4)
		assert.Equal(t, 4, calls)
	})

	t.Run("Should drop slots whose conflict check came back incomplete", func(t *testing.T) {
		r := usecase.NewSlotRecommender(stubChecker{incomplete: true}, nil, 0)

		suggestions := r.Suggest(ctx, onlineCandidate(), rules, 60, 2, 5)
		assert.Empty(t, suggestions)
	})

	t.Run("Should return nothing for non-positive inputs", func(t *testing.T) {
		r := usecase.NewSlotRecommender(stubChecker{}, nil, 0)
		assert.Empty(t, r.Suggest(ctx, onlineCandidate(), rules, 0, 2, 5))
		assert.Empty(t, r.Suggest(ctx, onlineCandidate(), rules, 60, 0, 5))
		assert.Empty(t, r.Suggest(ctx, onlineCandidate(), rules, 60, 2, 0))
	})
}

func TestHeuristicScorer(t *testing.T) {
	scorer := usecase.HeuristicScorer{}
	candidate := onlineCandidate() // Monday 10:00

	t.Run("Should prefer mornings over afternoons at equal distance", func(t *testing.T) {
		// 09:00 and 11:00 are both one hour from the request; 16:00 gets
		// neither time-of-day bonus
		morning := scorer.Score(monday(9, 0), candidate)
		lateAfternoon := scorer.Score(monday(16, 0), candidate)
		assert.Greater(t, morning, lateAfternoon)
	})

	t.Run("Should penalize distance from the requested slot", func(t *testing.T) {
		near := scorer.Score(monday(11, 0), candidate)
		far := scorer.Score(monday(11, 0).AddDate(0, 0, 1), candidate) // Tuesday 11:00
		assert.Greater(t, near, far)
	})

	t.Run("Should cap the distance penalty", func(t *testing.T) {
		farOut := scorer.Score(monday(10, 0).AddDate(0, 0, 30), candidate)
		fartherOut := scorer.Score(monday(10, 0).AddDate(0, 0, 60), candidate)
		assert.Equal(t, farOut, fartherOut)
	})
}
