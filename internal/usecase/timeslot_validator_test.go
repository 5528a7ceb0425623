package usecase_test

import (
	"testing"
	"time"

	"go-placement-backend/internal/domain"
	"go-placement-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

// Monday 2030-01-07; the 5th/6th are the preceding weekend
func monday(hour, min int) time.Time {
	return time.Date(2030, 1, 7, hour, min, 0, 0, time.UTC)
}

func saturday(hour, min int) time.Time {
	return time.Date(2030, 1, 5, hour, min, 0, 0, time.UTC)
}

func conflictTypes(conflicts []domain.Conflict) []domain.ConflictType {
	types := make([]domain.ConflictType, 0, len(conflicts))
	for _, c := range conflicts {
		types = append(types, c.Type)
	}
	return types
}

func TestTimeSlotValidator(t *testing.T) {
	v := usecase.NewTimeSlotValidator()
	rules := domain.DefaultBusinessRules()

	t.Run("Should pass a weekday slot inside business hours", func(t *testing.T) {
		iv := &domain.Interview{StartTime: monday(10, 0), EndTime: monday(11, 0)}
		assert.Empty(t, v.Validate(iv, rules))
	})

	t.Run("Should reject start at or after end", func(t *testing.T) {
		iv := &domain.Interview{StartTime: monday(11, 0), EndTime: monday(10, 0)}
		conflicts := v.Validate(iv, rules)
		assert.Contains(t, conflictTypes(conflicts), domain.ConflictInvalidTime)

		var found bool
		for _, c := range conflicts {
			if c.Field == "end_time" {
				found = true
				assert.Equal(t, domain.SeverityHigh, c.Severity)
			}
		}
		assert.True(t, found, "expected a conflict on end_time")
	})

	t.Run("Should reject slots in the past", func(t *testing.T) {
		iv := &domain.Interview{
			StartTime: time.Date(2020, 1, 6, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2020, 1, 6, 11, 0, 0, 0, time.UTC),
		}
		conflicts := v.Validate(iv, rules)
		assert.Contains(t, conflictTypes(conflicts), domain.ConflictInvalidTime)
	})

	t.Run("Should report every violation, not just the first", func(t *testing.T) {
		// 08:00-08:10: before opening AND shorter than the minimum duration
		iv := &domain.Interview{StartTime: monday(8, 0), EndTime: monday(8, 10)}
		conflicts := v.Validate(iv, rules)

		assert.Len(t, conflicts, 2)
		types := conflictTypes(conflicts)
		assert.Contains(t, types, domain.ConflictOutsideHours)
		assert.Contains(t, types, domain.ConflictInvalidTime)
		for _, c := range conflicts {
			assert.Equal(t, domain.SeverityMedium, c.Severity)
		}
	})

	t.Run("Should reject weekends unless the rules allow them", func(t *testing.T) {
		iv := &domain.Interview{StartTime: saturday(10, 0), EndTime: saturday(11, 0)}

		conflicts := v.Validate(iv, rules)
		assert.Contains(t, conflictTypes(conflicts), domain.ConflictWeekend)

		open := rules
		open.AllowWeekends = true
		assert.Empty(t, v.Validate(iv, open))
	})

	t.Run("Should reject durations above the maximum", func(t *testing.T) {
		iv := &domain.Interview{StartTime: monday(9, 0), EndTime: monday(14, 0)} // 300 min
		conflicts := v.Validate(iv, rules)

		assert.Len(t, conflicts, 1)
		assert.Equal(t, domain.ConflictInvalidTime, conflicts[0].Type)
		assert.Equal(t, "duration", conflicts[0].Field)
	})

	t.Run("Should skip the duration check when the window is inverted", func(t *testing.T) {
		// An inverted window would otherwise also produce a nonsense
		// negative-duration conflict
		iv := &domain.Interview{StartTime: monday(11, 0), EndTime: monday(10, 0)}
		for _, c := range v.Validate(iv, rules) {
			assert.NotEqual(t, "duration", c.Field)
		}
	})
}
