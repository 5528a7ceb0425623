package usecase_test

import (
	"testing"

	"go-placement-backend/internal/domain"
	"go-placement-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestFormatConflictMessage(t *testing.T) {
	t.Run("Should append the existing interview window and participants", func(t *testing.T) {
		msg := usecase.FormatConflictMessage(domain.Conflict{
			Message: "Student(s) s2 already have an interview in this time slot",
			ConflictingInterview: &domain.Interview{
				StartTime: monday(10, 0),
				EndTime:   monday(11, 0),
			},
			Participants: []string{"s2"},
		})

		assert.Contains(t, msg, "Mon 10:00")
		assert.Contains(t, msg, "11:00")
		assert.Contains(t, msg, "affected: s2")
	})

	t.Run("Should pass plain messages through untouched", func(t *testing.T) {
		msg := usecase.FormatConflictMessage(domain.Conflict{Message: "Interviews cannot be scheduled on weekends"})
		assert.Equal(t, "Interviews cannot be scheduled on weekends", msg)
	})
}

func TestResolutionSuggestions(t *testing.T) {
	t.Run("Should emit one suggestion per distinct conflict type", func(t *testing.T) {
		conflicts := []domain.Conflict{
			{Type: domain.ConflictStudentOverlap},
			{Type: domain.ConflictStudentOverlap}, // duplicate type
			{Type: domain.ConflictVenueOverlap},
		}

		suggestions := usecase.ResolutionSuggestions(conflicts)

		assert.Len(t, suggestions, 2)
		assert.Equal(t, "suggest_alternatives", suggestions[0].Action)
		assert.Equal(t, "change_venue", suggestions[1].Action)
	})

	t.Run("Should return nothing for a clean report", func(t *testing.T) {
		assert.Empty(t, usecase.ResolutionSuggestions(nil))
	})
}
