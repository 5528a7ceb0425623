package usecase

import (
	"fmt"
	"strings"

	"go-placement-backend/internal/domain"
)

// FormatConflictMessage renders a single conflict as one human-readable line.
// Presentation only, no decision logic.
func FormatConflictMessage(c domain.Conflict) string {
	msg := c.Message
	if c.ConflictingInterview != nil {
		msg = fmt.Sprintf("%s (existing interview %s–%s)",
			msg,
			c.ConflictingInterview.StartTime.Format("Mon 15:04"),
			c.ConflictingInterview.EndTime.Format("15:04"),
		)
	}
	if len(c.Participants) > 0 {
		msg = fmt.Sprintf("%s — affected: %s", msg, strings.Join(c.Participants, ", "))
	}
	return msg
}

// ResolutionSuggestions maps each distinct conflict type in the report to an
// actionable hint for the scheduling UI.
func ResolutionSuggestions(conflicts []domain.Conflict) []domain.ResolutionSuggestion {
	seen := make(map[domain.ConflictType]bool, len(conflicts))
	var suggestions []domain.ResolutionSuggestion

	for _, c := range conflicts {
		if seen[c.Type] {
			continue
		}
		seen[c.Type] = true

		var s domain.ResolutionSuggestion
		s.Type = c.Type
		switch c.Type {
		case domain.ConflictInvalidTime:
			s.Message = "Correct the start and end times of the interview"
			s.Action = "fix_times"
		case domain.ConflictOutsideHours:
			s.Message = "Move the interview inside business hours"
			s.Action = "adjust_time"
		case domain.ConflictWeekend:
			s.Message = "Move the interview to a weekday"
			s.Action = "move_to_weekday"
		case domain.ConflictStudentOverlap, domain.ConflictMentorOverlap, domain.ConflictInterviewerOverlap:
			s.Message = "Pick a free slot from the suggested alternatives"
			s.Action = "suggest_alternatives"
		case domain.ConflictVenueOverlap:
			s.Message = "Choose a different venue or switch to an online interview"
			s.Action = "change_venue"
		default:
			s.Message = "Review the interview details"
			s.Action = "review"
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}
