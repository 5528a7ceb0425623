package usecase

import (
	"fmt"
	"time"

	"go-placement-backend/internal/domain"
)

// TimeSlotValidator checks a candidate slot against stand-alone business
// rules. All checks are independent: every applicable violation is reported,
// nothing short-circuits.
type TimeSlotValidator struct {
	now func() time.Time
}

func NewTimeSlotValidator() *TimeSlotValidator {
	return &TimeSlotValidator{now: time.Now}
}

func (v *TimeSlotValidator) Validate(candidate *domain.Interview, rules domain.BusinessRules) []domain.Conflict {
	var conflicts []domain.Conflict

	start, end := candidate.StartTime, candidate.EndTime

	if !start.Before(end) {
		conflicts = append(conflicts, domain.Conflict{
			Type:     domain.ConflictInvalidTime,
			Severity: domain.SeverityHigh,
			Field:    "end_time",
			Message:  "Start time must be before end time",
		})
	}

	if !start.After(v.now()) {
		conflicts = append(conflicts, domain.Conflict{
			Type:     domain.ConflictInvalidTime,
			Severity: domain.SeverityHigh,
			Field:    "start_time",
			Message:  "Interview must be scheduled in the future",
		})
	}

	if start.Hour() < rules.StartHour || end.Hour() > rules.EndHour {
		conflicts = append(conflicts, domain.Conflict{
			Type:     domain.ConflictOutsideHours,
			Severity: domain.SeverityMedium,
			Field:    "start_time",
			Message:  fmt.Sprintf("Interview must be within business hours (%02d:00–%02d:00)", rules.StartHour, rules.EndHour),
		})
	}

	if !rules.AllowWeekends && isWeekend(start) {
		conflicts = append(conflicts, domain.Conflict{
			Type:     domain.ConflictWeekend,
			Severity: domain.SeverityMedium,
			Field:    "start_time",
			Message:  "Interviews cannot be scheduled on weekends",
		})
	}

	if start.Before(end) {
		minutes := int(end.Sub(start).Minutes())
		if minutes < rules.MinDurationMinutes || minutes > rules.MaxDurationMinutes {
			conflicts = append(conflicts, domain.Conflict{
				Type:     domain.ConflictInvalidTime,
				Severity: domain.SeverityMedium,
				Field:    "duration",
				Message:  fmt.Sprintf("Duration must be between %d and %d minutes", rules.MinDurationMinutes, rules.MaxDurationMinutes),
			})
		}
	}

	return conflicts
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
