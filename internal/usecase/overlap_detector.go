package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-placement-backend/internal/domain"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap. Symmetric in
// its two arguments.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ResourceOverlapDetector cross-references a candidate against the active
// interview set on three resource dimensions: students, mentor, interviewer.
// One conflict is emitted per dimension per colliding interview; they are
// never merged, so callers can render one message per resource.
type ResourceOverlapDetector struct{}

func NewResourceOverlapDetector() *ResourceOverlapDetector {
	return &ResourceOverlapDetector{}
}

func (d *ResourceOverlapDetector) Detect(candidate *domain.Interview, active []domain.Interview, excludeID string) []domain.Conflict {
	var conflicts []domain.Conflict

	for i := range active {
		other := &active[i]
		if other.ID == excludeID || !other.Status.Active() {
			continue
		}
		if !Overlaps(candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime) {
			continue
		}

		if shared := intersect(candidate.StudentIDs, other.StudentIDs); len(shared) > 0 {
			conflicts = append(conflicts, domain.Conflict{
				Type:                 domain.ConflictStudentOverlap,
				Severity:             domain.SeverityHigh,
				Field:                "student_ids",
				Message:              fmt.Sprintf("Student(s) %s already have an interview in this time slot", strings.Join(shared, ", ")),
				ConflictingInterview: other,
				Participants:         shared,
			})
		}

		if bothSet(candidate.MentorID, other.MentorID) && *candidate.MentorID == *other.MentorID {
			conflicts = append(conflicts, domain.Conflict{
				Type:                 domain.ConflictMentorOverlap,
				Severity:             domain.SeverityHigh,
				Field:                "mentor_id",
				Message:              "Mentor is already booked for an overlapping interview",
				ConflictingInterview: other,
				Participants:         []string{*candidate.MentorID},
			})
		}

		if bothSet(candidate.InterviewerID, other.InterviewerID) && *candidate.InterviewerID == *other.InterviewerID {
			conflicts = append(conflicts, domain.Conflict{
				Type:                 domain.ConflictInterviewerOverlap,
				Severity:             domain.SeverityHigh,
				Field:                "interviewer_id",
				Message:              "Interviewer is already booked for an overlapping interview",
				ConflictingInterview: other,
				Participants:         []string{*candidate.InterviewerID},
			})
		}
	}

	return conflicts
}

// VenueConflictDetector finds offline interviews competing for the same
// venue. It performs its own venue-narrowed fetch so a failing venue query
// never prevents the participant checks from completing.
type VenueConflictDetector struct {
	interviews domain.InterviewRepository
}

func NewVenueConflictDetector(interviews domain.InterviewRepository) *VenueConflictDetector {
	return &VenueConflictDetector{interviews: interviews}
}

func (d *VenueConflictDetector) Detect(ctx context.Context, candidate *domain.Interview, excludeID string) ([]domain.Conflict, error) {
	if candidate.Mode != domain.ModeOffline || candidate.Venue == nil || *candidate.Venue == "" {
		return nil, nil
	}

	active, err := d.interviews.ListActiveByVenue(ctx, *candidate.Venue, candidate.StartTime, candidate.EndTime)
	if err != nil {
		return nil, err
	}
	return venueConflicts(candidate, active, excludeID), nil
}

// venueConflicts applies the venue overlap rules over an already-fetched
// snapshot. Shared with the commit-time re-check, which works against a
// single transactional read.
func venueConflicts(candidate *domain.Interview, active []domain.Interview, excludeID string) []domain.Conflict {
	if candidate.Mode != domain.ModeOffline || candidate.Venue == nil || *candidate.Venue == "" {
		return nil
	}

	var conflicts []domain.Conflict
	for i := range active {
		other := &active[i]
		if other.ID == excludeID || !other.Status.Active() {
			continue
		}
		if other.Mode != domain.ModeOffline || other.Venue == nil || *other.Venue != *candidate.Venue {
			continue
		}
		if !Overlaps(candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime) {
			continue
		}
		conflicts = append(conflicts, domain.Conflict{
			Type:                 domain.ConflictVenueOverlap,
			Severity:             domain.SeverityHigh,
			Field:                "venue",
			Message:              fmt.Sprintf("Venue %q is already booked for an overlapping interview", *candidate.Venue),
			ConflictingInterview: other,
		})
	}
	return conflicts
}

// intersect returns the elements of a also present in b, preserving a's order
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	var shared []string
	for _, id := range a {
		if _, ok := set[id]; ok {
			shared = append(shared, id)
		}
	}
	return shared
}

func bothSet(a, b *string) bool {
	return a != nil && *a != "" && b != nil && *b != ""
}
