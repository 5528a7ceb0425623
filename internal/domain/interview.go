package domain

import (
	"context"
	"time"
)

// InterviewMode distinguishes remote interviews from ones held at a physical venue
type InterviewMode string

const (
	ModeOnline  InterviewMode = "online"
	ModeOffline InterviewMode = "offline"
)

// InterviewStatus follows the flow: pending → confirmed → completed,
// with cancellation possible from pending or confirmed
type InterviewStatus string

const (
	InterviewStatusPending   InterviewStatus = "pending"
	InterviewStatusConfirmed InterviewStatus = "confirmed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
	InterviewStatusCompleted InterviewStatus = "completed"
)

// Active reports whether interviews in this status participate in overlap checks.
// Cancelled and completed interviews never block a slot.
func (s InterviewStatus) Active() bool {
	return s == InterviewStatusPending || s == InterviewStatusConfirmed
}

// CanTransitionTo enforces the status flow owned by the scheduling workflow
func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	switch s {
	case InterviewStatusPending:
		return next == InterviewStatusConfirmed || next == InterviewStatusCancelled
	case InterviewStatusConfirmed:
		return next == InterviewStatusCompleted || next == InterviewStatusCancelled
	case InterviewStatusCancelled, InterviewStatusCompleted:
		return false
	}
	return false
}

// Interview represents a scheduled interview between students and staff.
// Venue is required iff Mode is offline; StartTime must precede EndTime.
type Interview struct {
	ID            string          `json:"id"`
	PlacementID   *int64          `json:"placement_id,omitempty"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	Mode          InterviewMode   `json:"mode"`
	Venue         *string         `json:"venue,omitempty"`
	StudentIDs    []string        `json:"student_ids"`
	MentorID      *string         `json:"mentor_id,omitempty"`
	InterviewerID *string         `json:"interviewer_id,omitempty"`
	Status        InterviewStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Participants returns the combined participant set: all students plus the
// mentor and interviewer when assigned.
func (i *Interview) Participants() []string {
	ids := make([]string, 0, len(i.StudentIDs)+2)
	ids = append(ids, i.StudentIDs...)
	if i.MentorID != nil && *i.MentorID != "" {
		ids = append(ids, *i.MentorID)
	}
	if i.InterviewerID != nil && *i.InterviewerID != "" {
		ids = append(ids, *i.InterviewerID)
	}
	return ids
}

// InterviewRepository defines data access for interviews.
// List methods return only active interviews (status pending or confirmed)
// whose window intersects [from, to).
type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error

	// CreateScheduled inserts iv inside one serialized transaction. The
	// transaction takes advisory locks keyed by every participant id (and the
	// venue, for offline interviews), re-fetches the active interviews
	// overlapping iv's window and hands them to recheck before committing.
	// A non-nil recheck error aborts the insert and is returned unchanged.
	CreateScheduled(ctx context.Context, iv *Interview, recheck func(active []Interview) error) error

	GetByID(ctx context.Context, id string) (*Interview, error)
	ListActive(ctx context.Context, from, to time.Time) ([]Interview, error)
	ListActiveByVenue(ctx context.Context, venue string, from, to time.Time) ([]Interview, error)
	UpdateStatus(ctx context.Context, id string, status InterviewStatus) error
}

// InterviewNotifier is the outbound notification trigger. Implementations
// deliver a message; the engine only decides when to fire.
type InterviewNotifier interface {
	InterviewScheduled(ctx context.Context, iv *Interview) error
	InterviewStatusChanged(ctx context.Context, iv *Interview, previous InterviewStatus) error
}

// SchedulingUsecase is the conflict-detection engine plus the scheduling
// workflow built on top of it.
//
// CheckConflicts is advisory: its read and any later write are not one
// transaction. Schedule closes that gap by re-running the overlap check
// inside the insert transaction and failing with a retryable conflict
// error when a concurrent booking won the slot.
type SchedulingUsecase interface {
	CheckConflicts(ctx context.Context, candidate *Interview, excludeID string) *ConflictReport
	QuickConflictCheck(ctx context.Context, participantIDs []string, start, end time.Time, excludeID string) (bool, error)
	SuggestAlternativeSlots(ctx context.Context, candidate *Interview, durationMinutes int) ([]TimeSlotSuggestion, error)
	Schedule(ctx context.Context, iv *Interview) (*Interview, *ConflictReport, error)
	ListActive(ctx context.Context, from, to time.Time) ([]Interview, error)
	UpdateStatus(ctx context.Context, id string, next InterviewStatus) error
}
