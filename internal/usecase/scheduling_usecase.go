package usecase

import (
	"context"
	"errors"
	"time"

	"go-placement-backend/internal/domain"
	"go-placement-backend/pkg/apperror"
	"go-placement-backend/pkg/logger"

	"github.com/google/uuid"
)

// coarse pre-filter padding around the candidate window; correctness comes
// from the in-memory half-open overlap test, not from this range
const fetchPadding = 24 * time.Hour

type schedulingUsecase struct {
	interviews  domain.InterviewRepository
	notifier    domain.InterviewNotifier
	rules       domain.BusinessRules
	validator   *TimeSlotValidator
	overlaps    *ResourceOverlapDetector
	venues      *VenueConflictDetector
	recommender *SlotRecommender

	horizonDays int
	maxResults  int
}

// NewSchedulingUsecase wires the conflict engine. notifier and scorer may be
// nil; probeCap bounds the recommender's conflict checks per request.
func NewSchedulingUsecase(
	interviews domain.InterviewRepository,
	notifier domain.InterviewNotifier,
	rules domain.BusinessRules,
	scorer SlotScorer,
	horizonDays, maxResults, probeCap int,
) domain.SchedulingUsecase {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	uc := &schedulingUsecase{
		interviews:  interviews,
		notifier:    notifier,
		rules:       rules,
		validator:   NewTimeSlotValidator(),
		overlaps:    NewResourceOverlapDetector(),
		venues:      NewVenueConflictDetector(interviews),
		horizonDays: horizonDays,
		maxResults:  maxResults,
	}
	uc.recommender = NewSlotRecommender(uc, scorer, probeCap)
	return uc
}

// CheckConflicts runs the slot validator, the participant overlap scan and
// (for offline candidates) the venue scan, and merges everything into one
// report. Infrastructure failures are logged and surface as Incomplete=true
// rather than blocking the remaining checks; callers wanting a strict
// guarantee must treat an incomplete report as "unknown", not "clear".
func (uc *schedulingUsecase) CheckConflicts(ctx context.Context, candidate *domain.Interview, excludeID string) *domain.ConflictReport {
	conflicts := uc.validator.Validate(candidate, uc.rules)
	incomplete := false

	active, err := uc.interviews.ListActive(ctx, candidate.StartTime.Add(-fetchPadding), candidate.EndTime.Add(fetchPadding))
	if err != nil {
		logger.Log.Error("conflict check: active interview fetch failed", "error", err)
		incomplete = true
	} else {
		conflicts = append(conflicts, uc.overlaps.Detect(candidate, active, excludeID)...)
	}

	if candidate.Mode == domain.ModeOffline {
		venueConflicts, err := uc.venues.Detect(ctx, candidate, excludeID)
		if err != nil {
			logger.Log.Error("conflict check: venue fetch failed", "error", err)
			incomplete = true
		} else {
			conflicts = append(conflicts, venueConflicts...)
		}
	}

	return domain.NewConflictReport(conflicts, incomplete)
}

// QuickConflictCheck is the cheap existence-only probe for interactive form
// validation: no detail, no venue check.
func (uc *schedulingUsecase) QuickConflictCheck(ctx context.Context, participantIDs []string, start, end time.Time, excludeID string) (bool, error) {
	if len(participantIDs) == 0 {
		return false, nil
	}

	active, err := uc.interviews.ListActive(ctx, start.Add(-fetchPadding), end.Add(fetchPadding))
	if err != nil {
		return false, apperror.Internal(err)
	}

	for i := range active {
		other := &active[i]
		if other.ID == excludeID || !other.Status.Active() {
			continue
		}
		if !Overlaps(start, end, other.StartTime, other.EndTime) {
			continue
		}
		if len(intersect(participantIDs, other.Participants())) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (uc *schedulingUsecase) SuggestAlternativeSlots(ctx context.Context, candidate *domain.Interview, durationMinutes int) ([]domain.TimeSlotSuggestion, error) {
	if durationMinutes <= 0 {
		return nil, apperror.BadRequest("Duration must be positive")
	}
	return uc.recommender.Suggest(ctx, candidate, uc.rules, durationMinutes, uc.horizonDays, uc.maxResults), nil
}

// Schedule books an interview. The advisory check runs first; a high-severity
// result blocks outright. The insert then re-runs the overlap rules inside
// one serialized transaction, so a slot that was taken between the advisory
// read and the commit fails with a retryable 409 instead of double-booking.
func (uc *schedulingUsecase) Schedule(ctx context.Context, iv *domain.Interview) (*domain.Interview, *domain.ConflictReport, error) {
	if iv.Mode == domain.ModeOffline && (iv.Venue == nil || *iv.Venue == "") {
		return nil, nil, apperror.BadRequest("Venue is required for offline interviews")
	}
	if iv.Mode == domain.ModeOnline && iv.Venue != nil && *iv.Venue != "" {
		return nil, nil, apperror.BadRequest("Venue must be empty for online interviews")
	}
	if len(iv.StudentIDs) == 0 {
		return nil, nil, apperror.BadRequest("At least one student is required")
	}

	report := uc.CheckConflicts(ctx, iv, "")
	if report.Incomplete {
		return nil, report, apperror.Internal(errors.New("conflict check incomplete"))
	}
	if report.Severity == domain.SeverityHigh {
		return nil, report, apperror.Conflict("Time slot has blocking conflicts")
	}

	iv.ID = uuid.NewString()
	if iv.Status == "" {
		iv.Status = domain.InterviewStatusPending
	}

	err := uc.interviews.CreateScheduled(ctx, iv, func(active []domain.Interview) error {
		recheck := uc.overlaps.Detect(iv, active, "")
		recheck = append(recheck, venueConflicts(iv, active, "")...)
		for _, c := range recheck {
			if c.Severity == domain.SeverityHigh {
				return domain.ErrSlotTaken
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, uc.CheckConflicts(ctx, iv, iv.ID), apperror.Conflict("Time slot was taken by a concurrent booking, please retry")
		}
		return nil, nil, apperror.Internal(err)
	}

	uc.notify(func(ctx context.Context) error { return uc.notifier.InterviewScheduled(ctx, iv) })

	return iv, report, nil
}

func (uc *schedulingUsecase) ListActive(ctx context.Context, from, to time.Time) ([]domain.Interview, error) {
	return uc.interviews.ListActive(ctx, from, to)
}

func (uc *schedulingUsecase) UpdateStatus(ctx context.Context, id string, next domain.InterviewStatus) error {
	iv, err := uc.interviews.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Interview not found")
	}
	if !iv.Status.CanTransitionTo(next) {
		return apperror.BadRequest("Invalid status transition")
	}
	if err := uc.interviews.UpdateStatus(ctx, id, next); err != nil {
		return apperror.Internal(err)
	}

	previous := iv.Status
	iv.Status = next
	uc.notify(func(ctx context.Context) error { return uc.notifier.InterviewStatusChanged(ctx, iv, previous) })
	return nil
}

// notify dispatches asynchronously; a failed notification never fails the
// scheduling operation that triggered it.
func (uc *schedulingUsecase) notify(send func(ctx context.Context) error) {
	if uc.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			logger.Log.Error("interview notification failed", "error", err)
		}
	}()
}
