package usecase

import (
	"context"
	"sort"
	"time"

	"go-placement-backend/internal/domain"
)

// ConflictChecker is the engine entry point the recommender probes with.
// Satisfied by the scheduling usecase.
type ConflictChecker interface {
	CheckConflicts(ctx context.Context, candidate *domain.Interview, excludeID string) *domain.ConflictReport
}

// SlotScorer ranks conflict-free slots. Institutions can swap the heuristic
// without touching the overlap-detection core.
type SlotScorer interface {
	Score(slotStart time.Time, candidate *domain.Interview) int
}

// HeuristicScorer is the default scoring strategy: prefer mornings over early
// afternoons, weekdays over weekends, and slots close to the requested time.
type HeuristicScorer struct{}

const (
	baseScore           = 100
	morningBonus        = 20
	earlyAfternoonBonus = 10
	weekdayBonus        = 15
	distanceWeight      = 2
	maxDistancePenalty  = 50
)

func (HeuristicScorer) Score(slotStart time.Time, candidate *domain.Interview) int {
	score := baseScore

	switch h := slotStart.Hour(); {
	case h >= 9 && h < 12:
		score += morningBonus
	case h >= 13 && h <= 15:
		score += earlyAfternoonBonus
	}

	if !isWeekend(slotStart) {
		score += weekdayBonus
	}

	hoursAway := int(slotStart.Sub(candidate.StartTime).Hours())
	if hoursAway < 0 {
		hoursAway = -hoursAway
	}
	penalty := distanceWeight * hoursAway
	if penalty > maxDistancePenalty {
		penalty = maxDistancePenalty
	}
	return score - penalty
}

// SlotRecommender searches a bounded future horizon for slots that pass the
// full conflict check cleanly, then scores and ranks them.
type SlotRecommender struct {
	checker ConflictChecker
	scorer  SlotScorer

	// probeCap bounds how many clean candidates are collected, which in turn
	// bounds the number of CheckConflicts calls issued per request.
	probeCap int
}

func NewSlotRecommender(checker ConflictChecker, scorer SlotScorer, probeCap int) *SlotRecommender {
	if scorer == nil {
		scorer = HeuristicScorer{}
	}
	if probeCap <= 0 {
		probeCap = 10
	}
	return &SlotRecommender{checker: checker, scorer: scorer, probeCap: probeCap}
}

// Suggest scans horizonDays starting at the candidate's date, one slot per
// business hour. A slot is kept only if a full conflict check over the same
// business rules comes back clean and complete, so every returned suggestion
// re-validates as conflict-free.
func (r *SlotRecommender) Suggest(ctx context.Context, candidate *domain.Interview, rules domain.BusinessRules, durationMinutes, horizonDays, maxResults int) []domain.TimeSlotSuggestion {
	if durationMinutes <= 0 || horizonDays <= 0 || maxResults <= 0 {
		return nil
	}

	duration := time.Duration(durationMinutes) * time.Minute
	loc := candidate.StartTime.Location()
	year, month, day := candidate.StartTime.Date()
	firstDay := time.Date(year, month, day, 0, 0, 0, 0, loc)

	var clean []domain.TimeSlotSuggestion

scan:
	for d := 0; d < horizonDays; d++ {
		dayStart := firstDay.AddDate(0, 0, d)
		if !rules.AllowWeekends && isWeekend(dayStart) {
			continue
		}

		for h := rules.StartHour; h < rules.EndHour; h++ {
			slotStart := dayStart.Add(time.Duration(h) * time.Hour)
			slotEnd := slotStart.Add(duration)

			probe := *candidate
			probe.StartTime = slotStart
			probe.EndTime = slotEnd

			report := r.checker.CheckConflicts(ctx, &probe, candidate.ID)
			if report.HasConflicts || report.Incomplete {
				continue
			}

			clean = append(clean, domain.TimeSlotSuggestion{
				StartTime: slotStart,
				EndTime:   slotEnd,
				Score:     r.scorer.Score(slotStart, candidate),
			})
			if len(clean) >= r.probeCap {
				break scan
			}
		}
	}

	sort.SliceStable(clean, func(i, j int) bool {
		if clean[i].Score != clean[j].Score {
			return clean[i].Score > clean[j].Score
		}
		return clean[i].StartTime.Before(clean[j].StartTime)
	})

	if len(clean) > maxResults {
		clean = clean[:maxResults]
	}
	return clean
}
