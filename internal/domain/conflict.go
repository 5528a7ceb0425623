package domain

import "time"

// ConflictType identifies which rule or resource a conflict violates
type ConflictType string

const (
	ConflictInvalidTime        ConflictType = "INVALID_TIME"
	ConflictOutsideHours       ConflictType = "OUTSIDE_HOURS"
	ConflictWeekend            ConflictType = "WEEKEND_CONFLICT"
	ConflictStudentOverlap     ConflictType = "STUDENT_OVERLAP"
	ConflictMentorOverlap      ConflictType = "MENTOR_OVERLAP"
	ConflictInterviewerOverlap ConflictType = "INTERVIEWER_OVERLAP"
	ConflictVenueOverlap       ConflictType = "VENUE_OVERLAP"
)

// Severity ranks conflicts: high > medium > low > none
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var severityRank = map[Severity]int{
	SeverityNone:   0,
	SeverityLow:    1,
	SeverityMedium: 2,
	SeverityHigh:   3,
}

// MaxSeverity returns the more severe of a and b
func MaxSeverity(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// Conflict is a single detected violation. Expected scheduling violations are
// always reported this way, never as errors.
type Conflict struct {
	Type                 ConflictType `json:"type"`
	Message              string       `json:"message"`
	Severity             Severity     `json:"severity"`
	Field                string       `json:"field,omitempty"`
	ConflictingInterview *Interview   `json:"conflicting_interview,omitempty"`
	Participants         []string     `json:"participants,omitempty"`
}

// ConflictReport aggregates all conflicts found for one candidate slot.
// Invariants: HasConflicts == (len(Conflicts) > 0) and Severity is the
// maximum severity present, or none.
type ConflictReport struct {
	HasConflicts bool       `json:"has_conflicts"`
	Conflicts    []Conflict `json:"conflicts"`
	Severity     Severity   `json:"severity"`

	// Incomplete marks a report assembled while one of the underlying queries
	// failed. An empty conflict list then means "unknown", not "verified clear".
	Incomplete bool `json:"incomplete,omitempty"`
}

// NewConflictReport builds a report that holds the ConflictReport invariants
func NewConflictReport(conflicts []Conflict, incomplete bool) *ConflictReport {
	severity := SeverityNone
	for _, c := range conflicts {
		severity = MaxSeverity(severity, c.Severity)
	}
	return &ConflictReport{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
		Severity:     severity,
		Incomplete:   incomplete,
	}
}

// TimeSlotSuggestion is a conflict-free alternative slot with its heuristic score
type TimeSlotSuggestion struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Score     int       `json:"score"`
}

// ResolutionSuggestion is a presentation-level hint on how to resolve a conflict
type ResolutionSuggestion struct {
	Type    ConflictType `json:"type"`
	Message string       `json:"message"`
	Action  string       `json:"action"`
}

// BusinessRules configure the stand-alone time slot checks. They are explicit
// configuration, never compiled-in constants.
type BusinessRules struct {
	StartHour          int  `json:"start_hour" validate:"gte=0,lte=23"`
	EndHour            int  `json:"end_hour" validate:"gte=1,lte=24,gtfield=StartHour"`
	AllowWeekends      bool `json:"allow_weekends"`
	MinDurationMinutes int  `json:"min_duration_minutes" validate:"gt=0"`
	MaxDurationMinutes int  `json:"max_duration_minutes" validate:"gtefield=MinDurationMinutes"`
}

// DefaultBusinessRules returns the institutional defaults: 09:00–18:00,
// weekdays only, 15–240 minute interviews.
func DefaultBusinessRules() BusinessRules {
	return BusinessRules{
		StartHour:          9,
		EndHour:            18,
		AllowWeekends:      false,
		MinDurationMinutes: 15,
		MaxDurationMinutes: 240,
	}
}
