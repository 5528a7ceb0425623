package usecase_test

import (
	"testing"
	"time"

	"go-placement-backend/internal/domain"
	"go-placement-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestOverlaps(t *testing.T) {
	a := monday(10, 0)

	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical windows", a, a.Add(time.Hour), a, a.Add(time.Hour), true},
		{"partial overlap", a, a.Add(time.Hour), a.Add(30 * time.Minute), a.Add(90 * time.Minute), true},
		{"containment", a, a.Add(2 * time.Hour), a.Add(30 * time.Minute), a.Add(time.Hour), true},
		{"touching endpoints", a, a.Add(time.Hour), a.Add(time.Hour), a.Add(2 * time.Hour), false},
		{"disjoint", a, a.Add(time.Hour), a.Add(3 * time.Hour), a.Add(4 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, usecase.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric
			assert.Equal(t, tc.want, usecase.Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestResourceOverlapDetector(t *testing.T) {
	d := usecase.NewResourceOverlapDetector()

	candidate := &domain.Interview{
		StartTime:     monday(10, 0),
		EndTime:       monday(11, 0),
		StudentIDs:    []string{"s1", "s2"},
		MentorID:      strPtr("m1"),
		InterviewerID: strPtr("i1"),
	}

	t.Run("Should report shared students with the exact shared set", func(t *testing.T) {
		active := []domain.Interview{{
			ID:         "other",
			StartTime:  monday(10, 30),
			EndTime:    monday(11, 30),
			StudentIDs: []string{"s2", "s3"},
			Status:     domain.InterviewStatusConfirmed,
		}}

		conflicts := d.Detect(candidate, active, "")
		assert.Len(t, conflicts, 1)
		assert.Equal(t, domain.ConflictStudentOverlap, conflicts[0].Type)
		assert.Equal(t, domain.SeverityHigh, conflicts[0].Severity)
		assert.Equal(t, []string{"s2"}, conflicts[0].Participants)
		assert.Equal(t, "other", conflicts[0].ConflictingInterview.ID)
	})

	t.Run("Should emit one conflict per resource dimension", func(t *testing.T) {
		active := []domain.Interview{{
			ID:            "other",
			StartTime:     monday(10, 0),
			EndTime:       monday(11, 0),
			StudentIDs:    []string{"s1"},
			MentorID:      strPtr("m1"),
			InterviewerID: strPtr("i1"),
			Status:        domain.InterviewStatusPending,
		}}

		conflicts := d.Detect(candidate, active, "")
		assert.Len(t, conflicts, 3)
		types := conflictTypes(conflicts)
		assert.Contains(t, types, domain.ConflictStudentOverlap)
		assert.Contains(t, types, domain.ConflictMentorOverlap)
		assert.Contains(t, types, domain.ConflictInterviewerOverlap)
	})

	t.Run("Should skip the excluded interview", func(t *testing.T) {
		active := []domain.Interview{{
			ID:         "editing-this-one",
			StartTime:  monday(10, 0),
			EndTime:    monday(11, 0),
			StudentIDs: []string{"s1"},
			Status:     domain.InterviewStatusPending,
		}}

		assert.Empty(t, d.Detect(candidate, active, "editing-this-one"))
	})

	t.Run("Should ignore cancelled and completed interviews", func(t *testing.T) {
		active := []domain.Interview{
			{
				ID: "a", StartTime: monday(10, 0), EndTime: monday(11, 0),
				StudentIDs: []string{"s1"}, Status: domain.InterviewStatusCancelled,
			},
			{
				ID: "b", StartTime: monday(10, 0), EndTime: monday(11, 0),
				StudentIDs: []string{"s2"}, Status: domain.InterviewStatusCompleted,
			},
		}

		assert.Empty(t, d.Detect(candidate, active, ""))
	})

	t.Run("Should ignore back-to-back interviews", func(t *testing.T) {
		active := []domain.Interview{{
			ID:         "other",
			StartTime:  monday(11, 0), // starts exactly when candidate ends
			EndTime:    monday(12, 0),
			StudentIDs: []string{"s1", "s2"},
			Status:     domain.InterviewStatusConfirmed,
		}}

		assert.Empty(t, d.Detect(candidate, active, ""))
	})

	t.Run("Should not match when only one side has a mentor", func(t *testing.T) {
		noMentor := &domain.Interview{
			StartTime:  monday(10, 0),
			EndTime:    monday(11, 0),
			StudentIDs: []string{"sX"},
			MentorID:   nil,
		}
		active := []domain.Interview{{
			ID: "other", StartTime: monday(10, 0), EndTime: monday(11, 0),
			StudentIDs: []string{"sY"}, MentorID: strPtr("m1"),
			Status: domain.InterviewStatusPending,
		}}

		assert.Empty(t, d.Detect(noMentor, active, ""))
	})
}
