package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-placement-backend/internal/domain"
	"go-placement-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockInterviewRepo mocks domain.InterviewRepository. CreateScheduled replays
// the recheck callback against txSnapshot, mimicking the transactional re-read.
type MockInterviewRepo struct {
	mock.Mock
	txSnapshot []domain.Interview
}

func (m *MockInterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) CreateScheduled(ctx context.Context, iv *domain.Interview, recheck func([]domain.Interview) error) error {
	args := m.Called(ctx, iv)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return recheck(m.txSnapshot)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) ListActive(ctx context.Context, from, to time.Time) ([]domain.Interview, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) ListActiveByVenue(ctx context.Context, venue string, from, to time.Time) ([]domain.Interview, error) {
	args := m.Called(ctx, venue, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) UpdateStatus(ctx context.Context, id string, status domain.InterviewStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func newSchedulingUC(repo *MockInterviewRepo) domain.SchedulingUsecase {
	return usecase.NewSchedulingUsecase(repo, nil, domain.DefaultBusinessRules(), usecase.HeuristicScorer{}, 7, 5, 10)
}

func onlineCandidate() *domain.Interview {
	return &domain.Interview{
		StartTime:  monday(10, 0),
		EndTime:    monday(11, 0),
		Mode:       domain.ModeOnline,
		StudentIDs: []string{"s1"},
	}
}

func TestCheckConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return a clean complete report for a free slot", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{}, nil)

		report := newSchedulingUC(repo).CheckConflicts(ctx, onlineCandidate(), "")

		assert.False(t, report.HasConflicts)
		assert.Empty(t, report.Conflicts)
		assert.Equal(t, domain.SeverityNone, report.Severity)
		assert.False(t, report.Incomplete)
	})

	t.Run("Should merge participant and venue conflicts into one report", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{{
			ID: "busy", StartTime: monday(10, 30), EndTime: monday(11, 30),
			StudentIDs: []string{"s1"}, Status: domain.InterviewStatusConfirmed,
		}}, nil)
		repo.On("ListActiveByVenue", mock.Anything, "Room A", mock.Anything, mock.Anything).Return([]domain.Interview{{
			ID: "roomclash", StartTime: monday(10, 0), EndTime: monday(11, 0),
			Mode: domain.ModeOffline, Venue: strPtr("Room A"),
			StudentIDs: []string{"s9"}, Status: domain.InterviewStatusPending,
		}}, nil)

		candidate := onlineCandidate()
		candidate.Mode = domain.ModeOffline
		candidate.Venue = strPtr("Room A")

		report := newSchedulingUC(repo).CheckConflicts(ctx, candidate, "")

		assert.True(t, report.HasConflicts)
		assert.Equal(t, domain.SeverityHigh, report.Severity)
		types := conflictTypes(report.Conflicts)
		assert.Contains(t, types, domain.ConflictStudentOverlap)
		assert.Contains(t, types, domain.ConflictVenueOverlap)
	})

	t.Run("Should mark the report incomplete when the overlap fetch fails", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		// Weekend candidate: the stand-alone checks must still run
		candidate := onlineCandidate()
		candidate.StartTime = saturday(10, 0)
		candidate.EndTime = saturday(11, 0)

		report := newSchedulingUC(repo).CheckConflicts(ctx, candidate, "")

		assert.True(t, report.Incomplete)
		assert.Contains(t, conflictTypes(report.Conflicts), domain.ConflictWeekend)
	})

	t.Run("Should keep participant conflicts when only the venue fetch fails", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{{
			ID: "busy", StartTime: monday(10, 0), EndTime: monday(11, 0),
			StudentIDs: []string{"s1"}, Status: domain.InterviewStatusPending,
		}}, nil)
		repo.On("ListActiveByVenue", mock.Anything, "Room A", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		candidate := onlineCandidate()
		candidate.Mode = domain.ModeOffline
		candidate.Venue = strPtr("Room A")

		report := newSchedulingUC(repo).CheckConflicts(ctx, candidate, "")

		assert.True(t, report.Incomplete)
		assert.Contains(t, conflictTypes(report.Conflicts), domain.ConflictStudentOverlap)
	})

	t.Run("Should be idempotent for the same inputs", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{}, nil)

		uc := newSchedulingUC(repo)
		first := uc.CheckConflicts(ctx, onlineCandidate(), "")
		second := uc.CheckConflicts(ctx, onlineCandidate(), "")
		assert.Equal(t, first, second)
	})
}

func TestQuickConflictCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("Should detect a busy mentor through the participant set", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{{
			ID: "busy", StartTime: monday(10, 0), EndTime: monday(11, 0),
			StudentIDs: []string{"s5"}, MentorID: strPtr("m1"),
			Status: domain.InterviewStatusConfirmed,
		}}, nil)

		busy, err := newSchedulingUC(repo).QuickConflictCheck(ctx, []string{"m1"}, monday(10, 30), monday(11, 30), "")
		assert.NoError(t, err)
		assert.True(t, busy)
	})

	t.Run("Should report free when windows only touch", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{{
			ID: "busy", StartTime: monday(10, 0), EndTime: monday(11, 0),
			StudentIDs: []string{"s1"}, Status: domain.InterviewStatusConfirmed,
		}}, nil)

		busy, err := newSchedulingUC(repo).QuickConflictCheck(ctx, []string{"s1"}, monday(11, 0), monday(12, 0), "")
		assert.NoError(t, err)
		assert.False(t, busy)
	})

	t.Run("Should surface repository failures as errors", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := newSchedulingUC(repo).QuickConflictCheck(ctx, []string{"s1"}, monday(10, 0), monday(11, 0), "")
		assert.Error(t, err)
	})
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require a venue for offline interviews", func(t *testing.T) {
		candidate := onlineCandidate()
		candidate.Mode = domain.ModeOffline

		_, _, err := newSchedulingUC(new(MockInterviewRepo)).Schedule(ctx, candidate)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Venue is required")
	})

	t.Run("Should reject a venue on online interviews", func(t *testing.T) {
		candidate := onlineCandidate()
		candidate.Venue = strPtr("Room A")

		_, _, err := newSchedulingUC(new(MockInterviewRepo)).Schedule(ctx, candidate)
		assert.Error(t, err)
	})

	t.Run("Should require at least one student", func(t *testing.T) {
		candidate := onlineCandidate()
		candidate.StudentIDs = nil

		_, _, err := newSchedulingUC(new(MockInterviewRepo)).Schedule(ctx, candidate)
		assert.Error(t, err)
	})

	t.Run("Should block on high severity conflicts without inserting", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{{
			ID: "busy", StartTime: monday(10, 0), EndTime: monday(11, 0),
			StudentIDs: []string{"s1"}, Status: domain.InterviewStatusConfirmed,
		}}, nil)

		_, report, err := newSchedulingUC(repo).Schedule(ctx, onlineCandidate())

		assert.Error(t, err)
		assert.NotNil(t, report)
		assert.Equal(t, domain.SeverityHigh, report.Severity)
		repo.AssertNotCalled(t, "CreateScheduled", mock.Anything, mock.Anything)
	})

	t.Run("Should refuse to book when the conflict check was incomplete", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, report, err := newSchedulingUC(repo).Schedule(ctx, onlineCandidate())

		assert.Error(t, err)
		assert.True(t, report.Incomplete)
		repo.AssertNotCalled(t, "CreateScheduled", mock.Anything, mock.Anything)
	})

	t.Run("Should fail with a retryable conflict when the slot is taken in-flight", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		// Advisory read sees a free slot...
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{}, nil)
		// ...but the transactional snapshot already holds a competing booking
		repo.txSnapshot = []domain.Interview{{
			ID: "winner", StartTime: monday(10, 0), EndTime: monday(11, 0),
			StudentIDs: []string{"s1"}, Status: domain.InterviewStatusPending,
		}}
		repo.On("CreateScheduled", mock.Anything, mock.Anything).Return(nil)

		_, _, err := newSchedulingUC(repo).Schedule(ctx, onlineCandidate())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "concurrent booking")
	})

	t.Run("Should book a clean slot and assign id and status", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{}, nil)
		repo.On("CreateScheduled", mock.Anything, mock.Anything).Return(nil)

		iv, report, err := newSchedulingUC(repo).Schedule(ctx, onlineCandidate())

		assert.NoError(t, err)
		assert.NotEmpty(t, iv.ID)
		assert.Equal(t, domain.InterviewStatusPending, iv.Status)
		assert.False(t, report.HasConflicts)
	})

	t.Run("Should book despite medium severity warnings", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("ListActive", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Interview{}, nil)
		repo.On("CreateScheduled", mock.Anything, mock.Anything).Return(nil)

		// Outside business hours but otherwise valid: a warning, not a block
		candidate := onlineCandidate()
		candidate.StartTime = monday(8, 0)
		candidate.EndTime = monday(8, 30)

		iv, report, err := newSchedulingUC(repo).Schedule(ctx, candidate)

		assert.NoError(t, err)
		assert.NotEmpty(t, iv.ID)
		assert.True(t, report.HasConflicts)
		assert.Equal(t, domain.SeverityMedium, report.Severity)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should confirm a pending interview", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("GetByID", mock.Anything, "iv1").Return(&domain.Interview{
			ID: "iv1", Status: domain.InterviewStatusPending,
		}, nil)
		repo.On("UpdateStatus", mock.Anything, "iv1", domain.InterviewStatusConfirmed).Return(nil)

		err := newSchedulingUC(repo).UpdateStatus(ctx, "iv1", domain.InterviewStatusConfirmed)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject skipping straight to completed", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("GetByID", mock.Anything, "iv1").Return(&domain.Interview{
			ID: "iv1", Status: domain.InterviewStatusPending,
		}, nil)

		err := newSchedulingUC(repo).UpdateStatus(ctx, "iv1", domain.InterviewStatusCompleted)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject transitions out of a terminal status", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("GetByID", mock.Anything, "iv1").Return(&domain.Interview{
			ID: "iv1", Status: domain.InterviewStatusCancelled,
		}, nil)

		err := newSchedulingUC(repo).UpdateStatus(ctx, "iv1", domain.InterviewStatusConfirmed)
		assert.Error(t, err)
	})

	t.Run("Should report missing interviews as not found", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		repo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		err := newSchedulingUC(repo).UpdateStatus(ctx, "ghost", domain.InterviewStatusConfirmed)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
