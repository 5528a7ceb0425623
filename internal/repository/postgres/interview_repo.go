package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-placement-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const interviewColumns = `
	id, placement_id, start_time, end_time, mode, venue,
	student_ids, mentor_id, interviewer_id, status, created_at, updated_at`

type interviewRepo struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

// Create inserts a new interview without any overlap guard. Used by admin
// backfills; the scheduling flow goes through CreateScheduled.
func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	now := time.Now()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	if iv.Status == "" {
		iv.Status = domain.InterviewStatusPending
	}
	_, err := r.db.Exec(ctx, insertInterviewQuery, insertInterviewArgs(iv)...)
	return err
}

const insertInterviewQuery = `
	INSERT INTO interviews (id, placement_id, start_time, end_time, mode, venue,
		student_ids, mentor_id, interviewer_id, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func insertInterviewArgs(iv *domain.Interview) []any {
	return []any{
		iv.ID, iv.PlacementID, iv.StartTime, iv.EndTime, iv.Mode, iv.Venue,
		pq.Array(iv.StudentIDs), iv.MentorID, iv.InterviewerID, iv.Status,
		iv.CreatedAt, iv.UpdatedAt,
	}
}

// CreateScheduled inserts iv inside one transaction, serialized against
// competing bookings via advisory locks on every affected resource id. The
// active interviews overlapping iv's window are re-read inside the
// transaction and passed to recheck; any recheck error aborts the insert.
func (r *interviewRepo) CreateScheduled(ctx context.Context, iv *domain.Interview, recheck func(active []domain.Interview) error) error {
	now := time.Now()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	if iv.Status == "" {
		iv.Status = domain.InterviewStatusPending
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin scheduling transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, key := range resourceLockKeys(iv) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("acquire resource lock %q: %w", key, err)
		}
	}

	query := `
		SELECT ` + interviewColumns + `
		FROM interviews
		WHERE status IN ('pending', 'confirmed')
		  AND start_time < $2 AND end_time > $1`
	rows, err := tx.Query(ctx, query, iv.StartTime, iv.EndTime)
	if err != nil {
		return fmt.Errorf("re-read active interviews: %w", err)
	}
	active, err := scanInterviews(rows)
	if err != nil {
		return err
	}

	if err := recheck(active); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, insertInterviewQuery, insertInterviewArgs(iv)...); err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return tx.Commit(ctx)
}

// resourceLockKeys returns the advisory lock keys for every resource the
// interview claims, sorted to keep lock acquisition order deterministic
// across concurrent bookings.
func resourceLockKeys(iv *domain.Interview) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, id := range iv.Participants() {
		key := "participant:" + id
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	if iv.Mode == domain.ModeOffline && iv.Venue != nil && *iv.Venue != "" {
		keys = append(keys, "venue:"+*iv.Venue)
	}
	sort.Strings(keys)
	return keys
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`

	iv, err := scanInterview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return iv, nil
}

// ListActive returns pending/confirmed interviews whose window intersects
// [from, to)
func (r *interviewRepo) ListActive(ctx context.Context, from, to time.Time) ([]domain.Interview, error) {
	query := `
		SELECT ` + interviewColumns + `
		FROM interviews
		WHERE status IN ('pending', 'confirmed')
		  AND start_time < $2 AND end_time > $1
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	return scanInterviews(rows)
}

// ListActiveByVenue narrows ListActive to offline interviews at one venue
func (r *interviewRepo) ListActiveByVenue(ctx context.Context, venue string, from, to time.Time) ([]domain.Interview, error) {
	query := `
		SELECT ` + interviewColumns + `
		FROM interviews
		WHERE status IN ('pending', 'confirmed')
		  AND mode = 'offline' AND venue = $3
		  AND start_time < $2 AND end_time > $1
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, from, to, venue)
	if err != nil {
		return nil, err
	}
	return scanInterviews(rows)
}

// UpdateStatus updates the status of an interview and sets updated_at
func (r *interviewRepo) UpdateStatus(ctx context.Context, id string, status domain.InterviewStatus) error {
	query := `UPDATE interviews SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var iv domain.Interview
	var studentIDs []string
	err := row.Scan(
		&iv.ID, &iv.PlacementID, &iv.StartTime, &iv.EndTime, &iv.Mode, &iv.Venue,
		pq.Array(&studentIDs), &iv.MentorID, &iv.InterviewerID, &iv.Status,
		&iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	iv.StudentIDs = studentIDs
	return &iv, nil
}

func scanInterviews(rows pgx.Rows) ([]domain.Interview, error) {
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *iv)
	}
	return interviews, rows.Err()
}
