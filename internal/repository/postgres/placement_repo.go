package postgres

import (
	"context"
	"errors"
	"time"

	"go-placement-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type placementRepo struct {
	db *pgxpool.Pool
}

// NewPlacementRepository creates a new placement repository
func NewPlacementRepository(db *pgxpool.Pool) domain.PlacementRepository {
	return &placementRepo{db: db}
}

func (r *placementRepo) CreatePlacement(ctx context.Context, p *domain.Placement) error {
	query := `
		INSERT INTO placements (title, company, description, location, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return r.db.QueryRow(ctx, query,
		p.Title, p.Company, p.Description, p.Location, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *placementRepo) GetPlacement(ctx context.Context, id int64) (*domain.Placement, error) {
	query := `
		SELECT id, title, company, description, location, status, created_at, updated_at
		FROM placements WHERE id = $1`

	var p domain.Placement
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Company, &p.Description, &p.Location, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *placementRepo) ListOpenPlacements(ctx context.Context) ([]domain.Placement, error) {
	query := `
		SELECT id, title, company, description, location, status, created_at, updated_at
		FROM placements
		WHERE status = 'open'
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var placements []domain.Placement
	for rows.Next() {
		var p domain.Placement
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Company, &p.Description, &p.Location, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		placements = append(placements, p)
	}
	return placements, rows.Err()
}

func (r *placementRepo) CreateApplication(ctx context.Context, app *domain.PlacementApplication) error {
	query := `
		INSERT INTO placement_applications (placement_id, student_id, resume_url, cover_letter, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}
	return r.db.QueryRow(ctx, query,
		app.PlacementID, app.StudentID, app.ResumeURL, app.CoverLetter, app.Status, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
}

func (r *placementRepo) GetApplication(ctx context.Context, id int64) (*domain.PlacementApplication, error) {
	query := `
		SELECT a.id, a.placement_id, a.student_id, a.resume_url, a.cover_letter, a.status,
		       a.created_at, a.updated_at, p.title, u.email
		FROM placement_applications a
		LEFT JOIN placements p ON a.placement_id = p.id
		LEFT JOIN users u ON a.student_id = u.id
		WHERE a.id = $1`

	var app domain.PlacementApplication
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.PlacementID, &app.StudentID, &app.ResumeURL, &app.CoverLetter, &app.Status,
		&app.CreatedAt, &app.UpdatedAt, &app.PlacementTitle, &app.StudentEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *placementRepo) ListApplicationsByStudent(ctx context.Context, studentID string) ([]domain.PlacementApplication, error) {
	query := `
		SELECT a.id, a.placement_id, a.student_id, a.resume_url, a.cover_letter, a.status,
		       a.created_at, a.updated_at, p.title
		FROM placement_applications a
		LEFT JOIN placements p ON a.placement_id = p.id
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.PlacementApplication
	for rows.Next() {
		var app domain.PlacementApplication
		if err := rows.Scan(
			&app.ID, &app.PlacementID, &app.StudentID, &app.ResumeURL, &app.CoverLetter, &app.Status,
			&app.CreatedAt, &app.UpdatedAt, &app.PlacementTitle,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *placementRepo) ListApplicationsByPlacement(ctx context.Context, placementID int64) ([]domain.PlacementApplication, error) {
	query := `
		SELECT a.id, a.placement_id, a.student_id, a.resume_url, a.cover_letter, a.status,
		       a.created_at, a.updated_at, u.email
		FROM placement_applications a
		LEFT JOIN users u ON a.student_id = u.id
		WHERE a.placement_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, placementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.PlacementApplication
	for rows.Next() {
		var app domain.PlacementApplication
		if err := rows.Scan(
			&app.ID, &app.PlacementID, &app.StudentID, &app.ResumeURL, &app.CoverLetter, &app.Status,
			&app.CreatedAt, &app.UpdatedAt, &app.StudentEmail,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *placementRepo) ApplicationExists(ctx context.Context, placementID int64, studentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM placement_applications WHERE placement_id = $1 AND student_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, placementID, studentID).Scan(&exists)
	return exists, err
}

func (r *placementRepo) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE placement_applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
