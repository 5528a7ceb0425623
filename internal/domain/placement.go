package domain

import (
	"context"
	"time"
)

// Placement status constants
const (
	PlacementStatusOpen   = "open"
	PlacementStatusClosed = "closed"
)

// Application status constants
const (
	ApplicationStatusApplied  = "applied"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Placement is an internship or job posting students apply to
type Placement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Location    *string   `json:"location,omitempty"`
	Status      string    `json:"status"` // open / closed
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlacementApplication is a student's application to a placement
type PlacementApplication struct {
	ID          int64     `json:"id"`
	PlacementID int64     `json:"placement_id"`
	StudentID   string    `json:"student_id"`
	ResumeURL   string    `json:"resume_url"`
	CoverLetter *string   `json:"cover_letter,omitempty"`
	Status      string    `json:"status"` // applied → reviewed → accepted / rejected
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	PlacementTitle *string `json:"placement_title,omitempty"`
	StudentEmail   *string `json:"student_email,omitempty"`
}

// PlacementRepository defines data access for placements and applications
type PlacementRepository interface {
	CreatePlacement(ctx context.Context, p *Placement) error
	GetPlacement(ctx context.Context, id int64) (*Placement, error)
	ListOpenPlacements(ctx context.Context) ([]Placement, error)

	CreateApplication(ctx context.Context, app *PlacementApplication) error
	GetApplication(ctx context.Context, id int64) (*PlacementApplication, error)
	ListApplicationsByStudent(ctx context.Context, studentID string) ([]PlacementApplication, error)
	ListApplicationsByPlacement(ctx context.Context, placementID int64) ([]PlacementApplication, error)
	ApplicationExists(ctx context.Context, placementID int64, studentID string) (bool, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status string) error
}

// PlacementUsecase defines business logic for placements and applications
type PlacementUsecase interface {
	CreatePlacement(ctx context.Context, p *Placement) error
	ListOpenPlacements(ctx context.Context) ([]Placement, error)

	Apply(ctx context.Context, studentID string, placementID int64, resumeURL, coverLetter string) (*PlacementApplication, error)
	MyApplications(ctx context.Context, studentID string) ([]PlacementApplication, error)
	ListByPlacement(ctx context.Context, placementID int64) ([]PlacementApplication, error)
	UpdateApplicationStatus(ctx context.Context, applicationID int64, status string) error
}
