package usecase

import (
	"context"

	"go-placement-backend/internal/domain"
	"go-placement-backend/pkg/apperror"
)

type placementUsecase struct {
	placements domain.PlacementRepository
}

// NewPlacementUsecase creates the placement/application usecase
func NewPlacementUsecase(placements domain.PlacementRepository) domain.PlacementUsecase {
	return &placementUsecase{placements: placements}
}

func (uc *placementUsecase) CreatePlacement(ctx context.Context, p *domain.Placement) error {
	if p.Status == "" {
		p.Status = domain.PlacementStatusOpen
	}
	if err := uc.placements.CreatePlacement(ctx, p); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *placementUsecase) ListOpenPlacements(ctx context.Context) ([]domain.Placement, error) {
	return uc.placements.ListOpenPlacements(ctx)
}

// Apply submits a student's application to an open placement
func (uc *placementUsecase) Apply(ctx context.Context, studentID string, placementID int64, resumeURL, coverLetter string) (*domain.PlacementApplication, error) {
	if resumeURL == "" {
		return nil, apperror.BadRequest("A resume is required to apply")
	}

	placement, err := uc.placements.GetPlacement(ctx, placementID)
	if err != nil {
		return nil, apperror.NotFound("Placement not found")
	}
	if placement.Status != domain.PlacementStatusOpen {
		return nil, apperror.BadRequest("Placement is no longer accepting applications")
	}

	exists, err := uc.placements.ApplicationExists(ctx, placementID, studentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this placement")
	}

	var coverLetterPtr *string
	if coverLetter != "" {
		coverLetterPtr = &coverLetter
	}

	app := &domain.PlacementApplication{
		PlacementID: placementID,
		StudentID:   studentID,
		ResumeURL:   resumeURL,
		CoverLetter: coverLetterPtr,
		Status:      domain.ApplicationStatusApplied,
	}
	if err := uc.placements.CreateApplication(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (uc *placementUsecase) MyApplications(ctx context.Context, studentID string) ([]domain.PlacementApplication, error) {
	return uc.placements.ListApplicationsByStudent(ctx, studentID)
}

func (uc *placementUsecase) ListByPlacement(ctx context.Context, placementID int64) ([]domain.PlacementApplication, error) {
	if _, err := uc.placements.GetPlacement(ctx, placementID); err != nil {
		return nil, apperror.NotFound("Placement not found")
	}
	return uc.placements.ListApplicationsByPlacement(ctx, placementID)
}

// UpdateApplicationStatus moves an application along applied → reviewed →
// accepted / rejected
func (uc *placementUsecase) UpdateApplicationStatus(ctx context.Context, applicationID int64, status string) error {
	switch status {
	case domain.ApplicationStatusReviewed, domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected:
	default:
		return apperror.BadRequest("Invalid status. Must be: reviewed, accepted, or rejected")
	}

	if _, err := uc.placements.GetApplication(ctx, applicationID); err != nil {
		return apperror.NotFound("Application not found")
	}
	return uc.placements.UpdateApplicationStatus(ctx, applicationID, status)
}
