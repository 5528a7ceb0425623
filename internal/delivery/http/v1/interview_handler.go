package v1

import (
	"errors"
	"net/http"
	"time"

	"go-placement-backend/internal/delivery/http/response"
	"go-placement-backend/internal/domain"
	"go-placement-backend/internal/usecase"
	"go-placement-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	schedulingUC domain.SchedulingUsecase
}

// NewInterviewHandler registers interview scheduling routes
func NewInterviewHandler(r *gin.RouterGroup, probeLimiter gin.HandlerFunc, schedulingUC domain.SchedulingUsecase) {
	handler := &InterviewHandler{schedulingUC: schedulingUC}

	interviews := r.Group("/interviews")
	{
		interviews.POST("", handler.Schedule)
		interviews.GET("", handler.ListActive)
		interviews.PATCH("/:id/status", handler.UpdateStatus)
		interviews.POST("/suggestions", handler.SuggestSlots)

		// The conflict probes are called by the scheduling form on every
		// field change, so they carry their own rate limit.
		conflicts := interviews.Group("/conflicts", probeLimiter)
		{
			conflicts.POST("/check", handler.CheckConflicts)
			conflicts.POST("/quick-check", handler.QuickCheck)
		}
	}
}

// InterviewRequest is the candidate interview payload shared by the
// scheduling and conflict-check endpoints
type InterviewRequest struct {
	PlacementID   *int64    `json:"placement_id"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	Mode          string    `json:"mode" binding:"required,oneof=online offline"`
	Venue         *string   `json:"venue" binding:"omitempty,valid_venue"`
	StudentIDs    []string  `json:"student_ids" binding:"required,min=1,dive,uuid"`
	MentorID      *string   `json:"mentor_id" binding:"omitempty,uuid"`
	InterviewerID *string   `json:"interviewer_id" binding:"omitempty,uuid"`
}

func (r *InterviewRequest) toInterview() *domain.Interview {
	return &domain.Interview{
		PlacementID:   r.PlacementID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Mode:          domain.InterviewMode(r.Mode),
		Venue:         r.Venue,
		StudentIDs:    r.StudentIDs,
		MentorID:      r.MentorID,
		InterviewerID: r.InterviewerID,
	}
}

// CheckConflictsRequest wraps a candidate interview with an optional id to
// exclude from overlap checks (used when editing an existing interview)
type CheckConflictsRequest struct {
	InterviewRequest
	ExcludeID string `json:"exclude_id" binding:"omitempty,uuid"`
}

// CheckConflicts godoc
// @Summary      Check a candidate slot for conflicts
// @Description  Run the full conflict analysis (time rules, participant overlaps, venue overlaps) without persisting anything
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      CheckConflictsRequest  true  "Candidate interview"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /interviews/conflicts/check [post]
// @Security     BearerAuth
func (h *InterviewHandler) CheckConflicts(c *gin.Context) {
	var req CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	report := h.schedulingUC.CheckConflicts(c.Request.Context(), req.toInterview(), req.ExcludeID)

	messages := make([]string, 0, len(report.Conflicts))
	for _, conflict := range report.Conflicts {
		messages = append(messages, usecase.FormatConflictMessage(conflict))
	}

	response.Success(c, http.StatusOK, "Conflict check complete", gin.H{
		"report":      report,
		"messages":    messages,
		"resolutions": usecase.ResolutionSuggestions(report.Conflicts),
	})
}

// QuickCheckRequest is the lightweight availability probe payload
type QuickCheckRequest struct {
	ParticipantIDs []string  `json:"participant_ids" binding:"required,min=1,dive,uuid"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	EndTime        time.Time `json:"end_time" binding:"required"`
	ExcludeID      string    `json:"exclude_id" binding:"omitempty,uuid"`
}

// QuickCheck godoc
// @Summary      Quick availability probe
// @Description  Boolean check whether any participant is busy in the window. Cheaper than the full analysis; no severity or messages.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      QuickCheckRequest  true  "Participants and window"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /interviews/conflicts/quick-check [post]
// @Security     BearerAuth
func (h *InterviewHandler) QuickCheck(c *gin.Context) {
	var req QuickCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	hasConflict, err := h.schedulingUC.QuickConflictCheck(
		c.Request.Context(), req.ParticipantIDs, req.StartTime, req.EndTime, req.ExcludeID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Availability checked", gin.H{
		"has_conflict": hasConflict,
	})
}

// SuggestSlotsRequest asks for alternatives near a candidate interview
type SuggestSlotsRequest struct {
	InterviewRequest
	DurationMinutes int `json:"duration_minutes" binding:"required,min=1"`
}

// SuggestSlots godoc
// @Summary      Suggest alternative slots
// @Description  Scan upcoming business days for conflict-free slots of the requested duration, ranked by desirability
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      SuggestSlotsRequest  true  "Candidate interview and desired duration"
// @Success      200   {object}  response.Response{data=[]domain.TimeSlotSuggestion}
// @Failure      400   {object}  response.Response
// @Router       /interviews/suggestions [post]
// @Security     BearerAuth
func (h *InterviewHandler) SuggestSlots(c *gin.Context) {
	var req SuggestSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	suggestions, err := h.schedulingUC.SuggestAlternativeSlots(
		c.Request.Context(), req.toInterview(), req.DurationMinutes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Alternative slots found", suggestions)
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Create an interview (Staff only). Rejected with 409 when a blocking conflict exists; the conflict report rides in the error payload.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      InterviewRequest  true  "Interview to schedule"
// @Success      201   {object}  response.Response{data=domain.Interview}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Schedule(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleStaff && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only placement staff can schedule interviews"))
		return
	}

	var req InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	iv, report, err := h.schedulingUC.Schedule(c.Request.Context(), req.toInterview())
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && report != nil {
			// Conflict rejections carry the full report so the frontend can
			// render the reasons without a second round trip
			response.Error(c, appErr.Code, appErr.Message, report)
			c.Abort()
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview scheduled", gin.H{
		"interview":       iv,
		"conflict_report": report,
	})
}

// ListActive godoc
// @Summary      List active interviews
// @Description  List pending and confirmed interviews overlapping [from, to). Defaults to the next 7 days.
// @Tags         interviews
// @Produce      json
// @Param        from  query     string  false  "Window start (RFC3339)"
// @Param        to    query     string  false  "Window end (RFC3339)"
// @Success      200   {object}  response.Response{data=[]domain.Interview}
// @Failure      400   {object}  response.Response
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListActive(c *gin.Context) {
	now := time.Now()
	from, to := now, now.AddDate(0, 0, 7)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid 'from' timestamp, expected RFC3339"))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid 'to' timestamp, expected RFC3339"))
			return
		}
		to = parsed
	}
	if !from.Before(to) {
		c.Error(apperror.BadRequest("'from' must be before 'to'"))
		return
	}

	interviews, err := h.schedulingUC.ListActive(c.Request.Context(), from, to)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// UpdateInterviewStatusRequest is the status transition payload
type UpdateInterviewStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled completed"`
}

// UpdateStatus godoc
// @Summary      Update interview status
// @Description  Move an interview through its status flow (pending → confirmed → completed, cancellable until completed)
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "Interview ID"
// @Param        body  body      UpdateInterviewStatusRequest  true  "Target status"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /interviews/{id}/status [patch]
// @Security     BearerAuth
func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleStaff && role != domain.RoleAdmin && role != domain.RoleMentor {
		c.Error(apperror.Forbidden("Only staff or mentors can update interview status"))
		return
	}

	var req UpdateInterviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	err := h.schedulingUC.UpdateStatus(c.Request.Context(), c.Param("id"), domain.InterviewStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Error(apperror.NotFound("Interview not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview status updated", nil)
}
