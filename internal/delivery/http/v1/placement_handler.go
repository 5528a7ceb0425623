package v1

import (
	"errors"
	"net/http"
	"strconv"

	"go-placement-backend/internal/delivery/http/response"
	"go-placement-backend/internal/domain"
	"go-placement-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PlacementHandler struct {
	placementUC domain.PlacementUsecase
}

// NewPlacementHandler registers placement and application routes
func NewPlacementHandler(r *gin.RouterGroup, placementUC domain.PlacementUsecase) {
	handler := &PlacementHandler{placementUC: placementUC}

	placements := r.Group("/placements")
	{
		placements.GET("", handler.ListOpen)
		placements.POST("", handler.Create)
		placements.POST("/:id/apply", handler.Apply)
		placements.GET("/:id/applications", handler.ListApplications)
	}

	students := r.Group("/students")
	{
		students.GET("/applications", handler.MyApplications)
	}

	applications := r.Group("/applications")
	{
		applications.PATCH("/:id", handler.UpdateApplicationStatus)
	}
}

// CreatePlacementRequest is the payload for posting a new placement
type CreatePlacementRequest struct {
	Title       string  `json:"title" binding:"required"`
	Company     string  `json:"company" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Location    *string `json:"location"`
}

// Create godoc
// @Summary      Create a placement
// @Description  Post a new open placement (Staff only)
// @Tags         placements
// @Accept       json
// @Produce      json
// @Param        body  body      CreatePlacementRequest  true  "Placement data"
// @Success      201   {object}  response.Response{data=domain.Placement}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /placements [post]
// @Security     BearerAuth
func (h *PlacementHandler) Create(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleStaff && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only placement staff can create placements"))
		return
	}

	var req CreatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	placement := &domain.Placement{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Status:      domain.PlacementStatusOpen,
	}
	if err := h.placementUC.CreatePlacement(c.Request.Context(), placement); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Placement created", placement)
}

// ListOpen godoc
// @Summary      List open placements
// @Tags         placements
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Placement}
// @Router       /placements [get]
// @Security     BearerAuth
func (h *PlacementHandler) ListOpen(c *gin.Context) {
	placements, err := h.placementUC.ListOpenPlacements(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Placements retrieved", placements)
}

// ApplyRequest is the payload for applying to a placement
type ApplyRequest struct {
	ResumeURL   string `json:"resume_url" binding:"required,url"`
	CoverLetter string `json:"cover_letter"`
}

// Apply godoc
// @Summary      Apply to a placement
// @Description  Submit an application for an open placement (Student only)
// @Tags         placements
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Placement ID"
// @Param        body  body      ApplyRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.PlacementApplication}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /placements/{id}/apply [post]
// @Security     BearerAuth
func (h *PlacementHandler) Apply(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleStudent {
		c.Error(apperror.Forbidden("Only students can apply to placements"))
		return
	}

	placementID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid placement ID"))
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	app, err := h.placementUC.Apply(c.Request.Context(), userID, placementID, req.ResumeURL, req.CoverLetter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Error(apperror.NotFound("Placement not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// MyApplications godoc
// @Summary      Get my applications
// @Description  List applications submitted by the current student
// @Tags         placements
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.PlacementApplication}
// @Failure      401  {object}  response.Response
// @Router       /students/applications [get]
// @Security     BearerAuth
func (h *PlacementHandler) MyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.placementUC.MyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// ListApplications godoc
// @Summary      List applications for a placement
// @Description  Get all applications for a placement (Staff only)
// @Tags         placements
// @Produce      json
// @Param        id   path      int  true  "Placement ID"
// @Success      200  {object}  response.Response{data=[]domain.PlacementApplication}
// @Failure      403  {object}  response.Response
// @Router       /placements/{id}/applications [get]
// @Security     BearerAuth
func (h *PlacementHandler) ListApplications(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleStaff && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only placement staff can view applications"))
		return
	}

	placementID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid placement ID"))
		return
	}

	applications, err := h.placementUC.ListByPlacement(c.Request.Context(), placementID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// UpdateApplicationStatusRequest is the payload for reviewing an application
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewed accepted rejected"`
}

// UpdateApplicationStatus godoc
// @Summary      Update application status
// @Description  Move an application through review (Staff only)
// @Tags         placements
// @Accept       json
// @Produce      json
// @Param        id    path      int                             true  "Application ID"
// @Param        body  body      UpdateApplicationStatusRequest  true  "Status update"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id} [patch]
// @Security     BearerAuth
func (h *PlacementHandler) UpdateApplicationStatus(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleStaff && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only placement staff can update application status"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	if err := h.placementUC.UpdateApplicationStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Error(apperror.NotFound("Application not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", nil)
}
