package screenings

import (
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateScreening handles POST /api/v1/screenings
func (c *Controller) CreateScreening(ctx *gin.Context) {
	var req CreateScreeningRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, response.BindingErrors(err))
		return
	}

	screening, err := c.service.CreateScreening(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Screening created successfully", screening, nil)
}

// GetScreening handles GET /api/v1/screenings/:id
func (c *Controller) GetScreening(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screening ID", nil, nil)
		return
	}

	screening, err := c.service.GetScreening(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	resp := screening.ToResponse()
	response.RespondJSON(ctx, "success", http.StatusOK, "Screening retrieved successfully", resp, nil)
}

// ListAvailableScreenings handles GET /api/v1/screenings/available
func (c *Controller) ListAvailableScreenings(ctx *gin.Context) {
	screenings, err := c.service.ListAvailableScreenings(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Available screenings retrieved", screenings, nil)
}

// ListTodayScreenings handles GET /api/v1/screenings/today
func (c *Controller) ListTodayScreenings(ctx *gin.Context) {
	screenings, err := c.service.ListTodayScreenings(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Today's screenings retrieved", screenings, nil)
}

// ListScreeningsByMovie handles GET /api/v1/movies/:id/screenings
func (c *Controller) ListScreeningsByMovie(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	screenings, err := c.service.ListScreeningsByMovie(ctx.Request.Context(), movieID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screenings retrieved successfully", screenings, nil)
}
