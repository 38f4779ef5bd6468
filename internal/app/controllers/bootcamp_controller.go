package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/devcamper/internal/app/models/dto"
	"github.com/yigit/devcamper/internal/app/services"
	"github.com/yigit/devcamper/internal/middleware"
	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// BootcampController handles bootcamp-related operations
type BootcampController struct {
	bootcampService services.BootcampService
}

// NewBootcampController creates a new BootcampController
func NewBootcampController(bootcampService services.BootcampService) *BootcampController {
	return &BootcampController{
		bootcampService: bootcampService,
	}
}

// handleError reports err through the central error handler. Unclassified
// failures are answered with 400.
func handleError(ctx *gin.Context, err error) {
	middleware.HandleAPIError(ctx, apperrors.WithDefaultStatus(err, http.StatusBadRequest))
}

// GetBootcamps lists all bootcamps
// @Summary List bootcamps
// @Description Retrieves every bootcamp
// @Tags bootcamps
// @Produce json
// @Success 200 {object} dto.Response{data=[]models.Bootcamp} "Bootcamps retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Query failed"
// @Router /bootcamps [get]
func (c *BootcampController) GetBootcamps(ctx *gin.Context) {
	bootcamps, err := c.bootcampService.GetBootcamps(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewResponse(bootcamps))
}

// GetBootcamp retrieves a bootcamp by ID
// @Summary Get bootcamp details
// @Description Retrieves a single bootcamp by its ID
// @Tags bootcamps
// @Produce json
// @Param id path string true "Bootcamp ID"
// @Success 200 {object} dto.Response{data=models.Bootcamp} "Bootcamp retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Bootcamp not found"
// @Router /bootcamps/{id} [get]
func (c *BootcampController) GetBootcamp(ctx *gin.Context) {
	bootcamp, err := c.bootcampService.GetBootcamp(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewResponse(bootcamp))
}

// CreateBootcamp handles bootcamp creation
// @Summary Create a new bootcamp
// @Description Creates a bootcamp. averageCost is maintained by the server and ignored when sent.
// @Tags bootcamps
// @Accept json
// @Produce json
// @Param request body dto.BootcampRequest true "Bootcamp information"
// @Success 201 {object} dto.Response{data=models.Bootcamp} "Bootcamp created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or duplicate name"
// @Router /bootcamps [post]
func (c *BootcampController) CreateBootcamp(ctx *gin.Context) {
	var req dto.BootcampRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		handleError(ctx, err)
		return
	}

	bootcamp, err := c.bootcampService.CreateBootcamp(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewResponse(bootcamp))
}

// UpdateBootcamp updates an existing bootcamp
// @Summary Update a bootcamp
// @Description Applies the fields present in the body and re-validates the merged bootcamp
// @Tags bootcamps
// @Accept json
// @Produce json
// @Param id path string true "Bootcamp ID"
// @Param request body dto.BootcampRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=models.Bootcamp} "Bootcamp updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Bootcamp not found"
// @Router /bootcamps/{id} [put]
func (c *BootcampController) UpdateBootcamp(ctx *gin.Context) {
	var req dto.BootcampRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		handleError(ctx, err)
		return
	}

	bootcamp, err := c.bootcampService.UpdateBootcamp(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewResponse(bootcamp))
}

// DeleteBootcamp deletes a bootcamp
// @Summary Delete a bootcamp
// @Description Deletes a bootcamp and all of its courses
// @Tags bootcamps
// @Produce json
// @Param id path string true "Bootcamp ID"
// @Success 200 {object} dto.Response{data=models.Bootcamp} "Bootcamp deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Bootcamp not found"
// @Router /bootcamps/{id} [delete]
func (c *BootcampController) DeleteBootcamp(ctx *gin.Context) {
	bootcamp, err := c.bootcampService.DeleteBootcamp(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewResponse(bootcamp))
}
