package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/devcamper/internal/app/models/dto"
	"github.com/yigit/devcamper/internal/app/services"
	"github.com/yigit/devcamper/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetCourses lists every course with its bootcamp expanded
// @Summary List courses
// @Description Retrieves all courses; each bootcamp reference is expanded to its name and description
// @Tags courses
// @Produce json
// @Success 200 {object} dto.Response{data=[]models.PopulatedCourse} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Query failed"
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetCourses(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(courses, len(courses)))
}

// GetBootcampCourses lists the courses of one bootcamp
// @Summary List bootcamp courses
// @Description Retrieves the courses referencing the given bootcamp
// @Tags courses
// @Produce json
// @Param id path string true "Bootcamp ID"
// @Success 200 {object} dto.Response{data=[]models.Course} "Courses retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Malformed bootcamp ID"
// @Router /bootcamps/{id}/courses [get]
func (c *CourseController) GetBootcampCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetBootcampCourses(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(courses, len(courses)))
}

// GetCourse retrieves a course by ID
// @Summary Get course details
// @Description Retrieves a single course with its bootcamp expanded
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.Response{data=models.PopulatedCourse} "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.courseService.GetCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewResponse(course))
}

// CreateCourse adds a course to a bootcamp
// @Summary Create a course
// @Description Creates a course under the bootcamp from the path and recalculates the bootcamp's average cost
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Bootcamp ID"
// @Param request body dto.CourseRequest true "Course information"
// @Success 201 {object} dto.Response{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or duplicate title"
// @Failure 404 {object} dto.ErrorResponse "Bootcamp not found"
// @Router /bootcamps/{id}/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		handleError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewResponse(course))
}

// UpdateCourse updates an existing course
// @Summary Update a course
// @Description Applies the fields present in the body and re-validates the merged course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.CourseRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=models.Course} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		handleError(ctx, err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewResponse(course))
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Description Deletes a course and recalculates its bootcamp's average cost
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.Response{data=models.Course} "Course deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	course, err := c.courseService.DeleteCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewResponse(course))
}
