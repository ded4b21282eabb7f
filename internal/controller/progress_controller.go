package controller

import (
	"errors"
	"net/http"
	"strconv"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService  *service.ProgressService
	AnalyticsService *service.AnalyticsService
}

func NewProgressController(progressService *service.ProgressService, analyticsService *service.AnalyticsService) *ProgressController {
	return &ProgressController{
		ProgressService:  progressService,
		AnalyticsService: analyticsService,
	}
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Semester int `json:"semester"`
}

// swagger:model UpdateProgressRequest
type UpdateProgressRequest struct {
	TopicID   uint                   `json:"topic_id" binding:"required"`
	Status    model.CompletionStatus `json:"status"`
	TimeSpent int                    `json:"time_spent"`
}

// GetProfile godoc
// @Summary Current user's profile with aggregate stats
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.Profile
// @Failure 401 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/profile [get]
func (c *ProgressController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	profile, err := c.ProgressService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx, "Profile not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the current semester
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProfileRequest true "profile fields"
// @Success 200 {object} map[string]string
// @Router /api/profile/update [post]
func (c *ProgressController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.UpdateSemester(claims.UserID, req.Semester); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateProgress godoc
// @Summary Record a study session for a topic
// @Description Upserts the (user, topic) progress row: status is
// @Description overwritten, time_spent is added to the stored total.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProgressRequest true "progress data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} util.ErrorResponse
// @Router /api/progress/update [post]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.RecordProgress(claims.UserID, req.TopicID, req.Status, req.TimeSpent); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}

// GetAnalytics godoc
// @Summary Per-subject progress, recent quizzes and the score trend
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param semester query int false "filter by semester"
// @Success 200 {object} service.AnalyticsView
// @Router /api/progress/analytics [get]
func (c *ProgressController) GetAnalytics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	semester, _ := strconv.Atoi(ctx.Query("semester"))

	view, err := c.AnalyticsService.Analytics(claims.UserID, semester)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}
