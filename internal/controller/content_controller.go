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

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// userIDOrZero resolves the optional authentication used by curriculum
// listings: anonymous callers see default progress annotations.
func userIDOrZero(ctx *gin.Context) uint {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// GetSubjects godoc
// @Summary List subjects, annotated with the caller's completed-topic counts
// @Tags curriculum
// @Produce json
// @Param semester query int false "filter by semester"
// @Success 200 {array} repository.SubjectWithCompleted
// @Router /api/subjects [get]
func (c *ContentController) GetSubjects(ctx *gin.Context) {
	semester, _ := strconv.Atoi(ctx.Query("semester"))

	subjects, err := c.ContentService.ListSubjects(ctx.Request.Context(), userIDOrZero(ctx), semester)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subjects)
}

// GetTopics godoc
// @Summary List a subject's topics with the caller's status and score
// @Tags curriculum
// @Produce json
// @Param id path int true "subject id"
// @Success 200 {array} repository.TopicWithProgress
// @Failure 404 {object} util.ErrorResponse
// @Router /api/subjects/{id}/topics [get]
func (c *ContentController) GetTopics(ctx *gin.Context) {
	subjectID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid subject id")
		return
	}

	topics, err := c.ContentService.ListTopics(uint(subjectID), userIDOrZero(ctx))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, "Subject not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, topics)
}

// GetTopic godoc
// @Summary Topic details with the caller's progress row when present
// @Tags curriculum
// @Produce json
// @Param id path int true "topic id"
// @Success 200 {object} service.TopicView
// @Failure 404 {object} util.ErrorResponse
// @Router /api/topics/{id} [get]
func (c *ContentController) GetTopic(ctx *gin.Context) {
	topicID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid topic id")
		return
	}

	view, err := c.ContentService.GetTopic(uint(topicID), userIDOrZero(ctx))
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx, "Topic not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// GetResources godoc
// @Summary List a topic's learning resources
// @Tags curriculum
// @Produce json
// @Param id path int true "topic id"
// @Param language query string false "resource language (default english)"
// @Param type query string false "video or article"
// @Success 200 {array} model.LearningResource
// @Router /api/topics/{id}/resources [get]
func (c *ContentController) GetResources(ctx *gin.Context) {
	topicID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid topic id")
		return
	}

	resources, err := c.ContentService.ListResources(
		uint(topicID),
		ctx.Query("language"),
		model.ResourceType(ctx.Query("type")),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resources)
}
